package factors

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorSourcesReflexivity(t *testing.T) {
	for _, c := range []FactorSources{Placeholder(), PlaceholderOther(), NewFactorSources()} {
		assert.True(t, c.Equal(c), "%s must equal itself", c)
	}
}

func TestFactorSourcesOrderIsSignificant(t *testing.T) {
	a := NewFactorSources(FromDevice(PlaceholderDevice()), FromLedger(PlaceholderLedger()))
	b := NewFactorSources(FromLedger(PlaceholderLedger()), FromDevice(PlaceholderDevice()))

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestFactorSourcesNoImplicitDedup(t *testing.T) {
	d := FromDevice(PlaceholderDevice())
	twice := NewFactorSources(d, d)
	once := NewFactorSources(d)

	assert.Equal(t, 2, twice.Len())
	assert.False(t, twice.Equal(once))
	assert.NotEqual(t, twice.Hash(), once.Hash())
}

func TestFactorSourcesPrefixNotEqual(t *testing.T) {
	full := Placeholder()
	prefix := NewFactorSources(full.At(0))

	assert.False(t, full.Equal(prefix))
	assert.False(t, prefix.Equal(full))
}

func TestFactorSourcesEmptyEqual(t *testing.T) {
	var zero FactorSources
	empty := NewFactorSources()

	assert.True(t, zero.Equal(empty))
	assert.Equal(t, zero.Hash(), empty.Hash())
	assert.ErrorIs(t, empty.Validate(), ErrEmpty)
	assert.Panics(t, empty.AssertNotEmpty)
	assert.NotPanics(t, Placeholder().AssertNotEmpty)
}

func TestFactorSourcesHashConsistency(t *testing.T) {
	values := []FactorSources{
		Placeholder(),
		Placeholder(),
		PlaceholderOther(),
		PlaceholderOther(),
		NewFactorSources(FromLedger(PlaceholderLedgerOther())),
		NewFactorSources(),
	}

	for i, x := range values {
		for j, y := range values {
			if x.Equal(y) {
				assert.Equal(t, x.Hash(), y.Hash(), "values[%d] == values[%d] but hashes differ", i, j)
			}
		}
	}
}

func TestFactorSourcesHashStable(t *testing.T) {
	c := Placeholder()
	first := c.Hash()
	for range 100 {
		require.Equal(t, first, c.Hash())
	}
}

func TestFactorSourcesImmutable(t *testing.T) {
	items := []FactorSource{FromDevice(PlaceholderDevice())}
	c := NewFactorSources(items...)

	items[0] = FromLedger(PlaceholderLedger())
	assert.Equal(t, KindDevice, c.At(0).Kind())

	slice := c.Slice()
	slice[0] = FromLedger(PlaceholderLedger())
	assert.Equal(t, KindDevice, c.At(0).Kind())

	for _, fs := range c.All() {
		d, _ := fs.AsDevice()
		d.Hint.Name = "mutated"
	}
	d, _ := c.At(0).AsDevice()
	assert.Equal(t, "Unknown Name", d.Hint.Name)
}

func TestFactorSourcesAllStopsEarly(t *testing.T) {
	n := 0
	for range Placeholder().All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestFactorSourcesJSONRoundtrip(t *testing.T) {
	for _, c := range []FactorSources{Placeholder(), PlaceholderOther()} {
		data, err := json.Marshal(c)
		require.NoError(t, err)

		var decoded FactorSources
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.True(t, c.Equal(decoded))
		assert.Equal(t, c.Hash(), decoded.Hash())
		assert.Equal(t, c.Digest(), decoded.Digest())
	}
}

func TestFactorSourcesUnmarshalKeepsDuplicates(t *testing.T) {
	d := FromDevice(PlaceholderDevice())
	data, err := json.Marshal(NewFactorSources(d, d))
	require.NoError(t, err)

	var decoded FactorSources
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Len())
}

func TestFactorSourcesUnmarshalError(t *testing.T) {
	var c FactorSources
	err := json.Unmarshal([]byte(`[{"discriminator":"trezor"}]`), &c)
	assert.ErrorIs(t, err, ErrUnknownDiscriminator)
}

func TestNewIdentifiedFactorSources(t *testing.T) {
	t.Run("distinct ids", func(t *testing.T) {
		c, err := NewIdentifiedFactorSources(FromDevice(PlaceholderDevice()), FromLedger(PlaceholderLedger()))
		require.NoError(t, err)
		assert.True(t, c.Equal(Placeholder()))
	})

	t.Run("duplicate value", func(t *testing.T) {
		_, err := NewIdentifiedFactorSources(FromDevice(PlaceholderDevice()), FromDevice(PlaceholderDevice()))
		assert.ErrorIs(t, err, ErrDuplicateValuesFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := NewIdentifiedFactorSources(FromLedger(PlaceholderLedger()), FromLedger(PlaceholderLedgerOther()))
		assert.ErrorIs(t, err, ErrDuplicateIDOfValuesFound)
	})
}

func TestWithBDFS(t *testing.T) {
	c, err := WithBDFS(PlaceholderDevice())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = WithBDFS(PlaceholderDeviceOlympia())
	assert.ErrorIs(t, err, ErrNotMainBDFS)
}

func TestFactorSourcesString(t *testing.T) {
	assert.Equal(t,
		"FactorSources[device:"+placeholderDeviceBody+", ledgerHQHardwareWallet:"+placeholderLedgerBody+"]",
		Placeholder().String(),
	)
}

func TestFactorSourcesConcurrentEqualAndHash(t *testing.T) {
	a := Placeholder()
	b := PlaceholderOther()
	wantHashA, wantHashB := a.Hash(), b.Hash()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.True(t, a.Equal(a))
				assert.False(t, a.Equal(b))
				assert.Equal(t, wantHashA, a.Hash())
				assert.Equal(t, wantHashB, b.Hash())
			}
		}()
	}
	wg.Wait()
}
