package factors

import (
	"fmt"

	"github.com/roach88/walletkit/internal/canonical"
)

// DeviceFactorSourceHint helps the user tell device factor sources apart.
type DeviceFactorSourceHint struct {
	Name              string // "Unknown Name"
	Model             string // "iPhone"
	MnemonicWordCount int    // 12, 15, 18, 21 or 24
}

func (h DeviceFactorSourceHint) canonical() canonical.Object {
	return canonical.Object{
		"name":              canonical.String(h.Name),
		"model":             canonical.String(h.Model),
		"mnemonicWordCount": canonical.Int(h.MnemonicWordCount),
	}
}

// DeviceFactorSource is a mnemonic stored in the secure storage of a phone.
type DeviceFactorSource struct {
	ID     FactorSourceIDFromHash
	Common FactorSourceCommon
	Hint   DeviceFactorSourceHint
}

// NewDeviceFactorSource builds a device factor source; the id kind is forced to device.
func NewDeviceFactorSource(body Hash32, common FactorSourceCommon, hint DeviceFactorSourceHint) DeviceFactorSource {
	return DeviceFactorSource{
		ID:     NewFactorSourceIDFromHash(KindDevice, body),
		Common: common.Clone(),
		Hint:   hint,
	}
}

// IsMainBDFS reports whether d is the main Babylon device factor source.
func (d DeviceFactorSource) IsMainBDFS() bool {
	return d.Common.IsMain() && d.Common.CryptoParameters.IsBabylon()
}

// Equal compares all fields.
func (d DeviceFactorSource) Equal(other DeviceFactorSource) bool {
	return d.ID == other.ID && d.Hint == other.Hint && d.Common.Equal(other.Common)
}

// Clone returns a deep copy.
func (d DeviceFactorSource) Clone() DeviceFactorSource {
	d.Common = d.Common.Clone()
	return d
}

func (d DeviceFactorSource) canonical() canonical.Object {
	return canonical.Object{
		"id":     d.ID.canonical(),
		"common": d.Common.canonical(),
		"hint":   d.Hint.canonical(),
	}
}

type deviceJSON struct {
	ID     idJSON     `json:"id"`
	Common commonJSON `json:"common"`
	Hint   struct {
		Name              string `json:"name"`
		Model             string `json:"model"`
		MnemonicWordCount int    `json:"mnemonicWordCount"`
	} `json:"hint"`
}

func (w deviceJSON) decode() (DeviceFactorSource, error) {
	id, err := w.ID.decode()
	if err != nil {
		return DeviceFactorSource{}, err
	}
	if id.Kind != KindDevice {
		return DeviceFactorSource{}, fmt.Errorf("id.kind: want %q, got %q", KindDevice, id.Kind)
	}
	common, err := w.Common.decode()
	if err != nil {
		return DeviceFactorSource{}, err
	}
	return DeviceFactorSource{
		ID:     id,
		Common: common,
		Hint: DeviceFactorSourceHint{
			Name:              w.Hint.Name,
			Model:             w.Hint.Model,
			MnemonicWordCount: w.Hint.MnemonicWordCount,
		},
	}, nil
}
