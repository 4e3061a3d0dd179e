package conformance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()

	assert.Equal(t, "factor_sources_value_semantics", s.Name)
	assert.Equal(t, map[string]string{
		"a":  FixturePlaceholder,
		"a2": FixturePlaceholder,
		"b":  FixturePlaceholderOther,
		"b2": FixturePlaceholderOther,
	}, s.Values)

	var names []string
	for _, c := range s.Checks {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "equal(a, a)")
	assert.Contains(t, names, "equal(a, a2)")
	assert.Contains(t, names, "not_equal(a, b)")
	assert.Contains(t, names, "hash_stable(a)")
	assert.Contains(t, names, "set_count([a b b a]) == 2")
	assert.Contains(t, names, "concurrent")
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
name: minimal
description: "one value, one check"
values:
  x: placeholder
checks:
  - type: equal
    left: x
    right: x
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, "one value, one check", s.Description)
	require.Len(t, s.Checks, 1)
	assert.Equal(t, CheckEqual, s.Checks[0].Type)
	assert.Equal(t, PhaseEquality, s.Checks[0].Phase())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown field",
			yaml: `
name: s
values: {x: placeholder}
check:
  - type: equal
`,
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "values: {x: placeholder}\nchecks: [{type: hash_stable, value: x}]\n",
			wantErr: "name is required",
		},
		{
			name:    "no values",
			yaml:    "name: s\nchecks: [{type: hash_stable, value: x}]\n",
			wantErr: "values map is required",
		},
		{
			name:    "unknown fixture",
			yaml:    "name: s\nvalues: {x: sample}\nchecks: [{type: hash_stable, value: x}]\n",
			wantErr: `unknown fixture "sample"`,
		},
		{
			name:    "no checks",
			yaml:    "name: s\nvalues: {x: placeholder}\n",
			wantErr: "checks list is required",
		},
		{
			name:    "unknown alias",
			yaml:    "name: s\nvalues: {x: placeholder}\nchecks: [{type: equal, left: x, right: y}]\n",
			wantErr: `right references unknown value "y"`,
		},
		{
			name:    "missing left",
			yaml:    "name: s\nvalues: {x: placeholder}\nchecks: [{type: not_equal, right: x}]\n",
			wantErr: "left is required",
		},
		{
			name:    "count out of range",
			yaml:    "name: s\nvalues: {x: placeholder}\nchecks: [{type: set_count, values: [x], count: 2}]\n",
			wantErr: "count 2 out of range",
		},
		{
			name:    "unknown type",
			yaml:    "name: s\nvalues: {x: placeholder}\nchecks: [{type: compare}]\n",
			wantErr: `unknown check type "compare"`,
		},
		{
			name:    "missing type",
			yaml:    "name: s\nvalues: {x: placeholder}\nchecks: [{left: x}]\n",
			wantErr: "type is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckPhase(t *testing.T) {
	assert.Equal(t, PhaseEquality, Check{Type: CheckEqual}.Phase())
	assert.Equal(t, PhaseEquality, Check{Type: CheckNotEqual}.Phase())
	assert.Equal(t, PhaseHashSet, Check{Type: CheckHashEqual}.Phase())
	assert.Equal(t, PhaseHashSet, Check{Type: CheckSetCount}.Phase())
	assert.Equal(t, PhaseHashSet, Check{Type: CheckConcurrent}.Phase())
	assert.Equal(t, "hash_set", PhaseHashSet.String())
	assert.Equal(t, "equality", PhaseEquality.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}

func TestPhasesCoverEveryCheckType(t *testing.T) {
	assert.Equal(t, []Phase{PhaseEquality, PhaseHashSet}, phases)
	assert.Equal(t, "Phase(0)", Phase(0).String(), "the zero value is not a phase")
	for _, typ := range []string{CheckEqual, CheckNotEqual, CheckHashEqual, CheckHashStable, CheckSetCount, CheckConcurrent} {
		assert.Contains(t, phases, Check{Type: typ}.Phase(), typ)
	}
}
