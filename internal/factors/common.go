package factors

import (
	"fmt"
	"slices"
	"time"

	"github.com/roach88/walletkit/internal/canonical"
)

// TimestampLayout is the wire format of factor source timestamps.
// Always UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// legacyTimestampLayout is accepted on input for timestamps without zone or fraction.
const legacyTimestampLayout = "2006-01-02T15:04:05"

// CryptoParameters lists the curves and derivation path schemes a factor
// source supports. Order is significant.
type CryptoParameters struct {
	SupportedCurves                []Curve
	SupportedDerivationPathSchemes []DerivationPathScheme
}

// BabylonCryptoParameters returns curve25519 with cap26.
func BabylonCryptoParameters() CryptoParameters {
	return CryptoParameters{
		SupportedCurves:                []Curve{CurveCurve25519},
		SupportedDerivationPathSchemes: []DerivationPathScheme{SchemeCAP26},
	}
}

// OlympiaCryptoParameters returns secp256k1 with bip44Olympia.
func OlympiaCryptoParameters() CryptoParameters {
	return CryptoParameters{
		SupportedCurves:                []Curve{CurveSecp256k1},
		SupportedDerivationPathSchemes: []DerivationPathScheme{SchemeBIP44Olympia},
	}
}

// IsBabylon reports whether p is exactly the Babylon parameter set.
func (p CryptoParameters) IsBabylon() bool {
	return p.Equal(BabylonCryptoParameters())
}

// Equal compares element-wise; nil and empty lists are equal.
func (p CryptoParameters) Equal(other CryptoParameters) bool {
	return slices.Equal(p.SupportedCurves, other.SupportedCurves) &&
		slices.Equal(p.SupportedDerivationPathSchemes, other.SupportedDerivationPathSchemes)
}

// Clone returns a deep copy.
func (p CryptoParameters) Clone() CryptoParameters {
	return CryptoParameters{
		SupportedCurves:                slices.Clone(p.SupportedCurves),
		SupportedDerivationPathSchemes: slices.Clone(p.SupportedDerivationPathSchemes),
	}
}

func (p CryptoParameters) canonical() canonical.Object {
	curves := make(canonical.Array, len(p.SupportedCurves))
	for i, c := range p.SupportedCurves {
		curves[i] = canonical.String(c)
	}
	schemes := make(canonical.Array, len(p.SupportedDerivationPathSchemes))
	for i, s := range p.SupportedDerivationPathSchemes {
		schemes[i] = canonical.String(s)
	}
	return canonical.Object{
		"supportedCurves":                curves,
		"supportedDerivationPathSchemes": schemes,
	}
}

// FactorSourceCommon holds the properties shared by every kind of factor
// source: supported crypto parameters, when it was added and last used, and
// its flags.
type FactorSourceCommon struct {
	CryptoParameters CryptoParameters
	AddedOn          time.Time
	LastUsedOn       time.Time
	Flags            []Flag
}

// NewFactorSourceCommon normalizes both timestamps to UTC at millisecond
// precision, the resolution of the wire format.
func NewFactorSourceCommon(params CryptoParameters, addedOn, lastUsedOn time.Time, flags ...Flag) FactorSourceCommon {
	return FactorSourceCommon{
		CryptoParameters: params.Clone(),
		AddedOn:          normalizeTime(addedOn),
		LastUsedOn:       normalizeTime(lastUsedOn),
		Flags:            slices.Clone(flags),
	}
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// IsMain reports whether the main flag is set.
func (c FactorSourceCommon) IsMain() bool {
	return slices.Contains(c.Flags, FlagMain)
}

// Equal compares all fields; timestamps compare as instants.
func (c FactorSourceCommon) Equal(other FactorSourceCommon) bool {
	return c.CryptoParameters.Equal(other.CryptoParameters) &&
		c.AddedOn.Equal(other.AddedOn) &&
		c.LastUsedOn.Equal(other.LastUsedOn) &&
		slices.Equal(c.Flags, other.Flags)
}

// Clone returns a deep copy.
func (c FactorSourceCommon) Clone() FactorSourceCommon {
	return FactorSourceCommon{
		CryptoParameters: c.CryptoParameters.Clone(),
		AddedOn:          c.AddedOn,
		LastUsedOn:       c.LastUsedOn,
		Flags:            slices.Clone(c.Flags),
	}
}

func (c FactorSourceCommon) canonical() canonical.Object {
	flags := make(canonical.Array, len(c.Flags))
	for i, f := range c.Flags {
		flags[i] = canonical.String(f)
	}
	return canonical.Object{
		"cryptoParameters": c.CryptoParameters.canonical(),
		"addedOn":          canonical.String(formatTimestamp(c.AddedOn)),
		"lastUsedOn":       canonical.String(formatTimestamp(c.LastUsedOn)),
		"flags":            flags,
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return normalizeTime(t), nil
	}
	t, legacyErr := time.Parse(legacyTimestampLayout, s)
	if legacyErr != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return normalizeTime(t), nil
}

type cryptoParametersJSON struct {
	SupportedCurves                []string `json:"supportedCurves"`
	SupportedDerivationPathSchemes []string `json:"supportedDerivationPathSchemes"`
}

type commonJSON struct {
	CryptoParameters cryptoParametersJSON `json:"cryptoParameters"`
	AddedOn          string               `json:"addedOn"`
	LastUsedOn       string               `json:"lastUsedOn"`
	Flags            []string             `json:"flags"`
}

func (w commonJSON) decode() (FactorSourceCommon, error) {
	addedOn, err := parseTimestamp(w.AddedOn)
	if err != nil {
		return FactorSourceCommon{}, fmt.Errorf("common.addedOn: %w", err)
	}
	lastUsedOn, err := parseTimestamp(w.LastUsedOn)
	if err != nil {
		return FactorSourceCommon{}, fmt.Errorf("common.lastUsedOn: %w", err)
	}

	params := CryptoParameters{}
	for _, c := range w.CryptoParameters.SupportedCurves {
		params.SupportedCurves = append(params.SupportedCurves, Curve(c))
	}
	for _, s := range w.CryptoParameters.SupportedDerivationPathSchemes {
		params.SupportedDerivationPathSchemes = append(params.SupportedDerivationPathSchemes, DerivationPathScheme(s))
	}

	flags := make([]Flag, len(w.Flags))
	for i, f := range w.Flags {
		flags[i] = Flag(f)
	}

	return NewFactorSourceCommon(params, addedOn, lastUsedOn, flags...), nil
}
