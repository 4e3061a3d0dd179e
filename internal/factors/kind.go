package factors

import "fmt"

// FactorSourceKind identifies the kind of a factor source.
// The string value doubles as the JSON discriminator.
type FactorSourceKind string

const (
	KindDevice                 FactorSourceKind = "device"
	KindLedgerHQHardwareWallet FactorSourceKind = "ledgerHQHardwareWallet"
)

// Valid reports whether k is a known kind.
func (k FactorSourceKind) Valid() bool {
	switch k {
	case KindDevice, KindLedgerHQHardwareWallet:
		return true
	}
	return false
}

func parseKind(s string) (FactorSourceKind, error) {
	k := FactorSourceKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscriminator, s)
	}
	return k, nil
}

// Curve is an elliptic curve supported by a factor source.
type Curve string

const (
	CurveCurve25519 Curve = "curve25519"
	CurveSecp256k1  Curve = "secp256k1"
)

// DerivationPathScheme is a derivation path scheme supported by a factor source.
type DerivationPathScheme string

const (
	SchemeCAP26        DerivationPathScheme = "cap26"
	SchemeBIP44Olympia DerivationPathScheme = "bip44Olympia"
)

// Flag marks a factor source with a special role.
type Flag string

const (
	FlagMain          Flag = "main"
	FlagDeletedByUser Flag = "deletedByUser"
)

// LedgerModel is the model of a Ledger hardware wallet.
type LedgerModel string

const (
	LedgerNanoS     LedgerModel = "nanoS"
	LedgerNanoSPlus LedgerModel = "nanoS+"
	LedgerNanoX     LedgerModel = "nanoX"
)

func parseLedgerModel(s string) (LedgerModel, error) {
	switch m := LedgerModel(s); m {
	case LedgerNanoS, LedgerNanoSPlus, LedgerNanoX:
		return m, nil
	}
	return "", fmt.Errorf("factor sources: unknown ledger model %q", s)
}
