package factors

import (
	"fmt"

	"github.com/roach88/walletkit/internal/canonical"
)

// LedgerHardwareWalletHint helps the user tell Ledger devices apart.
type LedgerHardwareWalletHint struct {
	Name  string      // "Orange, scratched"
	Model LedgerModel // nanoS+
}

func (h LedgerHardwareWalletHint) canonical() canonical.Object {
	return canonical.Object{
		"name":  canonical.String(h.Name),
		"model": canonical.String(h.Model),
	}
}

// LedgerHardwareWalletFactorSource is a mnemonic secured by a Ledger device.
type LedgerHardwareWalletFactorSource struct {
	ID     FactorSourceIDFromHash
	Common FactorSourceCommon
	Hint   LedgerHardwareWalletHint
}

// NewLedgerHardwareWalletFactorSource builds a Ledger factor source; the id
// kind is forced to ledgerHQHardwareWallet.
func NewLedgerHardwareWalletFactorSource(body Hash32, common FactorSourceCommon, hint LedgerHardwareWalletHint) LedgerHardwareWalletFactorSource {
	return LedgerHardwareWalletFactorSource{
		ID:     NewFactorSourceIDFromHash(KindLedgerHQHardwareWallet, body),
		Common: common.Clone(),
		Hint:   hint,
	}
}

// Equal compares all fields.
func (l LedgerHardwareWalletFactorSource) Equal(other LedgerHardwareWalletFactorSource) bool {
	return l.ID == other.ID && l.Hint == other.Hint && l.Common.Equal(other.Common)
}

// Clone returns a deep copy.
func (l LedgerHardwareWalletFactorSource) Clone() LedgerHardwareWalletFactorSource {
	l.Common = l.Common.Clone()
	return l
}

func (l LedgerHardwareWalletFactorSource) canonical() canonical.Object {
	return canonical.Object{
		"id":     l.ID.canonical(),
		"common": l.Common.canonical(),
		"hint":   l.Hint.canonical(),
	}
}

type ledgerJSON struct {
	ID     idJSON     `json:"id"`
	Common commonJSON `json:"common"`
	Hint   struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"hint"`
}

func (w ledgerJSON) decode() (LedgerHardwareWalletFactorSource, error) {
	id, err := w.ID.decode()
	if err != nil {
		return LedgerHardwareWalletFactorSource{}, err
	}
	if id.Kind != KindLedgerHQHardwareWallet {
		return LedgerHardwareWalletFactorSource{}, fmt.Errorf("id.kind: want %q, got %q", KindLedgerHQHardwareWallet, id.Kind)
	}
	common, err := w.Common.decode()
	if err != nil {
		return LedgerHardwareWalletFactorSource{}, err
	}
	model, err := parseLedgerModel(w.Hint.Model)
	if err != nil {
		return LedgerHardwareWalletFactorSource{}, fmt.Errorf("hint.model: %w", err)
	}
	return LedgerHardwareWalletFactorSource{
		ID:     id,
		Common: common,
		Hint:   LedgerHardwareWalletHint{Name: w.Hint.Name, Model: model},
	}, nil
}
