package factors

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/walletkit/internal/canonical"
)

// Domain prefixes for content-addressed hashing.
// Version suffix enables future algorithm migration.
const (
	DomainFactorSource  = "walletkit/factor_source/v1"
	DomainFactorSources = "walletkit/factor_sources/v1"
)

// FactorSource is a tagged union over the supported factor source kinds.
// The zero value has no kind and equals only other zero values.
type FactorSource struct {
	kind   FactorSourceKind
	device DeviceFactorSource
	ledger LedgerHardwareWalletFactorSource
}

// FromDevice wraps a device factor source.
func FromDevice(d DeviceFactorSource) FactorSource {
	return FactorSource{kind: KindDevice, device: d.Clone()}
}

// FromLedger wraps a Ledger hardware wallet factor source.
func FromLedger(l LedgerHardwareWalletFactorSource) FactorSource {
	return FactorSource{kind: KindLedgerHQHardwareWallet, ledger: l.Clone()}
}

// Kind returns the discriminator.
func (fs FactorSource) Kind() FactorSourceKind {
	return fs.kind
}

// ID returns the factor source id.
func (fs FactorSource) ID() FactorSourceIDFromHash {
	switch fs.kind {
	case KindDevice:
		return fs.device.ID
	case KindLedgerHQHardwareWallet:
		return fs.ledger.ID
	}
	return FactorSourceIDFromHash{}
}

// Common returns a copy of the shared properties.
func (fs FactorSource) Common() FactorSourceCommon {
	switch fs.kind {
	case KindDevice:
		return fs.device.Common.Clone()
	case KindLedgerHQHardwareWallet:
		return fs.ledger.Common.Clone()
	}
	return FactorSourceCommon{}
}

// AsDevice returns a copy of the device variant.
func (fs FactorSource) AsDevice() (DeviceFactorSource, bool) {
	if fs.kind != KindDevice {
		return DeviceFactorSource{}, false
	}
	return fs.device.Clone(), true
}

// AsLedger returns a copy of the Ledger variant.
func (fs FactorSource) AsLedger() (LedgerHardwareWalletFactorSource, bool) {
	if fs.kind != KindLedgerHQHardwareWallet {
		return LedgerHardwareWalletFactorSource{}, false
	}
	return fs.ledger.Clone(), true
}

// Equal reports structural equality: same kind and equal variant.
func (fs FactorSource) Equal(other FactorSource) bool {
	if fs.kind != other.kind {
		return false
	}
	switch fs.kind {
	case KindDevice:
		return fs.device.Equal(other.device)
	case KindLedgerHQHardwareWallet:
		return fs.ledger.Equal(other.ledger)
	}
	return true
}

// Clone returns a deep copy.
func (fs FactorSource) Clone() FactorSource {
	fs.device = fs.device.Clone()
	fs.ledger = fs.ledger.Clone()
	return fs
}

// Canonical returns the canonical value tree. It is built from exactly the
// fields Equal compares, so equal factor sources have identical trees.
func (fs FactorSource) Canonical() canonical.Object {
	obj := canonical.Object{"discriminator": canonical.String(fs.kind)}
	switch fs.kind {
	case KindDevice:
		obj[string(fs.kind)] = fs.device.canonical()
	case KindLedgerHQHardwareWallet:
		obj[string(fs.kind)] = fs.ledger.canonical()
	}
	return obj
}

// Digest returns the domain-separated SHA-256 of the canonical form.
func (fs FactorSource) Digest() canonical.Sum {
	return canonical.HashWithDomain(DomainFactorSource, canonical.MustMarshal(fs.Canonical()))
}

// Hash folds Digest to 64 bits.
func (fs FactorSource) Hash() uint64 {
	return fs.Digest().Uint64()
}

func (fs FactorSource) String() string {
	if fs.kind == "" {
		return "FactorSource(<none>)"
	}
	return fmt.Sprintf("FactorSource(%s)", fs.ID())
}

// MarshalJSON emits the canonical form.
func (fs FactorSource) MarshalJSON() ([]byte, error) {
	return canonical.Marshal(fs.Canonical())
}

type factorSourceJSON struct {
	Discriminator string      `json:"discriminator"`
	Device        *deviceJSON `json:"device,omitempty"`
	Ledger        *ledgerJSON `json:"ledgerHQHardwareWallet,omitempty"`
}

// UnmarshalJSON decodes the discriminated wire format.
func (fs *FactorSource) UnmarshalJSON(data []byte) error {
	var w factorSourceJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	kind, err := parseKind(w.Discriminator)
	if err != nil {
		return err
	}

	switch kind {
	case KindDevice:
		if w.Device == nil {
			return fmt.Errorf("factor source: missing %q payload", kind)
		}
		d, err := w.Device.decode()
		if err != nil {
			return fmt.Errorf("device: %w", err)
		}
		*fs = FactorSource{kind: kind, device: d}
	case KindLedgerHQHardwareWallet:
		if w.Ledger == nil {
			return fmt.Errorf("factor source: missing %q payload", kind)
		}
		l, err := w.Ledger.decode()
		if err != nil {
			return fmt.Errorf("ledgerHQHardwareWallet: %w", err)
		}
		*fs = FactorSource{kind: kind, ledger: l}
	}
	return nil
}
