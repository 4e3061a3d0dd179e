// Package canonical provides the constrained value tree and RFC 8785
// canonical JSON encoding used to derive content hashes in walletkit.
//
// Every hash that crosses the FFI boundary is computed from bytes produced
// here, so two values that compare equal always encode identically.
//
// Key design constraints:
//   - NO float types - use Int (int64) for numbers
//   - NO null - absent fields are omitted by the caller
//   - Object keys are ordered by UTF-16 code units, not UTF-8 bytes
//   - Strings are NFC normalized at the serialization boundary
package canonical
