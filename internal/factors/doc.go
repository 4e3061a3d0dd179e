// Package factors defines factor sources and the FactorSources collection.
//
// A factor source is an opaque descriptor of a key-derivation input (a phone
// keychain mnemonic, a Ledger hardware wallet). This package models only the
// fields needed to give each factor source value semantics: structural
// equality and a canonical form from which hashes are derived.
//
// FactorSources is an ordered, immutable collection. Two collections are
// equal iff they have the same length and equal elements at every index.
// Hash is a pure function of the value, so a == b implies equal hashes.
//
// Placeholder and PlaceholderOther provide deterministic fixtures built from
// constants. Every call returns a fresh, independent instance.
package factors
