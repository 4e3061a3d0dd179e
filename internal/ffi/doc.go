// Package ffi is the Go side of the walletkit foreign-function surface.
//
// Foreign callers never see a FactorSources value directly. They hold an
// opaque Handle into a Registry, and every operation (equality, hashing,
// JSON export) looks the handle up and delegates to the factors package.
// Nothing here redefines equality or hashing.
//
// Handles are reference counted. A handle starts with one reference; Retain
// adds one and Release drops one. The value is freed when the last reference
// goes. Using a handle after that returns ErrInvalidHandle, which the cgo
// shim in cmd/libwalletkit turns into a panic in the foreign process.
//
// All Registry methods are safe for concurrent use.
package ffi
