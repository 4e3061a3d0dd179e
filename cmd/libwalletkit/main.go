// Command libwalletkit is the C ABI over the factor source handle registry.
//
// Build with:
//
//	go build -buildmode=c-shared -o libwalletkit.so ./cmd/libwalletkit
//
// Every export delegates to one process-wide ffi.Registry. An invalid handle
// is a programming error in the foreign caller and aborts the process.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"log/slog"
	"os"
	"unsafe"

	"github.com/roach88/walletkit/internal/ffi"
)

var registry = ffi.NewRegistry(
	ffi.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))),
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

//export walletkit_new_factor_sources_placeholder
func walletkit_new_factor_sources_placeholder() C.uint64_t {
	return C.uint64_t(registry.NewPlaceholder())
}

//export walletkit_new_factor_sources_placeholder_other
func walletkit_new_factor_sources_placeholder_other() C.uint64_t {
	return C.uint64_t(registry.NewPlaceholderOther())
}

//export walletkit_factor_sources_equals
func walletkit_factor_sources_equals(a, b C.uint64_t) C.bool {
	return C.bool(must(registry.Equals(ffi.Handle(a), ffi.Handle(b))))
}

//export walletkit_factor_sources_hash
func walletkit_factor_sources_hash(h C.uint64_t) C.uint64_t {
	return C.uint64_t(must(registry.Hash(ffi.Handle(h))))
}

//export walletkit_factor_sources_retain
func walletkit_factor_sources_retain(h C.uint64_t) {
	check(registry.Retain(ffi.Handle(h)))
}

//export walletkit_factor_sources_release
func walletkit_factor_sources_release(h C.uint64_t) {
	check(registry.Release(ffi.Handle(h)))
}

// The returned string is owned by the caller and must be passed to
// walletkit_string_free.
//
//export walletkit_factor_sources_to_json
func walletkit_factor_sources_to_json(h C.uint64_t) *C.char {
	return C.CString(string(must(registry.ToJSON(ffi.Handle(h)))))
}

//export walletkit_factor_sources_from_json
func walletkit_factor_sources_from_json(json *C.char) C.uint64_t {
	return C.uint64_t(must(registry.FromJSON([]byte(C.GoString(json)))))
}

//export walletkit_string_free
func walletkit_string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
