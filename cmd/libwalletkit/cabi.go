package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// Go-typed entry points into the exported C ABI. Test files cannot use cgo,
// so main_test.go drives the exports through these. Each one crosses the
// same C conversions a foreign caller does.

func cPlaceholder() uint64 {
	return uint64(walletkit_new_factor_sources_placeholder())
}

func cPlaceholderOther() uint64 {
	return uint64(walletkit_new_factor_sources_placeholder_other())
}

func cEquals(a, b uint64) bool {
	return bool(walletkit_factor_sources_equals(C.uint64_t(a), C.uint64_t(b)))
}

func cHash(h uint64) uint64 {
	return uint64(walletkit_factor_sources_hash(C.uint64_t(h)))
}

func cRetain(h uint64) {
	walletkit_factor_sources_retain(C.uint64_t(h))
}

func cRelease(h uint64) {
	walletkit_factor_sources_release(C.uint64_t(h))
}

// cToJSON copies the exported string and frees it with walletkit_string_free.
func cToJSON(h uint64) string {
	s := walletkit_factor_sources_to_json(C.uint64_t(h))
	defer walletkit_string_free(s)
	return C.GoString(s)
}

func cFromJSON(json string) uint64 {
	s := C.CString(json)
	defer C.free(unsafe.Pointer(s))
	return uint64(walletkit_factor_sources_from_json(s))
}
