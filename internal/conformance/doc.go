// Package conformance verifies the value semantics of factor source
// collections as seen from the caller side of the FFI surface.
//
// The harness talks only to a Surface: construct a named fixture, compare two
// handles, hash a handle, release a handle. It never touches the factors
// package directly, so the same scenario can run against the in-process
// registry, a mock, or any other binding that implements Surface.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: factor_sources_value_semantics
//	description: "Equatable and Hashable conformance"
//	values:
//	  a: placeholder
//	  a2: placeholder
//	  b: placeholder_other
//	checks:
//	  - type: equal
//	    left: a
//	    right: a2
//	  - type: set_count
//	    values: [a, b, b, a]
//	    count: 2
//
// # Check Types
//
//   - equal, not_equal: equality relation between two values
//   - hash_equal: two values hash identically
//   - hash_stable: hashing one value repeatedly yields one result
//   - set_count: distinct elements after inserting values into a value set
//   - concurrent: parallel equals/hash calls match a sequential baseline
//
// # Execution
//
// Execution is linear: construct every value, run equality checks, run hash
// checks, report. There are no retries. The first failed relation aborts the
// run with an *AssertionError naming it. Every constructed handle is
// released before Run returns.
package conformance
