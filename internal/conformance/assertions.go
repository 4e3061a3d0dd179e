package conformance

import (
	"fmt"
	"strings"
)

// AssertionError is returned when a relation does not hold. It names the
// phase and the relation so a failure is self-describing.
type AssertionError struct {
	Phase    Phase
	Relation string // e.g. "equal(a, a2)"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed in %s phase: %s\n", e.Phase, e.Relation)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

func assertEqual(s Surface, handles map[string]Handle, c Check) error {
	eq, err := s.Equals(handles[c.Left], handles[c.Right])
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	if !eq {
		return &AssertionError{
			Phase:    PhaseEquality,
			Relation: c.Name(),
			Expected: "equals = true",
			Actual:   "equals = false",
		}
	}
	return nil
}

func assertNotEqual(s Surface, handles map[string]Handle, c Check) error {
	eq, err := s.Equals(handles[c.Left], handles[c.Right])
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	if eq {
		return &AssertionError{
			Phase:    PhaseEquality,
			Relation: c.Name(),
			Expected: "equals = false",
			Actual:   "equals = true",
		}
	}
	return nil
}

func assertHashEqual(s Surface, handles map[string]Handle, c Check) error {
	left, err := s.Hash(handles[c.Left])
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	right, err := s.Hash(handles[c.Right])
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	if left != right {
		return &AssertionError{
			Phase:    PhaseHashSet,
			Relation: c.Name(),
			Expected: fmt.Sprintf("hash(%s) == hash(%s)", c.Left, c.Right),
			Actual:   fmt.Sprintf("0x%016x != 0x%016x", left, right),
		}
	}
	return nil
}

func assertHashStable(s Surface, handles map[string]Handle, c Check) error {
	repeat := c.Repeat
	if repeat == 0 {
		repeat = 2
	}
	first, err := s.Hash(handles[c.Value])
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	for i := 1; i < repeat; i++ {
		h, err := s.Hash(handles[c.Value])
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		if h != first {
			return &AssertionError{
				Phase:    PhaseHashSet,
				Relation: c.Name(),
				Expected: fmt.Sprintf("0x%016x on every call", first),
				Actual:   fmt.Sprintf("0x%016x on call %d", h, i+1),
			}
		}
	}
	return nil
}
