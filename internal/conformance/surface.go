package conformance

import (
	"fmt"

	"github.com/roach88/walletkit/internal/ffi"
)

// Fixture names understood by every Surface.
const (
	FixturePlaceholder      = "placeholder"
	FixturePlaceholderOther = "placeholder_other"
)

// Handle is an opaque value reference issued by a Surface.
type Handle uint64

// Surface is the exported FFI surface as a foreign caller sees it.
type Surface interface {
	Construct(fixture string) (Handle, error)
	Equals(a, b Handle) (bool, error)
	Hash(h Handle) (uint64, error)
	Release(h Handle) error
}

// RegistrySurface exposes an ffi.Registry as a Surface.
type RegistrySurface struct {
	Registry *ffi.Registry
}

// NewRegistrySurface wraps r.
func NewRegistrySurface(r *ffi.Registry) *RegistrySurface {
	return &RegistrySurface{Registry: r}
}

// Construct builds a fresh fixture.
func (s *RegistrySurface) Construct(fixture string) (Handle, error) {
	switch fixture {
	case FixturePlaceholder:
		return Handle(s.Registry.NewPlaceholder()), nil
	case FixturePlaceholderOther:
		return Handle(s.Registry.NewPlaceholderOther()), nil
	}
	return 0, fmt.Errorf("unknown fixture %q", fixture)
}

func (s *RegistrySurface) Equals(a, b Handle) (bool, error) {
	return s.Registry.Equals(ffi.Handle(a), ffi.Handle(b))
}

func (s *RegistrySurface) Hash(h Handle) (uint64, error) {
	return s.Registry.Hash(ffi.Handle(h))
}

func (s *RegistrySurface) Release(h Handle) error {
	return s.Registry.Release(ffi.Handle(h))
}

// surfaceValue gives a handle Equal and Hash methods that delegate to the
// surface, so handles can live in a valueset.Set. Surface errors are recorded
// in sink and reported after the set is built.
type surfaceValue struct {
	surface Surface
	handle  Handle
	sink    *error
}

func (v surfaceValue) Equal(other surfaceValue) bool {
	eq, err := v.surface.Equals(v.handle, other.handle)
	if err != nil && *v.sink == nil {
		*v.sink = err
	}
	return eq
}

func (v surfaceValue) Hash() uint64 {
	h, err := v.surface.Hash(v.handle)
	if err != nil && *v.sink == nil {
		*v.sink = err
	}
	return h
}
