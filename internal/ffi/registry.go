package ffi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/walletkit/internal/factors"
)

// ErrInvalidHandle is returned for the zero handle, unknown handles and
// handles whose last reference has been released.
var ErrInvalidHandle = errors.New("ffi: invalid or released handle")

// Handle is an opaque reference to a FactorSources value held by a Registry.
// The zero Handle is never valid.
type Handle uint64

type entry struct {
	value factors.FactorSources
	refs  int
}

// Registry owns the values behind handles.
type Registry struct {
	mu      sync.RWMutex
	next    Handle
	entries map[Handle]*entry

	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[Handle]*entry),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Insert stores v and returns a handle holding one reference. FactorSources
// is immutable, so the registry shares v with the caller.
func (r *Registry) Insert(v factors.FactorSources) Handle {
	r.metrics.call(OpConstruct)

	r.mu.Lock()
	r.next++
	h := r.next
	r.entries[h] = &entry{value: v, refs: 1}
	r.mu.Unlock()

	r.metrics.liveDelta(1)
	r.logger.Debug("handle allocated", "handle", uint64(h), "len", v.Len())
	return h
}

// NewPlaceholder returns a handle to a fresh factors.Placeholder.
func (r *Registry) NewPlaceholder() Handle {
	return r.Insert(factors.Placeholder())
}

// NewPlaceholderOther returns a handle to a fresh factors.PlaceholderOther.
func (r *Registry) NewPlaceholderOther() Handle {
	return r.Insert(factors.PlaceholderOther())
}

// Get returns the value behind h. The value is immutable, so sharing is safe.
func (r *Registry) Get(h Handle) (factors.FactorSources, error) {
	r.mu.RLock()
	e, ok := r.entries[h]
	r.mu.RUnlock()
	if !ok {
		return factors.FactorSources{}, r.invalid(h)
	}
	return e.value, nil
}

// Equals delegates to factors.FactorSources.Equal.
func (r *Registry) Equals(a, b Handle) (bool, error) {
	r.metrics.call(OpEquals)

	va, err := r.Get(a)
	if err != nil {
		return false, fmt.Errorf("equals lhs: %w", err)
	}
	vb, err := r.Get(b)
	if err != nil {
		return false, fmt.Errorf("equals rhs: %w", err)
	}
	return va.Equal(vb), nil
}

// Hash delegates to factors.FactorSources.Hash.
func (r *Registry) Hash(h Handle) (uint64, error) {
	r.metrics.call(OpHash)

	v, err := r.Get(h)
	if err != nil {
		return 0, fmt.Errorf("hash: %w", err)
	}
	return v.Hash(), nil
}

// Retain adds a reference to h.
func (r *Registry) Retain(h Handle) error {
	r.metrics.call(OpRetain)

	r.mu.Lock()
	e, ok := r.entries[h]
	if ok {
		e.refs++
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("retain: %w", r.invalid(h))
	}
	return nil
}

// Release drops a reference to h, freeing the value on the last one.
func (r *Registry) Release(h Handle) error {
	r.metrics.call(OpRelease)

	r.mu.Lock()
	e, ok := r.entries[h]
	freed := false
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(r.entries, h)
			freed = true
		}
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("release: %w", r.invalid(h))
	}
	if freed {
		r.metrics.liveDelta(-1)
		r.logger.Debug("handle freed", "handle", uint64(h))
	}
	return nil
}

// ToJSON returns the canonical JSON of the value behind h, for bindings
// that copy values instead of holding handles.
func (r *Registry) ToJSON(h Handle) ([]byte, error) {
	r.metrics.call(OpToJSON)

	v, err := r.Get(h)
	if err != nil {
		return nil, fmt.Errorf("to json: %w", err)
	}
	// Called directly: json.Marshal would re-escape HTML characters.
	return v.MarshalJSON()
}

// FromJSON decodes data and returns a handle holding one reference.
func (r *Registry) FromJSON(data []byte) (Handle, error) {
	r.metrics.call(OpFromJSON)

	var v factors.FactorSources
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("from json: %w", err)
	}
	return r.Insert(v), nil
}

// Refs returns the reference count of h, or zero if h is not live.
func (r *Registry) Refs(h Handle) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[h]; ok {
		return e.refs
	}
	return 0
}

// Live returns the number of live handles.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) invalid(h Handle) error {
	r.metrics.invalid()
	r.logger.Warn("invalid handle", "handle", uint64(h))
	return fmt.Errorf("%w: %d", ErrInvalidHandle, uint64(h))
}
