package conformance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/walletkit/internal/valueset"
)

const (
	defaultWorkers    = 8
	defaultIterations = 32
)

// Harness runs scenarios against a Surface.
type Harness struct {
	surface Surface
	logger  *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a harness driving s.
func New(s Surface, opts ...Option) *Harness {
	h := &Harness{
		surface: s,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario.
//
// A relation that does not hold ends the run with Result.Pass false and
// Result.Failure set; the returned error is nil. Surface errors (unknown
// fixtures, invalid handles) are returned as errors. Every handle the run
// constructed is released before Run returns.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (result *Result, err error) {
	result = NewResult(scenario.Name)

	handles, err := h.construct(scenario, result)
	defer func() {
		if rerr := h.releaseAll(handles); rerr != nil && err == nil {
			err = rerr
		}
	}()
	if err != nil {
		return nil, err
	}

	for _, phase := range phases {
		for _, c := range scenario.Checks {
			if c.Phase() != phase {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cerr := h.runCheck(ctx, handles, c)
			var aerr *AssertionError
			switch {
			case errors.As(cerr, &aerr):
				result.record(c, false)
				result.fail(aerr)
				h.logger.Warn("check failed", "phase", phase.String(), "check", c.Name())
				return result, nil
			case cerr != nil:
				return nil, cerr
			}

			result.record(c, true)
			h.logger.Debug("check passed", "phase", phase.String(), "check", c.Name())
		}
	}

	h.logger.Info("scenario passed", "scenario", scenario.Name, "checks", len(result.Checks))
	return result, nil
}

// construct builds every alias in sorted order so handle numbering is
// deterministic.
func (h *Harness) construct(scenario *Scenario, result *Result) (map[string]Handle, error) {
	aliases := make([]string, 0, len(scenario.Values))
	for alias := range scenario.Values {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)

	handles := make(map[string]Handle, len(aliases))
	for _, alias := range aliases {
		fixture := scenario.Values[alias]
		handle, err := h.surface.Construct(fixture)
		if err != nil {
			return handles, fmt.Errorf("construct %s: %w", alias, err)
		}
		handles[alias] = handle

		hash, err := h.surface.Hash(handle)
		if err != nil {
			return handles, fmt.Errorf("construct %s: %w", alias, err)
		}
		result.Hashes[alias] = hash

		h.logger.Debug("value constructed",
			"alias", alias,
			"fixture", fixture,
			"handle", uint64(handle),
			"hash", fmt.Sprintf("%016x", hash),
		)
	}
	return handles, nil
}

func (h *Harness) releaseAll(handles map[string]Handle) error {
	var errs []error
	for alias, handle := range handles {
		if err := h.surface.Release(handle); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", alias, err))
		}
	}
	return errors.Join(errs...)
}

func (h *Harness) runCheck(ctx context.Context, handles map[string]Handle, c Check) error {
	switch c.Type {
	case CheckEqual:
		return assertEqual(h.surface, handles, c)
	case CheckNotEqual:
		return assertNotEqual(h.surface, handles, c)
	case CheckHashEqual:
		return assertHashEqual(h.surface, handles, c)
	case CheckHashStable:
		return assertHashStable(h.surface, handles, c)
	case CheckSetCount:
		return h.assertSetCount(handles, c)
	case CheckConcurrent:
		return h.assertConcurrent(ctx, handles, c)
	}
	return fmt.Errorf("unknown check type %q", c.Type)
}

// assertSetCount inserts the values into a value set and compares its size.
func (h *Harness) assertSetCount(handles map[string]Handle, c Check) error {
	var sinkErr error
	set := valueset.New[surfaceValue]()
	for _, alias := range c.Values {
		set.Insert(surfaceValue{surface: h.surface, handle: handles[alias], sink: &sinkErr})
	}
	if sinkErr != nil {
		return fmt.Errorf("%s: %w", c.Name(), sinkErr)
	}
	if set.Len() != c.Count {
		return &AssertionError{
			Phase:    PhaseHashSet,
			Relation: c.Name(),
			Expected: fmt.Sprintf("%d distinct elements", c.Count),
			Actual:   fmt.Sprintf("%d distinct elements", set.Len()),
		}
	}
	return nil
}

type pair struct{ left, right string }

// assertConcurrent records a sequential baseline of every pairwise equals and
// every hash, then replays the calls from many goroutines and requires the
// same answers.
func (h *Harness) assertConcurrent(ctx context.Context, handles map[string]Handle, c Check) error {
	workers := c.Workers
	if workers == 0 {
		workers = defaultWorkers
	}
	iterations := c.Iterations
	if iterations == 0 {
		iterations = defaultIterations
	}

	aliases := make([]string, 0, len(handles))
	for alias := range handles {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)

	hashes := make(map[string]uint64, len(aliases))
	equals := make(map[pair]bool, len(aliases)*len(aliases))
	var pairs []pair
	for _, l := range aliases {
		hv, err := h.surface.Hash(handles[l])
		if err != nil {
			return fmt.Errorf("%s: baseline: %w", c.Name(), err)
		}
		hashes[l] = hv
		for _, r := range aliases {
			eq, err := h.surface.Equals(handles[l], handles[r])
			if err != nil {
				return fmt.Errorf("%s: baseline: %w", c.Name(), err)
			}
			p := pair{l, r}
			equals[p] = eq
			pairs = append(pairs, p)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for i := range iterations {
				if err := ctx.Err(); err != nil {
					return err
				}
				p := pairs[(w*iterations+i)%len(pairs)]

				eq, err := h.surface.Equals(handles[p.left], handles[p.right])
				if err != nil {
					return err
				}
				if eq != equals[p] {
					return &AssertionError{
						Phase:    PhaseHashSet,
						Relation: fmt.Sprintf("%s: equal(%s, %s)", c.Name(), p.left, p.right),
						Expected: fmt.Sprintf("equals = %t", equals[p]),
						Actual:   fmt.Sprintf("equals = %t on worker %d", eq, w),
					}
				}

				hv, err := h.surface.Hash(handles[p.left])
				if err != nil {
					return err
				}
				if hv != hashes[p.left] {
					return &AssertionError{
						Phase:    PhaseHashSet,
						Relation: fmt.Sprintf("%s: hash(%s)", c.Name(), p.left),
						Expected: fmt.Sprintf("0x%016x", hashes[p.left]),
						Actual:   fmt.Sprintf("0x%016x on worker %d", hv, w),
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
