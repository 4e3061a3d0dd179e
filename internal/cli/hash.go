package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/walletkit/internal/conformance"
	"github.com/roach88/walletkit/internal/ffi"
)

// FixtureHash is the hash and full digest of one fixture.
type FixtureHash struct {
	Name   string `json:"name"`
	Hash   string `json:"hash"`
	Digest string `json:"digest"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [placeholder|placeholder_other...]",
		Short: "Print fixture hashes",
		Long: `Print the 64-bit hash and the full SHA-256 digest of each fixture.

Hashes are deterministic across processes, so the output is stable and can be
compared against values recorded by a foreign binding.

Examples:
  walletkit hash
  walletkit hash placeholder_other --format json`,
		Args:          cobra.MaximumNArgs(len(FixtureNames)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(rootOpts, cmd, args)
		},
	}
}

func runHash(opts *RootOptions, cmd *cobra.Command, args []string) error {
	out := opts.formatter(cmd)

	names, err := selectFixtures(args)
	if err != nil {
		_ = out.Error(ErrCodeUnknownFixture, err.Error(), nil)
		return err
	}

	reg := ffi.NewRegistry(ffi.WithLogger(opts.logger()))
	surface := conformance.NewRegistrySurface(reg)

	hashes := make([]FixtureHash, 0, len(names))
	for _, name := range names {
		h, err := surface.Construct(name)
		if err != nil {
			return WrapExitError(ExitCommandError, "construct fixture", err)
		}

		hash, err := surface.Hash(h)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("hash %s", name), err)
		}
		v, err := reg.Get(ffi.Handle(h))
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("hash %s", name), err)
		}
		if err := surface.Release(h); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("release %s", name), err)
		}

		hashes = append(hashes, FixtureHash{
			Name:   name,
			Hash:   fmt.Sprintf("0x%016x", hash),
			Digest: v.Digest().Hex(),
		})
	}

	if out.JSON() {
		return out.Success(hashes)
	}

	w := cmd.OutOrStdout()
	for _, h := range hashes {
		fmt.Fprintf(w, "%-17s hash=%s digest=%s\n", h.Name, h.Hash, h.Digest)
	}
	return nil
}
