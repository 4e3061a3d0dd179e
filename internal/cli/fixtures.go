package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/walletkit/internal/conformance"
	"github.com/roach88/walletkit/internal/ffi"
)

// FixtureNames lists the fixtures in output order.
var FixtureNames = []string{conformance.FixturePlaceholder, conformance.FixturePlaceholderOther}

// selectFixtures returns args, or every fixture when args is empty.
func selectFixtures(args []string) ([]string, error) {
	if len(args) == 0 {
		return FixtureNames, nil
	}
	for _, name := range args {
		if !slices.Contains(FixtureNames, name) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown fixture %q: must be one of %v", name, FixtureNames))
		}
	}
	return args, nil
}

// FixtureJSON is one fixture's canonical wire form.
type FixtureJSON struct {
	Name string `json:"name"`
	JSON string `json:"json"`
}

// NewFixturesCommand creates the fixtures command.
func NewFixturesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures [placeholder|placeholder_other...]",
		Short: "Print fixture collections as canonical JSON",
		Long: `Print the deterministic fixture collections as canonical JSON.

Each fixture is constructed through the FFI handle registry and exported
with the same call a copying binding would use. With a single name the JSON
is printed alone; otherwise each line is prefixed with the fixture name.

Examples:
  walletkit fixtures
  walletkit fixtures placeholder
  walletkit fixtures --format json`,
		Args:          cobra.MaximumNArgs(len(FixtureNames)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(rootOpts, cmd, args)
		},
	}
}

func runFixtures(opts *RootOptions, cmd *cobra.Command, args []string) error {
	out := opts.formatter(cmd)

	names, err := selectFixtures(args)
	if err != nil {
		_ = out.Error(ErrCodeUnknownFixture, err.Error(), nil)
		return err
	}

	reg := ffi.NewRegistry(ffi.WithLogger(opts.logger()))
	surface := conformance.NewRegistrySurface(reg)

	fixtures := make([]FixtureJSON, 0, len(names))
	for _, name := range names {
		h, err := surface.Construct(name)
		if err != nil {
			return WrapExitError(ExitCommandError, "construct fixture", err)
		}
		data, err := reg.ToJSON(ffi.Handle(h))
		if rerr := surface.Release(h); rerr != nil && err == nil {
			err = rerr
		}
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("export %s", name), err)
		}
		fixtures = append(fixtures, FixtureJSON{Name: name, JSON: string(data)})
	}

	if out.JSON() {
		return out.Success(fixtures)
	}

	w := cmd.OutOrStdout()
	for _, f := range fixtures {
		if len(fixtures) == 1 {
			fmt.Fprintln(w, f.JSON)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", f.Name, f.JSON)
	}
	return nil
}
