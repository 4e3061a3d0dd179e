package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/walletkit/internal/conformance"
	"github.com/roach88/walletkit/internal/ffi"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Metrics bool // include registry metrics in the report
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Checks int      `json:"checks"`
	Errors []string `json:"errors,omitempty"`
}

// VerifyResult holds the overall verify result.
type VerifyResult struct {
	Scenarios []ScenarioResult   `json:"scenarios"`
	Passed    int                `json:"passed"`
	Failed    int                `json:"failed"`
	Total     int                `json:"total"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [scenario.yaml...]",
		Short: "Run the value-semantics conformance harness",
		Long: `Run conformance scenarios against the FFI handle registry.

Each scenario constructs its values through the registry, checks the
equality relations, then the hash relations, and stops at the first
relation that does not hold. Without arguments the built-in scenario runs.
A scenario that leaves handles alive fails.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (unreadable or invalid scenario file)

Examples:
  walletkit verify
  walletkit verify ./scenarios/*.yaml --format json
  walletkit verify --metrics -v`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "report registry call counts and live handles")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command, paths []string) error {
	out := opts.formatter(cmd)

	scenarios, err := loadScenarios(paths)
	if err != nil {
		_ = out.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load scenarios", err)
	}

	runID := uuid.NewString()
	logger := opts.logger().With("run_id", runID)

	promReg := prometheus.NewRegistry()
	reg := ffi.NewRegistry(
		ffi.WithLogger(logger),
		ffi.WithMetrics(ffi.NewMetrics(promReg)),
	)
	harness := conformance.New(conformance.NewRegistrySurface(reg), conformance.WithLogger(logger))

	result := VerifyResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarios)),
		Total:     len(scenarios),
	}
	for _, s := range scenarios {
		sr := verifyScenario(cmd, out, harness, reg, s)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		if !out.JSON() {
			printScenarioText(cmd, sr)
		}
	}

	if opts.Metrics {
		result.Metrics, err = gatherMetrics(promReg)
		if err != nil {
			return WrapExitError(ExitCommandError, "gather metrics", err)
		}
	}

	logger.Info("verify finished", "passed", result.Passed, "failed", result.Failed)

	if out.JSON() {
		resp := CLIResponse{Status: "ok", Data: result, RunID: runID}
		if result.Failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeVerifyFailed,
				Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
			}
		}
		if err := out.encode(resp); err != nil {
			return err
		}
	} else {
		printSummaryText(cmd, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

func loadScenarios(paths []string) ([]*conformance.Scenario, error) {
	if len(paths) == 0 {
		return []*conformance.Scenario{conformance.DefaultScenario()}, nil
	}
	scenarios := make([]*conformance.Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := conformance.LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func verifyScenario(cmd *cobra.Command, out *OutputFormatter, h *conformance.Harness, reg *ffi.Registry, s *conformance.Scenario) ScenarioResult {
	sr := ScenarioResult{Name: s.Name}

	result, err := h.Run(cmd.Context(), s)
	if err != nil {
		sr.Errors = append(sr.Errors, fmt.Sprintf("execution failed: %v", err))
		return sr
	}
	sr.Checks = len(result.Checks)
	for _, c := range result.Checks {
		if c.Pass {
			out.VerboseLog("%s: %s %s ok", s.Name, c.Phase, c.Check)
		}
	}
	sr.Errors = append(sr.Errors, result.Errors...)

	if live := reg.Live(); live != 0 {
		sr.Errors = append(sr.Errors, fmt.Sprintf("%d handle(s) still live after run", live))
	}
	sr.Pass = result.Pass && len(sr.Errors) == 0
	return sr
}

func printScenarioText(cmd *cobra.Command, sr ScenarioResult) {
	w := cmd.OutOrStdout()
	if sr.Pass {
		fmt.Fprintf(w, "✓ %s (%d checks)\n", sr.Name, sr.Checks)
		return
	}
	fmt.Fprintf(w, "✗ %s\n", sr.Name)
	for _, e := range sr.Errors {
		for _, line := range strings.Split(e, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func printSummaryText(cmd *cobra.Command, result VerifyResult) {
	w := cmd.OutOrStdout()

	if len(result.Metrics) > 0 {
		fmt.Fprintln(w)
		keys := make([]string, 0, len(result.Metrics))
		for k := range result.Metrics {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s %s\n", k, strconv.FormatFloat(result.Metrics[k], 'f', -1, 64))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Verify Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.Failed == 0 {
		fmt.Fprintln(w, "✓ All scenarios passed")
	}
}

// gatherMetrics flattens the registry into "name{label=\"value\"}" keys.
func gatherMetrics(reg *prometheus.Registry) (map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				parts := make([]string, 0, len(labels))
				for _, l := range labels {
					parts = append(parts, l.GetName()+"="+strconv.Quote(l.GetValue()))
				}
				key += "{" + strings.Join(parts, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}
