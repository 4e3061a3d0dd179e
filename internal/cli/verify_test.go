package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const failingScenario = `
name: wrong_distinct_count
values:
  a: placeholder
  b: placeholder_other
checks:
  - type: not_equal
    left: a
    right: b
  - type: set_count
    values: [a, b, b, a]
    count: 1
`

const passingScenario = `
name: reflexive
values:
  a: placeholder
checks:
  - type: equal
    left: a
    right: a
`

func TestVerify_Default(t *testing.T) {
	stdout, _, code := execute(t, "verify")
	require.Equal(t, ExitSuccess, code, stdout)
	newGoldie(t).Assert(t, "verify_default", []byte(stdout))
}

func TestVerify_ScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	pass := writeScenario(t, dir, "pass.yaml", passingScenario)
	fail := writeScenario(t, dir, "fail.yaml", failingScenario)

	stdout, _, code := execute(t, "verify", pass, fail)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "✓ reflexive (1 checks)")
	assert.Contains(t, stdout, "✗ wrong_distinct_count")
	assert.Contains(t, stdout, "assertion failed in hash_set phase: set_count([a b b a]) == 1")
	assert.Contains(t, stdout, "Actual: 2 distinct elements")
	assert.Contains(t, stdout, "Verify Summary: 1 passed, 1 failed, 2 total")
	assert.NotContains(t, stdout, "All scenarios passed")
}

func TestVerify_JSON(t *testing.T) {
	fail := writeScenario(t, t.TempDir(), "fail.yaml", failingScenario)

	stdout, _, code := execute(t, "verify", fail, "--format", "json")
	assert.Equal(t, ExitFailure, code)

	var resp struct {
		Status string       `json:"status"`
		RunID  string       `json:"run_id"`
		Data   VerifyResult `json:"data"`
		Error  *CLIError    `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	_, err := uuid.Parse(resp.RunID)
	assert.NoError(t, err, "run_id is a uuid")
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeVerifyFailed, resp.Error.Code)

	require.Len(t, resp.Data.Scenarios, 1)
	sr := resp.Data.Scenarios[0]
	assert.False(t, sr.Pass)
	assert.Equal(t, 2, sr.Checks, "not_equal passed, set_count failed")
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestVerify_Metrics(t *testing.T) {
	stdout, _, code := execute(t, "verify", "--metrics", "--format", "json")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Data VerifyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	m := resp.Data.Metrics
	assert.Equal(t, float64(0), m["walletkit_ffi_live_handles"])
	assert.Equal(t, float64(4), m[`walletkit_ffi_calls_total{op="construct"}`])
	assert.Equal(t, float64(4), m[`walletkit_ffi_calls_total{op="release"}`])
	assert.Greater(t, m[`walletkit_ffi_calls_total{op="equals"}`], float64(0))
	assert.Equal(t, float64(0), m["walletkit_ffi_invalid_handle_total"])
}

func TestVerify_MetricsText(t *testing.T) {
	stdout, _, code := execute(t, "verify", "--metrics")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `walletkit_ffi_calls_total{op="construct"} 4`)
	assert.Contains(t, stdout, "walletkit_ffi_live_handles 0")
}

func TestVerify_MissingFile(t *testing.T) {
	stdout, _, code := execute(t, "verify", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stdout, "Error [E002]")
}

func TestVerify_InvalidScenario(t *testing.T) {
	bad := writeScenario(t, t.TempDir(), "bad.yaml", "name: x\nvalues: {a: sample}\nchecks: [{type: hash_stable, value: a}]\n")

	_, _, code := execute(t, "verify", bad)
	assert.Equal(t, ExitCommandError, code)
}

func TestVerify_LogsCarryRunID(t *testing.T) {
	_, stderr, code := execute(t, "verify", "--log-level", "info")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "verify finished")
	assert.Contains(t, stderr, "run_id=")
}

func TestVerify_VerboseListsPassedChecks(t *testing.T) {
	stdout, stderr, code := execute(t, "verify", "-v", "--format", "json")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "factor_sources_value_semantics: equality equal(a, a2) ok")
	assert.Contains(t, stderr, "factor_sources_value_semantics: hash_set set_count([a b b a]) == 2 ok")
	assert.NotContains(t, stdout, "equal(a, a2) ok", "verbose lines stay off stdout")

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout is still a single JSON envelope")
}

func TestVerify_QuietOmitsPassedChecks(t *testing.T) {
	_, stderr, code := execute(t, "verify")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stderr, "equal(a, a2) ok")
}

func TestVerify_VerboseSkipsFailedCheck(t *testing.T) {
	fail := writeScenario(t, t.TempDir(), "fail.yaml", failingScenario)

	_, stderr, code := execute(t, "verify", fail, "-v")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "wrong_distinct_count: equality not_equal(a, b) ok")
	assert.NotContains(t, stderr, "set_count([a b b a]) == 1 ok")
}
