package conformance

// CheckResult records one executed check.
type CheckResult struct {
	Phase string `json:"phase"`
	Check string `json:"check"`
	Pass  bool   `json:"pass"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true if every check held.
	Pass bool `json:"pass"`

	// Hashes maps each value alias to the hash observed during construction.
	Hashes map[string]uint64 `json:"hashes,omitempty"`

	// Checks lists the executed checks in order. A failed run ends with the
	// failing check.
	Checks []CheckResult `json:"checks"`

	// Failure is set when a relation did not hold.
	Failure *AssertionError `json:"-"`

	// Errors holds human-readable failure messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{
		Scenario: name,
		Pass:     true,
		Hashes:   make(map[string]uint64),
		Checks:   []CheckResult{},
	}
}

func (r *Result) record(c Check, pass bool) {
	r.Checks = append(r.Checks, CheckResult{
		Phase: c.Phase().String(),
		Check: c.Name(),
		Pass:  pass,
	})
}

func (r *Result) fail(err *AssertionError) {
	r.Pass = false
	r.Failure = err
	r.Errors = append(r.Errors, err.Error())
}
