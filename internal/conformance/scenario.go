package conformance

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/value_semantics.yaml
var defaultScenarioYAML []byte

// Scenario is a conformance run: named values to construct and the checks to
// run against them.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Values maps an alias to the fixture it is constructed from. Two aliases
	// of the same fixture are independent constructions.
	Values map[string]string `yaml:"values"`

	// Checks run in phase order: equality first, then hashing.
	Checks []Check `yaml:"checks"`
}

// Check is a single relation to verify.
type Check struct {
	// Type selects the relation. See the Check* constants.
	Type string `yaml:"type"`

	// Left and Right are value aliases (equal, not_equal, hash_equal).
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`

	// Value is the alias to hash (hash_stable).
	Value string `yaml:"value,omitempty"`

	// Repeat is how many times to hash (hash_stable). Defaults to 2.
	Repeat int `yaml:"repeat,omitempty"`

	// Values are inserted into a value set in order (set_count).
	Values []string `yaml:"values,omitempty"`

	// Count is the expected set size (set_count).
	Count int `yaml:"count,omitempty"`

	// Workers and Iterations size the fan-out (concurrent). Default 8 and 32.
	Workers    int `yaml:"workers,omitempty"`
	Iterations int `yaml:"iterations,omitempty"`
}

// Check type constants.
const (
	CheckEqual      = "equal"
	CheckNotEqual   = "not_equal"
	CheckHashEqual  = "hash_equal"
	CheckHashStable = "hash_stable"
	CheckSetCount   = "set_count"
	CheckConcurrent = "concurrent"
)

// Phase is a check-running step of the harness. Construction comes before
// the phases and reporting after them.
type Phase int

const (
	PhaseEquality Phase = iota + 1
	PhaseHashSet
)

// phases lists the check phases in execution order.
var phases = []Phase{PhaseEquality, PhaseHashSet}

func (p Phase) String() string {
	switch p {
	case PhaseEquality:
		return "equality"
	case PhaseHashSet:
		return "hash_set"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Phase returns the phase a check runs in.
func (c Check) Phase() Phase {
	switch c.Type {
	case CheckEqual, CheckNotEqual:
		return PhaseEquality
	default:
		return PhaseHashSet
	}
}

// Name renders the check as a relation, e.g. "equal(a, a2)".
func (c Check) Name() string {
	switch c.Type {
	case CheckEqual, CheckNotEqual, CheckHashEqual:
		return fmt.Sprintf("%s(%s, %s)", c.Type, c.Left, c.Right)
	case CheckHashStable:
		return fmt.Sprintf("%s(%s)", c.Type, c.Value)
	case CheckSetCount:
		return fmt.Sprintf("%s(%v) == %d", c.Type, c.Values, c.Count)
	}
	return c.Type
}

// DefaultScenario returns the built-in scenario covering reflexivity,
// distinctness, repeatability, hash consistency, set de-duplication and
// concurrent use.
func DefaultScenario() *Scenario {
	s, err := ParseScenario(defaultScenarioYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded scenario is invalid: %v", err))
	}
	return s
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Unknown fields are rejected to catch
// typos like "check:" for "checks:".
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

var knownFixtures = []string{FixturePlaceholder, FixturePlaceholderOther}

// validateScenario checks required fields and alias references.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(s.Values) == 0 {
		return fmt.Errorf("values map is required and must be non-empty")
	}

	for alias, fixture := range s.Values {
		if !slices.Contains(knownFixtures, fixture) {
			return fmt.Errorf("values[%s]: unknown fixture %q (valid: %v)", alias, fixture, knownFixtures)
		}
	}

	if len(s.Checks) == 0 {
		return fmt.Errorf("checks list is required and must be non-empty")
	}

	for i, c := range s.Checks {
		if err := validateCheck(s, c); err != nil {
			return fmt.Errorf("checks[%d]: %w", i, err)
		}
	}

	return nil
}

func validateCheck(s *Scenario, c Check) error {
	ref := func(field, alias string) error {
		if alias == "" {
			return fmt.Errorf("%s: %s is required", c.Type, field)
		}
		if _, ok := s.Values[alias]; !ok {
			return fmt.Errorf("%s: %s references unknown value %q", c.Type, field, alias)
		}
		return nil
	}

	switch c.Type {
	case CheckEqual, CheckNotEqual, CheckHashEqual:
		if err := ref("left", c.Left); err != nil {
			return err
		}
		return ref("right", c.Right)

	case CheckHashStable:
		if c.Repeat < 0 {
			return fmt.Errorf("hash_stable: repeat must be positive")
		}
		return ref("value", c.Value)

	case CheckSetCount:
		if len(c.Values) == 0 {
			return fmt.Errorf("set_count: values is required")
		}
		for _, alias := range c.Values {
			if err := ref("values", alias); err != nil {
				return err
			}
		}
		if c.Count < 1 || c.Count > len(c.Values) {
			return fmt.Errorf("set_count: count %d out of range [1, %d]", c.Count, len(c.Values))
		}
		return nil

	case CheckConcurrent:
		if c.Workers < 0 || c.Iterations < 0 {
			return fmt.Errorf("concurrent: workers and iterations must be positive")
		}
		return nil

	case "":
		return fmt.Errorf("type is required")
	}

	return fmt.Errorf("unknown check type %q", c.Type)
}
