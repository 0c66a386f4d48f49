// Package testutil provides shared test helpers for evalml tests.
package testutil

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScenariosDir is the relative path from the module root to the scenarios.
const ScenariosDir = "testdata/scenarios"

// ScenarioFile is the file name describing a scenario.
const ScenarioFile = "scenario.yaml"

// Scenario represents a test scenario loaded from a scenario.yaml file.
type Scenario struct {
	Cmd    []string       `yaml:"cmd"`
	Stdin  string         `yaml:"stdin,omitempty"`
	Config string         `yaml:"config,omitempty"`
	Meta   *ScenarioMeta  `yaml:"meta,omitempty"`
	Expect ExpectedResult `yaml:"expect"`
}

// ScenarioMeta holds optional scenario metadata.
type ScenarioMeta struct {
	Tags []string `yaml:"tags,omitempty"`
}

// ExpectedResult describes the expected outcome of running a scenario.
type ExpectedResult struct {
	ExitCode       int    `yaml:"exitCode"`
	StdoutText     string `yaml:"stdoutText,omitempty"`
	StdoutContains string `yaml:"stdoutContains,omitempty"`
	StderrContains string `yaml:"stderrContains,omitempty"`
	// StdoutJSONSubset is a JSON document that must be a subset of stdout.
	StdoutJSONSubset string `yaml:"stdoutJsonSubset,omitempty"`
	Rule           string `yaml:"rule,omitempty"`
	Value          string `yaml:"value,omitempty"`
}

// LoadScenario loads a scenario from a directory containing scenario.yaml.
func LoadScenario(dir string) (*Scenario, error) {
	data, err := os.ReadFile(filepath.Join(dir, ScenarioFile))
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListScenarios returns all scenario directories under the given root.
func ListScenarios(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			scenarioPath := filepath.Join(root, e.Name(), ScenarioFile)
			if _, err := os.Stat(scenarioPath); err == nil {
				dirs = append(dirs, filepath.Join(root, e.Name()))
			}
		}
	}
	return dirs, nil
}

// ResolveArgs rewrites the input-file argument of cmd (the first argument
// after the command that is not a flag or flag value) to a path inside
// scenarioDir.
func ResolveArgs(scenarioDir string, cmd []string) []string {
	out := append([]string(nil), cmd...)
	for i := 1; i < len(out); i++ {
		arg := out[i]
		if arg == "-e" || arg == "--format" || arg == "--indent" || arg == "--turnstile" ||
			arg == "--parens" || arg == "--lang" || arg == "--max-depth" {
			i++
			continue
		}
		if arg == "-" || len(arg) > 0 && arg[0] == '-' {
			continue
		}
		out[i] = filepath.Join(scenarioDir, arg)
		break
	}
	return out
}
