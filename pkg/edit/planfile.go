package edit

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/modelfang/pkg/pattern"
)

// Sentinel errors for plan file validation.
var (
	errMergeMissingScope    = errors.New("merge operation is missing a target scope")
	errMergeMissingFragment = errors.New("merge operation is missing a fragment path")
)

// PlanFile is the on-disk YAML form of a modification plan. Fragment models
// are referenced by path; the caller resolves them to parsed models before
// building a Plan.
type PlanFile struct {
	Deletes []string      `yaml:"deletes"`
	Merges  []MergeFileOp `yaml:"merges"`
}

// MergeFileOp is one merge entry in a plan file.
type MergeFileOp struct {
	Fragment     string `yaml:"fragment"`
	Scope        string `yaml:"scope"`
	CreateScope  bool   `yaml:"create_scope"`
	ReplaceScope bool   `yaml:"replace_scope"`
}

// LoadPlanFile reads and validates a YAML plan file. Every delete pattern is
// parsed so syntax errors surface before any model or fragment is loaded.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var plan PlanFile

	unmarshalErr := yaml.Unmarshal(data, &plan)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("parse plan file %s: %w", path, unmarshalErr)
	}

	validateErr := plan.validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid plan file %s: %w", path, validateErr)
	}

	return &plan, nil
}

func (pf *PlanFile) validate() error {
	for _, text := range pf.Deletes {
		if _, err := pattern.Parse(text); err != nil {
			return fmt.Errorf("delete pattern %q: %w", text, err)
		}
	}

	for idx, op := range pf.Merges {
		if op.Scope == "" {
			return fmt.Errorf("merge %d: %w", idx, errMergeMissingScope)
		}

		if op.Fragment == "" {
			return fmt.Errorf("merge %d: %w", idx, errMergeMissingFragment)
		}
	}

	return nil
}
