package edit

import (
	"github.com/Sumatoshi-tech/modelfang/pkg/model"
	"github.com/Sumatoshi-tech/modelfang/pkg/pattern"
)

// MergeOp is one upsert operation in a modification plan.
type MergeOp struct {
	Fragment     *model.Model
	TargetScope  string
	CreateScope  bool
	ReplaceScope bool
}

// Plan is an ordered modification plan: delete patterns applied first, then
// merge operations in the order they were added.
type Plan struct {
	compiler *pattern.Compiler
	deletes  []pattern.Pattern
	merges   []MergeOp
}

// ApplyStats aggregates what a plan did.
type ApplyStats struct {
	Deleted  int
	Added    int
	Replaced int
}

// NewPlan creates an empty plan.
func NewPlan() (*Plan, error) {
	compiler, err := pattern.NewCompiler()
	if err != nil {
		return nil, err
	}

	return &Plan{compiler: compiler}, nil
}

// AddDelete parses and records a delete pattern. Malformed syntax is
// rejected here, before any model is touched.
func (p *Plan) AddDelete(text string) error {
	parsed, err := p.compiler.Compile(text)
	if err != nil {
		return err
	}

	p.deletes = append(p.deletes, parsed)

	return nil
}

// AddMerge records a merge operation.
func (p *Plan) AddMerge(op MergeOp) {
	p.merges = append(p.merges, op)
}

// Deletes returns the parsed delete patterns in plan order.
func (p *Plan) Deletes() []pattern.Pattern {
	return p.deletes
}

// Merges returns the merge operations in plan order.
func (p *Plan) Merges() []MergeOp {
	return p.merges
}

// CacheStats reports the pattern compiler's cache hits and misses.
func (p *Plan) CacheStats() (hits, misses int64) {
	return p.compiler.CacheStats()
}

// Apply folds the plan into base: one deletion pass over all patterns, then
// each merge in order. Each stage consumes the previous stage's output; base
// itself is never mutated. A failing merge aborts the plan and returns the
// error with nothing partially applied to the caller's model.
func (p *Plan) Apply(base *model.Model) (*model.Model, ApplyStats, error) {
	stats := ApplyStats{}

	current, deleted := CloneWithDeletions(base, p.deletes)
	stats.Deleted = deleted

	for _, op := range p.merges {
		next, mergeStats, err := MergeFragment(current, op.Fragment, op.TargetScope, MergeOptions{
			CreateScope:  op.CreateScope,
			ReplaceScope: op.ReplaceScope,
		})
		if err != nil {
			return nil, ApplyStats{}, err
		}

		current = next
		stats.Added += mergeStats.Added
		stats.Replaced += mergeStats.Replaced
	}

	return current, stats, nil
}
