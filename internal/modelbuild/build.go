package modelbuild

import (
	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/cpmodel"
	"github.com/careerdesk/staffsched/internal/domain"
)

// Result bundles the declared Model with the Index the Objective Composer
// and Solver Driver need to translate (e,d,t,r) grid cells to VarRefs.
type Result struct {
	Model *cpmodel.Model
	Index *Index
}

// Build declares every decision variable and emits every hard constraint
// against a validated, precomputed input bundle. Variable declaration
// happens in one deterministic pass over Normalized.Employees (insertion
// order) and Index.Roles (display order, FD last) — never a map iteration
// — so two Build calls over the same inputs produce identical variable
// orderings.
func Build(n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) *Result {
	m := cpmodel.New()
	idx := newIndex(n)
	idx.recordForcing(n)
	idx.declareVars(n, cfg, m)

	addTimesetForcing(idx, m)
	addAvailability(idx, m)
	addRoleExclusivity(idx, m)
	addAssignImpliesWork(idx, m)
	addDeptRequiresFD(idx, n, m)
	addShiftContiguity(idx, m)
	addShiftLengthBounds(idx, n, cfg, m)
	addWeeklyHourLimits(idx, cfg, m)
	addTargetWindow(idx, n, p, cfg, m)
	addFDExclusivity(idx, m)
	addFDContiguity(idx, m)
	addFDMinLength(idx, m)
	addRoleContiguity(idx, n, cfg, m)
	addCrossDeptSplit(idx, cfg, m)
	addDepartmentMaximum(idx, n, m)

	return &Result{Model: m, Index: idx}
}
