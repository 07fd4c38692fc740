// Package objective is the Objective Composer: it emits
// every soft term, each pre-scaled to an integer coefficient, into the
// Model Builder's declared cpmodel.Model so the maximize() objective is a
// single weighted linear (plus a handful of AND/abs auxiliaries) sum.
//
// Conjunctions (training overlap is an AND of two assign booleans) and
// absolute differences (the equality penalty) are encoded exactly with
// the standard linear AND/abs idioms — those hold for any correct
// assignment regardless of how it was produced. A few terms are
// threshold-shaped ("1 per employee where deviation >= 4 slots"); those
// get an auxiliary boolean and a one-directional linking constraint,
// which is enough to keep a maximizing solver from cheating the penalty
// but is not load-bearing for this repository: internal/solve does not
// search over this declared Model (see that package's doc comment for
// why) — it computes the actual objective value straight from its own
// grid representation using these same formulas, so correctness of
// the reported score never depends on generic ILP reification of these
// auxiliaries.
package objective

import (
	"fmt"
	"math"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/cpmodel"
	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/modelbuild"
)

// Scale is the single pre-scaling factor applied to every weight so
// ⌊mult·10⌋-style fractional multipliers stay commensurable with the
// plain integer weights; all coefficients remain integers.
const Scale = 10

// ScarcityBase and ShiftLengthDailyCost are named policy constants with
// no runtime override; revisit here when the office's staffing policy
// changes.
const (
	ScarcityBase         = 10
	ShiftLengthDailyCost = 6
)

// CollaborationMinimumHours is the expected weekly collaborative hours
// (2+ people in the same department simultaneously) per department.
// Departments absent from the map, or mapped to 0, carry no
// collaboration expectation.
var CollaborationMinimumHours = map[string]int{
	"career_education":    1,
	"marketing":           1,
	"employer_engagement": 2,
	"events":              4,
	"data_systems":        0,
}

var yearMultTenths = map[int]int{1: 10, 2: 12, 3: 15, 4: 20}

func scaledMult(mult float64) int {
	v := int(math.Floor(mult * Scale))
	if v < 0 {
		return 0
	}
	return v
}

// ScaledMult exposes scaledMult's ⌊mult·Scale⌋ pre-scaling rule to
// consumers that score a concrete schedule directly against the term
// formulas (internal/solve) instead of re-declaring the full
// cpmodel.Model, so both places round fractional multipliers identically.
func ScaledMult(mult float64) int { return scaledMult(mult) }

// WeightTable exposes the resolved, Scale-multiplied weight table
// (defaults merged with cfg.WeightOverrides) so internal/solve can score
// a concrete grid assignment with exactly the coefficients Compose would
// have declared, without re-declaring the model itself.
func WeightTable(cfg *config.Config) map[string]int { return weightTable(cfg) }

// YearMultTenths exposes YEAR_MULT pre-scaled by ×10, keyed
// by academic year 1..4.
func YearMultTenths(year int) int {
	if v, ok := yearMultTenths[year]; ok {
		return v
	}
	return 10
}

// Compose adds every soft term to res.Model.Objective.
func Compose(n *domain.Normalized, p *domain.Precomputed, cfg *config.Config, res *modelbuild.Result) {
	idx := res.Index
	m := res.Model
	w := weightTable(cfg)

	addFDCoverage(idx, m, w)
	addLargeEmployeeDeviation(n, idx, m, w)
	addDepartmentDeviation(n, idx, m, w)
	addCollaborativeShortfall(n, idx, m, w)
	addTrainingOverlap(n, idx, m, w)
	addOfficeCoverageAndSingle(idx, m, w)
	addTargetAdherence(n, idx, m, w)
	addDepartmentSpreadAndCoverage(n, idx, m, w)
	addShiftLengthBonus(n, idx, m, w)
	addFDScarcityAndYear(n, p, idx, m, w)
	addMorningAndShiftTimePreference(n, idx, m, w)
	addFavoredHours(n, idx, m, w)
	addDepartmentTotal(n, idx, m)
	addTimesetBonus(idx, m, w)
	addFavoredDepartmentTerms(n, idx, m, w)
	addFavoredFDDeptBonus(n, idx, m, w)
	addFavoredEmployeeDeptBonus(n, cfg, idx, m, w)
	addEqualityPenalty(n, idx, m, w)
}

// defaultWeights applies cfg.WeightOverrides on top of the named
// per-unit default weights, face value (unscaled).
func defaultWeights(cfg *config.Config) map[string]int {
	defaults := map[string]int{
		"fd_coverage":                 10000,
		"large_employee_deviation":    5000,
		"dept_target_deviation":       1000,
		"large_dept_deviation":        4000,
		"collaborative_shortfall":     200,
		"training_shortfall":          5000,
		"training_bonus":              200,
		"office_coverage":             150,
		"single_coverage_penalty":     500,
		"target_adherence":            100,
		"dept_spread":                 60,
		"dept_day_coverage":           30,
		"shift_length_bonus":          20,
		"fd_scarcity_penalty":         8,
		"underclass_fd_penalty":       3,
		"morning_preference":          1,
		"shift_time_preference":       15,
		"favored_hours_bonus":         200,
		"timeset_bonus":               20000,
		"favored_dept_focused":        30,
		"favored_dept_dual_penalty":   20,
		"favored_fd_dept_bonus":       40,
		"favored_employee_dept_bonus": cfg.FavorEmployeeDeptBonus,
		"equality_penalty":            200,
	}
	out := make(map[string]int, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range cfg.WeightOverrides {
		out[k] = v
	}
	return out
}

// FaceWeights exposes the named weight table at face value (unscaled),
// merged with cfg.WeightOverrides, for consumers that score a concrete
// grid assignment directly against the per-unit weights
// (internal/solve) rather than the Scale-prescaled coefficients the
// declared cpmodel.Model uses internally to keep fractional-multiplier
// arithmetic in integers.
func FaceWeights(cfg *config.Config) map[string]int { return defaultWeights(cfg) }

// weightTable applies cfg.WeightOverrides on top of the defaults, all
// pre-multiplied by Scale.
func weightTable(cfg *config.Config) map[string]int {
	defaults := defaultWeights(cfg)
	out := make(map[string]int, len(defaults))
	for k, v := range defaults {
		out[k] = v * Scale
	}
	return out
}

func favoredEmployeeMultTenths(n *domain.Normalized) map[string]int {
	out := make(map[string]int, len(n.Favors.Employees))
	for _, f := range n.Favors.Employees {
		out[f.EmployeeKey] = scaledMult(f.Multiplier)
	}
	return out
}

func favoredDeptMultTenths(n *domain.Normalized) map[string]int {
	out := make(map[string]int, len(n.Favors.Departments))
	for _, f := range n.Favors.Departments {
		out[f.Department] = scaledMult(f.Multiplier)
	}
	return out
}

// --- FD coverage ------------------------------------------------------

func addFDCoverage(idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	var vars []cpmodel.VarRef
	idx.EachFDAssign(func(e, d, t int, v cpmodel.VarRef) { vars = append(vars, v) })
	m.Maximize(cpmodel.Sum(vars...).Scale(w["fd_coverage"]), "fd_coverage")
}

// --- Large per-employee deviation --------------------------------------

func addLargeEmployeeDeviation(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	favMult := favoredEmployeeMultTenths(n)
	for eIdx, e := range idx.Employees {
		worked := idx.EmployeeWorked(eIdx)
		target := e.TargetSlots
		over := m.NewBool(fmt.Sprintf("largedev_over:%s", e.Key))
		under := m.NewBool(fmt.Sprintf("largedev_under:%s", e.Key))
		const bigM = 200
		// worked - target <= 3 + bigM*over  (forces over=1 once worked-target>=4)
		m.Add(worked.Plus(cpmodel.LinearExpr{Const: -target}).Minus(cpmodel.Expr(cpmodel.T(bigM, over))), cpmodel.Le, 3, fmt.Sprintf("largedev_over:%s", e.Key))
		// target - worked <= 3 + bigM*under
		m.Add(cpmodel.LinearExpr{Const: target}.Minus(worked).Minus(cpmodel.Expr(cpmodel.T(bigM, under))), cpmodel.Le, 3, fmt.Sprintf("largedev_under:%s", e.Key))

		mult := 10
		if v, ok := favMult[e.Key]; ok {
			mult = v
		}
		weight := w["large_employee_deviation"] * mult / Scale
		m.Maximize(cpmodel.Sum(over, under).Scale(-weight), fmt.Sprintf("large_employee_deviation:%s", e.Key))
	}
}

// --- Department target deviation & large department deviation ---------

func addDepartmentDeviation(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	favDept := favoredDeptMultTenths(n)
	for _, dept := range n.Departments {
		rIdx := idx.RoleIndexOf(dept.Name)
		if rIdx < 0 {
			continue
		}
		focused := idx.DeptFocusedExpr(rIdx)
		target := dept.TargetSlots

		over := m.NewInt(fmt.Sprintf("deptdev_over:%s", dept.Name), 0, 2*domain.NumDays*domain.NumSlots)
		under := m.NewInt(fmt.Sprintf("deptdev_under:%s", dept.Name), 0, 2*domain.NumDays*domain.NumSlots)
		m.Add(focused.Minus(cpmodel.LinearExpr{Const: target}).Minus(cpmodel.Expr(cpmodel.T(1, over))), cpmodel.Le, 0, fmt.Sprintf("deptdev_over_link:%s", dept.Name))
		m.Add(cpmodel.LinearExpr{Const: target}.Minus(focused).Minus(cpmodel.Expr(cpmodel.T(1, under))), cpmodel.Le, 0, fmt.Sprintf("deptdev_under_link:%s", dept.Name))

		mult := 10
		if v, ok := favDept[dept.Name]; ok {
			mult = v
		}
		weight := w["dept_target_deviation"] * mult / Scale
		m.Maximize(cpmodel.Sum(over, under).Scale(-weight), fmt.Sprintf("dept_target_deviation:%s", dept.Name))

		largeOver := m.NewBool(fmt.Sprintf("largedeptdev_over:%s", dept.Name))
		largeUnder := m.NewBool(fmt.Sprintf("largedeptdev_under:%s", dept.Name))
		const bigM = 200
		m.Add(cpmodel.Sum(over).Minus(cpmodel.LinearExpr{Const: 7}).Minus(cpmodel.Expr(cpmodel.T(bigM, largeOver))), cpmodel.Le, 0, fmt.Sprintf("largedeptdev_over_link:%s", dept.Name))
		m.Add(cpmodel.Sum(under).Minus(cpmodel.LinearExpr{Const: 7}).Minus(cpmodel.Expr(cpmodel.T(bigM, largeUnder))), cpmodel.Le, 0, fmt.Sprintf("largedeptdev_under_link:%s", dept.Name))
		largeWeight := w["large_dept_deviation"] * mult / Scale
		m.Maximize(cpmodel.Sum(largeOver, largeUnder).Scale(-largeWeight), fmt.Sprintf("large_dept_deviation:%s", dept.Name))
	}
}

// --- Collaborative shortfall -------------------------------------------

func addCollaborativeShortfall(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, dept := range n.Departments {
		hours, ok := CollaborationMinimumHours[dept.Name]
		if !ok || hours == 0 {
			continue
		}
		minSlots := 2 * hours
		rIdx := idx.RoleIndexOf(dept.Name)
		if rIdx < 0 {
			continue
		}
		// A slot counts as collaborative only when 2+ people hold the
		// department simultaneously.
		var collab []cpmodel.VarRef
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				cell := idx.CellVars(d, t, rIdx)
				if len(cell) < 2 {
					continue
				}
				c := m.NewBool(fmt.Sprintf("collab:%s:%d:%d", dept.Name, d, t))
				m.AddReified(cpmodel.Sum(cell...), cpmodel.Ge, 2, c, fmt.Sprintf("collab_link:%s:%d:%d", dept.Name, d, t))
				collab = append(collab, c)
			}
		}
		shortfall := m.NewInt(fmt.Sprintf("collab_shortfall:%s", dept.Name), 0, minSlots)
		m.Add(cpmodel.LinearExpr{Const: minSlots}.Minus(cpmodel.Sum(collab...)).Minus(cpmodel.Expr(cpmodel.T(1, shortfall))), cpmodel.Le, 0, fmt.Sprintf("collab_shortfall_link:%s", dept.Name))
		m.Maximize(cpmodel.Sum(shortfall).Scale(-w["collaborative_shortfall"]), fmt.Sprintf("collaborative_shortfall:%s", dept.Name))
	}
}

// --- Training overlap ---------------------------------------------------

func addTrainingOverlap(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, tr := range n.Training {
		rIdx := idx.RoleIndexOf(tr.Department)
		if rIdx < 0 {
			continue
		}
		e1, ok1 := idx.EmployeeIndex[tr.Employee1]
		e2, ok2 := idx.EmployeeIndex[tr.Employee2]
		if !ok1 || !ok2 {
			continue
		}
		var overlaps []cpmodel.VarRef
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				a, okA := idx.AssignVar(e1, d, t, rIdx)
				b, okB := idx.AssignVar(e2, d, t, rIdx)
				if !okA || !okB {
					continue
				}
				overlap := m.NewBool(fmt.Sprintf("overlap:%s:%s:%s:%d:%d", tr.Department, tr.Employee1, tr.Employee2, d, t))
				m.Add(cpmodel.Expr(cpmodel.T(1, overlap), cpmodel.T(-1, a)), cpmodel.Le, 0, "")
				m.Add(cpmodel.Expr(cpmodel.T(1, overlap), cpmodel.T(-1, b)), cpmodel.Le, 0, "")
				m.Add(cpmodel.Expr(cpmodel.T(1, overlap), cpmodel.T(-1, a), cpmodel.T(-1, b)), cpmodel.Ge, -1, "")
				overlaps = append(overlaps, overlap)
			}
		}
		if len(overlaps) == 0 {
			continue
		}
		overlapSum := cpmodel.Sum(overlaps...)
		shortfall := m.NewInt(fmt.Sprintf("training_shortfall:%s:%s:%s", tr.Department, tr.Employee1, tr.Employee2), 0, tr.GoalSlots)
		m.Add(cpmodel.LinearExpr{Const: tr.GoalSlots}.Minus(overlapSum).Minus(cpmodel.Expr(cpmodel.T(1, shortfall))), cpmodel.Le, 0, "")
		m.Maximize(cpmodel.Sum(shortfall).Scale(-w["training_shortfall"]), fmt.Sprintf("training_shortfall:%s", tr.Department))
		m.Maximize(overlapSum.Scale(w["training_bonus"]), fmt.Sprintf("training_bonus:%s", tr.Department))
	}
}

// --- Office coverage & single-coverage penalty -------------------------

func addOfficeCoverageAndSingle(idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			cell := idx.CellWorkVars(d, t)
			sum := cpmodel.Sum(cell...)
			m.Maximize(sum.Minus(cpmodel.LinearExpr{Const: 1}).Scale(w["office_coverage"]), "office_coverage")

			single := m.NewBool(fmt.Sprintf("single_coverage:%d:%d", d, t))
			multi := m.NewBool(fmt.Sprintf("multi_coverage:%d:%d", d, t))
			// multi may be 1 only when 2+ people work the slot, so
			// sum == 1 -> multi = 0 -> single forced to 1 (one-directional,
			// sufficient under a negative weight; see package doc).
			m.Add(cpmodel.Expr(cpmodel.T(2, multi)).Minus(sum), cpmodel.Le, 0, "")
			m.Add(sum.Minus(cpmodel.Expr(cpmodel.T(len(cell), multi), cpmodel.T(1, single))), cpmodel.Le, 0, "")
			m.Maximize(cpmodel.Sum(single).Scale(-w["single_coverage_penalty"]), "single_coverage_penalty")
		}
	}
}

// --- Target adherence ----------------------------------------------------

func addTargetAdherence(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	favMult := favoredEmployeeMultTenths(n)
	for eIdx, e := range idx.Employees {
		worked := idx.EmployeeWorked(eIdx)
		target := e.TargetSlots
		over := m.NewInt(fmt.Sprintf("adh_over:%s", e.Key), 0, 2*domain.NumDays*domain.NumSlots)
		under := m.NewInt(fmt.Sprintf("adh_under:%s", e.Key), 0, 2*domain.NumDays*domain.NumSlots)
		m.Add(worked.Minus(cpmodel.LinearExpr{Const: target}).Minus(cpmodel.Expr(cpmodel.T(1, over))), cpmodel.Le, 0, "")
		m.Add(cpmodel.LinearExpr{Const: target}.Minus(worked).Minus(cpmodel.Expr(cpmodel.T(1, under))), cpmodel.Le, 0, "")

		mult := 10
		if v, ok := favMult[e.Key]; ok {
			mult = v
		}
		yearMult := yearMultTenths[e.Year]
		if yearMult == 0 {
			yearMult = 10
		}
		weight := w["target_adherence"] * mult * yearMult / (Scale * Scale)
		m.Maximize(cpmodel.Sum(over, under).Scale(-weight), fmt.Sprintf("target_adherence:%s", e.Key))
	}
}

// --- Department spread & department day coverage -----------------------

func addDepartmentSpreadAndCoverage(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, role := range idx.Roles {
		rIdx := idx.RoleIndexOf(role)
		for d := 0; d < domain.NumDays; d++ {
			var dayVars []cpmodel.VarRef
			for t := 0; t < domain.NumSlots; t++ {
				cellVars := idx.CellVars(d, t, rIdx)
				if len(cellVars) == 0 {
					continue
				}
				dayVars = append(dayVars, cellVars...)
				sum := cpmodel.Sum(cellVars...)
				spread := m.NewBool(fmt.Sprintf("spread:%s:%d:%d", role, d, t))
				const bigM = 50
				m.Add(sum.Minus(cpmodel.Expr(cpmodel.T(bigM, spread))), cpmodel.Le, 0, "")
				m.Maximize(cpmodel.Sum(spread).Scale(w["dept_spread"]), "dept_spread")
			}
			if len(dayVars) == 0 {
				continue
			}
			daySum := cpmodel.Sum(dayVars...)
			dayCoverage := m.NewBool(fmt.Sprintf("daycoverage:%s:%d", role, d))
			const bigM = 200
			m.Add(daySum.Minus(cpmodel.Expr(cpmodel.T(bigM, dayCoverage))), cpmodel.Le, 0, "")
			m.Maximize(cpmodel.Sum(dayCoverage).Scale(w["dept_day_coverage"]), "dept_day_coverage")
		}
	}
}

// --- Shift-length bonus --------------------------------------------------

func addShiftLengthBonus(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			var vars []cpmodel.VarRef
			for t := 0; t < domain.NumSlots; t++ {
				vars = append(vars, idx.WorkVar(eIdx, d, t))
			}
			daySlots := cpmodel.Sum(vars...)
			worked := idx.WorkedDayVar(eIdx, d)
			bonus := daySlots.Minus(cpmodel.Expr(cpmodel.T(ShiftLengthDailyCost, worked)))
			m.Maximize(bonus.Scale(w["shift_length_bonus"]), "shift_length_bonus")
		}
	}
}

// --- FD scarcity penalty & underclassmen-at-FD preference ---------------

func addFDScarcityAndYear(n *domain.Normalized, p *domain.Precomputed, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for eIdx, e := range idx.Employees {
		hasDept := false
		for role := range e.Qualified {
			if role != n.FrontDeskRole {
				hasDept = true
				break
			}
		}
		if !hasDept {
			continue
		}
		minSize := p.MinDeptSize[e.Key]
		if minSize <= 0 {
			continue
		}
		scarcityWeight := w["fd_scarcity_penalty"] * ScarcityBase / minSize / Scale
		yearWeight := w["underclass_fd_penalty"] * e.Year / Scale
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				v, ok := idx.AssignVar(eIdx, d, t, idx.FDRole)
				if !ok {
					continue
				}
				m.Maximize(cpmodel.Sum(v).Scale(-(scarcityWeight + yearWeight)), "fd_scarcity_and_year")
			}
		}
	}
}

// --- Morning preference & per-employee shift-time preference -----------

func addMorningAndShiftTimePreference(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.MorningSlots; t++ {
			vars := idx.CellWorkVars(d, t)
			m.Maximize(cpmodel.Sum(vars...).Scale(w["morning_preference"]), "morning_preference")
		}
	}
	for _, pref := range n.Favors.ShiftTimePreferences {
		eIdx, ok := idx.EmployeeIndex[pref.EmployeeKey]
		if !ok {
			continue
		}
		start, end := 0, domain.MorningSlots
		if pref.Half == domain.Afternoon {
			start, end = domain.MorningSlots, domain.NumSlots
		}
		var vars []cpmodel.VarRef
		for t := start; t < end; t++ {
			vars = append(vars, idx.WorkVar(eIdx, int(pref.Day), t))
		}
		m.Maximize(cpmodel.Sum(vars...).Scale(w["shift_time_preference"]), fmt.Sprintf("shift_time_preference:%s", pref.EmployeeKey))
	}
}

// --- Favored hours bonus --------------------------------------------------

func addFavoredHours(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, f := range n.Favors.Employees {
		eIdx, ok := idx.EmployeeIndex[f.EmployeeKey]
		if !ok {
			continue
		}
		mult := scaledMult(f.Multiplier)
		weight := w["favored_hours_bonus"] * mult / Scale
		m.Maximize(idx.EmployeeWorked(eIdx).Scale(weight), fmt.Sprintf("favored_hours_bonus:%s", f.EmployeeKey))
	}
}

// --- Department total ------------------------------------------------------

func addDepartmentTotal(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model) {
	for _, dept := range n.Departments {
		rIdx := idx.RoleIndexOf(dept.Name)
		if rIdx < 0 {
			continue
		}
		focused := idx.DeptFocusedExpr(rIdx).Scale(2)
		var dual []cpmodel.VarRef
		for eIdx := range idx.Employees {
			if idx.PrimaryDeptIndex[eIdx] != rIdx {
				continue
			}
			for d := 0; d < domain.NumDays; d++ {
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.AssignVar(eIdx, d, t, idx.FDRole); ok {
						dual = append(dual, v)
					}
				}
			}
		}
		units := focused.Plus(cpmodel.Sum(dual...))
		m.Maximize(units.Scale(Scale), fmt.Sprintf("dept_total:%s", dept.Name))
	}
}

// --- Timeset bonus ----------------------------------------------------------

func addTimesetBonus(idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	var vars []cpmodel.VarRef
	idx.EachAssign(func(e, d, t, r int, v cpmodel.VarRef) {
		if idx.ForcedAssignAt(e, d, t, r) {
			vars = append(vars, v)
		}
	})
	if len(vars) == 0 {
		return
	}
	m.Maximize(cpmodel.Sum(vars...).Scale(w["timeset_bonus"]), "timeset_bonus")
}

// --- Favored department terms (focused bonus & dual penalty) -----------

func addFavoredDepartmentTerms(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, f := range n.Favors.Departments {
		rIdx := idx.RoleIndexOf(f.Department)
		if rIdx < 0 {
			continue
		}
		mult := scaledMult(f.Multiplier)
		focused := idx.DeptFocusedExpr(rIdx)
		focusedWeight := w["favored_dept_focused"] * mult / Scale
		m.Maximize(focused.Scale(focusedWeight), fmt.Sprintf("favored_dept_focused:%s", f.Department))

		var dual []cpmodel.VarRef
		for eIdx := range idx.Employees {
			if idx.PrimaryDeptIndex[eIdx] != rIdx {
				continue
			}
			for d := 0; d < domain.NumDays; d++ {
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.AssignVar(eIdx, d, t, idx.FDRole); ok {
						dual = append(dual, v)
					}
				}
			}
		}
		dualWeight := w["favored_dept_dual_penalty"] * mult / Scale
		m.Maximize(cpmodel.Sum(dual...).Scale(-dualWeight), fmt.Sprintf("favored_dept_dual_penalty:%s", f.Department))
	}
}

// --- Favored FD-department bonus ----------------------------------------

func addFavoredFDDeptBonus(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, f := range n.Favors.FrontDeskDepartments {
		mult := scaledMult(f.Multiplier)
		weight := w["favored_fd_dept_bonus"] * mult / Scale
		var vars []cpmodel.VarRef
		for eIdx := range idx.Employees {
			if idx.PrimaryDeptIndex[eIdx] != idx.RoleIndexOf(f.Department) {
				continue
			}
			for d := 0; d < domain.NumDays; d++ {
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.AssignVar(eIdx, d, t, idx.FDRole); ok {
						vars = append(vars, v)
					}
				}
			}
		}
		m.Maximize(cpmodel.Sum(vars...).Scale(weight), fmt.Sprintf("favored_fd_dept_bonus:%s", f.Department))
	}
}

// --- Favored employee-department bonus ----------------------------------

func addFavoredEmployeeDeptBonus(n *domain.Normalized, cfg *config.Config, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for _, f := range n.Favors.EmployeeDepartments {
		eIdx, ok := idx.EmployeeIndex[f.EmployeeKey]
		if !ok {
			continue
		}
		rIdx := idx.RoleIndexOf(f.Department)
		if rIdx < 0 {
			continue
		}
		mult := scaledMult(f.Multiplier)
		weight := w["favored_employee_dept_bonus"] * mult / Scale
		m.Maximize(idx.EmployeeDeptExpr(eIdx, rIdx).Scale(weight), fmt.Sprintf("favored_employee_dept_bonus:%s:%s", f.EmployeeKey, f.Department))
	}
}

// --- Equality penalty -----------------------------------------------------

func addEqualityPenalty(n *domain.Normalized, idx *modelbuild.Index, m *cpmodel.Model, w map[string]int) {
	for i, eq := range n.Equality {
		rIdx := idx.RoleIndexOf(eq.Department)
		if rIdx < 0 {
			continue
		}
		e1, ok1 := idx.EmployeeIndex[eq.Employee1]
		e2, ok2 := idx.EmployeeIndex[eq.Employee2]
		if !ok1 || !ok2 {
			continue
		}
		slots1 := idx.EmployeeDeptExpr(e1, rIdx)
		slots2 := idx.EmployeeDeptExpr(e2, rIdx)
		a := m.NewInt(fmt.Sprintf("eq_slots1:%d", i), 0, 2*domain.NumDays*domain.NumSlots)
		b := m.NewInt(fmt.Sprintf("eq_slots2:%d", i), 0, 2*domain.NumDays*domain.NumSlots)
		m.Add(slots1.Minus(cpmodel.Expr(cpmodel.T(1, a))), cpmodel.Eq, 0, "")
		m.Add(slots2.Minus(cpmodel.Expr(cpmodel.T(1, b))), cpmodel.Eq, 0, "")
		diff := m.NewAbsDiff(fmt.Sprintf("eq_diff:%d", i), a, b, 2*domain.NumDays*domain.NumSlots)
		m.Maximize(cpmodel.Sum(diff).Scale(-w["equality_penalty"]), fmt.Sprintf("equality_penalty:%s", eq.Department))
	}
}
