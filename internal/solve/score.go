package solve

import (
	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/objective"
)

// Score is the Objective Composer's weighted sum evaluated directly
// against a concrete Grid. internal/modelbuild and internal/objective
// declare the same terms over a cpmodel.Model for shape-fidelity and their
// own unit tests (see that package's doc comment), but nothing in this
// package searches that declarative model — ScoreGrid computes the number that
// actually gets reported to callers, using objective.FaceWeights so both
// places share one weight table instead of drifting apart.
type Score struct {
	Total     int
	ByTerm    map[string]int
}

// ScoreGrid evaluates every soft term against g and returns the weighted
// total plus a per-term breakdown (useful for progress/report logging).
func ScoreGrid(n *domain.Normalized, p *domain.Precomputed, cfg *config.Config, g *Grid) Score {
	w := objective.FaceWeights(cfg)
	favEmpMult := favoredEmployeeMultTenths(n)
	favDeptMult := favoredDeptMultTenths(n)
	terms := make(map[string]int, 24)

	terms["fd_coverage"] = w["fd_coverage"] * fdCoverageCount(n, g)
	terms["large_employee_deviation"] = -largeEmployeeDeviation(n, g, w, favEmpMult)
	deptDevTotal, largeDeptDevTotal := departmentDeviation(n, g, w, favDeptMult)
	terms["dept_target_deviation"] = -deptDevTotal
	terms["large_dept_deviation"] = -largeDeptDevTotal
	terms["collaborative_shortfall"] = -collaborativeShortfall(n, g, w)
	trainShortfall, trainBonus := trainingOverlap(n, g, w)
	terms["training_shortfall"] = -trainShortfall
	terms["training_bonus"] = trainBonus
	officeCov, singlePenalty := officeCoverageAndSingle(n, g, w)
	terms["office_coverage"] = officeCov
	terms["single_coverage_penalty"] = -singlePenalty
	terms["target_adherence"] = -targetAdherence(n, g, w, favEmpMult)
	spread, dayCoverage := departmentSpreadAndCoverage(n, g, w)
	terms["dept_spread"] = spread
	terms["dept_day_coverage"] = dayCoverage
	terms["shift_length_bonus"] = shiftLengthBonus(n, g, w)
	scarcity, underclass := fdScarcityAndYear(n, p, g, w)
	terms["fd_scarcity_penalty"] = -scarcity
	terms["underclass_fd_penalty"] = -underclass
	morning, shiftTimePref := morningAndShiftTimePreference(n, g, w)
	terms["morning_preference"] = morning
	terms["shift_time_preference"] = shiftTimePref
	terms["favored_hours_bonus"] = favoredHours(n, g, w, favEmpMult)
	terms["dept_total"] = departmentTotal(n, g)
	terms["timeset_bonus"] = w["timeset_bonus"] * forcedAssignSlots(g)
	focusedBonus, dualPenalty := favoredDepartmentTerms(n, g, w, favDeptMult)
	terms["favored_dept_focused"] = focusedBonus
	terms["favored_dept_dual_penalty"] = -dualPenalty
	terms["favored_fd_dept_bonus"] = favoredFDDeptBonus(n, g, w)
	terms["favored_employee_dept_bonus"] = favoredEmployeeDeptBonus(n, g, w)
	terms["equality_penalty"] = -equalityPenalty(n, g, w)

	total := 0
	for _, v := range terms {
		total += v
	}
	return Score{Total: total, ByTerm: terms}
}

func favoredEmployeeMultTenths(n *domain.Normalized) map[string]int {
	out := make(map[string]int, len(n.Favors.Employees))
	for _, f := range n.Favors.Employees {
		out[f.EmployeeKey] = objective.ScaledMult(f.Multiplier)
	}
	return out
}

func favoredDeptMultTenths(n *domain.Normalized) map[string]int {
	out := make(map[string]int, len(n.Favors.Departments))
	for _, f := range n.Favors.Departments {
		out[f.Department] = objective.ScaledMult(f.Multiplier)
	}
	return out
}

func empMultOr10(favMult map[string]int, key string) int {
	if v, ok := favMult[key]; ok {
		return v
	}
	return 10
}

func fdCoverageCount(n *domain.Normalized, g *Grid) int {
	count := 0
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			if g.FDCoveredAt(domain.Day(d), t) {
				count++
			}
		}
	}
	return count
}

func largeEmployeeDeviation(n *domain.Normalized, g *Grid, w, favMult map[string]int) int {
	total := 0
	for _, e := range n.Employees {
		diff := g.WorkedSlots(e.Key) - e.TargetSlots
		if diff < 0 {
			diff = -diff
		}
		if diff >= 4 {
			mult := empMultOr10(favMult, e.Key)
			total += w["large_employee_deviation"] * mult / 10
		}
	}
	return total
}

func departmentDeviation(n *domain.Normalized, g *Grid, w, favDeptMult map[string]int) (devTotal, largeTotal int) {
	for _, dept := range n.Departments {
		focused := g.deptTotal(dept.Name)
		over, under := 0, 0
		if focused > dept.TargetSlots {
			over = focused - dept.TargetSlots
		} else {
			under = dept.TargetSlots - focused
		}
		mult := 10
		if v, ok := favDeptMult[dept.Name]; ok {
			mult = v
		}
		devTotal += w["dept_target_deviation"] * mult / 10 * (over + under)
		if over >= 8 {
			largeTotal += w["large_dept_deviation"] * mult / 10
		}
		if under >= 8 {
			largeTotal += w["large_dept_deviation"] * mult / 10
		}
	}
	return devTotal, largeTotal
}

func collaborativeShortfall(n *domain.Normalized, g *Grid, w map[string]int) int {
	total := 0
	for _, dept := range n.Departments {
		hours, ok := objective.CollaborationMinimumHours[dept.Name]
		if !ok || hours == 0 {
			continue
		}
		minSlots := 2 * hours
		collab := 0
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				inDept := 0
				for _, e := range n.Employees {
					if g.RoleAt(e.Key, domain.Day(d), t) == dept.Name {
						inDept++
					}
				}
				if inDept >= 2 {
					collab++
				}
			}
		}
		if collab < minSlots {
			total += w["collaborative_shortfall"] * (minSlots - collab)
		}
	}
	return total
}

func trainingOverlap(n *domain.Normalized, g *Grid, w map[string]int) (shortfall, bonus int) {
	for _, tr := range n.Training {
		overlap := 0
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				day := domain.Day(d)
				if g.RoleAt(tr.Employee1, day, t) == tr.Department && g.RoleAt(tr.Employee2, day, t) == tr.Department {
					overlap++
				}
			}
		}
		if overlap < tr.GoalSlots {
			shortfall += w["training_shortfall"] * (tr.GoalSlots - overlap)
		}
		bonus += w["training_bonus"] * overlap
	}
	return shortfall, bonus
}

func officeCoverageAndSingle(n *domain.Normalized, g *Grid, w map[string]int) (coverage, single int) {
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			workers := g.WorkersAt(domain.Day(d), t)
			if workers > 0 {
				coverage += w["office_coverage"] * (workers - 1)
			}
			if workers == 1 {
				single += w["single_coverage_penalty"]
			}
		}
	}
	return coverage, single
}

func targetAdherence(n *domain.Normalized, g *Grid, w, favMult map[string]int) int {
	total := 0
	for _, e := range n.Employees {
		worked := g.WorkedSlots(e.Key)
		diff := worked - e.TargetSlots
		if diff < 0 {
			diff = -diff
		}
		mult := empMultOr10(favMult, e.Key)
		yearMult := objective.YearMultTenths(e.Year)
		weight := w["target_adherence"] * mult * yearMult / 100
		total += weight * diff
	}
	return total
}

func departmentSpreadAndCoverage(n *domain.Normalized, g *Grid, w map[string]int) (spread, dayCoverage int) {
	for _, dept := range n.Departments {
		for d := 0; d < domain.NumDays; d++ {
			day := domain.Day(d)
			any := false
			for t := 0; t < domain.NumSlots; t++ {
				if cellHasRole(n, g, day, t, dept.Name) {
					spread += w["dept_spread"]
					any = true
				}
			}
			if any {
				dayCoverage += w["dept_day_coverage"]
			}
		}
	}
	// The FD role participates in spread/coverage like any other role.
	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		any := false
		for t := 0; t < domain.NumSlots; t++ {
			if cellHasRole(n, g, day, t, n.FrontDeskRole) {
				spread += w["dept_spread"]
				any = true
			}
		}
		if any {
			dayCoverage += w["dept_day_coverage"]
		}
	}
	return spread, dayCoverage
}

func cellHasRole(n *domain.Normalized, g *Grid, day domain.Day, t int, role string) bool {
	for _, e := range n.Employees {
		if g.RoleAt(e.Key, day, t) == role {
			return true
		}
	}
	return false
}

func shiftLengthBonus(n *domain.Normalized, g *Grid, w map[string]int) int {
	total := 0
	for _, e := range n.Employees {
		for d := 0; d < domain.NumDays; d++ {
			day := domain.Day(d)
			daySlots := g.DaySlots(e.Key, day)
			workedDay := 0
			if daySlots > 0 {
				workedDay = 1
			}
			total += w["shift_length_bonus"] * (daySlots - objective.ShiftLengthDailyCost*workedDay)
		}
	}
	return total
}

func fdScarcityAndYear(n *domain.Normalized, p *domain.Precomputed, g *Grid, w map[string]int) (scarcity, underclass int) {
	for _, e := range n.Employees {
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
		fdSlots := g.DeptSlots(e.Key, n.FrontDeskRole)
		if fdSlots == 0 {
			continue
		}
		scarcity += w["fd_scarcity_penalty"] * objective.ScarcityBase / minSize * fdSlots
		underclass += w["underclass_fd_penalty"] * e.Year * fdSlots
	}
	return scarcity, underclass
}

func morningAndShiftTimePreference(n *domain.Normalized, g *Grid, w map[string]int) (morning, shiftTime int) {
	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		for t := 0; t < domain.MorningSlots; t++ {
			morning += w["morning_preference"] * g.WorkersAt(day, t)
		}
	}
	for _, pref := range n.Favors.ShiftTimePreferences {
		start, end := 0, domain.MorningSlots
		if pref.Half == domain.Afternoon {
			start, end = domain.MorningSlots, domain.NumSlots
		}
		for t := start; t < end; t++ {
			if g.RoleAt(pref.EmployeeKey, pref.Day, t) != "" {
				shiftTime += w["shift_time_preference"]
			}
		}
	}
	return morning, shiftTime
}

func favoredHours(n *domain.Normalized, g *Grid, w, favMult map[string]int) int {
	total := 0
	for _, f := range n.Favors.Employees {
		mult := favMult[f.EmployeeKey]
		weight := w["favored_hours_bonus"] * mult / 10
		total += weight * g.WorkedSlots(f.EmployeeKey)
	}
	return total
}

func departmentTotal(n *domain.Normalized, g *Grid) int {
	total := 0
	for _, dept := range n.Departments {
		focused := g.deptTotal(dept.Name)
		dual := 0
		for _, e := range n.Employees {
			if n.PrimaryDepartment[e.Key] == dept.Name {
				dual += g.DeptSlots(e.Key, n.FrontDeskRole)
			}
		}
		total += 2*focused + dual
	}
	return total
}

func forcedAssignSlots(g *Grid) int {
	total := 0
	for _, days := range g.Blocks {
		for _, blocks := range days {
			for _, b := range blocks {
				if b.Forced {
					total += b.Len()
				}
			}
		}
	}
	return total
}

func favoredDepartmentTerms(n *domain.Normalized, g *Grid, w, favDeptMult map[string]int) (focusedBonus, dualPenalty int) {
	for _, f := range n.Favors.Departments {
		mult := favDeptMult[f.Department]
		focused := g.deptTotal(f.Department)
		focusedBonus += w["favored_dept_focused"] * mult / 10 * focused

		dual := 0
		for _, e := range n.Employees {
			if n.PrimaryDepartment[e.Key] == f.Department {
				dual += g.DeptSlots(e.Key, n.FrontDeskRole)
			}
		}
		dualPenalty += w["favored_dept_dual_penalty"] * mult / 10 * dual
	}
	return focusedBonus, dualPenalty
}

func favoredFDDeptBonus(n *domain.Normalized, g *Grid, w map[string]int) int {
	total := 0
	for _, f := range n.Favors.FrontDeskDepartments {
		mult := objective.ScaledMult(f.Multiplier)
		weight := w["favored_fd_dept_bonus"] * mult / 10
		for _, e := range n.Employees {
			if n.PrimaryDepartment[e.Key] != f.Department {
				continue
			}
			total += weight * g.DeptSlots(e.Key, n.FrontDeskRole)
		}
	}
	return total
}

func favoredEmployeeDeptBonus(n *domain.Normalized, g *Grid, w map[string]int) int {
	total := 0
	for _, f := range n.Favors.EmployeeDepartments {
		mult := objective.ScaledMult(f.Multiplier)
		weight := w["favored_employee_dept_bonus"] * mult / 10
		total += weight * g.DeptSlots(f.EmployeeKey, f.Department)
	}
	return total
}

func equalityPenalty(n *domain.Normalized, g *Grid, w map[string]int) int {
	total := 0
	for _, eq := range n.Equality {
		s1 := g.DeptSlots(eq.Employee1, eq.Department)
		s2 := g.DeptSlots(eq.Employee2, eq.Department)
		diff := s1 - s2
		if diff < 0 {
			diff = -diff
		}
		total += w["equality_penalty"] * diff
	}
	return total
}
