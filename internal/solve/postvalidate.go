package solve

import (
	"fmt"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
)

// Validate re-checks hard constraints directly against the grid: runs
// per day, 30-minute fragments, the enforce_min_dept_block rules,
// overlapping blocks, weekly maximums, the relaxed lower bound,
// front-desk supervision and exclusivity, the first slot of every forced
// timeset, and department maximums. Availability, daily shift-length
// bounds, the front-desk minimum block length and the upper edge of the
// target window are not re-checked here.
// Violations are reported, never fail the solve.
func Validate(g *Grid, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) []string {
	var violations []string
	favored := favoredEmployeeKeys(n)

	for _, e := range n.Employees {
		for d := 0; d < domain.NumDays; d++ {
			day := domain.Day(d)
			blocks := g.Blocks[e.Key][day]

			// One contiguous run per day; two only when the timeset
			// forcing set itself placed non-contiguous slots. Adjacent
			// blocks of different roles form a single run.
			runCap := 1
			if forcedNonContiguous(n, e.Key, day) {
				runCap = 2
			}
			if runs := slotRuns(blocks); runs > runCap {
				violations = append(violations, fmt.Sprintf("%s/%s: %d separate runs exceeds cap %d", e.Key, day, runs, runCap))
			}

			deptRoles := make(map[string]bool)
			for i, b := range blocks {
				if b.Len() == 1 && !b.Forced {
					violations = append(violations, fmt.Sprintf("%s/%s: 30-minute fragment block", e.Key, day))
				}
				if cfg.EnforceMinDeptBlock && !favored[e.Key] && !b.Forced &&
					b.Role != n.FrontDeskRole && (b.Len() == 2 || b.Len() == 3) {
					violations = append(violations, fmt.Sprintf("%s/%s: %d-slot %s block under enforce_min_dept_block", e.Key, day, b.Len(), b.Role))
				}
				if b.Role != n.FrontDeskRole && !b.Forced {
					deptRoles[b.Role] = true
				}
				for j, other := range blocks {
					if i == j {
						continue
					}
					if b.Start < other.End && other.Start < b.End {
						violations = append(violations, fmt.Sprintf("%s/%s: overlapping blocks", e.Key, day))
					}
				}
			}
			if cfg.EnforceMinDeptBlock && len(deptRoles) > 1 {
				violations = append(violations, fmt.Sprintf("%s/%s: day splits across departments under enforce_min_dept_block", e.Key, day))
			}
		}

		worked := g.WorkedSlots(e.Key)
		if worked > e.MaxSlots {
			violations = append(violations, fmt.Sprintf("%s: worked %d exceeds max %d", e.Key, worked, e.MaxSlots))
		}
		if worked > 2*domain.UniversalMaximumHours {
			violations = append(violations, fmt.Sprintf("%s: worked %d exceeds universal maximum", e.Key, worked))
		}
		if lower := relaxedLowerBound(n, p, cfg, e); worked < lower {
			violations = append(violations, fmt.Sprintf("%s: worked %d under relaxed lower bound %d", e.Key, worked, lower))
		}
	}

	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		for t := 0; t < domain.NumSlots; t++ {
			fdCount := 0
			for _, e := range n.Employees {
				if g.RoleAt(e.Key, day, t) == n.FrontDeskRole {
					fdCount++
				}
				role := g.RoleAt(e.Key, day, t)
				if role != "" && role != n.FrontDeskRole && !g.FDCoveredAt(day, t) {
					violations = append(violations, fmt.Sprintf("%s/%s t=%d: department role without FD supervision", e.Key, day, t))
				}
			}
			if fdCount > 1 {
				violations = append(violations, fmt.Sprintf("%s t=%d: %d concurrent FD assignments", day, t, fdCount))
			}
		}
	}

	for _, ts := range n.Timesets {
		if g.RoleAt(ts.EmployeeKey, ts.Day, ts.Start) != ts.Department {
			violations = append(violations, fmt.Sprintf("%s/%s: forced timeset not honored at slot %d", ts.EmployeeKey, ts.Day, ts.Start))
		}
	}

	for _, dept := range n.Departments {
		focused := 0
		dual := 0
		for _, e := range n.Employees {
			focused += g.DeptSlots(e.Key, dept.Name)
			if n.PrimaryDepartment[e.Key] == dept.Name {
				dual += g.DeptSlots(e.Key, n.FrontDeskRole)
			}
		}
		units := 2*focused + dual
		if units > 4*dept.MaxSlots/2 {
			violations = append(violations, fmt.Sprintf("department %s: effective units %d exceeds cap", dept.Name, units))
		}
	}

	return violations
}

// slotRuns counts the contiguous runs formed by the union of blocks'
// slots.
func slotRuns(blocks []Block) int {
	var slots [domain.NumSlots]bool
	for _, b := range blocks {
		for t := b.Start; t < b.End && t < domain.NumSlots; t++ {
			slots[t] = true
		}
	}
	runs := 0
	inRun := false
	for t := 0; t < domain.NumSlots; t++ {
		if slots[t] && !inRun {
			runs++
		}
		inRun = slots[t]
	}
	return runs
}

// forcedNonContiguous reports whether the timeset forcing set places
// non-contiguous slots on (employee, day), the one case a split work day
// is permitted.
func forcedNonContiguous(n *domain.Normalized, key string, day domain.Day) bool {
	var marks [domain.NumSlots]bool
	any := false
	for _, ts := range n.Timesets {
		if ts.EmployeeKey != key || ts.Day != day {
			continue
		}
		any = true
		for t := ts.Start; t < ts.End && t < domain.NumSlots; t++ {
			marks[t] = true
		}
	}
	if !any {
		return false
	}
	runs := 0
	inRun := false
	for t := 0; t < domain.NumSlots; t++ {
		if marks[t] && !inRun {
			runs++
		}
		inRun = marks[t]
	}
	return runs > 1
}

// relaxedLowerBound is the employee's hard weekly minimum: the target
// window's lower edge clamped to availability and the upper bound, then
// relaxed under forced-timeset load exactly as CheckFeasibility computes
// it pre-solve.
func relaxedLowerBound(n *domain.Normalized, p *domain.Precomputed, cfg *config.Config, e *domain.Employee) int {
	ts := e.TargetSlots
	delta := 2 * cfg.TargetHardDeltaHours
	upper := minInt(ts+delta, minInt(e.MaxSlots, 2*domain.UniversalMaximumHours))
	lower := minInt(maxInt(0, ts-delta), minInt(p.AvailabilitySlots[e.Key], upper))
	f := countForcedNonFD(n)
	q := len(n.QualifiedEmployees(n.FrontDeskRole))
	return relaxLowerDiag(lower, f, q, e.IsQualified(n.FrontDeskRole))
}

func favoredEmployeeKeys(n *domain.Normalized) map[string]bool {
	out := make(map[string]bool, len(n.Favors.Employees))
	for _, f := range n.Favors.Employees {
		out[f.EmployeeKey] = true
	}
	return out
}
