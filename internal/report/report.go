// Package report computes descriptive post-solve statistics:
// per-department focused/dual slot and hour breakdowns, the front-desk
// coverage ratio, and per-employee hour totals. It never feeds back into
// the solve — these are read-only summaries of a finished Grid.
package report

import (
	"sort"

	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/solve"
)

// DepartmentBreakdown is one department's slot/hour accounting:
// dual_hours_total is dual front-desk slots converted to hours at
// face value, dual_hours_counted is that total halved again (a front-desk
// slot only counts half toward a department's actual hours, since it is
// shared time), and actual_hours is the sum a manager reads as the
// department's real output for the week.
type DepartmentBreakdown struct {
	Department        string  `json:"department"`
	FocusedSlots      int     `json:"focused_slots"`
	DualSlots         int     `json:"dual_slots"`
	FocusedHours      float64 `json:"focused_hours"`
	DualHoursTotal    float64 `json:"dual_hours_total"`
	DualHoursCounted  float64 `json:"dual_hours_counted"`
	ActualHours       float64 `json:"actual_hours"`
	TargetHours       float64 `json:"target_hours"`
}

// EmployeeHours is one employee's worked-slot total, in slots and hours.
type EmployeeHours struct {
	EmployeeKey string  `json:"employee_key"`
	WorkedSlots int     `json:"worked_slots"`
	WorkedHours float64 `json:"worked_hours"`
	TargetHours float64 `json:"target_hours"`
}

// Report bundles every descriptive statistic computed from a solved Grid.
type Report struct {
	Departments       []DepartmentBreakdown `json:"departments"`
	Employees         []EmployeeHours       `json:"employees"`
	FrontDeskCoverage float64               `json:"front_desk_coverage"` // fraction of (day,slot) cells with an FD assignment
	TotalSlots        int                   `json:"total_slots"`         // domain.NumDays * domain.NumSlots
}

// Build computes a Report from a solved Grid.
func Build(n *domain.Normalized, g *solve.Grid) *Report {
	r := &Report{TotalSlots: domain.NumDays * domain.NumSlots}
	r.Departments = departmentBreakdowns(n, g)
	r.Employees = employeeHours(n, g)
	r.FrontDeskCoverage = frontDeskCoverage(n, g)
	return r
}

func departmentBreakdowns(n *domain.Normalized, g *solve.Grid) []DepartmentBreakdown {
	out := make([]DepartmentBreakdown, 0, len(n.Departments))
	for _, dept := range n.Departments {
		focused := deptFocusedSlots(n, g, dept.Name)
		dual := deptDualSlots(n, g, dept.Name)

		focusedHours := float64(focused) / 2
		dualHoursTotal := float64(dual) / 2
		dualHoursCounted := dualHoursTotal / 2

		out = append(out, DepartmentBreakdown{
			Department:       dept.Name,
			FocusedSlots:     focused,
			DualSlots:        dual,
			FocusedHours:     focusedHours,
			DualHoursTotal:   dualHoursTotal,
			DualHoursCounted: dualHoursCounted,
			ActualHours:      focusedHours + dualHoursCounted,
			TargetHours:      float64(dept.TargetSlots) / 2,
		})
	}
	return out
}

func deptFocusedSlots(n *domain.Normalized, g *solve.Grid, dept string) int {
	total := 0
	for _, e := range n.Employees {
		total += g.DeptSlots(e.Key, dept)
	}
	return total
}

func deptDualSlots(n *domain.Normalized, g *solve.Grid, dept string) int {
	total := 0
	for _, e := range n.Employees {
		if n.PrimaryDepartment[e.Key] == dept {
			total += g.DeptSlots(e.Key, n.FrontDeskRole)
		}
	}
	return total
}

func employeeHours(n *domain.Normalized, g *solve.Grid) []EmployeeHours {
	out := make([]EmployeeHours, 0, len(n.Employees))
	for _, e := range n.Employees {
		worked := g.WorkedSlots(e.Key)
		out = append(out, EmployeeHours{
			EmployeeKey: e.Key,
			WorkedSlots: worked,
			WorkedHours: float64(worked) / 2,
			TargetHours: float64(e.TargetSlots) / 2,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeKey < out[j].EmployeeKey })
	return out
}

func frontDeskCoverage(n *domain.Normalized, g *solve.Grid) float64 {
	total := domain.NumDays * domain.NumSlots
	covered := 0
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			if g.FDCoveredAt(domain.Day(d), t) {
				covered++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total)
}
