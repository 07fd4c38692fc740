package solve

import (
	"fmt"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
)

// Diagnostics is the structured explanation emitted on an Infeasible
// outcome.
type Diagnostics struct {
	FrontDeskGaps        [][2]int // (day,slot) with no FD-qualified available employee at all
	TimesetFDImpossible  []string // per-forced-dept-timeset slots with no possible FD coverage
	ZeroOverlapTraining  []string // training pairs whose trainees share no feasible slot in dept
	HourBalanceSummary   []string // employees whose hard window cannot be satisfied
	Hints                []string
}

// Empty reports whether no hard infeasibility was detected. FrontDeskGaps
// is deliberately excluded: a plain coverage gap still yields a schedule,
// just with that slot's soft FD-coverage term unmet, so it is
// informational, not a hard-infeasibility signal on its own.
func (d *Diagnostics) Empty() bool {
	return d == nil || (len(d.TimesetFDImpossible) == 0 &&
		len(d.ZeroOverlapTraining) == 0 && len(d.HourBalanceSummary) == 0)
}

// CheckFeasibility looks for structural infeasibility diagnosable before
// ever invoking the solver: an employee whose
// relaxed hour window is self-contradictory or unreachable given their
// availability, a timeset slot with no FD-qualified employee able to
// cover it, or a training pair with zero feasible overlap capacity. Plain
// front-desk coverage gaps do NOT make the schedule
// infeasible — the solver still produces a schedule with that slot's
// soft FD-coverage term unmet — so FrontDeskGaps is reported for every
// solve but never affects the Infeasible verdict, which Empty derives
// from the other lists alone.
func CheckFeasibility(n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) *Diagnostics {
	diag := &Diagnostics{FrontDeskGaps: p.FrontDeskGaps}

	f := countForcedNonFD(n)
	q := len(n.QualifiedEmployees(n.FrontDeskRole))
	for _, e := range n.Employees {
		ts := e.TargetSlots
		delta := 2 * cfg.TargetHardDeltaHours
		upper := minInt(ts+delta, minInt(e.MaxSlots, 2*domain.UniversalMaximumHours))
		lower := minInt(maxInt(0, ts-delta), minInt(p.AvailabilitySlots[e.Key], upper))
		lower = relaxLowerDiag(lower, f, q, e.IsQualified(n.FrontDeskRole))
		if lower > upper {
			diag.HourBalanceSummary = append(diag.HourBalanceSummary,
				fmt.Sprintf("%s: relaxed lower bound %d exceeds upper bound %d", e.Key, lower, upper))
		}
		if lower > p.AvailabilitySlots[e.Key] {
			diag.HourBalanceSummary = append(diag.HourBalanceSummary,
				fmt.Sprintf("%s: relaxed lower bound %d exceeds availability %d", e.Key, lower, p.AvailabilitySlots[e.Key]))
		}
	}

	for _, ts := range n.Timesets {
		if ts.Department == n.FrontDeskRole {
			continue
		}
		if !anyFDAvailable(n, ts.Day, ts.Start, ts.End) {
			diag.TimesetFDImpossible = append(diag.TimesetFDImpossible,
				fmt.Sprintf("%s/%s %s-%s: no FD-qualified employee available", ts.EmployeeKey, ts.Day,
					domain.SlotToClock(ts.Start), domain.SlotToClock(ts.End)))
		}
	}

	for _, tr := range n.Training {
		e1 := n.EmployeeByKey[tr.Employee1]
		e2 := n.EmployeeByKey[tr.Employee2]
		if e1 == nil || e2 == nil {
			continue
		}
		if !shareFeasibleSlot(e1, e2) {
			diag.ZeroOverlapTraining = append(diag.ZeroOverlapTraining,
				fmt.Sprintf("%s/%s in %s: no shared available slot", tr.Employee1, tr.Employee2, tr.Department))
		}
	}

	if len(diag.HourBalanceSummary) > 0 || len(diag.TimesetFDImpossible) > 0 {
		diag.Hints = append(diag.Hints, "relax target_hard_delta or reduce forced timeset load")
	}
	if len(diag.FrontDeskGaps) > 0 {
		diag.Hints = append(diag.Hints, "add FD-qualified coverage for the listed gaps, or accept partial FD coverage")
	}

	return diag
}

func anyFDAvailable(n *domain.Normalized, day domain.Day, start, end int) bool {
	for _, e := range n.QualifiedEmployees(n.FrontDeskRole) {
		ok := true
		for t := start; t < end; t++ {
			if e.Unavailable[day][t] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func shareFeasibleSlot(e1, e2 *domain.Employee) bool {
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			if !e1.Unavailable[d][t] && !e2.Unavailable[d][t] {
				return true
			}
		}
	}
	return false
}

func countForcedNonFD(n *domain.Normalized) int {
	f := 0
	for _, ts := range n.Timesets {
		if ts.Department == n.FrontDeskRole {
			continue
		}
		f += ts.Len()
	}
	return f
}

func relaxLowerDiag(lower, f, q int, fdQualified bool) int {
	switch {
	case f >= 30:
		return 0
	case f >= 4:
		if fdQualified {
			if f >= 20 {
				return maxInt(0, lower-(lower-2))
			}
			step := 0
			if q > 0 {
				step = f / q
			}
			return maxInt(0, lower-minInt(lower, step))
		}
		if f >= 20 {
			return lower / 2
		}
		return maxInt(0, lower-minInt(lower, f/10))
	default:
		return lower
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
