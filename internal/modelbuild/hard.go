package modelbuild

import (
	"fmt"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/cpmodel"
	"github.com/careerdesk/staffsched/internal/domain"
)

// addTimesetForcing fixes work=1 and assign=1 for every forced cell.
func addTimesetForcing(idx *Index, m *cpmodel.Model) {
	for k := range idx.ForcedAssign {
		m.Fix(idx.Assign[k], 1)
		m.Fix(idx.Work[key3{k.E, k.D, k.T}], 1)
	}
}

// addAvailability fixes work=0 on every unavailable cell.
func addAvailability(idx *Index, m *cpmodel.Model) {
	for eIdx, e := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				if e.Unavailable[d][t] {
					m.Fix(idx.Work[key3{eIdx, d, t}], 0)
				}
			}
		}
	}
}

// addRoleExclusivity adds Σ_r assign <= 1 and Σ_r assign = work for every
// (e,d,t); fixes work=0 where no assign variable is materialized at all.
func addRoleExclusivity(idx *Index, m *cpmodel.Model) {
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				var vars []cpmodel.VarRef
				for rIdx := range idx.Roles {
					if v, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; ok {
						vars = append(vars, v)
					}
				}
				work := idx.Work[key3{eIdx, d, t}]
				if len(vars) == 0 {
					m.Fix(work, 0)
					continue
				}
				label := fmt.Sprintf("roleexcl:%d:%d:%d", eIdx, d, t)
				m.Add(cpmodel.Sum(vars...), cpmodel.Le, 1, label+":le1")
				m.Add(cpmodel.Sum(vars...).Minus(cpmodel.Sum(work)), cpmodel.Eq, 0, label+":eqwork")
			}
		}
	}
}

// addAssignImpliesWork adds assign <= work for every materialized assign.
func addAssignImpliesWork(idx *Index, m *cpmodel.Model) {
	for k, assign := range idx.Assign {
		work := idx.Work[key3{k.E, k.D, k.T}]
		m.Add(cpmodel.Expr(cpmodel.T(1, assign), cpmodel.T(-1, work)), cpmodel.Le, 0,
			fmt.Sprintf("assignwork:%d:%d:%d:%d", k.E, k.D, k.T, k.R))
	}
}

// addDeptRequiresFD reifies: assign[e,d,t,r]=1 (r a department role)
// implies Σ_e' assign[e',d,t,FD] >= 1.
func addDeptRequiresFD(idx *Index, n *domain.Normalized, m *cpmodel.Model) {
	fdByCell := make(map[[2]int][]cpmodel.VarRef)
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				if v, ok := idx.Assign[key4{eIdx, d, t, idx.FDRole}]; ok {
					fdByCell[[2]int{d, t}] = append(fdByCell[[2]int{d, t}], v)
				}
			}
		}
	}
	for k, assign := range idx.Assign {
		if k.R == idx.FDRole {
			continue
		}
		fdVars := fdByCell[[2]int{k.D, k.T}]
		m.AddReified(cpmodel.Sum(fdVars...), cpmodel.Ge, 1, assign,
			fmt.Sprintf("deptfd:%d:%d:%d:%d", k.E, k.D, k.T, k.R))
	}
}

// contiguityRecurrence emits the shared block-contiguity recurrence over a
// (work,start,end) triple of var-maps restricted to `present`.
func contiguityRecurrence(m *cpmodel.Model, label string, work, start, end func(t int) (cpmodel.VarRef, bool)) {
	w0, ok0 := work(0)
	s0, oks0 := start(0)
	if ok0 && oks0 {
		m.Add(cpmodel.Expr(cpmodel.T(1, w0), cpmodel.T(-1, s0)), cpmodel.Eq, 0, label+":t0")
	}
	for t := 1; t < domain.NumSlots; t++ {
		wt, okw := work(t)
		wp, okwp := work(t - 1)
		st, oks := start(t)
		ep, oke := end(t - 1)
		if !(okw && okwp && oks && oke) {
			continue
		}
		m.Add(cpmodel.Expr(cpmodel.T(1, wt), cpmodel.T(-1, wp), cpmodel.T(-1, st), cpmodel.T(1, ep)), cpmodel.Eq, 0,
			fmt.Sprintf("%s:t%d", label, t))
	}
	last := domain.NumSlots - 1
	wl, okwl := work(last)
	el, okel := end(last)
	if okwl && okel {
		m.Add(cpmodel.Expr(cpmodel.T(1, el), cpmodel.T(-1, wl)), cpmodel.Eq, 0, label+":tlast")
	}
}

// addShiftContiguity emits the shift-block contiguity recurrence and cap
// per (e,d).
func addShiftContiguity(idx *Index, m *cpmodel.Model) {
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			label := fmt.Sprintf("contig:%d:%d", eIdx, d)
			contiguityRecurrence(m, label,
				func(t int) (cpmodel.VarRef, bool) { v, ok := idx.Work[key3{eIdx, d, t}]; return v, ok },
				func(t int) (cpmodel.VarRef, bool) { v, ok := idx.Start[key3{eIdx, d, t}]; return v, ok },
				func(t int) (cpmodel.VarRef, bool) { v, ok := idx.End[key3{eIdx, d, t}]; return v, ok },
			)
			cap := 1
			if idx.ForcedNonContigDay[[2]int{eIdx, d}] {
				cap = 2
			}
			var starts, ends []cpmodel.VarRef
			for t := 0; t < domain.NumSlots; t++ {
				starts = append(starts, idx.Start[key3{eIdx, d, t}])
				ends = append(ends, idx.End[key3{eIdx, d, t}])
			}
			m.Add(cpmodel.Sum(starts...), cpmodel.Le, cap, label+":ncap_start")
			m.Add(cpmodel.Sum(ends...), cpmodel.Le, cap, label+":ncap_end")
		}
	}
}

// addShiftLengthBounds emits the L!=1, L∉{2,3}, minimum, and cap rules,
// plus the reified WorkedDay linkage used to gate the conditional minimum.
func addShiftLengthBounds(idx *Index, n *domain.Normalized, cfg *config.Config, m *cpmodel.Model) {
	favored := favoredSet(n)
	for eIdx, e := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			key := [2]int{eIdx, d}
			forcedCount := idx.ForcedDayCount[key]
			hasForcing := forcedCount > 0
			var workVars []cpmodel.VarRef
			for t := 0; t < domain.NumSlots; t++ {
				workVars = append(workVars, idx.Work[key3{eIdx, d, t}])
			}
			lexpr := cpmodel.Sum(workVars...)
			label := fmt.Sprintf("shiftlen:%d:%d", eIdx, d)

			if !hasForcing {
				m.Add(lexpr, cpmodel.Ne, 1, label+":ne1")
			}
			if !favored[e.Key] && !hasForcing {
				m.Add(lexpr, cpmodel.Ne, 2, label+":ne2")
				m.Add(lexpr, cpmodel.Ne, 3, label+":ne3")
			}

			worked := idx.WorkedDay[key]
			minLen := cfg.MinSlots
			if favored[e.Key] {
				minLen = cfg.FavoredMinSlots
			}
			maxLen := cfg.MaxSlots
			if favored[e.Key] {
				maxLen = cfg.FavoredMaxSlots
			}
			if forcedCount > maxLen {
				maxLen = forcedCount
			}
			m.Add(lexpr, cpmodel.Le, maxLen, label+":cap")
			if !hasForcing {
				m.AddReified(lexpr, cpmodel.Ge, minLen, worked, label+":minwhenworked")
			}
			m.Add(lexpr.Minus(cpmodel.Expr(cpmodel.T(maxLen, worked))), cpmodel.Le, 0, label+":zerowhennotworked")
		}
	}
}

// addWeeklyHourLimits caps total weekly work slots per employee.
func addWeeklyHourLimits(idx *Index, cfg *config.Config, m *cpmodel.Model) {
	for eIdx, e := range idx.Employees {
		var all []cpmodel.VarRef
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				all = append(all, idx.Work[key3{eIdx, d, t}])
			}
		}
		expr := cpmodel.Sum(all...)
		label := fmt.Sprintf("weekly:%d", eIdx)
		m.Add(expr, cpmodel.Le, e.MaxSlots, label+":max_e")
		m.Add(expr, cpmodel.Le, 2*domain.UniversalMaximumHours, label+":universal")
	}
}

// addTargetWindow applies the (relaxed) hard hour window per employee.
func addTargetWindow(idx *Index, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config, m *cpmodel.Model) {
	f := countForcedNonFDSlots(n)
	q := len(n.QualifiedEmployees(n.FrontDeskRole))
	for eIdx, e := range idx.Employees {
		ts := e.TargetSlots
		delta := 2 * cfg.TargetHardDeltaHours
		upper := min(ts+delta, min(e.MaxSlots, 2*domain.UniversalMaximumHours))
		lower := min(max(0, ts-delta), min(p.AvailabilitySlots[e.Key], upper))
		lower = relaxLower(lower, f, q, e.IsQualified(n.FrontDeskRole))

		var all []cpmodel.VarRef
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				all = append(all, idx.Work[key3{eIdx, d, t}])
			}
		}
		expr := cpmodel.Sum(all...)
		label := fmt.Sprintf("targetwin:%d", eIdx)
		m.Add(expr, cpmodel.Ge, lower, label+":lower")
		m.Add(expr, cpmodel.Le, upper, label+":upper")
	}
}

func favoredSet(n *domain.Normalized) map[string]bool {
	out := make(map[string]bool, len(n.Favors.Employees))
	for _, f := range n.Favors.Employees {
		out[f.EmployeeKey] = true
	}
	return out
}

// addFDExclusivity caps Σ_e assign[e,d,t,FD] <= 1.
func addFDExclusivity(idx *Index, m *cpmodel.Model) {
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			var vars []cpmodel.VarRef
			for eIdx := range idx.Employees {
				if v, ok := idx.Assign[key4{eIdx, d, t, idx.FDRole}]; ok {
					vars = append(vars, v)
				}
			}
			if len(vars) == 0 {
				continue
			}
			m.Add(cpmodel.Sum(vars...), cpmodel.Le, 1, fmt.Sprintf("fdexcl:%d:%d", d, t))
		}
	}
}

// addFDContiguity mirrors the shift-block contiguity rule on the FD-assign subset.
func addFDContiguity(idx *Index, m *cpmodel.Model) {
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			any := false
			for t := 0; t < domain.NumSlots; t++ {
				if _, ok := idx.FDStart[key3{eIdx, d, t}]; ok {
					any = true
					break
				}
			}
			if !any {
				continue
			}
			label := fmt.Sprintf("fdcontig:%d:%d", eIdx, d)
			contiguityRecurrence(m, label,
				func(t int) (cpmodel.VarRef, bool) {
					v, ok := idx.Assign[key4{eIdx, d, t, idx.FDRole}]
					return v, ok
				},
				func(t int) (cpmodel.VarRef, bool) { v, ok := idx.FDStart[key3{eIdx, d, t}]; return v, ok },
				func(t int) (cpmodel.VarRef, bool) { v, ok := idx.FDEnd[key3{eIdx, d, t}]; return v, ok },
			)
			cap := 1
			if idx.ForcedNonContigDay[[2]int{eIdx, d}] {
				cap = 2
			}
			var starts []cpmodel.VarRef
			for t := 0; t < domain.NumSlots; t++ {
				if v, ok := idx.FDStart[key3{eIdx, d, t}]; ok {
					starts = append(starts, v)
				}
			}
			m.Add(cpmodel.Sum(starts...), cpmodel.Le, cap, label+":ncap_start")
		}
	}
}

// addFDMinLength forbids 1-3 slot FD blocks unless a forced-FD exception
// applies that day.
func addFDMinLength(idx *Index, m *cpmodel.Model) {
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			if idx.ForcedFDEmployeeDay[[2]int{eIdx, d}] || idx.ForcedFDDay[d] {
				continue
			}
			var vars []cpmodel.VarRef
			for t := 0; t < domain.NumSlots; t++ {
				if v, ok := idx.Assign[key4{eIdx, d, t, idx.FDRole}]; ok {
					vars = append(vars, v)
				}
			}
			if len(vars) == 0 {
				continue
			}
			expr := cpmodel.Sum(vars...)
			label := fmt.Sprintf("fdmin:%d:%d", eIdx, d)
			m.Add(expr, cpmodel.Ne, 1, label+":ne1")
			m.Add(expr, cpmodel.Ne, 2, label+":ne2")
			m.Add(expr, cpmodel.Ne, 3, label+":ne3")
		}
	}
}

// addRoleContiguity mirrors the contiguity recurrence per (e,d,r) and applies the minimum-
// fragment and (when enforced) minimum-dept-block rules.
func addRoleContiguity(idx *Index, n *domain.Normalized, cfg *config.Config, m *cpmodel.Model) {
	favored := favoredSet(n)
	for eIdx, e := range idx.Employees {
		for rIdx := range idx.Roles {
			for d := 0; d < domain.NumDays; d++ {
				any := false
				for t := 0; t < domain.NumSlots; t++ {
					if _, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; ok {
						any = true
						break
					}
				}
				if !any {
					continue
				}
				label := fmt.Sprintf("rolecontig:%d:%d:%d", eIdx, d, rIdx)
				contiguityRecurrence(m, label,
					func(t int) (cpmodel.VarRef, bool) { v, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; return v, ok },
					func(t int) (cpmodel.VarRef, bool) { v, ok := idx.RoleStart[key4{eIdx, d, t, rIdx}]; return v, ok },
					func(t int) (cpmodel.VarRef, bool) { v, ok := idx.RoleEnd[key4{eIdx, d, t, rIdx}]; return v, ok },
				)

				forcedHere := false
				for t := 0; t < domain.NumSlots; t++ {
					if idx.ForcedAssign[key4{eIdx, d, t, rIdx}] {
						forcedHere = true
						break
					}
				}
				fdException := rIdx == idx.FDRole && idx.ForcedFDDay[d]
				if forcedHere || fdException {
					continue
				}
				var vars []cpmodel.VarRef
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; ok {
						vars = append(vars, v)
					}
				}
				expr := cpmodel.Sum(vars...)
				m.Add(expr, cpmodel.Ne, 1, label+":ne1")
				if cfg.EnforceMinDeptBlock && !favored[e.Key] && rIdx != idx.FDRole {
					m.Add(expr, cpmodel.Ne, 2, label+":mindeptblock_ne2")
					m.Add(expr, cpmodel.Ne, 3, label+":mindeptblock_ne3")
				}
			}
		}
	}
}

// addCrossDeptSplit, under enforce_min_dept_block, restricts an
// employee-day to at most one distinct department role. This is a strictly
// stronger encoding of the narrower "no 2h day split 1h+1h across two
// departments" rule: with enforce_min_dept_block set, internal/solve's
// construction places at most one department per employee-day, so no
// schedule it produces can mix departments within a day regardless of
// shift length, and declaring the stronger
// "at most one department role per day" constraint here keeps the Model's
// own Check() consistent with what the solver actually guarantees.
func addCrossDeptSplit(idx *Index, cfg *config.Config, m *cpmodel.Model) {
	if !cfg.EnforceMinDeptBlock {
		return
	}
	for eIdx := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			var uses []cpmodel.VarRef
			for rIdx, role := range idx.Roles {
				if role == idx.Roles[idx.FDRole] {
					continue
				}
				u, ok := idx.UsesRole[key4{eIdx, d, 0, rIdx}]
				if !ok {
					continue
				}
				uses = append(uses, u)
				var assignVars []cpmodel.VarRef
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; ok {
						assignVars = append(assignVars, v)
					}
				}
				if len(assignVars) == 0 {
					m.Fix(u, 0)
					continue
				}
				sum := cpmodel.Sum(assignVars...)
				label := fmt.Sprintf("deptsplit:usesrole:%d:%d:%d", eIdx, d, rIdx)
				// u=0 forces the role's slots to 0; u need not be forced
				// to 1 since the <=1-role cap below is the only thing
				// that matters.
				m.Add(sum.Minus(cpmodel.Expr(cpmodel.T(domain.NumSlots, u))), cpmodel.Le, 0, label)
			}
			if len(uses) > 1 {
				m.Add(cpmodel.Sum(uses...), cpmodel.Le, 1, fmt.Sprintf("deptsplit:%d:%d", eIdx, d))
			}
		}
	}
}

// addDepartmentMaximum caps each department's effective units.
func addDepartmentMaximum(idx *Index, n *domain.Normalized, m *cpmodel.Model) {
	for rIdx, role := range idx.Roles {
		if rIdx == idx.FDRole {
			continue
		}
		dept := n.DepartmentByName[role]
		var focused []cpmodel.VarRef
		for eIdx := range idx.Employees {
			for d := 0; d < domain.NumDays; d++ {
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; ok {
						focused = append(focused, v)
					}
				}
			}
		}
		var dual []cpmodel.VarRef
		for eIdx := range idx.Employees {
			if idx.PrimaryDeptIndex[eIdx] != rIdx {
				continue
			}
			for d := 0; d < domain.NumDays; d++ {
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.Assign[key4{eIdx, d, t, idx.FDRole}]; ok {
						dual = append(dual, v)
					}
				}
			}
		}
		expr := cpmodel.Sum(focused...).Scale(2).Plus(cpmodel.Sum(dual...))
		m.Add(expr, cpmodel.Le, 4*dept.MaxSlots/2, fmt.Sprintf("deptmax:%s", role))
	}
}
