// Package modelbuild is the Model Builder: it declares every decision
// variable over the dense (employee, day, slot, role) grid and emits every
// hard constraint, materializing variables only where they are meaningful
// (an assign exists only for a qualified employee or a forced timeset).
package modelbuild

import (
	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/cpmodel"
	"github.com/careerdesk/staffsched/internal/domain"
)

// key3 indexes a (employee, day, slot) cell.
type key3 struct {
	E, D, T int
}

// key4 indexes a (employee, day, slot, role) cell.
type key4 struct {
	E, D, T, R int
}

// Index is the grid-to-VarRef lookup table the Objective Composer and
// Solver Driver consume alongside the Model itself.
type Index struct {
	Employees     []*domain.Employee
	EmployeeIndex map[string]int // Key -> position in Employees

	Roles     []string // department roles in display order, then the FD role last
	RoleIndex map[string]int
	FDRole    int // index of the FD role within Roles

	Work      map[key3]cpmodel.VarRef
	Start     map[key3]cpmodel.VarRef
	End       map[key3]cpmodel.VarRef
	WorkedDay map[[2]int]cpmodel.VarRef // (e,d) -> boolean "worked any slot that day"

	Assign    map[key4]cpmodel.VarRef
	RoleStart map[key4]cpmodel.VarRef
	RoleEnd   map[key4]cpmodel.VarRef
	UsesRole  map[key4]cpmodel.VarRef // (e,d,*,r) -> boolean "e used role r on day d", dept roles only

	FDStart map[key3]cpmodel.VarRef
	FDEnd   map[key3]cpmodel.VarRef

	// ForcedAssign records every (e,d,t,r) in the timeset forcing set.
	ForcedAssign map[key4]bool
	// ForcedDayCount[e][d] is the count of forced slots (e,d) carries
	// (any role), used by the shift-length cap and the forced-block
	// exceptions to the minimum-length rules.
	ForcedDayCount map[[2]int]int
	// ForcedNonContigDay[e][d] is true when the forcing set places
	// non-contiguous slots on (e,d), permitting a split shift there.
	ForcedNonContigDay map[[2]int]bool
	// ForcedFDDay[d] is true when any employee has an FD timeset that day
	// (a forced FD block changes what adjacency is possible that day).
	ForcedFDDay map[int]bool
	// ForcedFDEmployeeDay[e][d] is true when e specifically has an FD
	// timeset that day.
	ForcedFDEmployeeDay map[[2]int]bool

	// PrimaryDeptIndex[e] is the role index of e's primary department, or
	// -1 if e has none.
	PrimaryDeptIndex map[int]int
}

func roleList(n *domain.Normalized) ([]string, map[string]int, int) {
	roles := make([]string, 0, len(n.Departments)+1)
	for _, d := range n.Departments {
		roles = append(roles, d.Name)
	}
	fd := len(roles)
	roles = append(roles, n.FrontDeskRole)
	idx := make(map[string]int, len(roles))
	for i, r := range roles {
		idx[r] = i
	}
	return roles, idx, fd
}

// newIndex allocates the lookup tables and the employee/role orderings, but
// declares no variables yet.
func newIndex(n *domain.Normalized) *Index {
	roles, roleIdx, fd := roleList(n)
	empIdx := make(map[string]int, len(n.Employees))
	for i, e := range n.Employees {
		empIdx[e.Key] = i
	}
	idx := &Index{
		Employees:           n.Employees,
		EmployeeIndex:       empIdx,
		Roles:               roles,
		RoleIndex:           roleIdx,
		FDRole:              fd,
		Work:                make(map[key3]cpmodel.VarRef),
		Start:                make(map[key3]cpmodel.VarRef),
		End:                  make(map[key3]cpmodel.VarRef),
		WorkedDay:            make(map[[2]int]cpmodel.VarRef),
		Assign:               make(map[key4]cpmodel.VarRef),
		RoleStart:            make(map[key4]cpmodel.VarRef),
		RoleEnd:              make(map[key4]cpmodel.VarRef),
		UsesRole:             make(map[key4]cpmodel.VarRef),
		FDStart:              make(map[key3]cpmodel.VarRef),
		FDEnd:                make(map[key3]cpmodel.VarRef),
		ForcedAssign:         make(map[key4]bool),
		ForcedDayCount:       make(map[[2]int]int),
		ForcedNonContigDay:   make(map[[2]int]bool),
		ForcedFDDay:          make(map[int]bool),
		ForcedFDEmployeeDay:  make(map[[2]int]bool),
		PrimaryDeptIndex:     make(map[int]int),
	}
	for i, e := range n.Employees {
		if dept, ok := n.PrimaryDepartment[e.Key]; ok && dept != "" {
			idx.PrimaryDeptIndex[i] = roleIdx[dept]
		} else {
			idx.PrimaryDeptIndex[i] = -1
		}
	}
	return idx
}

// recordForcing fills ForcedAssign/ForcedDayCount/ForcedNonContigDay/
// ForcedFDDay from n.Timesets.
func (idx *Index) recordForcing(n *domain.Normalized) {
	slotsByEmpDay := make(map[[2]int][]bool) // (e,d) -> per-slot forced marker, to detect contiguity
	for _, ts := range n.Timesets {
		eIdx, ok := idx.EmployeeIndex[ts.EmployeeKey]
		if !ok {
			continue
		}
		d := int(ts.Day)
		r := idx.RoleIndex[ts.Department]
		key := [2]int{eIdx, d}
		marks, ok := slotsByEmpDay[key]
		if !ok {
			marks = make([]bool, domain.NumSlots)
		}
		for t := ts.Start; t < ts.End; t++ {
			idx.ForcedAssign[key4{eIdx, d, t, r}] = true
			idx.ForcedDayCount[key]++
			marks[t] = true
		}
		slotsByEmpDay[key] = marks
		if r == idx.FDRole {
			idx.ForcedFDDay[d] = true
			idx.ForcedFDEmployeeDay[key] = true
		}
	}
	for key, marks := range slotsByEmpDay {
		runStart := -1
		runs := 0
		for t := 0; t <= domain.NumSlots; t++ {
			if t < domain.NumSlots && marks[t] {
				if runStart == -1 {
					runStart = t
				}
				continue
			}
			if runStart != -1 {
				runs++
				runStart = -1
			}
		}
		if runs > 1 {
			idx.ForcedNonContigDay[key] = true
		}
	}
}

// declareVars materializes every variable per the existence rules above.
func (idx *Index) declareVars(n *domain.Normalized, cfg *config.Config, m *cpmodel.Model) {
	for eIdx, e := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				idx.Work[key3{eIdx, d, t}] = m.NewBool(varName("work", e.Key, d, t, ""))
				idx.Start[key3{eIdx, d, t}] = m.NewBool(varName("start", e.Key, d, t, ""))
				idx.End[key3{eIdx, d, t}] = m.NewBool(varName("end", e.Key, d, t, ""))
			}
			idx.WorkedDay[[2]int{eIdx, d}] = m.NewBool(varName("workedday", e.Key, d, -1, ""))
		}
		for rIdx, role := range idx.Roles {
			qualified := e.IsQualified(role)
			for d := 0; d < domain.NumDays; d++ {
				if cfg.EnforceMinDeptBlock && role != n.FrontDeskRole {
					idx.UsesRole[key4{eIdx, d, 0, rIdx}] = m.NewBool(varName("usesrole", e.Key, d, -1, role))
				}
				for t := 0; t < domain.NumSlots; t++ {
					if !qualified && !idx.ForcedAssign[key4{eIdx, d, t, rIdx}] {
						continue
					}
					idx.Assign[key4{eIdx, d, t, rIdx}] = m.NewBool(varName("assign", e.Key, d, t, role))
				}
			}
		}
		// Role-block markers exist wherever the role has any materialized
		// assign variable that day.
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
				for t := 0; t < domain.NumSlots; t++ {
					if _, ok := idx.Assign[key4{eIdx, d, t, rIdx}]; !ok {
						continue
					}
					idx.RoleStart[key4{eIdx, d, t, rIdx}] = m.NewBool(varName("rolestart", e.Key, d, t, idx.Roles[rIdx]))
					idx.RoleEnd[key4{eIdx, d, t, rIdx}] = m.NewBool(varName("roleend", e.Key, d, t, idx.Roles[rIdx]))
					if rIdx == idx.FDRole {
						idx.FDStart[key3{eIdx, d, t}] = m.NewBool(varName("fdstart", e.Key, d, t, ""))
						idx.FDEnd[key3{eIdx, d, t}] = m.NewBool(varName("fdend", e.Key, d, t, ""))
					}
				}
			}
		}
	}
}

func varName(kind, emp string, d, t int, role string) string {
	s := kind + ":" + emp + ":" + domain.Day(d).String()
	if t >= 0 {
		s += ":" + domain.SlotToClock(t)
	}
	if role != "" {
		s += ":" + role
	}
	return s
}
