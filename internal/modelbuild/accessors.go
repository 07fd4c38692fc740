package modelbuild

import (
	"github.com/careerdesk/staffsched/internal/cpmodel"
	"github.com/careerdesk/staffsched/internal/domain"
)

// WorkVar returns the work[e,d,t] variable (always materialized).
func (idx *Index) WorkVar(e, d, t int) cpmodel.VarRef {
	return idx.Work[key3{e, d, t}]
}

// WorkedDayVar returns the auxiliary "worked any slot" boolean for (e,d).
func (idx *Index) WorkedDayVar(e, d int) cpmodel.VarRef {
	return idx.WorkedDay[[2]int{e, d}]
}

// AssignVar returns assign[e,d,t,r] and whether it is materialized.
func (idx *Index) AssignVar(e, d, t, r int) (cpmodel.VarRef, bool) {
	v, ok := idx.Assign[key4{e, d, t, r}]
	return v, ok
}

// EmployeeWorked returns the LinearExpr summing e's work variables across
// the whole week.
func (idx *Index) EmployeeWorked(e int) cpmodel.LinearExpr {
	var vars []cpmodel.VarRef
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			vars = append(vars, idx.WorkVar(e, d, t))
		}
	}
	return cpmodel.Sum(vars...)
}

// EmployeeDeptExpr sums e's assign variables for role r across the week.
func (idx *Index) EmployeeDeptExpr(e, r int) cpmodel.LinearExpr {
	var vars []cpmodel.VarRef
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			if v, ok := idx.AssignVar(e, d, t, r); ok {
				vars = append(vars, v)
			}
		}
	}
	return cpmodel.Sum(vars...)
}

// DeptFocusedExpr sums every employee's assign variables for role r across
// the week (role r's total focused slots).
func (idx *Index) DeptFocusedExpr(r int) cpmodel.LinearExpr {
	var vars []cpmodel.VarRef
	for e := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				if v, ok := idx.AssignVar(e, d, t, r); ok {
					vars = append(vars, v)
				}
			}
		}
	}
	return cpmodel.Sum(vars...)
}

// EachFDAssign calls fn for every materialized assign[e,d,t,FD] variable.
func (idx *Index) EachFDAssign(fn func(e, d, t int, v cpmodel.VarRef)) {
	for e := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				if v, ok := idx.AssignVar(e, d, t, idx.FDRole); ok {
					fn(e, d, t, v)
				}
			}
		}
	}
}

// EachAssign calls fn for every materialized assign variable.
func (idx *Index) EachAssign(fn func(e, d, t, r int, v cpmodel.VarRef)) {
	for e := range idx.Employees {
		for r := range idx.Roles {
			for d := 0; d < domain.NumDays; d++ {
				for t := 0; t < domain.NumSlots; t++ {
					if v, ok := idx.AssignVar(e, d, t, r); ok {
						fn(e, d, t, r, v)
					}
				}
			}
		}
	}
}

// EachWork calls fn for every work variable (always materialized).
func (idx *Index) EachWork(fn func(e, d, t int, v cpmodel.VarRef)) {
	for e := range idx.Employees {
		for d := 0; d < domain.NumDays; d++ {
			for t := 0; t < domain.NumSlots; t++ {
				fn(e, d, t, idx.WorkVar(e, d, t))
			}
		}
	}
}

// CellVars returns every assign var at (d,t) across every employee for
// role r, used by coverage-count style terms.
func (idx *Index) CellVars(d, t, r int) []cpmodel.VarRef {
	var vars []cpmodel.VarRef
	for e := range idx.Employees {
		if v, ok := idx.AssignVar(e, d, t, r); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// CellWorkVars returns every employee's work var at (d,t).
func (idx *Index) CellWorkVars(d, t int) []cpmodel.VarRef {
	vars := make([]cpmodel.VarRef, 0, len(idx.Employees))
	for e := range idx.Employees {
		vars = append(vars, idx.WorkVar(e, d, t))
	}
	return vars
}

// ForcedAssignAt reports whether (e,d,t,r) is in the timeset forcing set.
func (idx *Index) ForcedAssignAt(e, d, t, r int) bool {
	return idx.ForcedAssign[key4{e, d, t, r}]
}

// RoleIndexOf returns the role index for name, or -1.
func (idx *Index) RoleIndexOf(name string) int {
	if r, ok := idx.RoleIndex[name]; ok {
		return r
	}
	return -1
}
