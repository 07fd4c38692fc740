// Package solve is the Solver Driver & Post-Validator. It does not search
// over internal/cpmodel's declarative Model — no CP-SAT or MILP backend is
// linked into this repository. Instead ConstructInitial and Improve build
// and improve a solution directly over a compact per-(employee,day) block
// representation, and Validate, ScoreGrid and reporting read that grid
// directly. See DESIGN.md's "internal/solve" entry for the full
// reasoning.
package solve

import "github.com/careerdesk/staffsched/internal/domain"

// Block is one contiguous span an employee works, in one role, on one day.
type Block struct {
	Role   string
	Start  int
	End    int // exclusive
	Forced bool
}

// Len is the block's slot length.
func (b Block) Len() int { return b.End - b.Start }

// Grid is the Solver Driver's working representation of a schedule: a
// list of single-role blocks per (employee, day). A day carries several
// blocks when forced timesets place them there or when, with
// enforce_min_dept_block off, construction splits the day across
// departments.
type Grid struct {
	N *domain.Normalized
	P *domain.Precomputed

	// Blocks[employeeKey][day] lists that employee's blocks for that day,
	// insertion order, non-overlapping and individually contiguous.
	Blocks map[string][domain.NumDays][]Block
}

// NewGrid allocates an empty grid over n's employees.
func NewGrid(n *domain.Normalized, p *domain.Precomputed) *Grid {
	g := &Grid{N: n, P: p, Blocks: make(map[string][domain.NumDays][]Block, len(n.Employees))}
	for _, e := range n.Employees {
		g.Blocks[e.Key] = [domain.NumDays][]Block{}
	}
	return g
}

// AddBlock appends a block for (employeeKey, day).
func (g *Grid) AddBlock(employeeKey string, d domain.Day, b Block) {
	days := g.Blocks[employeeKey]
	days[d] = append(days[d], b)
	g.Blocks[employeeKey] = days
}

// WorkedSlots returns the total slots e is scheduled across the week.
func (g *Grid) WorkedSlots(employeeKey string) int {
	total := 0
	for _, blocks := range g.Blocks[employeeKey] {
		for _, b := range blocks {
			total += b.Len()
		}
	}
	return total
}

// DaySlots returns the total slots e works on day d.
func (g *Grid) DaySlots(employeeKey string, d domain.Day) int {
	total := 0
	for _, b := range g.Blocks[employeeKey][d] {
		total += b.Len()
	}
	return total
}

// HasBlock reports whether e already has any block on day d.
func (g *Grid) HasBlock(employeeKey string, d domain.Day) bool {
	return len(g.Blocks[employeeKey][d]) > 0
}

// RoleAt returns the role e is working at (d,t), or "" if not working.
func (g *Grid) RoleAt(employeeKey string, d domain.Day, t int) string {
	for _, b := range g.Blocks[employeeKey][d] {
		if t >= b.Start && t < b.End {
			return b.Role
		}
	}
	return ""
}

// DeptSlots returns e's total assigned slots in dept across the week.
func (g *Grid) DeptSlots(employeeKey, dept string) int {
	total := 0
	for _, blocks := range g.Blocks[employeeKey] {
		for _, b := range blocks {
			if b.Role == dept {
				total += b.Len()
			}
		}
	}
	return total
}

// FDCoveredAt reports whether any employee works FD at (d,t).
func (g *Grid) FDCoveredAt(d domain.Day, t int) bool {
	for _, e := range g.N.Employees {
		if g.RoleAt(e.Key, d, t) == g.N.FrontDeskRole {
			return true
		}
	}
	return false
}

// WorkersAt returns how many employees work any role at (d,t).
func (g *Grid) WorkersAt(d domain.Day, t int) int {
	n := 0
	for _, e := range g.N.Employees {
		if g.RoleAt(e.Key, d, t) != "" {
			n++
		}
	}
	return n
}
