package domain

// Precomputed holds the Domain Precomputer's helper structures:
// pruning data for the training-overlap variable space and
// infeasibility diagnostics. Derived once from a Normalized bundle and
// frozen for the lifetime of a solve.
type Precomputed struct {
	// FeasibleStartSlots[employeeKey][day] is the set of slots that lie
	// within a maximal contiguous available run on (employee, day) whose
	// run length meets the applicable minimum shift length.
	FeasibleStartSlots map[string][NumDays][]int

	// AvailabilitySlots[employeeKey] counts (d,t) not in the employee's
	// unavailability.
	AvailabilitySlots map[string]int

	// FrontDeskGaps lists (day, slot) pairs where no front-desk-qualified,
	// available employee exists. Used only for infeasibility diagnostics.
	FrontDeskGaps [][2]int

	// MinDeptSize maps each employee to the smallest size among the
	// departments that employee is qualified for (used by the front-desk
	// scarcity objective term).
	MinDeptSize map[string]int
}

// Precompute derives Precomputed from a validated Normalized bundle.
func Precompute(n *Normalized) *Precomputed {
	favored := favoredEmployeeSet(n)

	p := &Precomputed{
		FeasibleStartSlots: make(map[string][NumDays][]int, len(n.Employees)),
		AvailabilitySlots:  make(map[string]int, len(n.Employees)),
		MinDeptSize:        make(map[string]int, len(n.Employees)),
	}

	for _, e := range n.Employees {
		minLen := MinSlots
		if favored[e.Key] {
			minLen = FavoredMinSlots
		}
		var perDay [NumDays][]int
		for d := 0; d < NumDays; d++ {
			perDay[d] = feasibleStartsForDay(e, Day(d), minLen)
		}
		p.FeasibleStartSlots[e.Key] = perDay
		p.AvailabilitySlots[e.Key] = e.AvailabilitySlots()
		p.MinDeptSize[e.Key] = minQualifiedDeptSize(n, e)
	}

	p.FrontDeskGaps = frontDeskGaps(n)
	return p
}

func favoredEmployeeSet(n *Normalized) map[string]bool {
	m := make(map[string]bool, len(n.Favors.Employees))
	for _, f := range n.Favors.Employees {
		m[f.EmployeeKey] = true
	}
	return m
}

// feasibleStartsForDay returns every slot on (e,d) that lies within a
// maximal contiguous available run of length >= minLen.
func feasibleStartsForDay(e *Employee, d Day, minLen int) []int {
	var slots []int
	runStart := -1
	for t := 0; t <= NumSlots; t++ {
		available := t < NumSlots && !e.Unavailable[d][t]
		if available {
			if runStart == -1 {
				runStart = t
			}
			continue
		}
		if runStart != -1 {
			if t-runStart >= minLen {
				for s := runStart; s < t; s++ {
					slots = append(slots, s)
				}
			}
			runStart = -1
		}
	}
	return slots
}

// frontDeskGaps lists every (d,t) with no available front-desk-qualified
// employee.
func frontDeskGaps(n *Normalized) [][2]int {
	var gaps [][2]int
	fd := n.QualifiedEmployees(n.FrontDeskRole)
	for d := 0; d < NumDays; d++ {
		for t := 0; t < NumSlots; t++ {
			covered := false
			for _, e := range fd {
				if !e.Unavailable[d][t] {
					covered = true
					break
				}
			}
			if !covered {
				gaps = append(gaps, [2]int{d, t})
			}
		}
	}
	return gaps
}

// minQualifiedDeptSize is the smallest department-size among e's
// non-front-desk qualified departments, used by the front-desk scarcity
// penalty. Returns 0 when e has no department
// qualifications (the objective term skips such employees).
func minQualifiedDeptSize(n *Normalized, e *Employee) int {
	best := 0
	for dept := range e.Qualified {
		if dept == n.FrontDeskRole {
			continue
		}
		size := n.DepartmentSize(dept)
		if best == 0 || size < best {
			best = size
		}
	}
	return best
}
