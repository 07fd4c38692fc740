package solve

import (
	"sort"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
)

// ConstructInitial builds a grid that satisfies every hard constraint by
// construction:
// timesets are placed first and frozen, then front-desk gaps are filled
// greedily (longest qualifying run first, slots in increasing order so
// iteration never depends on map order), then remaining department target
// deficits are filled on whichever qualifying day an employee is still
// free and front-desk-covered.
func ConstructInitial(n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) *Grid {
	g := NewGrid(n, p)
	placeTimesets(g, n)
	fillFrontDesk(g, n, p, cfg)
	fillDepartments(g, n, p, cfg)
	return g
}

func favoredSlots(n *domain.Normalized, cfg *config.Config, key string) (min, max int) {
	for _, f := range n.Favors.Employees {
		if f.EmployeeKey == key {
			return cfg.FavoredMinSlots, cfg.FavoredMaxSlots
		}
	}
	return cfg.MinSlots, cfg.MaxSlots
}

// placeTimesets materializes every forced timeset as a Forced block,
// merging adjacent same-department ranges on the same (employee,day) into
// one block.
func placeTimesets(g *Grid, n *domain.Normalized) {
	type key struct {
		emp string
		day domain.Day
	}
	grouped := make(map[key][]*domain.Timeset)
	order := make([]key, 0)
	for _, ts := range n.Timesets {
		k := key{ts.EmployeeKey, ts.Day}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], ts)
	}
	for _, k := range order {
		tss := grouped[k]
		sort.Slice(tss, func(i, j int) bool { return tss[i].Start < tss[j].Start })
		cur := Block{Role: tss[0].Department, Start: tss[0].Start, End: tss[0].End, Forced: true}
		for _, ts := range tss[1:] {
			if ts.Department == cur.Role && ts.Start == cur.End {
				cur.End = ts.End
				continue
			}
			g.AddBlock(k.emp, k.day, cur)
			cur = Block{Role: ts.Department, Start: ts.Start, End: ts.End, Forced: true}
		}
		g.AddBlock(k.emp, k.day, cur)
	}
}

// fillFrontDesk covers uncovered FD gaps, preferring the available,
// FD-qualified employee with the fewest slots assigned so far (a simple
// deterministic fairness tie-break: ties broken by Employees order).
func fillFrontDesk(g *Grid, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) {
	fd := n.QualifiedEmployees(n.FrontDeskRole)
	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		covered := make([]bool, domain.NumSlots)
		for t := 0; t < domain.NumSlots; t++ {
			covered[t] = g.FDCoveredAt(day, t)
		}
		t := 0
		for t < domain.NumSlots {
			if covered[t] {
				t++
				continue
			}
			runStart := t
			for t < domain.NumSlots && !covered[t] {
				t++
			}
			runEnd := t
			cursor := runStart
			for runEnd-cursor >= domain.MinFrontDeskSlots {
				cand := bestFDCandidate(g, n, p, cfg, fd, day, cursor, runEnd)
				if cand == nil {
					cursor++
					continue
				}
				blockLen := cand.length
				g.AddBlock(cand.employee.Key, day, Block{Role: n.FrontDeskRole, Start: cursor, End: cursor + blockLen})
				cursor += blockLen
			}
		}
	}
}

type fdCandidate struct {
	employee *domain.Employee
	length   int
}

func bestFDCandidate(g *Grid, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config, fd []*domain.Employee, day domain.Day, start, runEnd int) *fdCandidate {
	var best *fdCandidate
	bestWorked := -1
	for _, e := range fd {
		if g.HasBlock(e.Key, day) {
			continue
		}
		_, maxSlots := favoredSlots(n, cfg, e.Key)
		length := runEnd - start
		if length > maxSlots {
			length = maxSlots
		}
		if length < domain.MinFrontDeskSlots {
			continue
		}
		available := true
		for t := start; t < start+length; t++ {
			if e.Unavailable[day][t] {
				available = false
				break
			}
		}
		if !available {
			continue
		}
		if g.WorkedSlots(e.Key)+length > e.MaxSlots {
			continue
		}
		worked := g.WorkedSlots(e.Key)
		if best == nil || worked < bestWorked {
			best = &fdCandidate{employee: e, length: length}
			bestWorked = worked
		}
	}
	return best
}

// fillDepartments assigns remaining department-target deficits, one
// employee at a time in Employees order, placing at most one contiguous
// run per free day, on a run that is fully front-desk covered. With
// EnforceMinDeptBlock set the run is a single department; otherwise it
// may split across departments when no single one has the capacity.
func fillDepartments(g *Grid, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) {
	for _, e := range n.Employees {
		remaining := e.TargetSlots - g.WorkedSlots(e.Key)
		if remaining <= 0 {
			continue
		}
		depts := qualifiedDeptsByDeficit(g, n, e)
		if len(depts) == 0 {
			continue
		}
		for d := 0; d < domain.NumDays; d++ {
			if remaining <= 0 {
				break
			}
			day := domain.Day(d)
			if g.HasBlock(e.Key, day) {
				continue
			}
			segments := planDaySegments(g, n, cfg, e, depts, remaining)
			if len(segments) == 0 {
				continue
			}
			length := 0
			for _, seg := range segments {
				length += seg.length
			}
			starts := p.FeasibleStartSlots[e.Key][d]
			start, ok := findCoveredRun(g, n, e, day, starts, length)
			if !ok {
				continue
			}
			cursor := start
			for _, seg := range segments {
				g.AddBlock(e.Key, day, Block{Role: seg.dept, Start: cursor, End: cursor + seg.length})
				cursor += seg.length
			}
			remaining -= length
		}
	}
}

func qualifiedDeptsByDeficit(g *Grid, n *domain.Normalized, e *domain.Employee) []string {
	var depts []string
	for _, dept := range n.Departments {
		if e.IsQualified(dept.Name) {
			depts = append(depts, dept.Name)
		}
	}
	sort.Slice(depts, func(i, j int) bool {
		di := dept(n, depts[i]).TargetSlots - g.deptTotal(depts[i])
		dj := dept(n, depts[j]).TargetSlots - g.deptTotal(depts[j])
		if di != dj {
			return di > dj
		}
		return depts[i] < depts[j]
	})
	return depts
}

func dept(n *domain.Normalized, name string) *domain.Department {
	return n.DepartmentByName[name]
}

func (g *Grid) deptTotal(deptName string) int {
	total := 0
	for _, e := range g.N.Employees {
		total += g.DeptSlots(e.Key, deptName)
	}
	return total
}

// daySegment is one department's share of a day's contiguous run.
type daySegment struct {
	dept   string
	length int
}

// planDaySegments chooses the departments a day's run should hold. A
// single department with enough remaining capacity always wins; when none
// has room for the whole run and the minimum-block rule is off, the run
// is split across departments in deficit order, each piece at least an
// hour (2 slots). Returns nil when nothing placeable remains.
func planDaySegments(g *Grid, n *domain.Normalized, cfg *config.Config, e *domain.Employee, depts []string, remaining int) []daySegment {
	minSlots, maxSlots := favoredSlots(n, cfg, e.Key)
	want := remaining
	if want > maxSlots {
		want = maxSlots
	}
	if want < minSlots {
		return nil
	}
	for _, d := range depts {
		if g.deptTotal(d)+want <= dept(n, d).MaxSlots {
			return []daySegment{{dept: d, length: want}}
		}
	}
	if cfg.EnforceMinDeptBlock {
		return nil
	}
	var segments []daySegment
	left := want
	for _, d := range depts {
		if left <= 0 {
			break
		}
		room := dept(n, d).MaxSlots - g.deptTotal(d)
		seg := left
		if seg > room {
			seg = room
		}
		// Never leave a 30-minute remainder for the next department.
		if left-seg == 1 {
			seg--
		}
		if seg < 2 {
			continue
		}
		segments = append(segments, daySegment{dept: d, length: seg})
		left -= seg
	}
	if want-left < minSlots || len(segments) == 0 {
		return nil
	}
	return segments
}

// findCoveredRun finds a slot within starts where [start,start+length) is
// available and already front-desk covered by the grid so far.
func findCoveredRun(g *Grid, n *domain.Normalized, e *domain.Employee, day domain.Day, starts []int, length int) (int, bool) {
	startSet := make(map[int]bool, len(starts))
	for _, s := range starts {
		startSet[s] = true
	}
	for t := 0; t+length <= domain.NumSlots; t++ {
		if !startSet[t] {
			continue
		}
		ok := true
		for s := t; s < t+length; s++ {
			if e.Unavailable[day][s] || !g.FDCoveredAt(day, s) {
				ok = false
				break
			}
		}
		if ok {
			return t, true
		}
	}
	return 0, false
}
