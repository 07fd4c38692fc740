package modelbuild

import "github.com/careerdesk/staffsched/internal/domain"

// relaxLower applies the deterministic target-lower-bound relaxation
// used when forced timesets crowd out ordinary target hours.
// F is the number of forced non-FD timeset slots across all employees; q is
// the number of FD-qualified employees. fdQualified reports whether the
// employee under consideration holds the FD role.
func relaxLower(lower, f, q int, fdQualified bool) int {
	switch {
	case f >= 30:
		return 0
	case f >= 4:
		if fdQualified {
			if f >= 20 {
				return max(0, lower-(lower-2))
			}
			step := 0
			if q > 0 {
				step = f / q
			}
			return max(0, lower-min(lower, step))
		}
		if f >= 20 {
			return lower / 2
		}
		return max(0, lower-min(lower, f/10))
	default:
		return lower
	}
}

// countForcedNonFDSlots returns F, the number of forced non-FD timeset
// slots across every employee.
func countForcedNonFDSlots(n *domain.Normalized) int {
	f := 0
	for _, ts := range n.Timesets {
		if ts.Department == n.FrontDeskRole {
			continue
		}
		f += ts.Len()
	}
	return f
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
