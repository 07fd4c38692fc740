// Package scenario holds end-to-end scheduling scenarios run through the
// full pipeline, one file per scenario family.
package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/schedule"
)

func fullAvail() [domain.NumDays][domain.NumSlots]bool {
	var a [domain.NumDays][domain.NumSlots]bool
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			a[d][t] = true
		}
	}
	return a
}

func fastCfg() *config.Config {
	cfg := config.Default()
	cfg.SolverMaxTime = 200 * time.Millisecond
	return cfg
}

func solveOrFail(t *testing.T, in domain.Inputs, cfg *config.Config) *schedule.Outcome {
	t.Helper()
	out, err := schedule.Solve(context.Background(), in, cfg)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if out.Schedule == nil {
		t.Fatalf("solve returned status %q with no schedule", out.Status)
	}
	return out
}

func workedSlots(s *schedule.Schedule, key string) int {
	total := 0
	for _, a := range s.Assignments {
		if a.EmployeeKey == key {
			total += a.End - a.Start
		}
	}
	return total
}

func roleAt(s *schedule.Schedule, key string, d domain.Day, t int) string {
	for _, a := range s.Assignments {
		if a.EmployeeKey == key && a.Day == d && t >= a.Start && t < a.End {
			return a.Role
		}
	}
	return ""
}

func fdCoveredAt(s *schedule.Schedule, fdRole string, d domain.Day, t int) bool {
	for _, a := range s.Assignments {
		if a.Role == fdRole && a.Day == d && t >= a.Start && t < a.End {
			return true
		}
	}
	return false
}

// deptOverlapSlots counts the (d,t) cells where both employees hold dept.
func deptOverlapSlots(s *schedule.Schedule, dept, key1, key2 string) int {
	overlap := 0
	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		for t := 0; t < domain.NumSlots; t++ {
			if roleAt(s, key1, day, t) == dept && roleAt(s, key2, day, t) == dept {
				overlap++
			}
		}
	}
	return overlap
}

func deptSlots(s *schedule.Schedule, key, dept string) int {
	total := 0
	for _, a := range s.Assignments {
		if a.EmployeeKey == key && a.Role == dept {
			total += a.End - a.Start
		}
	}
	return total
}
