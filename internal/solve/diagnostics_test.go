package solve

import (
	"testing"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
)

func TestCheckFeasibility_HappyPathIsEmpty(t *testing.T) {
	n, p, cfg := singleFDFixture(t)
	diag := CheckFeasibility(n, p, cfg)
	if !diag.Empty() {
		t.Errorf("expected no hard infeasibility, got %+v", diag)
	}
}

func TestCheckFeasibility_FrontDeskGapAloneIsNotInfeasible(t *testing.T) {
	// Regression test: a coverage gap reported in FrontDeskGaps must never
	// by itself flip Empty() to false.
	n, p, cfg := singleFDFixture(t)
	alice := n.EmployeeByKey["alice"]
	alice.Unavailable[domain.Mon][0] = true
	p = domain.Precompute(n)

	diag := CheckFeasibility(n, p, cfg)
	if len(diag.FrontDeskGaps) == 0 {
		t.Fatal("expected a reported front-desk gap for this scenario")
	}
	if !diag.Empty() {
		t.Errorf("FrontDeskGaps alone must not make Diagnostics non-empty, got %+v", diag)
	}
}

func TestCheckFeasibility_TimesetWithNoFDCoverageIsInfeasible(t *testing.T) {
	n, p, cfg := singleFDFixture(t)
	// Alice is the only FD-qualified employee; make her unavailable for
	// the entire window a forced non-FD timeset needs supervised.
	alice := n.EmployeeByKey["alice"]
	for t := 0; t < 4; t++ {
		alice.Unavailable[domain.Tue][t] = true
	}
	n.Timesets = append(n.Timesets, &domain.Timeset{
		EmployeeKey: "alice", Day: domain.Tue, Department: "marketing", Start: 0, End: 4,
	})
	p = domain.Precompute(n)

	diag := CheckFeasibility(n, p, cfg)
	if len(diag.TimesetFDImpossible) == 0 {
		t.Fatal("expected a reported timeset FD impossibility")
	}
	if diag.Empty() {
		t.Error("a timeset with no possible FD coverage must be hard infeasible")
	}
}

func TestCheckFeasibility_ZeroOverlapTraining(t *testing.T) {
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 4, MaxHours: 8, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Alice", Roles: []string{"marketing"}, TargetHours: 4, MaxHours: 8, Year: 1, Available: fullAvailability()},
			{Name: "Bob", Roles: []string{"marketing"}, TargetHours: 4, MaxHours: 8, Year: 1, Available: fullAvailability()},
		},
		Training: []domain.TrainingRecord{{Department: "marketing", Employee1: "Alice", Employee2: "Bob"}},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Carve out every slot so Alice and Bob never share availability.
	alice := n.EmployeeByKey["alice"]
	bob := n.EmployeeByKey["bob"]
	for d := 0; d < domain.NumDays; d++ {
		for s := 0; s < domain.NumSlots; s++ {
			if s%2 == 0 {
				alice.Unavailable[d][s] = true
			} else {
				bob.Unavailable[d][s] = true
			}
		}
	}
	p := domain.Precompute(n)
	cfg := config.Default()

	diag := CheckFeasibility(n, p, cfg)
	if len(diag.ZeroOverlapTraining) == 0 {
		t.Fatal("expected a reported zero-overlap training pair")
	}
	if diag.Empty() {
		t.Error("zero-overlap training must be hard infeasible")
	}
}
