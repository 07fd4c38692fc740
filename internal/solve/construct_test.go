package solve

import (
	"testing"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
)

func fullAvailability() [domain.NumDays][domain.NumSlots]bool {
	var a [domain.NumDays][domain.NumSlots]bool
	for d := 0; d < domain.NumDays; d++ {
		for t := 0; t < domain.NumSlots; t++ {
			a[d][t] = true
		}
	}
	return a
}

// singleFDFixture is the smallest solvable staffing input: one
// FD-qualified employee, full availability, one department with zero
// target/max hours.
func singleFDFixture(t *testing.T) (*domain.Normalized, *domain.Precomputed, *config.Config) {
	t.Helper()
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 0, MaxHours: 0, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Alice", Roles: []string{"front_desk"}, TargetHours: 10, MaxHours: 12, Year: 2, Available: fullAvailability()},
		},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return n, domain.Precompute(n), config.Default()
}

func TestConstructInitial_SingleFD_NoInvariantViolations(t *testing.T) {
	n, p, cfg := singleFDFixture(t)
	g := ConstructInitial(n, p, cfg)
	if violations := Validate(g, n, p, cfg); len(violations) != 0 {
		t.Fatalf("unexpected invariant violations: %v", violations)
	}
	alice := n.EmployeeByKey["alice"]
	if worked := g.WorkedSlots("alice"); worked > alice.MaxSlots {
		t.Errorf("alice worked %d slots, exceeds max %d", worked, alice.MaxSlots)
	}
	if worked := g.WorkedSlots("alice"); worked == 0 {
		t.Error("expected alice to be scheduled at all given full availability and FD demand")
	}
}

func TestConstructInitial_TimesetForcingHonored(t *testing.T) {
	// The forced block needs other FD-qualified staff around so every
	// forced marketing slot stays supervised.
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 4, MaxHours: 10, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Alice", Roles: []string{"front_desk", "marketing"}, TargetHours: 10, MaxHours: 12, Year: 2, Available: fullAvailability()},
			{Name: "Bob", Roles: []string{"front_desk"}, TargetHours: 10, MaxHours: 16, Year: 3, Available: fullAvailability()},
			{Name: "Cara", Roles: []string{"front_desk"}, TargetHours: 10, MaxHours: 16, Year: 1, Available: fullAvailability()},
		},
		Timesets: []domain.TimesetRecord{
			{EmployeeName: "Alice", Day: domain.Wed, Department: "marketing", Start: 2, End: 10},
		},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := domain.Precompute(n)
	cfg := config.Default()

	g := ConstructInitial(n, p, cfg)
	for tslot := 2; tslot < 10; tslot++ {
		if role := g.RoleAt("alice", domain.Wed, tslot); role != "marketing" {
			t.Errorf("slot %d: role = %q, want marketing (forced)", tslot, role)
		}
	}
	if violations := Validate(g, n, p, cfg); len(violations) != 0 {
		t.Fatalf("unexpected invariant violations after timeset placement: %v", violations)
	}
}

func TestConstructInitial_NoFDGapBeyondAvailability(t *testing.T) {
	n, p, cfg := singleFDFixture(t)
	// Alice unavailable Mon 08:00-08:30: a structural FD gap
	// that must not make construction fail or the grid infeasible.
	alice := n.EmployeeByKey["alice"]
	alice.Unavailable[domain.Mon][0] = true
	p = domain.Precompute(n)

	g := ConstructInitial(n, p, cfg)
	if g.FDCoveredAt(domain.Mon, 0) {
		t.Error("slot Mon 0 should remain uncovered since the only FD employee is unavailable there")
	}
	diag := CheckFeasibility(n, p, cfg)
	if !diag.Empty() {
		t.Errorf("a plain FD coverage gap must not be reported as hard infeasibility, got %+v", diag)
	}
}

func TestConstructInitial_DeptRequiresFDSupervision(t *testing.T) {
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 6, MaxHours: 10, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Alice", Roles: []string{"front_desk"}, TargetHours: 10, MaxHours: 15, Year: 2, Available: fullAvailability()},
			{Name: "Bob", Roles: []string{"marketing"}, TargetHours: 6, MaxHours: 10, Year: 1, Available: fullAvailability()},
		},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := domain.Precompute(n)
	cfg := config.Default()
	g := ConstructInitial(n, p, cfg)

	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		for s := 0; s < domain.NumSlots; s++ {
			if g.RoleAt("bob", day, s) == "marketing" && !g.FDCoveredAt(day, s) {
				t.Fatalf("%s slot %d: bob works marketing without FD supervision", day, s)
			}
		}
	}
	if violations := Validate(g, n, p, cfg); len(violations) != 0 {
		t.Fatalf("unexpected invariant violations: %v", violations)
	}
}
