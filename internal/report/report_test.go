package report

import (
	"testing"

	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/solve"
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

func reportFixture(t *testing.T) (*domain.Normalized, *solve.Grid) {
	t.Helper()
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 4, MaxHours: 10, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Alice", Roles: []string{"front_desk", "marketing"}, TargetHours: 10, MaxHours: 12, Year: 2, Available: fullAvailability()},
		},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := domain.Precompute(n)
	g := solve.NewGrid(n, p)
	g.AddBlock("alice", domain.Mon, solve.Block{Role: "front_desk", Start: 0, End: 4})
	g.AddBlock("alice", domain.Tue, solve.Block{Role: "marketing", Start: 0, End: 8})
	return n, g
}

func TestBuild_EmployeeHoursMatchWorkedSlots(t *testing.T) {
	n, g := reportFixture(t)
	r := Build(n, g)
	if len(r.Employees) != 1 {
		t.Fatalf("expected 1 employee row, got %d", len(r.Employees))
	}
	emp := r.Employees[0]
	if emp.EmployeeKey != "alice" {
		t.Errorf("employee key = %q, want alice", emp.EmployeeKey)
	}
	if emp.WorkedSlots != 12 {
		t.Errorf("worked slots = %d, want 12", emp.WorkedSlots)
	}
	if emp.WorkedHours != 6 {
		t.Errorf("worked hours = %v, want 6", emp.WorkedHours)
	}
	if emp.TargetHours != 10 {
		t.Errorf("target hours = %v, want 10", emp.TargetHours)
	}
}

func TestBuild_DepartmentBreakdownCountsDualFromFD(t *testing.T) {
	n, g := reportFixture(t)
	r := Build(n, g)
	if len(r.Departments) != 1 {
		t.Fatalf("expected 1 department row, got %d", len(r.Departments))
	}
	dept := r.Departments[0]
	if dept.FocusedSlots != 8 {
		t.Errorf("focused slots = %d, want 8 (marketing block)", dept.FocusedSlots)
	}
	// Alice's primary department is marketing (her only non-FD role), so
	// her front-desk block counts as dual slots for marketing.
	if dept.DualSlots != 4 {
		t.Errorf("dual slots = %d, want 4 (front desk block attributed to primary dept)", dept.DualSlots)
	}
	if dept.FocusedHours != 4 {
		t.Errorf("focused hours = %v, want 4", dept.FocusedHours)
	}
	if dept.DualHoursTotal != 2 {
		t.Errorf("dual hours total = %v, want 2", dept.DualHoursTotal)
	}
	if dept.DualHoursCounted != 1 {
		t.Errorf("dual hours counted = %v, want 1", dept.DualHoursCounted)
	}
	if dept.ActualHours != 5 {
		t.Errorf("actual hours = %v, want 5 (4 focused + 1 dual counted)", dept.ActualHours)
	}
}

func TestBuild_FrontDeskCoverageFraction(t *testing.T) {
	n, g := reportFixture(t)
	r := Build(n, g)
	total := float64(domain.NumDays * domain.NumSlots)
	want := 4.0 / total
	if r.FrontDeskCoverage != want {
		t.Errorf("front desk coverage = %v, want %v", r.FrontDeskCoverage, want)
	}
	if r.TotalSlots != domain.NumDays*domain.NumSlots {
		t.Errorf("total slots = %d, want %d", r.TotalSlots, domain.NumDays*domain.NumSlots)
	}
}

func TestBuild_EmployeesSortedByKey(t *testing.T) {
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 4, MaxHours: 10, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Zara", Roles: []string{"marketing"}, TargetHours: 4, MaxHours: 8, Year: 1, Available: fullAvailability()},
			{Name: "Amir", Roles: []string{"marketing"}, TargetHours: 4, MaxHours: 8, Year: 1, Available: fullAvailability()},
		},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := domain.Precompute(n)
	g := solve.NewGrid(n, p)
	r := Build(n, g)
	if len(r.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(r.Employees))
	}
	if r.Employees[0].EmployeeKey != "amir" || r.Employees[1].EmployeeKey != "zara" {
		t.Errorf("employees not sorted by key: %v", r.Employees)
	}
}
