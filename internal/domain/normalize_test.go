package domain

import "testing"

// fullAvailability returns a staff record's Available grid with every
// (day, slot) marked free.
func fullAvailability() [NumDays][NumSlots]bool {
	var a [NumDays][NumSlots]bool
	for d := 0; d < NumDays; d++ {
		for t := 0; t < NumSlots; t++ {
			a[d][t] = true
		}
	}
	return a
}

func baseInputs() Inputs {
	return Inputs{
		FrontDeskRole: "Front Desk",
		Departments: []DepartmentRecord{
			{Name: "Marketing", TargetHours: 10, MaxHours: 20, Order: 0},
			{Name: "Events", TargetHours: 5, MaxHours: 15, Order: 1},
		},
		Staff: []StaffRecord{
			{Name: "Alice", Roles: []string{"Front Desk", "Marketing"}, TargetHours: 10, MaxHours: 12, Year: 2, Available: fullAvailability()},
			{Name: "Bob", Roles: []string{"Events"}, TargetHours: 8, MaxHours: 10, Year: 1, Available: fullAvailability()},
		},
	}
}

func TestValidateInputs_HappyPath(t *testing.T) {
	n, err := ValidateInputs(baseInputs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.FrontDeskRole != "front_desk" {
		t.Errorf("front desk role = %q, want front_desk", n.FrontDeskRole)
	}
	if len(n.Employees) != 2 {
		t.Fatalf("want 2 employees, got %d", len(n.Employees))
	}
	if len(n.Departments) != 2 {
		t.Fatalf("want 2 departments, got %d", len(n.Departments))
	}
	alice := n.EmployeeByKey["alice"]
	if alice == nil {
		t.Fatal("expected employee key 'alice'")
	}
	if !alice.IsQualified("front_desk") || !alice.IsQualified("marketing") {
		t.Errorf("alice qualifications not normalized correctly: %+v", alice.Qualified)
	}
	if alice.TargetSlots != 20 || alice.MaxSlots != 24 {
		t.Errorf("alice slots = target %d max %d, want 20/24", alice.TargetSlots, alice.MaxSlots)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Front Desk":    "front_desk",
		"  marketing  ": "marketing",
		"Multi   Word":  "multi_word",
		"under_score":   "under_score",
		"UPPER":         "upper",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateInputs_DuplicateEmployee(t *testing.T) {
	in := baseInputs()
	in.Staff = append(in.Staff, StaffRecord{Name: "alice", Roles: []string{"events"}, TargetHours: 5, MaxHours: 5, Year: 1, Available: fullAvailability()})
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error for duplicate employee name")
	}
}

func TestValidateInputs_TargetAboveMaxIsClamped(t *testing.T) {
	in := baseInputs()
	in.Staff[0].TargetHours = 30
	in.Staff[0].MaxHours = 12
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice := n.EmployeeByKey["alice"]
	if alice.TargetSlots != alice.MaxSlots {
		t.Errorf("target slots = %d, want clamped to max %d", alice.TargetSlots, alice.MaxSlots)
	}
	if alice.MaxSlots != 24 {
		t.Errorf("max slots = %d, want 24", alice.MaxSlots)
	}
}

func TestValidateInputs_DepartmentTargetExceedsMaxRejected(t *testing.T) {
	in := baseInputs()
	in.Departments[0].TargetHours = 25
	in.Departments[0].MaxHours = 20
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error when a department's target_hours exceeds max_hours")
	}
}

func TestValidateInputs_UnknownDepartmentInRoles(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Roles = append(in.Staff[0].Roles, "Accounting")
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error for a qualification naming a department with no requirements row")
	}
}

func TestValidateInputs_DepartmentWithNoQualifiedEmployeeIsDropped(t *testing.T) {
	in := baseInputs()
	in.Departments = append(in.Departments, DepartmentRecord{Name: "Orphan", TargetHours: 1, MaxHours: 2, Order: 2})
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: a requirements row with no matching role is ignored, not rejected: %v", err)
	}
	if len(n.Departments) != 2 {
		t.Fatalf("want 2 departments after dropping the orphan, got %d", len(n.Departments))
	}
	if _, ok := n.DepartmentByName["orphan"]; ok {
		t.Error("dropped department must also leave DepartmentByName")
	}
}

func TestValidateInputs_TimesetOverlapsUnavailability(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Available[Mon][0] = false
	in.Timesets = []TimesetRecord{
		{EmployeeName: "Alice", Day: Mon, Department: "Marketing", Start: 0, End: 4},
	}
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error for a timeset overlapping unavailability")
	}
}

func TestValidateInputs_TimesetExceedsMaxHours(t *testing.T) {
	in := baseInputs()
	in.Staff[0].MaxHours = 2 // 4 slots
	in.Timesets = []TimesetRecord{
		{EmployeeName: "Alice", Day: Mon, Department: "Marketing", Start: 0, End: 4},
		{EmployeeName: "Alice", Day: Tue, Department: "Marketing", Start: 0, End: 4},
	}
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error when cumulative timeset length exceeds max_hours")
	}
}

func TestValidateInputs_TimesetUnknownEmployee(t *testing.T) {
	in := baseInputs()
	in.Timesets = []TimesetRecord{{EmployeeName: "Carol", Day: Mon, Department: "Marketing", Start: 0, End: 4}}
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error for an unknown employee in a timeset")
	}
}

func TestValidateInputs_TrainingSamePerson(t *testing.T) {
	in := baseInputs()
	in.Training = []TrainingRecord{{Department: "Marketing", Employee1: "Alice", Employee2: "Alice"}}
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error for a training pair naming the same person twice")
	}
}

func TestValidateInputs_TrainingUnqualifiedTrainee(t *testing.T) {
	in := baseInputs()
	in.Training = []TrainingRecord{{Department: "Events", Employee1: "Alice", Employee2: "Bob"}}
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error when a trainee is not qualified for the requested department")
	}
}

func TestValidateInputs_TrainingGoalSlots(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Roles = []string{"front_desk", "events"}
	in.Staff[0].TargetHours = 10
	in.Staff[1].TargetHours = 10
	in.Training = []TrainingRecord{{Department: "Events", Employee1: "Alice", Employee2: "Bob"}}
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Training) != 1 {
		t.Fatalf("want 1 training request, got %d", len(n.Training))
	}
	// min(target) = 20 slots; floor(0.35*20) = 7, clamped into [2, 20].
	if got, want := n.Training[0].GoalSlots, 7; got != want {
		t.Errorf("goal slots = %d, want %d", got, want)
	}
}

func TestValidateInputs_FavoredEmployeeDeptRequiresQualification(t *testing.T) {
	in := baseInputs()
	in.Favors.EmployeeDepartments = []FavoredEmployeeDeptRecord{{Employee: "Alice", Department: "Events", Multiplier: 1.5}}
	if _, err := ValidateInputs(in); err == nil {
		t.Fatal("expected an error for an unqualified favored employee-department pair")
	}
}

func TestValidateInputs_PrimaryDepartment(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Roles = []string{"front_desk", "marketing", "events"}
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Events has two qualified employees (Alice and Bob) and marketing
	// has one (Alice), so marketing wins as the smaller department.
	if got := n.PrimaryDepartment["alice"]; got != "marketing" {
		t.Errorf("alice's primary department = %q, want marketing", got)
	}
	if got := n.PrimaryDepartment["bob"]; got != "events" {
		t.Errorf("bob's primary department = %q, want events", got)
	}
}

func TestValidateInputs_FrontDeskOnlyEmployeeHasNoPrimaryDepartment(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Roles = []string{"front_desk"}
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.PrimaryDepartment["alice"]; got != "" {
		t.Errorf("front-desk-only employee should have no primary department, got %q", got)
	}
}
