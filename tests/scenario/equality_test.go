package scenario

import (
	"testing"

	"github.com/careerdesk/staffsched/internal/domain"
)

// TestEqualityRequestBalancesDepartmentSlots covers the equality request:
// with identical targets and availability, the pair ends up with equal
// event-slot counts and a zero equality penalty; the term always matches
// -200 per slot of difference.
func TestEqualityRequestBalancesDepartmentSlots(t *testing.T) {
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "events", TargetHours: 8, MaxHours: 20, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Frank", Roles: []string{"front_desk"}, TargetHours: 10, MaxHours: 16, Year: 4, Available: fullAvail()},
			{Name: "Dan", Roles: []string{"events"}, TargetHours: 6, MaxHours: 10, Year: 2, Available: fullAvail()},
			{Name: "Eva", Roles: []string{"events"}, TargetHours: 6, MaxHours: 10, Year: 2, Available: fullAvail()},
		},
		Equality: []domain.EqualityRecord{{Department: "events", Employee1: "Dan", Employee2: "Eva"}},
	}

	out := solveOrFail(t, in, fastCfg())
	if out.Status != "ok" {
		t.Fatalf("status = %q, want ok (violations: %v)", out.Status, out.Schedule.Violations)
	}

	danSlots := deptSlots(out.Schedule, "dan", "events")
	evaSlots := deptSlots(out.Schedule, "eva", "events")
	t.Logf("events slots: dan=%d eva=%d", danSlots, evaSlots)

	diff := danSlots - evaSlots
	if diff < 0 {
		diff = -diff
	}
	if got, want := out.Schedule.ObjectiveByTerm["equality_penalty"], -200*diff; got != want {
		t.Errorf("equality_penalty term = %d, want %d", got, want)
	}
	if diff != 0 {
		t.Errorf("|dan - eva| = %d event slots, want 0 given identical targets and availability", diff)
	}
}

// TestEqualityRejectsSamePerson mirrors the normalizer's distinctness rule.
func TestEqualityRejectsSamePerson(t *testing.T) {
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "events", TargetHours: 4, MaxHours: 10, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Frank", Roles: []string{"front_desk", "events"}, TargetHours: 10, MaxHours: 16, Year: 4, Available: fullAvail()},
		},
		Equality: []domain.EqualityRecord{{Department: "events", Employee1: "Frank", Employee2: "frank"}},
	}
	if _, err := domain.ValidateInputs(in); err == nil {
		t.Fatal("expected a validation error for an equality pair naming the same person")
	}
}
