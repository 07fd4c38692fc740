package domain

import "testing"

func TestPrecompute_AvailabilitySlots(t *testing.T) {
	in := baseInputs()
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := Precompute(n)
	for _, e := range n.Employees {
		if got, want := p.AvailabilitySlots[e.Key], NumDays*NumSlots; got != want {
			t.Errorf("%s: availability slots = %d, want %d (fully available)", e.Key, got, want)
		}
	}
}

func TestPrecompute_FeasibleStartSlots_ExcludesShortRuns(t *testing.T) {
	in := baseInputs()
	// Leave Alice a single 1-hour (2-slot) island on Monday, surrounded by
	// unavailability; below MIN_SLOTS (4), so it must not appear.
	for t := 0; t < NumSlots; t++ {
		in.Staff[0].Available[Mon][t] = t == 5 || t == 6
	}
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := Precompute(n)
	slots := p.FeasibleStartSlots["alice"][Mon]
	if len(slots) != 0 {
		t.Errorf("expected no feasible start slots for a 2-slot island, got %v", slots)
	}
}

func TestPrecompute_FeasibleStartSlots_IncludesLongRun(t *testing.T) {
	in := baseInputs()
	for t := 0; t < NumSlots; t++ {
		in.Staff[0].Available[Mon][t] = t >= 2 && t < 10 // 8-slot run
	}
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := Precompute(n)
	slots := p.FeasibleStartSlots["alice"][Mon]
	if len(slots) != 8 {
		t.Fatalf("expected 8 feasible slots within the run, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s < 2 || s >= 10 {
			t.Errorf("feasible slot %d falls outside the available run", s)
		}
	}
}

func TestPrecompute_FrontDeskGaps(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Available[Mon][0] = false // Alice is the only FD-qualified employee
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := Precompute(n)
	found := false
	for _, gap := range p.FrontDeskGaps {
		if gap[0] == int(Mon) && gap[1] == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected (Mon, 0) in front-desk gaps, got %v", p.FrontDeskGaps)
	}
}

func TestPrecompute_MinDeptSize(t *testing.T) {
	in := baseInputs()
	in.Staff[0].Roles = []string{"front_desk", "marketing", "events"}
	n, err := ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := Precompute(n)
	// Alice qualifies for marketing (size 1) and events (size 2); min is 1.
	if got := p.MinDeptSize["alice"]; got != 1 {
		t.Errorf("alice min dept size = %d, want 1", got)
	}
	// Bob only qualifies for events (size 2).
	if got := p.MinDeptSize["bob"]; got != 2 {
		t.Errorf("bob min dept size = %d, want 2", got)
	}
}
