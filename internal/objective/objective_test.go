package objective

import (
	"testing"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/modelbuild"
)

func TestScaledMult(t *testing.T) {
	cases := []struct {
		mult float64
		want int
	}{
		{1.5, 15},
		{2.0, 20},
		{0.0, 0},
		{-1.0, 0}, // negative multipliers clamp to 0
		{1.25, 12},
	}
	for _, c := range cases {
		if got := ScaledMult(c.mult); got != c.want {
			t.Errorf("ScaledMult(%v) = %d, want %d", c.mult, got, c.want)
		}
	}
}

func TestYearMultTenths(t *testing.T) {
	cases := map[int]int{1: 10, 2: 12, 3: 15, 4: 20, 99: 10}
	for year, want := range cases {
		if got := YearMultTenths(year); got != want {
			t.Errorf("YearMultTenths(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestFaceWeights_Defaults(t *testing.T) {
	cfg := config.Default()
	w := FaceWeights(cfg)
	if w["fd_coverage"] != 10000 {
		t.Errorf("fd_coverage default = %d, want 10000", w["fd_coverage"])
	}
	if w["equality_penalty"] != 200 {
		t.Errorf("equality_penalty default = %d, want 200", w["equality_penalty"])
	}
}

func TestFaceWeights_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.WeightOverrides = map[string]int{"fd_coverage": 1}
	w := FaceWeights(cfg)
	if w["fd_coverage"] != 1 {
		t.Errorf("fd_coverage override not applied, got %d", w["fd_coverage"])
	}
	if w["office_coverage"] != 150 {
		t.Errorf("unrelated default should be untouched, got %d", w["office_coverage"])
	}
}

func TestWeightTable_PreScaled(t *testing.T) {
	cfg := config.Default()
	face := FaceWeights(cfg)
	scaled := WeightTable(cfg)
	for k, v := range face {
		if scaled[k] != v*Scale {
			t.Errorf("%s: scaled = %d, want %d*%d", k, scaled[k], v, Scale)
		}
	}
}

func TestCompose_AddsObjectiveTerms(t *testing.T) {
	n, p, cfg := tinyNormalized(t)
	res := modelbuild.Build(n, p, cfg)
	Compose(n, p, cfg, res)
	if len(res.Model.Objective) == 0 {
		t.Fatal("Compose should add at least one objective term")
	}
}

// tinyNormalized builds a minimal validated, precomputed bundle: one
// front-desk-qualified employee, one department, full availability.
func tinyNormalized(t *testing.T) (*domain.Normalized, *domain.Precomputed, *config.Config) {
	t.Helper()
	var avail [domain.NumDays][domain.NumSlots]bool
	for d := 0; d < domain.NumDays; d++ {
		for s := 0; s < domain.NumSlots; s++ {
			avail[d][s] = true
		}
	}
	in := domain.Inputs{
		FrontDeskRole: "front_desk",
		Departments:   []domain.DepartmentRecord{{Name: "marketing", TargetHours: 4, MaxHours: 8, Order: 0}},
		Staff: []domain.StaffRecord{
			{Name: "Alice", Roles: []string{"front_desk", "marketing"}, TargetHours: 10, MaxHours: 12, Year: 2, Available: avail},
		},
	}
	n, err := domain.ValidateInputs(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := domain.Precompute(n)
	return n, p, config.Default()
}
