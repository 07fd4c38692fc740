// Package schedule is the top-level entrypoint tying every pipeline
// stage together: validate, precompute, check feasibility, build the
// declarative model (for shape-fidelity logging only), construct and
// improve a concrete grid, post-validate it, score it, and summarize it.
// It is the library surface internal/handler calls into; cmd/scheduler
// reaches it through internal/handler.
package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careerdesk/staffsched/internal/catalog"
	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/modelbuild"
	"github.com/careerdesk/staffsched/internal/objective"
	"github.com/careerdesk/staffsched/internal/progress"
	"github.com/careerdesk/staffsched/internal/report"
	"github.com/careerdesk/staffsched/internal/solve"
	"github.com/careerdesk/staffsched/pkg/apperrors"
	"github.com/careerdesk/staffsched/pkg/logger"
)

// Assignment is one employee's worked block, in the shape a caller
// reports back to staff.
type Assignment struct {
	EmployeeKey string     `json:"employee_key"`
	Day         domain.Day `json:"day"`
	Role        string     `json:"role"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	Forced      bool       `json:"forced"`
}

// Schedule is one completed solve's concrete output.
type Schedule struct {
	RunID       string       `json:"run_id"`
	Assignments []Assignment `json:"assignments"`
	Objective   int          `json:"objective"`
	ObjectiveByTerm map[string]int `json:"objective_by_term"`
	Report      *report.Report `json:"report"`
	Violations  []string     `json:"violations,omitempty"`
}

// Outcome is the full result of a Solve call: either a Schedule (status
// "ok" or "ok_with_violations") or an *apperrors.AppError of code
// CodeInfeasible carrying diagnostics.
type Outcome struct {
	Status   string // "ok", "ok_with_violations", "infeasible"
	Schedule *Schedule
	Diagnostics *solve.Diagnostics
}

// Solve runs the full pipeline over in and returns an
// Outcome, or an *apperrors.AppError for invalid input. A resource-limit
// timeout under ctx's deadline or cfg.SolverMaxTime still returns a
// Schedule — the construct phase always finishes; only the local-search
// improvement pass is time-bounded.
func Solve(ctx context.Context, in domain.Inputs, cfg *config.Config) (*Outcome, error) {
	runID := uuid.New().String()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.NewSolverLogger()

	n, err := domain.ValidateInputs(in)
	if err != nil {
		return nil, err
	}
	p := domain.Precompute(n)

	log.StartSolve(runID, len(n.Employees), len(n.Departments))

	diag := solve.CheckFeasibility(n, p, cfg)
	if !diag.Empty() {
		log.SolveComplete(runID, "infeasible", 0, 0)
		return &Outcome{Status: "infeasible", Diagnostics: diag},
			apperrors.Infeasible("no feasible schedule exists for the given inputs").WithField("diagnostics", diag)
	}

	// Declare the model for shape-fidelity/constraint-count logging only;
	// internal/solve never searches it (see internal/solve's doc comment).
	res := modelbuild.Build(n, p, cfg)
	objective.Compose(n, p, cfg, res)
	log.ConstraintsBuilt("total", len(res.Model.Constraints))

	var reporter *progress.Reporter
	start := time.Now()
	deadline := start.Add(cfg.SolverMaxTime)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if cfg.ShowProgress {
		reporter = progress.NewReporter(log, func() float64 {
			elapsed := time.Since(start)
			total := deadline.Sub(start)
			if total <= 0 {
				return 1
			}
			pct := float64(elapsed) / float64(total)
			if pct > 1 {
				pct = 1
			}
			return pct
		})
		reporter.Start()
	}

	g := solve.ConstructInitial(n, p, cfg)
	solve.Improve(g, n, p, cfg, deadline)

	if reporter != nil {
		reporter.Stop()
	}

	violations := solve.Validate(g, n, p, cfg)
	for _, v := range violations {
		log.InvariantViolation("post_validate", v)
	}

	score := solve.ScoreGrid(n, p, cfg, g)
	rep := report.Build(n, g)
	assignments := extractAssignments(n, g)

	status := "ok"
	if len(violations) > 0 {
		status = "ok_with_violations"
	}

	sched := &Schedule{
		RunID:           runID,
		Assignments:     assignments,
		Objective:       score.Total,
		ObjectiveByTerm: score.ByTerm,
		Report:          rep,
		Violations:      violations,
	}
	log.SolveComplete(runID, status, score.Total, time.Since(start))

	return &Outcome{Status: status, Schedule: sched}, nil
}

func extractAssignments(n *domain.Normalized, g *solve.Grid) []Assignment {
	var out []Assignment
	for _, e := range n.Employees {
		for d := 0; d < domain.NumDays; d++ {
			day := domain.Day(d)
			for _, b := range g.Blocks[e.Key][day] {
				out = append(out, Assignment{
					EmployeeKey: e.Key,
					Day:         day,
					Role:        b.Role,
					Start:       b.Start,
					End:         b.End,
					Forced:      b.Forced,
				})
			}
		}
	}
	return out
}

// Catalog returns every hard constraint and soft objective term this
// engine implements, for a caller wanting to describe its own behavior.
func Catalog() ([]catalog.Definition, []catalog.Definition) {
	return catalog.HardConstraints(), catalog.SoftTerms()
}
