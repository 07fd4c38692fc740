// Package handler exposes the scheduler over HTTP: one endpoint that
// decodes a JSON staffing request, runs internal/schedule.Solve, and
// writes back a Schedule or a structured error.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/careerdesk/staffsched/internal/catalog"
	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/diagnosticslog"
	"github.com/careerdesk/staffsched/internal/domain"
	"github.com/careerdesk/staffsched/internal/schedule"
	"github.com/careerdesk/staffsched/pkg/apperrors"
	"github.com/careerdesk/staffsched/pkg/logger"
)

// ScheduleHandler serves the solve endpoint. sink is optional (see
// internal/diagnosticslog.Open) and may be a disabled no-op Sink.
type ScheduleHandler struct {
	cfg  *config.Config
	sink *diagnosticslog.Sink
}

// NewScheduleHandler builds a handler bound to cfg and an optional
// diagnostics sink. Pass a disabled Sink (diagnosticslog.Open with an
// empty DSN) when no audit trail is wanted.
func NewScheduleHandler(cfg *config.Config, sink *diagnosticslog.Sink) *ScheduleHandler {
	return &ScheduleHandler{cfg: cfg, sink: sink}
}

// StaffInput is one staff record.
type StaffInput struct {
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	TargetHours float64  `json:"target_hours"`
	MaxHours    float64  `json:"max_hours"`
	Year        int      `json:"year"`
	// Available lists, per weekday (Mon..Fri, 5 entries), the 18
	// half-hour slots (08:00-17:00) the employee is free, true meaning
	// available. A missing day or slot is treated as unavailable.
	Available [][]bool `json:"available"`
}

// DepartmentInput is one department record.
type DepartmentInput struct {
	Name        string  `json:"name"`
	TargetHours float64 `json:"target_hours"`
	MaxHours    float64 `json:"max_hours"`
}

// TimesetInput forces one (employee, day, department, [start,end)) block.
type TimesetInput struct {
	Employee   string `json:"employee"`
	Day        string `json:"day"` // "Mon".."Fri"
	Department string `json:"department"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// PairInput names two employees in one department, for a training goal or
// an equality request.
type PairInput struct {
	Department string `json:"department"`
	Employee1  string `json:"employee1"`
	Employee2  string `json:"employee2"`
}

// FavorsInput bundles every soft-favor request stream.
type FavorsInput struct {
	Employees []struct {
		Employee   string  `json:"employee"`
		Multiplier float64 `json:"multiplier"`
	} `json:"employees,omitempty"`
	Departments []struct {
		Department string  `json:"department"`
		Multiplier float64 `json:"multiplier"`
	} `json:"departments,omitempty"`
	FrontDeskDepartments []struct {
		Department string  `json:"department"`
		Multiplier float64 `json:"multiplier"`
	} `json:"front_desk_departments,omitempty"`
	EmployeeDepartments []struct {
		Employee   string  `json:"employee"`
		Department string  `json:"department"`
		Multiplier float64 `json:"multiplier"`
	} `json:"employee_departments,omitempty"`
	ShiftTimePreferences []struct {
		Employee string `json:"employee"`
		Day      string `json:"day"`
		Half     string `json:"half"` // "morning" or "afternoon"
	} `json:"shift_time_preferences,omitempty"`
}

// SolveRequest is the solve endpoint's full request body.
type SolveRequest struct {
	FrontDeskRole string            `json:"front_desk_role"`
	Staff         []StaffInput      `json:"staff"`
	Departments   []DepartmentInput `json:"departments"`
	Timesets      []TimesetInput    `json:"timesets,omitempty"`
	Training      []PairInput       `json:"training,omitempty"`
	Equality      []PairInput       `json:"equality,omitempty"`
	Favors        FavorsInput       `json:"favors,omitempty"`
}

var dayIndex = map[string]domain.Day{
	"Mon": domain.Mon, "Tue": domain.Tue, "Wed": domain.Wed,
	"Thu": domain.Thu, "Fri": domain.Fri,
}

// Solve handles POST /v1/solve: decode, run the pipeline, respond.
func (h *ScheduleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed").WithDetails("use POST"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.InvalidInput("request body", "malformed JSON").WithCause(err))
		return
	}

	in, convErr := toDomainInputs(req)
	if convErr != nil {
		if appErr, ok := convErr.(*apperrors.AppError); ok {
			respondError(w, appErr)
		} else {
			respondError(w, apperrors.Wrap(convErr, apperrors.CodeInvalidInput, "invalid request"))
		}
		return
	}

	outcome, err := schedule.Solve(r.Context(), in, h.cfg)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			if outcome != nil && outcome.Schedule != nil {
				h.sink.RecordAppError(r.Context(), outcome.Schedule.RunID, appErr)
			} else {
				h.sink.RecordAppError(r.Context(), "", appErr)
			}
			respondError(w, appErr)
			return
		}
		logger.WithError(err).Msg("handler: unexpected solve error")
		respondError(w, apperrors.Wrap(err, apperrors.CodeInternal, "internal error"))
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// Catalog handles GET /v1/catalog: the static hard-constraint/soft-term
// listing, for a caller describing the engine's own behavior.
func (h *ScheduleHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	hard, soft := catalog.HardConstraints(), catalog.SoftTerms()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hard_constraints": hard,
		"soft_terms":       soft,
	})
}

func toDomainInputs(req SolveRequest) (domain.Inputs, error) {
	in := domain.Inputs{FrontDeskRole: req.FrontDeskRole}

	for _, s := range req.Staff {
		rec := domain.StaffRecord{
			Name:        s.Name,
			Roles:       s.Roles,
			TargetHours: s.TargetHours,
			MaxHours:    s.MaxHours,
			Year:        s.Year,
		}
		for d := 0; d < len(s.Available) && d < domain.NumDays; d++ {
			for t := 0; t < len(s.Available[d]) && t < domain.NumSlots; t++ {
				rec.Available[d][t] = s.Available[d][t]
			}
		}
		in.Staff = append(in.Staff, rec)
	}

	for i, d := range req.Departments {
		in.Departments = append(in.Departments, domain.DepartmentRecord{
			Name:        d.Name,
			TargetHours: d.TargetHours,
			MaxHours:    d.MaxHours,
			Order:       i,
		})
	}

	for _, ts := range req.Timesets {
		day, ok := dayIndex[ts.Day]
		if !ok {
			return in, apperrors.InvalidInput("timeset.day", "unrecognized weekday "+ts.Day)
		}
		in.Timesets = append(in.Timesets, domain.TimesetRecord{
			EmployeeName: ts.Employee,
			Day:          day,
			Department:   ts.Department,
			Start:        ts.Start,
			End:          ts.End,
		})
	}

	for _, tr := range req.Training {
		in.Training = append(in.Training, domain.TrainingRecord{
			Department: tr.Department,
			Employee1:  tr.Employee1,
			Employee2:  tr.Employee2,
		})
	}

	for _, eq := range req.Equality {
		in.Equality = append(in.Equality, domain.EqualityRecord{
			Department: eq.Department,
			Employee1:  eq.Employee1,
			Employee2:  eq.Employee2,
		})
	}

	for _, fe := range req.Favors.Employees {
		in.Favors.Employees = append(in.Favors.Employees, domain.FavoredEmployeeRecord{
			Employee: fe.Employee, Multiplier: fe.Multiplier,
		})
	}
	for _, fd := range req.Favors.Departments {
		in.Favors.Departments = append(in.Favors.Departments, domain.FavoredDepartmentRecord{
			Department: fd.Department, Multiplier: fd.Multiplier,
		})
	}
	for _, ff := range req.Favors.FrontDeskDepartments {
		in.Favors.FrontDeskDepartments = append(in.Favors.FrontDeskDepartments, domain.FavoredFrontDeskDeptRecord{
			Department: ff.Department, Multiplier: ff.Multiplier,
		})
	}
	for _, fed := range req.Favors.EmployeeDepartments {
		in.Favors.EmployeeDepartments = append(in.Favors.EmployeeDepartments, domain.FavoredEmployeeDeptRecord{
			Employee: fed.Employee, Department: fed.Department, Multiplier: fed.Multiplier,
		})
	}
	for _, sp := range req.Favors.ShiftTimePreferences {
		day, ok := dayIndex[sp.Day]
		if !ok {
			return in, apperrors.InvalidInput("shift_time_preference.day", "unrecognized weekday "+sp.Day)
		}
		half := domain.Morning
		if sp.Half == "afternoon" {
			half = domain.Afternoon
		}
		in.Favors.ShiftTimePreferences = append(in.Favors.ShiftTimePreferences, domain.ShiftTimePreferenceRecord{
			Employee: sp.Employee, Day: day, Half: half,
		})
	}

	return in, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
		"fields":  err.Fields,
	})
}
