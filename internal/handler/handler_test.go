package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/diagnosticslog"
)

func newTestHandler(t *testing.T) *ScheduleHandler {
	t.Helper()
	cfg := config.Default()
	cfg.SolverMaxTime = 100 * time.Millisecond
	return NewScheduleHandler(cfg, &diagnosticslog.Sink{})
}

func fullAvailabilityRows() [][]bool {
	rows := make([][]bool, 5)
	for d := range rows {
		row := make([]bool, 18)
		for t := range row {
			row[t] = true
		}
		rows[d] = row
	}
	return rows
}

func TestScheduleHandler_Solve_HappyPath(t *testing.T) {
	h := newTestHandler(t)
	body := SolveRequest{
		FrontDeskRole: "front_desk",
		Staff: []StaffInput{
			{Name: "Alice", Roles: []string{"front_desk"}, TargetHours: 10, MaxHours: 15, Year: 2, Available: fullAvailabilityRows()},
			{Name: "Bob", Roles: []string{"marketing"}, TargetHours: 6, MaxHours: 10, Year: 1, Available: fullAvailabilityRows()},
		},
		Departments: []DepartmentInput{{Name: "marketing", TargetHours: 6, MaxHours: 10}},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(buf))
	w := httptest.NewRecorder()

	h.Solve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["Status"] == nil && resp["status"] == nil {
		t.Errorf("expected a status field in response: %v", resp)
	}
}

func TestScheduleHandler_Solve_RejectsNonPost(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/solve", nil)
	w := httptest.NewRecorder()

	h.Solve(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-POST", w.Code)
	}
}

func TestScheduleHandler_Solve_RejectsMalformedJSON(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	h.Solve(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", w.Code)
	}
}

func TestScheduleHandler_Solve_RejectsInvalidDomainInput(t *testing.T) {
	h := newTestHandler(t)
	body := SolveRequest{
		FrontDeskRole: "front_desk",
		Staff: []StaffInput{
			{Name: "Alice", Roles: []string{"unknown_department"}, TargetHours: 5, MaxHours: 10, Year: 1, Available: fullAvailabilityRows()},
		},
	}
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(buf))
	w := httptest.NewRecorder()

	h.Solve(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an unknown department role, body=%s", w.Code, w.Body.String())
	}
}

func TestScheduleHandler_Catalog(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	w := httptest.NewRecorder()

	h.Catalog(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp["hard_constraints"]; !ok {
		t.Error("expected hard_constraints key in catalog response")
	}
	if _, ok := resp["soft_terms"]; !ok {
		t.Error("expected soft_terms key in catalog response")
	}
}
