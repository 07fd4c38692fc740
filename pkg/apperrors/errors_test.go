package apperrors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew_SetsHTTPStatusByCode(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput:               http.StatusBadRequest,
		CodeInfeasible:                 http.StatusUnprocessableEntity,
		CodeResourceLimit:              http.StatusUnprocessableEntity,
		CodeInternalInvariantViolation: http.StatusOK,
		CodeUnknown:                    http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := New(code, "msg").HTTPStatus; got != want {
			t.Errorf("New(%s).HTTPStatus = %d, want %d", code, got, want)
		}
	}
}

func TestAppError_ErrorIncludesCauseWhenSet(t *testing.T) {
	base := errors.New("root cause")
	err := Wrap(base, CodeInternal, "wrapping failed")
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty error string")
	}
	if !errors.Is(err.Unwrap(), base) {
		t.Error("Unwrap should return the wrapped cause")
	}
}

func TestWithDetailsCauseField_FluentBuilders(t *testing.T) {
	base := errors.New("boom")
	err := New(CodeInvalidInput, "bad").
		WithDetails("extra context").
		WithCause(base).
		WithField("entity", "staff[3]")
	if err.Details != "extra context" {
		t.Errorf("Details = %q", err.Details)
	}
	if err.Cause != base {
		t.Error("Cause not set by WithCause")
	}
	if err.Fields["entity"] != "staff[3]" {
		t.Errorf("Fields[entity] = %v", err.Fields["entity"])
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := InvalidInput("staff[2].roles", "unknown department")
	if !Is(err, CodeInvalidInput) {
		t.Error("Is should report true for matching code")
	}
	if Is(err, CodeInfeasible) {
		t.Error("Is should report false for mismatched code")
	}
	if GetCode(err) != CodeInvalidInput {
		t.Errorf("GetCode = %s, want %s", GetCode(err), CodeInvalidInput)
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode on a non-AppError should return CodeUnknown")
	}
}

func TestConstructors_ProduceExpectedCodes(t *testing.T) {
	if c := Infeasible("no feasible assignment").Code; c != CodeInfeasible {
		t.Errorf("Infeasible code = %s", c)
	}
	if c := ResourceLimit(30).Code; c != CodeResourceLimit {
		t.Errorf("ResourceLimit code = %s", c)
	}
	if c := InternalInvariantViolation("contiguity", "gap at slot 4").Code; c != CodeInternalInvariantViolation {
		t.Errorf("InternalInvariantViolation code = %s", c)
	}
}
