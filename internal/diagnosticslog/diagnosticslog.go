// Package diagnosticslog is an optional, write-only audit sink for
// Infeasible and InvalidInput solve outcomes. The scheduler core itself
// is a pure batch transform with no persistent store, so this package
// never reads a row back — it exists only so
// an operator can later ask "why did Tuesday's run fail" without
// grepping logs. Disabled (a no-op) whenever cfg.DiagnosticsDSN is
// empty, which is the default.
package diagnosticslog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/pkg/apperrors"
	"github.com/careerdesk/staffsched/pkg/logger"
)

// Sink appends outcome records to a Postgres table. A nil or disabled
// Sink's methods are no-ops.
type Sink struct {
	db *sql.DB
}

// Open connects to cfg.DiagnosticsDSN, or returns a disabled Sink (nil
// *sql.DB) when the DSN is empty. The caller should defer Sink.Close.
func Open(cfg *config.Config) (*Sink, error) {
	if cfg.DiagnosticsDSN == "" {
		return &Sink{}, nil
	}
	db, err := sql.Open("postgres", cfg.DiagnosticsDSN)
	if err != nil {
		return nil, fmt.Errorf("diagnosticslog: open: %w", err)
	}
	return &Sink{db: db}, nil
}

// Close releases the underlying connection pool, if any.
func (s *Sink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// EnsureSchema creates the diagnostics table if it does not already
// exist. A no-op on a disabled Sink.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	const ddl = `
		CREATE TABLE IF NOT EXISTS solve_diagnostics (
			run_id     TEXT PRIMARY KEY,
			code       TEXT NOT NULL,
			message    TEXT NOT NULL,
			details    JSONB,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// RecordAppError appends one Infeasible/InvalidInput outcome. Write
// failures are logged, not returned — a broken diagnostics sink must
// never fail the caller's actual solve.
func (s *Sink) RecordAppError(ctx context.Context, runID string, err *apperrors.AppError) {
	if s == nil || s.db == nil || err == nil {
		return
	}
	details, marshalErr := json.Marshal(err.Fields)
	if marshalErr != nil {
		details = []byte("{}")
	}
	const query = `
		INSERT INTO solve_diagnostics (run_id, code, message, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (run_id) DO NOTHING
	`
	if _, execErr := s.db.ExecContext(ctx, query, runID, string(err.Code), err.Message, details, time.Now()); execErr != nil {
		logger.WithError(execErr).Str("run_id", runID).Msg("diagnosticslog: failed to record outcome")
	}
}
