// Package config loads the scheduler's runtime options (solver_max_time,
// enforce_min_dept_block, min_slots, max_slots, per-term weight overrides,
// dept_hour_threshold, target_hard_delta, favor_employee_dept_bonus,
// show_progress), read from environment variables with built-in defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full set of options a single solve invocation accepts.
type Config struct {
	// SolverMaxTime bounds the wall-clock budget handed to the solver
	// driver.
	SolverMaxTime time.Duration

	// EnforceMinDeptBlock enables the non-FD department minimum block
	// length and the cross-department split restriction. On by default;
	// set false to let a day's shift split across departments.
	EnforceMinDeptBlock bool

	// MinSlots/MaxSlots override MIN_SLOTS/MAX_SLOTS (default 4/8).
	MinSlots int
	MaxSlots int

	// FavoredMinSlots/FavoredMaxSlots override the favored variants
	// (default 4/16).
	FavoredMinSlots int
	FavoredMaxSlots int

	// DeptHourThreshold is the "large department deviation" threshold in
	// hours (default 4).
	DeptHourThreshold int

	// TargetHardDeltaHours is TARGET_HARD_DELTA_HOURS (default 5).
	TargetHardDeltaHours int

	// FavorEmployeeDeptBonus overrides the favored employee-department
	// per-slot bonus weight (default 50).
	FavorEmployeeDeptBonus int

	// WeightOverrides merges over the named default objective weights
	// keyed by the term names internal/objective.FaceWeights uses.
	WeightOverrides map[string]int

	// ShowProgress enables the optional progress-reporter task.
	ShowProgress bool

	// LogLevel/LogFormat configure pkg/logger.
	LogLevel  string
	LogFormat string

	// DiagnosticsDSN, when non-empty, enables the optional Postgres
	// diagnostics audit sink (internal/diagnosticslog). Empty (the
	// default) keeps the core a pure, non-persistent library.
	DiagnosticsDSN string
}

// UniversalMaximumHours is the hard ceiling on any employee's weekly hours
//.
const UniversalMaximumHours = 19

// Default returns the engine defaults.
func Default() *Config {
	return &Config{
		SolverMaxTime:          180 * time.Second,
		EnforceMinDeptBlock:    true,
		MinSlots:               4,
		MaxSlots:               8,
		FavoredMinSlots:        4,
		FavoredMaxSlots:        16,
		DeptHourThreshold:      4,
		TargetHardDeltaHours:   5,
		FavorEmployeeDeptBonus: 50,
		WeightOverrides:        map[string]int{},
		ShowProgress:           false,
		LogLevel:               "info",
		LogFormat:              "console",
	}
}

// Load builds a Config from environment variables, falling back to
// Default()'s values.
func Load() *Config {
	cfg := Default()
	cfg.SolverMaxTime = getEnvDuration("SOLVER_MAX_TIME", cfg.SolverMaxTime)
	cfg.EnforceMinDeptBlock = getEnvBool("ENFORCE_MIN_DEPT_BLOCK", cfg.EnforceMinDeptBlock)
	cfg.MinSlots = getEnvInt("MIN_SLOTS", cfg.MinSlots)
	cfg.MaxSlots = getEnvInt("MAX_SLOTS", cfg.MaxSlots)
	cfg.FavoredMinSlots = getEnvInt("FAVORED_MIN_SLOTS", cfg.FavoredMinSlots)
	cfg.FavoredMaxSlots = getEnvInt("FAVORED_MAX_SLOTS", cfg.FavoredMaxSlots)
	cfg.DeptHourThreshold = getEnvInt("DEPT_HOUR_THRESHOLD", cfg.DeptHourThreshold)
	cfg.TargetHardDeltaHours = getEnvInt("TARGET_HARD_DELTA_HOURS", cfg.TargetHardDeltaHours)
	cfg.FavorEmployeeDeptBonus = getEnvInt("FAVOR_EMPLOYEE_DEPT_BONUS", cfg.FavorEmployeeDeptBonus)
	cfg.ShowProgress = getEnvBool("SHOW_PROGRESS", cfg.ShowProgress)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.DiagnosticsDSN = getEnv("DIAGNOSTICS_DSN", cfg.DiagnosticsDSN)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
