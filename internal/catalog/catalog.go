// Package catalog is a static, descriptive listing of every hard
// constraint and soft objective term this
// scheduler implements — name, category, and the config knob (if any)
// that tunes it. It computes nothing and is consulted by nothing else
// in the solve path; it exists purely so a caller (a future UI, or an
// operator inspecting behavior) can enumerate what the engine does
// without reading the model-builder source.
package catalog

// Param describes one tunable knob a Definition exposes, named after its
// internal/config.Config field when one exists.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, float, bool, duration
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
}

// Definition describes one hard constraint or soft objective term.
type Definition struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Kind        string  `json:"kind"` // hard, soft
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Params      []Param `json:"params,omitempty"`
}

// HardConstraints lists every hard constraint as declared by internal/modelbuild.
func HardConstraints() []Definition {
	return []Definition{
		{Name: "timeset_forcing", DisplayName: "Timeset forcing", Kind: "hard", Category: "forcing",
			Description: "A forced (employee, day, department, [start,end)) timeset request is assigned exactly as given."},
		{Name: "availability", DisplayName: "Availability", Kind: "hard", Category: "availability",
			Description: "An employee is never assigned at a slot marked unavailable."},
		{Name: "role_exclusivity", DisplayName: "Role exclusivity", Kind: "hard", Category: "assignment",
			Description: "An employee holds at most one role at any (day, slot)."},
		{Name: "assign_implies_work", DisplayName: "Assign implies work", Kind: "hard", Category: "assignment",
			Description: "An assign variable can only be set where the corresponding work variable is set."},
		{Name: "dept_requires_fd", DisplayName: "Department requires front-desk", Kind: "hard", Category: "coverage",
			Description: "A department role may only be worked at a (day, slot) already covered by a front-desk assignment."},
		{Name: "shift_contiguity", DisplayName: "Shift contiguity", Kind: "hard", Category: "shape",
			Description: "An employee's daily slots form one contiguous block, except where forced timesets place non-contiguous ranges."},
		{Name: "shift_length_bounds", DisplayName: "Shift length bounds", Kind: "hard", Category: "shape",
			Description: "A worked day's slot count falls within [min_slots, max_slots] (or the favored variant).",
			Params: []Param{
				{Name: "min_slots", Type: "int", Description: "minimum daily shift length in 30-minute slots", Default: "4"},
				{Name: "max_slots", Type: "int", Description: "maximum daily shift length in 30-minute slots", Default: "8"},
			}},
		{Name: "weekly_hour_limits", DisplayName: "Weekly hour limits", Kind: "hard", Category: "hours",
			Description: "No employee's weekly slots may exceed their own max_hours or the universal maximum."},
		{Name: "target_window", DisplayName: "Target hour window", Kind: "hard", Category: "hours",
			Description: "Each employee's weekly slots fall within target_hours +/- target_hard_delta, relaxed under heavy forced-timeset load.",
			Params: []Param{
				{Name: "target_hard_delta_hours", Type: "int", Description: "half-width of the hard hour window around target_hours", Default: "5"},
			}},
		{Name: "fd_exclusivity", DisplayName: "Front-desk exclusivity", Kind: "hard", Category: "coverage",
			Description: "At most one employee holds the front-desk role at any (day, slot)."},
		{Name: "fd_contiguity", DisplayName: "Front-desk contiguity", Kind: "hard", Category: "shape",
			Description: "An employee's front-desk slots on a day form one contiguous block."},
		{Name: "fd_min_length", DisplayName: "Front-desk minimum length", Kind: "hard", Category: "shape",
			Description: "A front-desk block is at least min_front_desk_slots long."},
		{Name: "role_contiguity", DisplayName: "Department role contiguity", Kind: "hard", Category: "shape",
			Description: "When enforce_min_dept_block is set, a non-front-desk department block meets the same minimum length as a front-desk block.",
			Params: []Param{
				{Name: "enforce_min_dept_block", Type: "bool", Description: "enable the department minimum block length rule", Default: "true"},
			}},
		{Name: "cross_dept_split", DisplayName: "Cross-department split restriction", Kind: "hard", Category: "shape",
			Description: "When enforce_min_dept_block is set, an employee holds at most one distinct department role per day.",
			Params: []Param{
				{Name: "enforce_min_dept_block", Type: "bool", Description: "enable the cross-department split restriction", Default: "true"},
			}},
		{Name: "department_maximum", DisplayName: "Department maximum", Kind: "hard", Category: "capacity",
			Description: "A department's effective units (2*focused_slots + dual_slots) never exceed 4*max_hours (2*max_slots)."},
	}
}

// SoftTerms lists every soft objective term, named to match the per-term
// keys of internal/solve's Score.ByTerm. Every name except dept_total is
// also a key of internal/objective.FaceWeights; dept_total has no weight
// entry.
func SoftTerms() []Definition {
	return []Definition{
		{Name: "fd_coverage", DisplayName: "Front-desk coverage", Kind: "soft", Category: "coverage",
			Description: "Rewards every (day, slot) with a front-desk assignment."},
		{Name: "large_employee_deviation", DisplayName: "Large per-employee deviation", Kind: "soft", Category: "fairness",
			Description: "Penalizes an employee whose worked slots deviate from target by 4 or more slots."},
		{Name: "dept_target_deviation", DisplayName: "Department target deviation", Kind: "soft", Category: "coverage",
			Description: "Penalizes a department's focused slots deviating from its target."},
		{Name: "large_dept_deviation", DisplayName: "Large department deviation", Kind: "soft", Category: "coverage",
			Description: "Extra penalty once a department's deviation reaches 8 or more slots (4 hours)."},
		{Name: "collaborative_shortfall", DisplayName: "Collaborative shortfall", Kind: "soft", Category: "coverage",
			Description: "Penalizes a department falling short of its per-department collaboration-minimum slots, counting only slots where 2+ employees work the department concurrently."},
		{Name: "training_shortfall", DisplayName: "Training overlap shortfall", Kind: "soft", Category: "training",
			Description: "Penalizes a training pair falling short of its goal overlap slots."},
		{Name: "training_bonus", DisplayName: "Training overlap bonus", Kind: "soft", Category: "training",
			Description: "Rewards every slot a training pair overlaps in their department."},
		{Name: "office_coverage", DisplayName: "Office coverage", Kind: "soft", Category: "coverage",
			Description: "Rewards extra simultaneous workers at a (day, slot) beyond the first."},
		{Name: "single_coverage_penalty", DisplayName: "Single-coverage penalty", Kind: "soft", Category: "coverage",
			Description: "Penalizes a (day, slot) covered by exactly one worker."},
		{Name: "target_adherence", DisplayName: "Target adherence", Kind: "soft", Category: "fairness",
			Description: "Penalizes any deviation from an employee's target slots, scaled by favored multiplier and academic-year weight."},
		{Name: "dept_spread", DisplayName: "Department spread", Kind: "soft", Category: "coverage",
			Description: "Rewards every (role, day, slot) with at least one assignment."},
		{Name: "dept_day_coverage", DisplayName: "Department day coverage", Kind: "soft", Category: "coverage",
			Description: "Rewards every (role, day) with at least one assignment."},
		{Name: "shift_length_bonus", DisplayName: "Shift-length bonus", Kind: "soft", Category: "preference",
			Description: "Rewards longer daily shifts net of a fixed per-worked-day cost."},
		{Name: "fd_scarcity_penalty", DisplayName: "Front-desk scarcity penalty", Kind: "soft", Category: "fairness",
			Description: "Penalizes front-desk slots filled by employees from scarce departments, inversely weighted by department size."},
		{Name: "underclass_fd_penalty", DisplayName: "Underclassmen-at-front-desk preference", Kind: "soft", Category: "preference",
			Description: "Penalizes front-desk slots weighted by academic year, favoring underclassmen at the desk."},
		{Name: "morning_preference", DisplayName: "Morning preference", Kind: "soft", Category: "preference",
			Description: "Rewards workers assigned in the morning half of the day."},
		{Name: "shift_time_preference", DisplayName: "Per-employee shift-time preference", Kind: "soft", Category: "preference",
			Description: "Rewards an employee worked in their preferred half-day on a given weekday."},
		{Name: "favored_hours_bonus", DisplayName: "Favored hours bonus", Kind: "soft", Category: "favors",
			Description: "Rewards a favored employee's worked slots, scaled by their multiplier."},
		{Name: "dept_total", DisplayName: "Department total", Kind: "soft", Category: "coverage",
			Description: "Rewards a department's total effective units (2*focused + dual)."},
		{Name: "timeset_bonus", DisplayName: "Timeset bonus", Kind: "soft", Category: "forcing",
			Description: "Rewards every forced-timeset slot honored."},
		{Name: "favored_dept_focused", DisplayName: "Favored department focused bonus", Kind: "soft", Category: "favors",
			Description: "Rewards a favored department's focused slots, scaled by multiplier."},
		{Name: "favored_dept_dual_penalty", DisplayName: "Favored department dual penalty", Kind: "soft", Category: "favors",
			Description: "Penalizes a favored department's primary members working front-desk instead of focused slots."},
		{Name: "favored_fd_dept_bonus", DisplayName: "Favored front-desk department bonus", Kind: "soft", Category: "favors",
			Description: "Rewards front-desk slots filled by members of a favored department."},
		{Name: "favored_employee_dept_bonus", DisplayName: "Favored employee-department bonus", Kind: "soft", Category: "favors",
			Description: "Rewards one employee's slots in one favored department.",
			Params: []Param{
				{Name: "favor_employee_dept_bonus", Type: "int", Description: "per-slot weight before multiplier scaling", Default: "50"},
			}},
		{Name: "equality_penalty", DisplayName: "Equality penalty", Kind: "soft", Category: "fairness",
			Description: "Penalizes the absolute slot difference between two employees paired by an equality request."},
	}
}
