package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/careerdesk/staffsched/pkg/apperrors"
	"github.com/careerdesk/staffsched/pkg/logger"
)

var runsOfWhitespaceOrUnderscore = regexp.MustCompile(`[\s_]+`)

// NormalizeName canonicalizes a department/role name: lowercase, trim,
// collapse runs of whitespace/underscore to a single underscore
//.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return runsOfWhitespaceOrUnderscore.ReplaceAllString(s, "_")
}

// employeeKey is the case-folded identity of an employee's display name
//.
func employeeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateInputs cross-references every raw record stream into a
// Normalized bundle, or fails fast with an *apperrors.AppError of code
// CodeInvalidInput citing the offending record.
func ValidateInputs(in Inputs) (*Normalized, error) {
	n := &Normalized{
		FrontDeskRole:     NormalizeName(in.FrontDeskRole),
		EmployeeByKey:     make(map[string]*Employee),
		DepartmentByName:  make(map[string]*Department),
		PrimaryDepartment: make(map[string]string),
	}

	if n.FrontDeskRole == "" {
		return nil, apperrors.InvalidInput("front_desk_role", "front-desk role name must not be empty")
	}

	if err := buildDepartments(n, in.Departments); err != nil {
		return nil, err
	}
	if err := buildEmployees(n, in.Staff); err != nil {
		return nil, err
	}
	dropUncoveredDepartments(n)
	if err := buildTimesets(n, in.Timesets); err != nil {
		return nil, err
	}
	if err := buildTraining(n, in.Training); err != nil {
		return nil, err
	}
	if err := buildEquality(n, in.Equality); err != nil {
		return nil, err
	}
	if err := buildFavors(n, in.Favors); err != nil {
		return nil, err
	}

	computePrimaryDepartments(n)

	return n, nil
}

func buildDepartments(n *Normalized, recs []DepartmentRecord) error {
	for _, r := range recs {
		name := NormalizeName(r.Name)
		if name == "" {
			return apperrors.InvalidInput("department", "department name must not be empty")
		}
		if name == n.FrontDeskRole {
			return apperrors.InvalidInput(fmt.Sprintf("department %q", r.Name), "collides with the designated front-desk role name")
		}
		if _, exists := n.DepartmentByName[name]; exists {
			return apperrors.InvalidInput(fmt.Sprintf("department %q", r.Name), "duplicate department name")
		}
		targetSlots := hoursToSlots(r.TargetHours)
		maxSlots := hoursToSlots(r.MaxHours)
		if targetSlots > maxSlots {
			return apperrors.InvalidInput(fmt.Sprintf("department %q", r.Name), "target_hours exceeds max_hours")
		}
		dept := &Department{Name: name, DisplayOrder: r.Order, TargetSlots: targetSlots, MaxSlots: maxSlots}
		n.Departments = append(n.Departments, dept)
		n.DepartmentByName[name] = dept
	}
	sort.SliceStable(n.Departments, func(i, j int) bool {
		return n.Departments[i].DisplayOrder < n.Departments[j].DisplayOrder
	})
	return nil
}

func buildEmployees(n *Normalized, recs []StaffRecord) error {
	for _, r := range recs {
		key := employeeKey(r.Name)
		if key == "" {
			return apperrors.InvalidInput("employee", "employee name must not be empty")
		}
		if _, exists := n.EmployeeByKey[key]; exists {
			return apperrors.InvalidInput(fmt.Sprintf("employee %q", r.Name), "duplicate employee name")
		}
		maxSlots := hoursToSlots(r.MaxHours)
		targetSlots := hoursToSlots(r.TargetHours)
		// A target above the employee's own maximum is clamped, not
		// rejected: the maximum wins.
		if targetSlots > maxSlots {
			targetSlots = maxSlots
		}
		if r.Year < 1 || r.Year > 4 {
			return apperrors.InvalidInput(fmt.Sprintf("employee %q", r.Name), "year must be 1..4")
		}

		qualified := make(map[string]bool)
		for _, role := range r.Roles {
			canon := NormalizeName(role)
			if canon == "" {
				continue
			}
			if canon != n.FrontDeskRole {
				if _, ok := n.DepartmentByName[canon]; !ok {
					return apperrors.InvalidInput(fmt.Sprintf("employee %q", r.Name), fmt.Sprintf("qualified for unknown department %q (no targets)", role))
				}
			}
			qualified[canon] = true
		}

		emp := &Employee{
			Name:        r.Name,
			Key:         key,
			Qualified:   qualified,
			TargetSlots: targetSlots,
			MaxSlots:    maxSlots,
			Year:        r.Year,
			Unavailable: r.Available,
		}
		// Available[d][t]==true means available; Unavailable is the
		// complement.
		for d := 0; d < NumDays; d++ {
			for t := 0; t < NumSlots; t++ {
				emp.Unavailable[d][t] = !r.Available[d][t]
			}
		}

		n.Employees = append(n.Employees, emp)
		n.EmployeeByKey[key] = emp
	}
	return nil
}

// dropUncoveredDepartments removes any requirements department that no
// employee lists among their qualified roles. This is a warning, not an
// error: the row is ignored and the solve proceeds without it.
func dropUncoveredDepartments(n *Normalized) {
	kept := n.Departments[:0]
	for _, dept := range n.Departments {
		if n.DepartmentSize(dept.Name) == 0 {
			logger.Warn().Str("department", dept.Name).Msg("ignoring department requirements with no matching qualified role")
			delete(n.DepartmentByName, dept.Name)
			continue
		}
		kept = append(kept, dept)
	}
	n.Departments = kept
}

func buildTimesets(n *Normalized, recs []TimesetRecord) error {
	cumulative := make(map[string]int)
	for _, r := range recs {
		key := employeeKey(r.EmployeeName)
		emp, ok := n.EmployeeByKey[key]
		if !ok {
			return apperrors.InvalidInput(fmt.Sprintf("timeset for %q", r.EmployeeName), "unknown employee")
		}
		if r.Day < Mon || r.Day > Fri {
			return apperrors.InvalidInput(fmt.Sprintf("timeset for %q", r.EmployeeName), "unknown day")
		}
		dept := NormalizeName(r.Department)
		if dept != n.FrontDeskRole {
			if _, ok := n.DepartmentByName[dept]; !ok {
				return apperrors.InvalidInput(fmt.Sprintf("timeset for %q", r.EmployeeName), fmt.Sprintf("unknown department %q", r.Department))
			}
		}
		if r.Start < 0 || r.End > NumSlots || r.Start >= r.End {
			return apperrors.InvalidInput(fmt.Sprintf("timeset for %q", r.EmployeeName), "invalid slot range")
		}
		for t := r.Start; t < r.End; t++ {
			if emp.Unavailable[r.Day][t] {
				return apperrors.InvalidInput(fmt.Sprintf("timeset for %q", r.EmployeeName), fmt.Sprintf("overlaps unavailability on %s at %s", r.Day, SlotToClock(t)))
			}
		}
		length := r.End - r.Start
		cumulative[key] += length
		if cumulative[key] > emp.MaxSlots {
			return apperrors.InvalidInput(fmt.Sprintf("timeset for %q", r.EmployeeName), "cumulative timeset length exceeds employee max_hours")
		}
		n.Timesets = append(n.Timesets, &Timeset{EmployeeKey: key, Day: r.Day, Department: dept, Start: r.Start, End: r.End})
	}
	return nil
}

func buildTraining(n *Normalized, recs []TrainingRecord) error {
	for _, r := range recs {
		dept := NormalizeName(r.Department)
		if _, ok := n.DepartmentByName[dept]; !ok && dept != n.FrontDeskRole {
			return apperrors.InvalidInput(fmt.Sprintf("training request for %q", r.Department), "unknown department")
		}
		k1, k2 := employeeKey(r.Employee1), employeeKey(r.Employee2)
		if k1 == k2 {
			return apperrors.InvalidInput("training request", "trainees must be distinct")
		}
		e1, ok1 := n.EmployeeByKey[k1]
		e2, ok2 := n.EmployeeByKey[k2]
		if !ok1 || !ok2 {
			return apperrors.InvalidInput("training request", "unknown trainee")
		}
		if !e1.IsQualified(dept) || !e2.IsQualified(dept) {
			return apperrors.InvalidInput(fmt.Sprintf("training request (%s, %s, %s)", dept, r.Employee1, r.Employee2), "both trainees must be qualified for the department")
		}
		minTarget := e1.TargetSlots
		if e2.TargetSlots < minTarget {
			minTarget = e2.TargetSlots
		}
		goal := int(TrainingTargetFraction * float64(minTarget))
		if goal < TrainingMinSlots {
			goal = TrainingMinSlots
		}
		if goal > minTarget {
			goal = minTarget
		}
		n.Training = append(n.Training, &TrainingRequest{Department: dept, Employee1: k1, Employee2: k2, GoalSlots: goal})
	}
	return nil
}

func buildEquality(n *Normalized, recs []EqualityRecord) error {
	for _, r := range recs {
		dept := NormalizeName(r.Department)
		if _, ok := n.DepartmentByName[dept]; !ok && dept != n.FrontDeskRole {
			return apperrors.InvalidInput(fmt.Sprintf("equality request for %q", r.Department), "unknown department")
		}
		k1, k2 := employeeKey(r.Employee1), employeeKey(r.Employee2)
		if k1 == k2 {
			return apperrors.InvalidInput("equality request", "employees must be distinct")
		}
		if _, ok := n.EmployeeByKey[k1]; !ok {
			return apperrors.InvalidInput("equality request", "unknown employee")
		}
		if _, ok := n.EmployeeByKey[k2]; !ok {
			return apperrors.InvalidInput("equality request", "unknown employee")
		}
		n.Equality = append(n.Equality, &EqualityRequest{Department: dept, Employee1: k1, Employee2: k2})
	}
	return nil
}

func buildFavors(n *Normalized, f FavorRecords) error {
	for _, r := range f.Employees {
		key := employeeKey(r.Employee)
		if _, ok := n.EmployeeByKey[key]; !ok {
			logger.Warn().Str("employee", r.Employee).Msg("ignoring favored-employee entry not found in staff data")
			continue
		}
		n.Favors.Employees = append(n.Favors.Employees, FavoredEmployee{EmployeeKey: key, Multiplier: r.Multiplier})
	}
	for _, r := range f.Departments {
		dept := NormalizeName(r.Department)
		if _, ok := n.DepartmentByName[dept]; !ok && dept != n.FrontDeskRole {
			return apperrors.InvalidInput(fmt.Sprintf("favored department %q", r.Department), "unknown department")
		}
		n.Favors.Departments = append(n.Favors.Departments, FavoredDepartment{Department: dept, Multiplier: r.Multiplier})
	}
	for _, r := range f.FrontDeskDepartments {
		dept := NormalizeName(r.Department)
		if _, ok := n.DepartmentByName[dept]; !ok {
			return apperrors.InvalidInput(fmt.Sprintf("favored front-desk department %q", r.Department), "unknown department")
		}
		n.Favors.FrontDeskDepartments = append(n.Favors.FrontDeskDepartments, FavoredFrontDeskDept{Department: dept, Multiplier: r.Multiplier})
	}
	for _, r := range f.EmployeeDepartments {
		key := employeeKey(r.Employee)
		emp, ok := n.EmployeeByKey[key]
		if !ok {
			return apperrors.InvalidInput(fmt.Sprintf("favored employee-department %q", r.Employee), "unknown employee")
		}
		dept := NormalizeName(r.Department)
		if _, ok := n.DepartmentByName[dept]; !ok && dept != n.FrontDeskRole {
			return apperrors.InvalidInput(fmt.Sprintf("favored employee-department (%s, %s)", r.Employee, r.Department), "unknown department")
		}
		if !emp.IsQualified(dept) {
			return apperrors.InvalidInput(fmt.Sprintf("favored employee-department (%s, %s)", r.Employee, r.Department), "employee is not qualified for the department")
		}
		n.Favors.EmployeeDepartments = append(n.Favors.EmployeeDepartments, FavoredEmployeeDept{EmployeeKey: key, Department: dept, Multiplier: r.Multiplier})
	}
	for _, r := range f.ShiftTimePreferences {
		key := employeeKey(r.Employee)
		if _, ok := n.EmployeeByKey[key]; !ok {
			return apperrors.InvalidInput(fmt.Sprintf("shift-time preference %q", r.Employee), "unknown employee")
		}
		if r.Half != Morning && r.Half != Afternoon {
			return apperrors.InvalidInput(fmt.Sprintf("shift-time preference %q", r.Employee), "half must be morning or afternoon")
		}
		n.Favors.ShiftTimePreferences = append(n.Favors.ShiftTimePreferences, ShiftTimePreference{EmployeeKey: key, Day: r.Day, Half: r.Half})
	}
	return nil
}

// computePrimaryDepartments assigns each employee the smallest-cardinality
// qualified non-front-desk department, breaking ties lexicographically on
// the normalized name. Employees qualified only for the
// front-desk role get no primary department.
func computePrimaryDepartments(n *Normalized) {
	for _, e := range n.Employees {
		best := ""
		bestSize := -1
		for dept := range e.Qualified {
			if dept == n.FrontDeskRole {
				continue
			}
			size := n.DepartmentSize(dept)
			if bestSize == -1 || size < bestSize || (size == bestSize && dept < best) {
				best = dept
				bestSize = size
			}
		}
		n.PrimaryDepartment[e.Key] = best
	}
}

func hoursToSlots(hours float64) int {
	return int(hours*2 + 0.5)
}
