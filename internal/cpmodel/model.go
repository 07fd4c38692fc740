// Package cpmodel implements a small CP/ILP modeling surface: new_bool,
// new_int, add(linear [only_enforce_if bool]), add(abs), maximize(linear).
// No solver engine lives here — this package only gives the
// Model Builder and Objective Composer a faithful, inspectable place to
// declare variables and constraints. internal/solve produces the actual
// solution over its own grid and validates and scores that grid directly;
// it does not use this package.
package cpmodel

// VarRef indexes a declared variable. Use NoVar to represent "no variable
// materialized": sums range only over the materialized subset, never over
// implicit zero entries.
type VarRef int

// NoVar marks the absence of a materialized variable.
const NoVar VarRef = -1

// Kind distinguishes boolean from bounded-integer variables.
type Kind int

const (
	BoolKind Kind = iota
	IntKind
)

// Var is a declared decision variable.
type Var struct {
	Kind       Kind
	Name       string
	LB, UB     int
	Fixed      bool // true when the Model Builder forces this variable's value
	FixedValue int
}

// Term is one coefficient*variable addend of a LinearExpr.
type Term struct {
	Coef int
	Var  VarRef
}

// LinearExpr is a sum of terms plus a constant.
type LinearExpr struct {
	Terms []Term
	Const int
}

// Expr builds a LinearExpr from terms.
func Expr(terms ...Term) LinearExpr { return LinearExpr{Terms: terms} }

// T is shorthand for a single Term.
func T(coef int, v VarRef) Term { return Term{Coef: coef, Var: v} }

// Sum builds a LinearExpr that is the unweighted sum of vars, skipping any
// NoVar entries (the materialized-subset-only rule).
func Sum(vars ...VarRef) LinearExpr {
	terms := make([]Term, 0, len(vars))
	for _, v := range vars {
		if v == NoVar {
			continue
		}
		terms = append(terms, Term{Coef: 1, Var: v})
	}
	return LinearExpr{Terms: terms}
}

// Plus returns e + o.
func (e LinearExpr) Plus(o LinearExpr) LinearExpr {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return LinearExpr{Terms: terms, Const: e.Const + o.Const}
}

// Minus returns e - o.
func (e LinearExpr) Minus(o LinearExpr) LinearExpr {
	return e.Plus(o.Scale(-1))
}

// Scale returns k*e.
func (e LinearExpr) Scale(k int) LinearExpr {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Coef: t.Coef * k, Var: t.Var}
	}
	return LinearExpr{Terms: terms, Const: e.Const * k}
}

// Op is a linear-constraint comparison operator. Ne ("!=") would need two
// half-reified booleans in a real CP backend; Check implements it directly
// as a !=, since no solver searches this model: Check only evaluates
// feasibility of given values, with no need to reify Ne into further
// boolean structure.
type Op int

const (
	Eq Op = iota
	Le
	Ge
	Ne
)

// Constraint is add(linear) or add(linear only_enforce_if bool). When
// EnforceIf != NoVar, the constraint only binds in solutions where that
// boolean variable is 1 (a reified implication).
type Constraint struct {
	Expr      LinearExpr
	Op        Op
	RHS       int
	EnforceIf VarRef
	Label     string
}

// ObjTerm is one addend of the maximize() objective, already carrying its
// integer weight folded into the expression's coefficients.
type ObjTerm struct {
	Expr  LinearExpr
	Label string
}

// Model is the full CP/ILP model: every declared variable, every hard
// constraint, and the weighted objective.
type Model struct {
	Vars        []Var
	Constraints []Constraint
	Objective   []ObjTerm
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// NewBool declares a boolean decision variable and returns its reference.
func (m *Model) NewBool(name string) VarRef {
	m.Vars = append(m.Vars, Var{Kind: BoolKind, Name: name, LB: 0, UB: 1})
	return VarRef(len(m.Vars) - 1)
}

// NewInt declares a bounded integer decision variable.
func (m *Model) NewInt(name string, lb, ub int) VarRef {
	m.Vars = append(m.Vars, Var{Kind: IntKind, Name: name, LB: lb, UB: ub})
	return VarRef(len(m.Vars) - 1)
}

// Fix forces a variable to a constant value (timeset forcing and
// availability both use this).
func (m *Model) Fix(v VarRef, value int) {
	if v == NoVar {
		return
	}
	m.Vars[v].Fixed = true
	m.Vars[v].FixedValue = value
}

// Add declares add(linear): expr Op rhs, always enforced.
func (m *Model) Add(expr LinearExpr, op Op, rhs int, label string) {
	m.Constraints = append(m.Constraints, Constraint{Expr: expr, Op: op, RHS: rhs, EnforceIf: NoVar, Label: label})
}

// AddReified declares add(linear only_enforce_if bool).
func (m *Model) AddReified(expr LinearExpr, op Op, rhs int, enforceIf VarRef, label string) {
	m.Constraints = append(m.Constraints, Constraint{Expr: expr, Op: op, RHS: rhs, EnforceIf: enforceIf, Label: label})
}

// NewAbsDiff declares an auxiliary integer variable d = |a - b| via the two
// linear half-constraints add(abs) expands to, and returns d.
func (m *Model) NewAbsDiff(name string, a, b VarRef, ub int) VarRef {
	d := m.NewInt(name, 0, ub)
	m.Add(Expr(T(1, d), T(-1, a), T(1, b)), Ge, 0, name+"_ge_a_minus_b")
	m.Add(Expr(T(1, d), T(1, a), T(-1, b)), Ge, 0, name+"_ge_b_minus_a")
	return d
}

// Maximize appends a weighted term to the objective.
func (m *Model) Maximize(expr LinearExpr, label string) {
	m.Objective = append(m.Objective, ObjTerm{Expr: expr, Label: label})
}

// Values is a concrete assignment, indexed by VarRef.
type Values []int

// Eval evaluates a LinearExpr against a concrete assignment.
func (e LinearExpr) Eval(values Values) int {
	sum := e.Const
	for _, t := range e.Terms {
		sum += t.Coef * values[t.Var]
	}
	return sum
}

// Violation describes one constraint that a Values assignment failed.
type Violation struct {
	Label string
	Got   int
	Op    Op
	RHS   int
}

// Check walks every constraint in m and reports every one values violates.
// EnforceIf constraints are skipped when their indicator is 0.
func (m *Model) Check(values Values) []Violation {
	var out []Violation
	for _, c := range m.Constraints {
		if c.EnforceIf != NoVar && values[c.EnforceIf] == 0 {
			continue
		}
		got := c.Expr.Eval(values)
		ok := false
		switch c.Op {
		case Eq:
			ok = got == c.RHS
		case Le:
			ok = got <= c.RHS
		case Ge:
			ok = got >= c.RHS
		case Ne:
			ok = got != c.RHS
		}
		if !ok {
			out = append(out, Violation{Label: c.Label, Got: got, Op: c.Op, RHS: c.RHS})
		}
	}
	return out
}

// ObjectiveValue sums every objective term's evaluation.
func (m *Model) ObjectiveValue(values Values) int {
	total := 0
	for _, t := range m.Objective {
		total += t.Expr.Eval(values)
	}
	return total
}
