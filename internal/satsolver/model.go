// Package satsolver implements a generic CDCL (Conflict-Driven Clause
// Learning) SAT engine (SPEC_FULL.md §4.4), grounded on
// github.com/spjmurray/go-sat's pkg/cdcl Model/Solver split: a Boolean
// variable carries its own current assignment, literals reference a
// variable plus a negation flag, and clauses are satisfied/complete/conflict
// by scanning their literals' current values.
//
// Variables are keyed by an arbitrary comparable type T instead of plain
// integers, so callers (the encoder) can name a variable by a domain struct
// such as a placement or a cell-letter tuple instead of managing an integer
// namespace by hand.
package satsolver

import "fmt"

type variable struct {
	id     int
	value  *bool
	level  int
	reason *clause
}

// Literal is a Boolean variable or its negation.
type Literal struct {
	v   *variable
	neg bool
}

// Not returns the negation of l.
func (l Literal) Not() Literal {
	return Literal{v: l.v, neg: !l.neg}
}

// satisfied reports the literal's current truth value and whether its
// variable has been assigned yet.
func (l Literal) satisfied() (value bool, assigned bool) {
	if l.v.value == nil {
		return false, false
	}
	return *l.v.value != l.neg, true
}

type clause struct {
	literals []Literal
	learned  bool
}

// evaluate scans a clause's literals, reporting whether it is already
// satisfied, and if not, its unassigned literals (an empty slice when every
// literal is assigned false, i.e. the clause is in conflict).
func (c *clause) evaluate() (satisfiedClause bool, unassigned []Literal) {
	unassigned = make([]Literal, 0, 2)
	for _, lit := range c.literals {
		val, assigned := lit.satisfied()
		if !assigned {
			unassigned = append(unassigned, lit)
			continue
		}
		if val {
			return true, nil
		}
	}
	return false, unassigned
}

// Model holds a CNF formula over variables keyed by T: the teacher's
// variableSet[T] generalized from Sudoku's (row, col, digit) key to
// whatever struct the caller's domain needs.
type Model[T comparable] struct {
	keyToVar  map[T]*variable
	variables []*variable
	clauses   []*clause
}

// NewModel returns an empty Model.
func NewModel[T comparable]() *Model[T] {
	return &Model[T]{keyToVar: make(map[T]*variable)}
}

// NumVariables returns the number of distinct variables allocated so far,
// including auxiliary cardinality-encoding variables.
func (m *Model[T]) NumVariables() int {
	return len(m.variables)
}

// NumClauses returns the number of original (non-learned) clauses.
func (m *Model[T]) NumClauses() int {
	n := 0
	for _, c := range m.clauses {
		if !c.learned {
			n++
		}
	}
	return n
}

func (m *Model[T]) varFor(key T) *variable {
	v, ok := m.keyToVar[key]
	if ok {
		return v
	}
	v = &variable{id: len(m.variables)}
	m.variables = append(m.variables, v)
	m.keyToVar[key] = v
	return v
}

func (m *Model[T]) newAux() *variable {
	v := &variable{id: len(m.variables)}
	m.variables = append(m.variables, v)
	return v
}

// Literal returns the positive literal for key, allocating a fresh variable
// the first time key is seen.
func (m *Model[T]) Literal(key T) Literal {
	return Literal{v: m.varFor(key)}
}

// NegatedLiteral returns the negative literal for key.
func (m *Model[T]) NegatedLiteral(key T) Literal {
	return m.Literal(key).Not()
}

// AddClause adds the disjunction of lits to the formula.
func (m *Model[T]) AddClause(lits ...Literal) {
	if len(lits) == 0 {
		panic("satsolver: empty clause")
	}
	m.clauses = append(m.clauses, &clause{literals: append([]Literal(nil), lits...)})
}

// AddUnary forces lit to be true.
func (m *Model[T]) AddUnary(lit Literal) {
	m.AddClause(lit)
}

// Implies adds the clause (¬a ∨ consequences...), i.e. "a implies at least
// one of consequences". A single consequence encodes a straight
// implication a -> c.
func (m *Model[T]) Implies(a Literal, consequences ...Literal) {
	lits := make([]Literal, 0, len(consequences)+1)
	lits = append(lits, a.Not())
	lits = append(lits, consequences...)
	m.AddClause(lits...)
}

// AtMostOne constrains at most one of lits to be true. Per SPEC_FULL.md
// §4.3(a)/§9, pairwise clauses are used below 6 literals; a binary
// (commander-style) encoding is used at or above 6, trading a handful of
// auxiliary variables for O(n log n) clauses instead of O(n²).
func (m *Model[T]) AtMostOne(lits []Literal) {
	if len(lits) < 2 {
		return
	}
	if len(lits) < 6 {
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				m.AddClause(lits[i].Not(), lits[j].Not())
			}
		}
		return
	}
	m.atMostOneBinary(lits)
}

func (m *Model[T]) atMostOneBinary(lits []Literal) {
	bits := bitsNeeded(len(lits))
	auxVars := make([]*variable, bits)
	for b := range auxVars {
		auxVars[b] = m.newAux()
	}
	for i, lit := range lits {
		for b := 0; b < bits; b++ {
			bitSet := (i>>uint(b))&1 == 1
			auxLit := Literal{v: auxVars[b]}
			if !bitSet {
				auxLit = auxLit.Not()
			}
			m.AddClause(lit.Not(), auxLit)
		}
	}
}

func bitsNeeded(n int) int {
	bits := 0
	for (1 << uint(bits)) < n {
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}

// AtLeastK constrains at least k of lits to be true, via the sequential
// counter encoding from original_source/encoder.rs's at_least_k (there
// implemented directly; here derived from an at-most-(n-k) counter over the
// negated literals, the standard cardinality-constraint duality).
func (m *Model[T]) AtLeastK(lits []Literal, k int) {
	n := len(lits)
	if k <= 0 {
		return
	}
	if k > n {
		// Unsatisfiable by construction: force a direct contradiction.
		aux := m.newAux()
		m.AddClause(Literal{v: aux})
		m.AddClause(Literal{v: aux}.Not())
		return
	}
	negated := make([]Literal, n)
	for i, l := range lits {
		negated[i] = l.Not()
	}
	m.atMostK(negated, n-k)
}

// atMostK is the Sinz (2005) sequential-counter at-most-k encoding: aux
// variable s[i][j] means "at least j+1 of the first i+1 literals are true".
func (m *Model[T]) atMostK(lits []Literal, k int) {
	n := len(lits)
	if n == 0 || k >= n {
		return
	}
	if k <= 0 {
		for _, l := range lits {
			m.AddUnary(l.Not())
		}
		return
	}

	s := make([][]*variable, n-1)
	for i := range s {
		s[i] = make([]*variable, k)
		for j := range s[i] {
			s[i][j] = m.newAux()
		}
	}
	lit := func(v *variable) Literal { return Literal{v: v} }

	m.AddClause(lits[0].Not(), lit(s[0][0]))
	for j := 1; j < k; j++ {
		m.AddClause(lit(s[0][j]).Not())
	}
	for i := 1; i < n-1; i++ {
		m.AddClause(lits[i].Not(), lit(s[i][0]))
		m.AddClause(lit(s[i-1][0]).Not(), lit(s[i][0]))
		for j := 1; j < k; j++ {
			m.AddClause(lits[i].Not(), lit(s[i-1][j-1]).Not(), lit(s[i][j]))
			m.AddClause(lit(s[i-1][j]).Not(), lit(s[i][j]))
		}
		m.AddClause(lits[i].Not(), lit(s[i-1][k-1]).Not())
	}
	m.AddClause(lits[n-1].Not(), lit(s[n-2][k-1]).Not())
}

// Value returns key's assignment after a successful Solve, or ok == false if
// key was never referenced or the model has not been solved.
func (m *Model[T]) Value(key T) (value bool, ok bool) {
	v, present := m.keyToVar[key]
	if !present || v.value == nil {
		return false, false
	}
	return *v.value, true
}

// String renders the formula size for logging.
func (m *Model[T]) String() string {
	return fmt.Sprintf("Model{variables: %d, clauses: %d}", len(m.variables), len(m.clauses))
}
