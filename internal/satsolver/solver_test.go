package satsolver

import (
	"context"
	"strconv"
	"testing"
)

func TestSolve_SimpleSatisfiable(t *testing.T) {
	m := NewModel[string]()
	p := m.Literal("p")
	m.AddUnary(p)

	status, err := Solve(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if status != Satisfiable {
		t.Fatalf("Solve() status = %v, want Satisfiable", status)
	}
	val, ok := m.Value("p")
	if !ok || !val {
		t.Errorf("Value(p) = (%v, %v), want (true, true)", val, ok)
	}
}

func TestSolve_Unsatisfiable(t *testing.T) {
	m := NewModel[string]()
	p := m.Literal("p")
	m.AddUnary(p)
	m.AddUnary(p.Not())

	status, err := Solve(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if status != Unsatisfiable {
		t.Fatalf("Solve() status = %v, want Unsatisfiable", status)
	}
}

func TestSolve_ImpliesChain(t *testing.T) {
	m := NewModel[string]()
	a, b, c := m.Literal("a"), m.Literal("b"), m.Literal("c")
	m.AddUnary(a)
	m.Implies(a, b)
	m.Implies(b, c)

	status, err := Solve(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if status != Satisfiable {
		t.Fatalf("Solve() status = %v, want Satisfiable", status)
	}
	for _, key := range []string{"a", "b", "c"} {
		if val, ok := m.Value(key); !ok || !val {
			t.Errorf("Value(%s) = (%v, %v), want (true, true)", key, val, ok)
		}
	}
}

func TestAtMostOne_PairwiseAndBinary(t *testing.T) {
	for _, n := range []int{3, 4, 8, 12} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			m := NewModel[int]()
			lits := make([]Literal, n)
			for i := range lits {
				lits[i] = m.Literal(i)
			}
			m.AtMostOne(lits)
			m.AtLeastK(lits, 1) // force exactly one true so the test is meaningful

			status, err := Solve(context.Background(), m, nil)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if status != Satisfiable {
				t.Fatalf("Solve() status = %v, want Satisfiable", status)
			}

			trueCount := 0
			for i := 0; i < n; i++ {
				if val, ok := m.Value(i); ok && val {
					trueCount++
				}
			}
			if trueCount != 1 {
				t.Errorf("trueCount = %d, want exactly 1", trueCount)
			}
		})
	}
}

func TestAtLeastK(t *testing.T) {
	m := NewModel[int]()
	n := 5
	lits := make([]Literal, n)
	for i := range lits {
		lits[i] = m.Literal(i)
	}
	m.AtLeastK(lits, 3)

	status, err := Solve(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if status != Satisfiable {
		t.Fatalf("Solve() status = %v, want Satisfiable", status)
	}

	trueCount := 0
	for i := 0; i < n; i++ {
		if val, ok := m.Value(i); ok && val {
			trueCount++
		}
	}
	if trueCount < 3 {
		t.Errorf("trueCount = %d, want >= 3", trueCount)
	}
}

// cellColor is the variable key for the graph-coloring example below,
// mirroring the (i, j, n) struct key spjmurray-go-sat's Sudoku example uses
// to index SAT variables by domain-specific coordinates.
type cellColor struct {
	node  int
	color int
}

func TestSolve_GraphColoringTriangle(t *testing.T) {
	// A 3-cycle (triangle) needs exactly 3 colors; every pair of adjacent
	// nodes must differ.
	m := NewModel[cellColor]()
	edges := [][2]int{{0, 1}, {1, 2}, {2, 0}}
	colors := 3

	for node := 0; node < 3; node++ {
		lits := make([]Literal, colors)
		for c := 0; c < colors; c++ {
			lits[c] = m.Literal(cellColor{node: node, color: c})
		}
		m.AtLeastK(lits, 1)
		m.AtMostOne(lits)
	}
	for _, e := range edges {
		for c := 0; c < colors; c++ {
			a := m.Literal(cellColor{node: e[0], color: c})
			b := m.Literal(cellColor{node: e[1], color: c})
			m.AddClause(a.Not(), b.Not())
		}
	}

	status, err := Solve(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if status != Satisfiable {
		t.Fatalf("Solve() status = %v, want Satisfiable", status)
	}

	colorOf := func(node int) int {
		for c := 0; c < colors; c++ {
			if val, ok := m.Value(cellColor{node: node, color: c}); ok && val {
				return c
			}
		}
		return -1
	}
	for _, e := range edges {
		if colorOf(e[0]) == colorOf(e[1]) {
			t.Errorf("nodes %d and %d share color %d", e[0], e[1], colorOf(e[0]))
		}
	}
}
