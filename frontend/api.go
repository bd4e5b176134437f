package frontend

import (
	"fmt"

	"github.com/zkmatter/rawr1cs/constraint"
)

// Label produces the name of a variable, constraint or namespace. Naming is
// deferred: implementations that don't track names never invoke the function,
// so callers can put arbitrarily expensive formatting behind it. A nil Label
// means unnamed.
type Label func() string

// Labelf returns a Label that formats lazily.
func Labelf(format string, args ...interface{}) Label {
	return func() string {
		return fmt.Sprintf(format, args...)
	}
}

// Assignment computes the witness value of a variable. Like labels,
// assignments are deferred: the structure recorder never invokes them, a
// witness-computing implementation would. A nil Assignment means no value is
// available.
type Assignment func() (interface{}, error)

// LinearCombination extends a linear expression with the terms of the
// combination. Enforce evaluates it exactly once, against the empty
// expression. A nil LinearCombination denotes the identically-zero
// combination.
type LinearCombination func(constraint.LinearExpression) constraint.LinearExpression

// Term returns the combination holding the single term coeff·v.
func Term(coeff constraint.Element, v constraint.Variable) LinearCombination {
	return func(le constraint.LinearExpression) constraint.LinearExpression {
		return le.AddTerm(coeff, v)
	}
}

// Sum composes combinations left to right: the returned combination appends
// every term of each given combination, in order. Nil combinations contribute
// nothing.
func Sum(lcs ...LinearCombination) LinearCombination {
	return func(le constraint.LinearExpression) constraint.LinearExpression {
		for _, lc := range lcs {
			if lc == nil {
				continue
			}
			le = lc(le)
		}
		return le
	}
}

// API is the capability set a circuit definition programs against. The
// implementation provided by this package records structure only; it ignores
// assignments and labels entirely.
type API interface {
	// AllocateInput allocates a new public input variable. The structure
	// recorder never invokes value; indices are assigned sequentially and
	// never reused.
	AllocateInput(value Assignment, label Label) (constraint.Variable, error)

	// AllocateAuxiliary allocates a new auxiliary (witness) variable. The
	// structure recorder never invokes value.
	AllocateAuxiliary(value Assignment, label Label) (constraint.Variable, error)

	// Enforce records the constraint a ⋅ b == c. Each combination is
	// evaluated exactly once, against the empty expression; terms are kept
	// verbatim, duplicates included.
	Enforce(a, b, c LinearCombination, label Label)

	// OneWire returns the reserved public input fixed to one, allocated by
	// the driver before user code runs.
	OneWire() constraint.Variable

	// PushNamespace enters a named scope. The structure recorder discards the
	// label unevaluated.
	PushNamespace(label Label)

	// PopNamespace leaves the innermost scope.
	PopNamespace()

	// Root returns the root constraint system of the namespace hierarchy.
	Root() API

	// One returns the coefficient 1.
	One() constraint.Element

	// Coeff coerces v (int, uint, string, big.Int, field element, ...) into
	// a coefficient of the underlying scalar field.
	Coeff(v interface{}) constraint.Element

	// Neg returns the coefficient -e.
	Neg(e constraint.Element) constraint.Element
}
