package frontend

import (
	"github.com/zkmatter/rawr1cs/constraint"
	"github.com/zkmatter/rawr1cs/profile"
)

// recorder is the structure-only implementation of API. It tracks variable
// counts and constraint structure on its System and drops labels and
// assignments unevaluated.
type recorder struct {
	cs *constraint.System
}

var _ API = (*recorder)(nil)

func newRecorder(cs *constraint.System) *recorder {
	return &recorder{cs: cs}
}

// AllocateInput returns a new public input variable. There is no witness, so
// we don't even invoke the function for obtaining one.
func (r *recorder) AllocateInput(_ Assignment, _ Label) (constraint.Variable, error) {
	return r.cs.AddInput(), nil
}

// AllocateAuxiliary returns a new auxiliary variable. There is no witness, so
// we don't even invoke the function for obtaining one.
func (r *recorder) AllocateAuxiliary(_ Assignment, _ Label) (constraint.Variable, error) {
	return r.cs.AddAuxiliary(), nil
}

// Enforce evaluates the three combinations against the empty expression and
// records the resulting constraint, in row and column form.
func (r *recorder) Enforce(a, b, c LinearCombination, _ Label) {
	r.cs.AddConstraint(constraint.R1C{
		A: evaluate(a),
		B: evaluate(b),
		C: evaluate(c),
	})
	profile.RecordConstraint()
}

func evaluate(lc LinearCombination) constraint.LinearExpression {
	if lc == nil {
		return nil
	}
	return lc(nil)
}

// OneWire returns the reserved input at index 0.
func (r *recorder) OneWire() constraint.Variable {
	return constraint.In(0)
}

// PushNamespace does nothing; the structure recorder doesn't track names.
func (r *recorder) PushNamespace(_ Label) {}

// PopNamespace does nothing.
func (r *recorder) PopNamespace() {}

// Root returns the receiver; the recorder has no hierarchy.
func (r *recorder) Root() API {
	return r
}

func (r *recorder) One() constraint.Element {
	return r.cs.One()
}

func (r *recorder) Coeff(v interface{}) constraint.Element {
	return r.cs.FromInterface(v)
}

func (r *recorder) Neg(e constraint.Element) constraint.Element {
	return r.cs.Neg(e)
}
