package frontend_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"

	"github.com/zkmatter/rawr1cs/constraint"
	"github.com/zkmatter/rawr1cs/frontend"
)

// closuresCircuit threads the same assignment and label closures through every
// operation accepting them.
type closuresCircuit struct {
	value frontend.Assignment
	label frontend.Label
}

func (c *closuresCircuit) Define(api frontend.API) error {
	x, err := api.AllocateInput(c.value, c.label)
	if err != nil {
		return err
	}
	y, err := api.AllocateAuxiliary(c.value, c.label)
	if err != nil {
		return err
	}
	api.PushNamespace(c.label)
	api.Enforce(
		frontend.Term(api.One(), x),
		frontend.Term(api.One(), y),
		nil,
		c.label,
	)
	api.PopNamespace()
	return nil
}

func TestClosuresNeverInvoked(t *testing.T) {
	assert := require.New(t)

	circuit := &closuresCircuit{
		value: func() (interface{}, error) {
			t.Fatal("assignment invoked by the structure recorder")
			return nil, nil
		},
		label: func() string {
			t.Fatal("label invoked by the structure recorder")
			return ""
		},
	}

	cs, err := frontend.Record(ecc.BN254.ScalarField(), circuit)
	assert.NoError(err)
	assert.Equal(2, cs.NbInputs)
	assert.Equal(1, cs.NbAux)
}

type namespaceCircuit struct {
	withNamespaces bool
	rootIsSelf     bool
}

func (c *namespaceCircuit) Define(api frontend.API) error {
	if c.withNamespaces {
		api.PushNamespace(frontend.Labelf("outer"))
		api.PushNamespace(nil)
	}

	x, err := api.AllocateAuxiliary(nil, nil)
	if err != nil {
		return err
	}
	api.Enforce(frontend.Term(api.One(), x), frontend.Term(api.One(), x), frontend.Term(api.One(), x), nil)

	if c.withNamespaces {
		api.PopNamespace()
		api.PopNamespace()
		// unbalanced pops are tolerated; nothing tracks depth
		api.PopNamespace()
	}

	c.rootIsSelf = api.Root() == api
	return nil
}

func TestNamespacesAreNoOps(t *testing.T) {
	assert := require.New(t)

	plain := &namespaceCircuit{}
	scoped := &namespaceCircuit{withNamespaces: true}

	csPlain, err := frontend.Record(ecc.BN254.ScalarField(), plain)
	assert.NoError(err)
	csScoped, err := frontend.Record(ecc.BN254.ScalarField(), scoped)
	assert.NoError(err)

	assert.True(plain.rootIsSelf)
	assert.True(scoped.rootIsSelf)

	assert.Equal(csPlain.NbInputs, csScoped.NbInputs)
	assert.Equal(csPlain.NbAux, csScoped.NbAux)
	assert.Equal(csPlain.NbConstraints, csScoped.NbConstraints)
	assert.Equal(csPlain.Constraints, csScoped.Constraints)
}

type duplicateCircuit struct{}

func (c *duplicateCircuit) Define(api frontend.API) error {
	x, err := api.AllocateAuxiliary(nil, nil)
	if err != nil {
		return err
	}
	// the same variable twice in one combination; both terms must survive
	lc := frontend.Sum(
		frontend.Term(api.One(), x),
		frontend.Term(api.Coeff(2), x),
	)
	api.Enforce(lc, frontend.Term(api.One(), api.OneWire()), lc, nil)
	return nil
}

func TestDuplicateTermsPreserved(t *testing.T) {
	assert := require.New(t)

	cs, err := frontend.Record(ecc.BN254.ScalarField(), &duplicateCircuit{})
	assert.NoError(err)

	one := cs.One()
	two := cs.FromInterface(2)
	want := constraint.LinearExpression{
		{Coeff: one, Variable: constraint.Aux(0)},
		{Coeff: two, Variable: constraint.Aux(0)},
	}
	assert.Equal(want, cs.Constraints[0].A)
	assert.Equal(want, cs.Constraints[0].C)

	// and the column carries both entries, same constraint, in order
	assert.Equal(constraint.Column{
		{Coeff: one, ConstraintID: 0},
		{Coeff: two, ConstraintID: 0},
	}, cs.A.Aux[0])
}

type countingCircuit struct {
	calls int
}

func (c *countingCircuit) Define(api frontend.API) error {
	x, err := api.AllocateAuxiliary(nil, nil)
	if err != nil {
		return err
	}
	counting := func(le constraint.LinearExpression) constraint.LinearExpression {
		c.calls++
		return le.AddTerm(api.One(), x)
	}
	api.Enforce(counting, counting, counting, nil)
	return nil
}

func TestCombinationsEvaluatedOnce(t *testing.T) {
	assert := require.New(t)

	circuit := &countingCircuit{}
	_, err := frontend.Record(ecc.BN254.ScalarField(), circuit)
	assert.NoError(err)
	assert.Equal(3, circuit.calls)
}

type oneWireCircuit struct {
	oneWire constraint.Variable
}

func (c *oneWireCircuit) Define(api frontend.API) error {
	c.oneWire = api.OneWire()
	return nil
}

func TestOneWireIsFirstInput(t *testing.T) {
	assert := require.New(t)

	circuit := &oneWireCircuit{}
	cs, err := frontend.Record(ecc.BN254.ScalarField(), circuit)
	assert.NoError(err)

	assert.Equal(constraint.In(0), circuit.oneWire)
	// the reserved input is allocated before any user logic
	assert.Equal(1, cs.NbInputs)
}
