package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"

	"github.com/zkmatter/rawr1cs/frontend"
)

type demoCircuit struct{}

func (c *demoCircuit) Define(api frontend.API) error {
	x, err := api.AllocateAuxiliary(nil, nil)
	if err != nil {
		return err
	}
	pub, err := api.AllocateInput(nil, nil)
	if err != nil {
		return err
	}
	api.Enforce(
		frontend.Term(api.One(), x),
		frontend.Term(api.One(), x),
		frontend.Term(api.One(), pub),
		nil,
	)
	return nil
}

func TestCommands(t *testing.T) {
	assert := require.New(t)

	cs, err := frontend.Record(ecc.BN254.ScalarField(), &demoCircuit{})
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "demo.r1cs")
	f, err := os.Create(path)
	assert.NoError(err)
	_, err = cs.WriteTo(f)
	assert.NoError(err)
	assert.NoError(f.Close())

	for _, cmd := range []string{"info", "stats", "dump"} {
		assert.NoError(app().Run([]string{"rawr1cs", cmd, path}), cmd)
	}

	err = app().Run([]string{"rawr1cs", "info", filepath.Join(t.TempDir(), "missing.r1cs")})
	assert.Error(err)

	err = app().Run([]string{"rawr1cs", "dump"})
	assert.Error(err)
	assert.Contains(err.Error(), "exactly one argument")
}
