package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/zkmatter/rawr1cs/constraint"

	// register the supported scalar fields so deserialization can
	// restore the matching engine
	_ "github.com/zkmatter/rawr1cs/field/bls12381"
	_ "github.com/zkmatter/rawr1cs/field/bn254"
)

// load reads a serialized constraint system from the path given as the
// only CLI argument.
func load(cCtx *cli.Context) (*constraint.System, error) {
	if cCtx.Args().Len() != 1 {
		return nil, errors.New("expected exactly one argument: the system file")
	}

	f, err := os.Open(cCtx.Args().Get(0))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	system := &constraint.System{}
	if _, err := system.ReadFrom(f); err != nil {
		return nil, err
	}
	return system, nil
}

func info(cCtx *cli.Context) error {
	system, err := load(cCtx)
	if err != nil {
		return err
	}

	fmt.Println("version:      ", system.RawVersion)
	fmt.Println("scalar field: ", system.ScalarField)
	fmt.Println("field bits:   ", system.FieldBitLen())
	fmt.Println("inputs:       ", system.NbInputs)
	fmt.Println("auxiliaries:  ", system.NbAux)
	fmt.Println("constraints:  ", system.NbConstraints)
	return nil
}

func stats(cCtx *cli.Context) error {
	system, err := load(cCtx)
	if err != nil {
		return err
	}

	s := system.GetStats()
	fmt.Printf("inputs: %d, auxiliaries: %d, constraints: %d\n", s.NbInputs, s.NbAux, s.NbConstraints)
	for _, m := range []struct {
		name  string
		stats constraint.MatrixStats
	}{
		{"A", s.A},
		{"B", s.B},
		{"C", s.C},
	} {
		fmt.Printf("%s: %d terms, %d non-empty columns, %d constraints touched, %d zero coefficients\n",
			m.name, m.stats.NbTerms, m.stats.NbNonEmptyColumns, m.stats.NbConstraintsTouched, m.stats.NbZeroCoeffs)
	}
	return nil
}

func dump(cCtx *cli.Context) error {
	system, err := load(cCtx)
	if err != nil {
		return err
	}
	return system.Dump(os.Stdout)
}
