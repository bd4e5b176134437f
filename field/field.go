// Package field provides the arithmetic engines backing a constraint system,
// one subpackage per supported scalar field.
package field

import (
	"fmt"
	"math/big"

	"github.com/zkmatter/rawr1cs"
	"github.com/zkmatter/rawr1cs/constraint"
	"github.com/zkmatter/rawr1cs/field/bls12381"
	"github.com/zkmatter/rawr1cs/field/bn254"
)

// Field is the arithmetic engine of one scalar field: the coefficient
// capabilities of constraint.Field plus access to the modulus itself.
type Field interface {
	constraint.Field

	// Field returns the modulus of the field.
	Field() *big.Int

	// FieldBitLen returns the bit length of the modulus.
	FieldBitLen() int
}

// ByModulus returns the engine for the scalar field with the given modulus.
func ByModulus(q *big.Int) (Field, error) {
	if q.Cmp(bn254.ScalarField) == 0 {
		return &bn254.Field{}, nil
	}
	if q.Cmp(bls12381.ScalarField) == 0 {
		return &bls12381.Field{}, nil
	}
	return nil, fmt.Errorf("unsupported scalar field %s; supported curves: %v", q.String(), rawr1cs.Curves())
}
