// Package rawr1cs records the structure of rank-1 constraint systems (R1CS)
// without computing witness values.
//
// A circuit-definition routine is driven against a structure-only recorder
// which captures variable allocations and the three linear combinations
// (A, B, C) of every multiplicative constraint A·B=C, in both row
// (per-constraint) and column (per-variable) form. The result can be dumped
// as a human-readable listing of the three matrices or serialized to a
// versioned binary artifact.
//
// rawr1cs performs no field arithmetic on assignments, no pairing operations
// and no polynomial interpolation; witness computation and proving belong to
// a full constraint-system implementation of the same capability set.
//
// rawr1cs supports the scalar fields of the following curves:
//   - BN254
//   - BLS12_381
package rawr1cs

import (
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
)

var Version = semver.MustParse("0.3.0")

// Curves returns the curves whose scalar fields rawr1cs can record over.
func Curves() []ecc.ID {
	return []ecc.ID{
		ecc.BN254,
		ecc.BLS12_381,
	}
}
