package constraint_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/zkmatter/rawr1cs/constraint"
	"github.com/zkmatter/rawr1cs/field/bls12381"
	"github.com/zkmatter/rawr1cs/field/bn254"
)

func TestSerializationRoundTrip(t *testing.T) {
	assert := require.New(t)
	system, fd := newTestSystem(8)

	x := system.AddInput()
	w := system.AddInput()
	y := system.AddAuxiliary()
	z := system.AddAuxiliary()

	one := fd.One()
	minusOne := fd.Neg(one)

	system.AddConstraint(constraint.R1C{
		// duplicate variable on purpose; the stream must keep both terms
		A: constraint.LinearExpression{}.AddTerm(one, x).AddTerm(minusOne, y).AddTerm(one, y),
		B: constraint.LinearExpression{}.AddTerm(fd.FromInterface(42), w),
	})
	system.AddConstraint(constraint.R1C{
		B: constraint.LinearExpression{}.AddTerm(one, z),
	})
	system.AddConstraint(constraint.R1C{})

	data, err := system.ToBytes()
	assert.NoError(err)

	// the encoding is deterministic
	data2, err := system.ToBytes()
	assert.NoError(err)
	assert.True(bytes.Equal(data, data2))

	var reconstructed constraint.System
	n, err := reconstructed.FromBytes(data)
	assert.NoError(err)
	assert.Equal(len(data), n)

	if diff := cmp.Diff(*system, reconstructed, cmpopts.IgnoreUnexported(constraint.System{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	// modulus and engine are restored from the header
	assert.Zero(reconstructed.Field().Cmp(bn254.ScalarField))
	assert.True(reconstructed.IsOne(reconstructed.One()))
}

func TestWriteToReadFrom(t *testing.T) {
	assert := require.New(t)

	fd := &bls12381.Field{}
	system := constraint.NewSystem(bls12381.ScalarField, fd, 0)
	x := system.AddInput()
	y := system.AddAuxiliary()
	system.AddConstraint(constraint.R1C{
		A: constraint.LinearExpression{}.AddTerm(fd.One(), x),
		B: constraint.LinearExpression{}.AddTerm(fd.One(), y),
		C: constraint.LinearExpression{}.AddTerm(fd.One(), y),
	})

	var buf bytes.Buffer
	written, err := system.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), written)

	var reconstructed constraint.System
	read, err := reconstructed.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)

	diff := cmp.Diff(system, reconstructed, cmpopts.IgnoreUnexported(constraint.System{}))
	assert.Empty(diff)
	assert.Zero(reconstructed.Field().Cmp(bls12381.ScalarField))
}

func TestFromBytesCorrupted(t *testing.T) {
	assert := require.New(t)
	system, fd := newTestSystem(0)
	x := system.AddInput()
	system.AddConstraint(constraint.R1C{
		A: constraint.LinearExpression{}.AddTerm(fd.One(), x),
	})

	data, err := system.ToBytes()
	assert.NoError(err)

	var reconstructed constraint.System
	_, err = reconstructed.FromBytes(data[:10])
	assert.Error(err)

	_, err = reconstructed.FromBytes(data[:len(data)-1])
	assert.Error(err)

	_, err = reconstructed.FromBytes(nil)
	assert.Error(err)
}

func TestUnknownScalarFieldRejected(t *testing.T) {
	assert := require.New(t)

	// the engine plays no role in serialization; the modulus is what the
	// header carries, and 65537 matches no registered field
	system := constraint.NewSystem(big.NewInt(65537), &bn254.Field{}, 0)
	data, err := system.ToBytes()
	assert.NoError(err)

	var reconstructed constraint.System
	_, err = reconstructed.FromBytes(data)
	assert.Error(err)
	assert.Contains(err.Error(), "unsupported scalar field")
}
