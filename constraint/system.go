package constraint

import (
	"bufio"
	"fmt"
	"io"
	"math/big"

	"github.com/blang/semver/v4"

	"github.com/zkmatter/rawr1cs"
	"github.com/zkmatter/rawr1cs/logger"
)

// ColumnEntry is one coefficient of a matrix column, keyed by the constraint
// (row) it appears in.
type ColumnEntry struct {
	Coeff        Element
	ConstraintID int
}

// Column lists every coefficient one variable contributes to one matrix, in
// the order the constraints were added.
type Column []ColumnEntry

// Ledger is the column form of one matrix: one Column per variable, indexed by
// namespace. A variable contributing nothing to the matrix has an empty
// Column.
type Ledger struct {
	Inputs []Column
	Aux    []Column
}

// record files every term of the expression under its variable's column. The
// variable must have been allocated on the owning System.
func (l *Ledger) record(exp LinearExpression, constraintID int) {
	for _, t := range exp {
		entry := ColumnEntry{Coeff: t.Coeff, ConstraintID: constraintID}
		switch t.Variable.Visibility {
		case Input:
			l.Inputs[t.Variable.Index] = append(l.Inputs[t.Variable.Index], entry)
		case Auxiliary:
			l.Aux[t.Variable.Index] = append(l.Aux[t.Variable.Index], entry)
		default:
			panic("invalid variable visibility")
		}
	}
}

// System records the structure of a rank-1 constraint system: the two variable
// namespaces, every constraint in row form, and the three matrices A, B and C
// in column form. It stores no witness values and performs no evaluation.
//
// Exported fields are part of the serialized form (see WriteTo); the modulus
// and field engine are restored from the header on read.
type System struct {
	// serialization header
	RawVersion  string
	ScalarField string

	// variable counters; indices are dense per namespace
	NbInputs int
	NbAux    int

	// NbConstraints always equals len(Constraints); it is kept explicit so
	// the serialization header carries it without the row payload.
	NbConstraints int

	// row form, in enforce order
	Constraints []R1C `cbor:"-"`

	// column form
	A, B, C Ledger `cbor:"-"`

	// scalar field
	q      *big.Int `cbor:"-"`
	bitLen int      `cbor:"-"`
	fd     Field    `cbor:"-"`
}

// System delegates coefficient arithmetic to its engine and renders
// coefficients when pretty printing.
var (
	_ Field    = (*System)(nil)
	_ Resolver = (*System)(nil)
)

// NewSystem initializes an empty System over the given scalar field, using fd
// for coefficient arithmetic. capacity pre-sizes the row storage.
func NewSystem(scalarField *big.Int, fd Field, capacity int) System {
	return System{
		RawVersion:  rawr1cs.Version.String(),
		ScalarField: scalarField.Text(16),
		q:           new(big.Int).Set(scalarField),
		bitLen:      scalarField.BitLen(),
		fd:          fd,
		Constraints: make([]R1C, 0, capacity),
	}
}

// AddInput allocates a new public input variable and returns it. The new index
// gets an empty column in each of the three matrix ledgers. It never fails.
func (system *System) AddInput() Variable {
	idx := system.NbInputs
	system.NbInputs++
	system.growInputColumns()
	return In(idx)
}

// AddAuxiliary allocates a new auxiliary variable and returns it. The new
// index gets an empty column in each of the three matrix ledgers. It never
// fails.
func (system *System) AddAuxiliary() Variable {
	idx := system.NbAux
	system.NbAux++
	system.growAuxColumns()
	return Aux(idx)
}

// AddConstraint appends the constraint to the row form and files every term
// under its variable's column in the matching matrix ledger, in the same pass.
// It returns the constraint's row index.
func (system *System) AddConstraint(c R1C) int {
	cID := system.NbConstraints
	system.Constraints = append(system.Constraints, c)
	system.recordColumns(&system.Constraints[cID], cID)
	system.NbConstraints++
	return cID
}

func (system *System) growInputColumns() {
	system.A.Inputs = append(system.A.Inputs, Column{})
	system.B.Inputs = append(system.B.Inputs, Column{})
	system.C.Inputs = append(system.C.Inputs, Column{})
}

func (system *System) growAuxColumns() {
	system.A.Aux = append(system.A.Aux, Column{})
	system.B.Aux = append(system.B.Aux, Column{})
	system.C.Aux = append(system.C.Aux, Column{})
}

func (system *System) recordColumns(c *R1C, cID int) {
	system.A.record(c.A, cID)
	system.B.record(c.B, cID)
	system.C.record(c.C, cID)
}

// rebuildLedgers recomputes the column form from the row form; the serialized
// representation transports rows only. It goes through the same helpers as
// incremental recording, so the rebuilt ledgers are identical to the ones the
// recorder grew.
func (system *System) rebuildLedgers() {
	system.A, system.B, system.C = Ledger{}, Ledger{}, Ledger{}
	for i := 0; i < system.NbInputs; i++ {
		system.growInputColumns()
	}
	for i := 0; i < system.NbAux; i++ {
		system.growAuxColumns()
	}
	for i := range system.Constraints {
		system.recordColumns(&system.Constraints[i], i)
	}
}

// CheckSerializationHeader parses the scalar field and version headers and
// restores the field engine from the registry.
//
// This is meant to be used at the deserialization step, and will error for
// illegal values.
func (system *System) CheckSerializationHeader() error {
	binaryVersion := rawr1cs.Version
	objectVersion, err := semver.Parse(system.RawVersion)
	if err != nil {
		return fmt.Errorf("when parsing version: %w", err)
	}

	if binaryVersion.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", binaryVersion.String()).Str("object", objectVersion.String()).Msg("version mismatch with serialized constraint system. there are no guarantees on compatibility")
	}

	scalarField := new(big.Int)
	_, ok := scalarField.SetString(system.ScalarField, 16)
	if !ok {
		return fmt.Errorf("when parsing serialized modulus: %s", system.ScalarField)
	}
	fd, ok := FieldByModulus(scalarField)
	if !ok {
		return fmt.Errorf("unsupported scalar field %s", scalarField.Text(16))
	}
	system.q = new(big.Int).Set(scalarField)
	system.bitLen = system.q.BitLen()
	system.fd = fd
	return nil
}

// Field returns a copy of the scalar field modulus.
func (system *System) Field() *big.Int {
	return new(big.Int).Set(system.q)
}

// FieldBitLen returns the number of bits needed to represent an element of the
// scalar field.
func (system *System) FieldBitLen() int {
	return system.bitLen
}

// CoeffToString implements Resolver; coefficients print in decimal.
func (system *System) CoeffToString(c Element) string {
	return system.fd.String(c)
}

// The methods below delegate coefficient arithmetic to the field engine, so
// callers holding a System can build coefficients without knowing the concrete
// scalar field.

func (system *System) FromInterface(i interface{}) Element { return system.fd.FromInterface(i) }
func (system *System) ToBigInt(e Element) *big.Int         { return system.fd.ToBigInt(e) }
func (system *System) Mul(a, b Element) Element            { return system.fd.Mul(a, b) }
func (system *System) Add(a, b Element) Element            { return system.fd.Add(a, b) }
func (system *System) Sub(a, b Element) Element            { return system.fd.Sub(a, b) }
func (system *System) Neg(a Element) Element               { return system.fd.Neg(a) }
func (system *System) Inverse(a Element) (Element, bool)   { return system.fd.Inverse(a) }
func (system *System) One() Element                        { return system.fd.One() }
func (system *System) IsOne(a Element) bool                { return system.fd.IsOne(a) }
func (system *System) String(a Element) string             { return system.fd.String(a) }
func (system *System) Uint64(a Element) (uint64, bool)     { return system.fd.Uint64(a) }

// Dump writes the human readable structural form of the system to w: for each
// matrix a header line, then one line per constraint listing that constraint's
// terms in recording order. An identically-zero expression prints as [].
//
// This is a debug rendering; it is not versioned and not meant to be parsed
// back. Use WriteTo for a stable artifact.
func (system *System) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := system.dumpMatrix(bw, "A", func(c *R1C) LinearExpression { return c.A }); err != nil {
		return err
	}
	if err := system.dumpMatrix(bw, "B", func(c *R1C) LinearExpression { return c.B }); err != nil {
		return err
	}
	if err := system.dumpMatrix(bw, "C", func(c *R1C) LinearExpression { return c.C }); err != nil {
		return err
	}
	return bw.Flush()
}

func (system *System) dumpMatrix(w *bufio.Writer, name string, row func(*R1C) LinearExpression) error {
	if _, err := w.WriteString(name + " matrix:\n"); err != nil {
		return err
	}
	for i := range system.Constraints {
		sbb := NewStringBuilder(system)
		sbb.WriteLinearExpression(row(&system.Constraints[i]))
		sbb.WriteByte('\n')
		if _, err := w.WriteString(sbb.String()); err != nil {
			return err
		}
	}
	return nil
}
