package constraint

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/zkmatter/rawr1cs/internal/ioutils"
)

// The serialized form has a fixed-size header followed by 3 sections: the row
// structure (term counts and packed variables), the coefficients, and a CBOR
// body carrying the version, scalar field and counters. Sections are
// independent, so they are encoded and decoded in parallel; the column ledgers
// are not transported, they are rebuilt from the rows on read.

const headerLen = 3 * 8

type header struct {
	// length in bytes of each section
	rowsLen   uint64
	coeffsLen uint64
	bodyLen   uint64
}

func (h *header) toBytes() []byte {
	buf := make([]byte, 0, headerLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.rowsLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.coeffsLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bodyLen)
	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.rowsLen = binary.LittleEndian.Uint64(buf[:8])
	h.coeffsLen = binary.LittleEndian.Uint64(buf[8:16])
	h.bodyLen = binary.LittleEndian.Uint64(buf[16:24])
}

// packVariable packs a variable on a uint32: index on the high bits, namespace
// on the lowest bit.
func packVariable(v Variable) uint32 {
	return uint32(v.Index)<<1 | uint32(v.Visibility)
}

func unpackVariable(packed uint32) Variable {
	return Variable{Visibility: Visibility(packed & 1), Index: int(packed >> 1)}
}

// ToBytes serializes the constraint system to a byte slice.
func (system *System) ToBytes() ([]byte, error) {
	// we prepare and write 3 distinct blocks of data;
	// that allows for a more efficient serialization/deserialization (+ parallelism)
	var rows, coeffs []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		rows, err = system.rowsToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		coeffs, err = system.coeffsToBytes()
		return err
	})
	body, err := system.toBytes()
	if err != nil {
		return nil, err
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := header{
		rowsLen:   uint64(len(rows)),
		coeffsLen: uint64(len(coeffs)),
		bodyLen:   uint64(len(body)),
	}

	buf := h.toBytes()
	buf = append(buf, rows...)
	buf = append(buf, coeffs...)
	buf = append(buf, body...)

	return buf, nil
}

// FromBytes deserializes the constraint system from a byte slice and returns
// the number of bytes read.
func (system *System) FromBytes(data []byte) (int, error) {
	if len(data) < headerLen {
		return 0, errors.New("invalid data length")
	}

	// read the header which contains the length of each section
	h := new(header)
	h.fromBytes(data)

	if uint64(len(data)) < headerLen+h.rowsLen+h.coeffsLen+h.bodyLen {
		return 0, errors.New("invalid data length")
	}

	// read the binary sections in parallel
	var (
		sTermCounts, sVariables []uint32
		sLimbs                  []uint64
		g                       errgroup.Group
	)
	g.Go(func() error {
		var err error
		sTermCounts, sVariables, err = rowsFromBytes(data[headerLen : headerLen+h.rowsLen])
		return err
	})
	g.Go(func() error {
		var err error
		sLimbs, err = coeffsFromBytes(data[headerLen+h.rowsLen : headerLen+h.rowsLen+h.coeffsLen])
		return err
	})

	// CBOR decoding of the counters and serialization header
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	decoder := dm.NewDecoder(bytes.NewReader(data[headerLen+h.rowsLen+h.coeffsLen : headerLen+h.rowsLen+h.coeffsLen+h.bodyLen]))
	if err := decoder.Decode(system); err != nil {
		return 0, err
	}

	if err := system.CheckSerializationHeader(); err != nil {
		return 0, err
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := system.assembleRows(sTermCounts, sVariables, sLimbs); err != nil {
		return 0, err
	}
	system.rebuildLedgers()

	return headerLen + int(h.rowsLen) + int(h.coeffsLen) + int(h.bodyLen), nil
}

// WriteTo encodes the system into the provided io.Writer.
func (system *System) WriteTo(w io.Writer) (int64, error) {
	data, err := system.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom attempts to decode the system from the provided io.Reader. The
// field package matching the serialized scalar field must have been imported.
func (system *System) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	n, err := system.FromBytes(data)
	return int64(n), err
}

func (system *System) toBytes() ([]byte, error) {
	// CBOR encoding of the constraint system (except what we do directly in binary)
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	encoder := enc.NewEncoder(buf)

	if err := encoder.Encode(system); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// rowsToBytes encodes the structure of the row form: for every constraint the
// three expression lengths, then every referenced variable, packed. Both
// streams compress well, being made of small and mostly increasing integers.
func (system *System) rowsToBytes() ([]byte, error) {
	sTermCounts := make([]uint32, 0, 3*len(system.Constraints))
	sVariables := make([]uint32, 0, 3*len(system.Constraints))

	for i := range system.Constraints {
		c := &system.Constraints[i]
		sTermCounts = append(sTermCounts, uint32(len(c.A)), uint32(len(c.B)), uint32(len(c.C)))
		for _, l := range [3]LinearExpression{c.A, c.B, c.C} {
			for _, t := range l {
				sVariables = append(sVariables, packVariable(t.Variable))
			}
		}
	}

	var buf bytes.Buffer
	buf.Grow(4 * (len(sTermCounts) + len(sVariables)))

	buf32, err := ioutils.CompressAndWriteUints32(&buf, sTermCounts, nil)
	if err != nil {
		return nil, err
	}
	if _, err := ioutils.CompressAndWriteUints32(&buf, sVariables, buf32); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// coeffsToBytes encodes the coefficient of every term, in rows-section order.
// Coefficient limbs are high entropy so no compression is attempted; the user
// is still free to compress the final byte slice if needed.
func (system *System) coeffsToBytes() ([]byte, error) {
	var nbTerms int
	for i := range system.Constraints {
		c := &system.Constraints[i]
		nbTerms += len(c.A) + len(c.B) + len(c.C)
	}

	sLimbs := make([]uint64, 0, 6*nbTerms)
	for i := range system.Constraints {
		c := &system.Constraints[i]
		for _, l := range [3]LinearExpression{c.A, c.B, c.C} {
			for _, t := range l {
				sLimbs = append(sLimbs, t.Coeff[:]...)
			}
		}
	}

	var buf bytes.Buffer
	buf.Grow(8 + 8*len(sLimbs))
	if err := ioutils.WriteUints64(&buf, sLimbs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowsFromBytes(in []byte) (sTermCounts, sVariables []uint32, err error) {
	var (
		buf32 []uint32
		n     int
	)
	buf32, n, sTermCounts, err = ioutils.ReadAndDecompressUints32(in, buf32)
	if err != nil {
		return nil, nil, err
	}
	in = in[n:]
	_, _, sVariables, err = ioutils.ReadAndDecompressUints32(in, buf32)
	if err != nil {
		return nil, nil, err
	}
	return sTermCounts, sVariables, nil
}

func coeffsFromBytes(in []byte) ([]uint64, error) {
	_, sLimbs, err := ioutils.ReadUints64(in)
	return sLimbs, err
}

// assembleRows rebuilds the row form from the decoded sections: term counts
// come in triples (one per expression), variables and coefficient limbs in
// term order. The CBOR body must have been decoded first, as the counters are
// cross-checked against the sections.
func (system *System) assembleRows(sTermCounts, sVariables []uint32, sLimbs []uint64) error {
	if len(sTermCounts)%3 != 0 {
		return errors.New("invalid term count stream")
	}
	if len(sLimbs)%6 != 0 {
		return errors.New("invalid coefficient stream")
	}
	if len(sTermCounts)/3 != system.NbConstraints {
		return errors.New("constraint count mismatch")
	}

	var nbTerms int
	for _, n := range sTermCounts {
		nbTerms += int(n)
	}
	if nbTerms != len(sVariables) || nbTerms != len(sLimbs)/6 {
		return errors.New("inconsistent section lengths")
	}

	for _, packed := range sVariables {
		v := unpackVariable(packed)
		limit := system.NbInputs
		if v.Visibility == Auxiliary {
			limit = system.NbAux
		}
		if v.Index >= limit {
			return errors.New("variable index out of range")
		}
	}

	system.Constraints = make([]R1C, system.NbConstraints)
	k := 0
	next := func(n uint32) LinearExpression {
		if n == 0 {
			// the recorder represents the identically-zero expression as nil
			return nil
		}
		exp := make(LinearExpression, n)
		for i := range exp {
			var coeff Element
			copy(coeff[:], sLimbs[6*k:6*k+6])
			exp[i] = Term{Coeff: coeff, Variable: unpackVariable(sVariables[k])}
			k++
		}
		return exp
	}
	for i := range system.Constraints {
		system.Constraints[i] = R1C{
			A: next(sTermCounts[3*i]),
			B: next(sTermCounts[3*i+1]),
			C: next(sTermCounts[3*i+2]),
		}
	}

	return nil
}
