package constraint

import "github.com/bits-and-blooms/bitset"

// MatrixStats summarizes the column form of one matrix.
type MatrixStats struct {
	// NbTerms is the total number of recorded (coefficient, constraint)
	// entries, duplicates included.
	NbTerms int

	// NbNonEmptyColumns counts variables carrying at least one entry.
	NbNonEmptyColumns int

	// NbConstraintsTouched counts distinct constraints carrying at least one
	// entry.
	NbConstraintsTouched int

	// NbZeroCoeffs counts entries recorded with a zero coefficient; the
	// recorder keeps them verbatim.
	NbZeroCoeffs int
}

// Stats summarizes a recorded system: namespace counters plus per-matrix
// density figures computed from the column ledgers.
type Stats struct {
	NbInputs      int
	NbAux         int
	NbConstraints int

	A, B, C MatrixStats
}

// GetStats scans the three column ledgers and returns density figures for the
// system. Cost is linear in the number of recorded terms.
func (system *System) GetStats() Stats {
	return Stats{
		NbInputs:      system.NbInputs,
		NbAux:         system.NbAux,
		NbConstraints: system.NbConstraints,
		A:             system.matrixStats(&system.A),
		B:             system.matrixStats(&system.B),
		C:             system.matrixStats(&system.C),
	}
}

func (system *System) matrixStats(l *Ledger) MatrixStats {
	var res MatrixStats
	touched := bitset.New(uint(system.NbConstraints))
	scan := func(columns []Column) {
		for _, col := range columns {
			if len(col) > 0 {
				res.NbNonEmptyColumns++
			}
			for _, e := range col {
				res.NbTerms++
				if e.Coeff.IsZero() {
					res.NbZeroCoeffs++
				}
				touched.Set(uint(e.ConstraintID))
			}
		}
	}
	scan(l.Inputs)
	scan(l.Aux)
	res.NbConstraintsTouched = int(touched.Count())
	return res
}
