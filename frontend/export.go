package frontend

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/zkmatter/rawr1cs/constraint"
	"github.com/zkmatter/rawr1cs/debug"
	"github.com/zkmatter/rawr1cs/field"
	"github.com/zkmatter/rawr1cs/logger"
)

// Record runs the circuit definition routine against a structure-only
// recorder and returns the populated constraint system.
//
// 1. it allocates the reserved "one" public input (index 0) before any user
// logic runs;
//
// 2. it calls circuit.Define() to record the user's allocations and
// constraints; assignments and labels are never evaluated;
//
// 3. it appends one trivially satisfied padding constraint In(i) ⋅ 0 == 0 per
// public input, in increasing index order, so every input column of the A
// matrix is structurally nonzero for downstream key generation.
//
// An error returned by Define aborts the recording and is returned unchanged.
func Record(scalarField *big.Int, circuit Circuit, opts ...RecordOption) (*constraint.System, error) {
	log := logger.Logger()
	log.Info().Msg("recording circuit structure")

	// parse options
	opt := defaultRecordConfig()
	for _, o := range opts {
		if err := o(&opt); err != nil {
			log.Err(err).Msg("applying record option")
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	// resolve the arithmetic engine for the scalar field
	fd, err := field.ByModulus(scalarField)
	if err != nil {
		log.Err(err).Msg("resolving scalar field")
		return nil, err
	}

	cs := constraint.NewSystem(scalarField, fd, opt.Capacity)

	if err := synthesize(newRecorder(&cs), circuit); err != nil {
		return nil, err
	}

	log.Info().
		Int("nbConstraints", cs.NbConstraints).
		Int("nbInputs", cs.NbInputs).
		Int("nbAux", cs.NbAux).
		Msg("structure recorded")

	return &cs, nil
}

// Export records the circuit structure over the given scalar field and writes
// the human readable dump of the three matrices to w. Nothing is written if
// the recording fails.
func Export(scalarField *big.Int, circuit Circuit, w io.Writer, opts ...RecordOption) error {
	cs, err := Record(scalarField, circuit, opts...)
	if err != nil {
		return err
	}
	return cs.Dump(w)
}

// synthesize allocates the reserved one input, runs Define, then appends the
// density padding rows.
func synthesize(rec *recorder, circuit Circuit) (err error) {
	// ensure circuit.Define has pointer receiver
	if reflect.ValueOf(circuit).Kind() != reflect.Ptr {
		return errors.New("frontend.Circuit methods must be defined on pointer receiver")
	}

	// the reserved one input. its assignment is fixed; like every other
	// assignment, the structure recorder drops it unevaluated.
	if _, err := rec.AllocateInput(func() (interface{}, error) { return 1, nil }, nil); err != nil {
		return err
	}

	// recover from panics to print user-friendlier messages
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	// a Define error is the user's error; return it unchanged
	if err = circuit.Define(rec); err != nil {
		return err
	}

	// input constraints to ensure full density of the input columns
	// In(i) * 0 = 0
	one := rec.One()
	for i := 0; i < rec.cs.NbInputs; i++ {
		rec.Enforce(Term(one, constraint.In(i)), nil, nil, nil)
	}

	return nil
}

// RecordOption defines an option for altering the behavior of the Record
// method. See the descriptions of functions returning instances of this type
// for available options.
type RecordOption func(opt *RecordConfig) error

// RecordConfig carries the configuration applied by RecordOptions.
type RecordConfig struct {
	Capacity int
}

func defaultRecordConfig() RecordConfig {
	return RecordConfig{}
}

// WithCapacity pre-sizes the constraint storage; useful for circuits whose
// size is roughly known in advance.
func WithCapacity(capacity int) RecordOption {
	return func(opt *RecordConfig) error {
		if capacity < 0 {
			return fmt.Errorf("negative capacity %d", capacity)
		}
		opt.Capacity = capacity
		return nil
	}
}
