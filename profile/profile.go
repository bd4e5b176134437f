// Package profile provides a simple way to generate pprof compatible profiles
// of a circuit structure recording.
//
// Since the structure recorder is not thread safe and operates in a single
// go-routine, this package is also NOT thread safe and is meant to be called
// from the same go-routine.
package profile

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode"

	"github.com/google/pprof/profile"

	"github.com/zkmatter/rawr1cs/logger"
)

// active sessions; RecordConstraint feeds each of them
var sessions []*Profile

// Profile represents an active recording profiling session.
type Profile struct {
	// defaults to ./rawr1cs.pprof
	// if blank, profile is not written to disk
	filePath string

	// actual pprof profile struct
	// details on pprof format: https://github.com/google/pprof/blob/main/proto/README.md
	pprof profile.Profile

	functions map[string]*profile.Function
	locations map[uint64]*profile.Location

	onceSetName sync.Once
}

// Option defines configuration Options for Profile.
type Option func(*Profile)

// WithPath controls the profile destination file. If blank, profile is not
// written to disk.
//
// Defaults to ./rawr1cs.pprof.
func WithPath(path string) Option {
	return func(p *Profile) {
		p.filePath = path
	}
}

// WithNoOutput indicates that the profile is not going to be written to disk.
//
// This is equivalent to WithPath("")
func WithNoOutput() Option {
	return func(p *Profile) {
		p.filePath = ""
	}
}

// Start creates a new active profiling session. When Stop() is called, this
// session is removed from the active sessions and may be serialized to disk as
// a pprof compatible file (see WithPath option).
//
// All calls to Start() and Stop() are meant to be executed in the same
// go-routine as the recording.
//
// It is allowed to create multiple overlapping profiling sessions in one
// circuit.
func Start(options ...Option) *Profile {
	p := &Profile{
		functions: make(map[string]*profile.Function),
		locations: make(map[uint64]*profile.Location),
		filePath:  filepath.Join(".", "rawr1cs.pprof"),
	}
	p.pprof.SampleType = []*profile.ValueType{{
		Type: "constraints",
		Unit: "count",
	}}

	for _, option := range options {
		option(p)
	}

	log := logger.Logger()
	if p.filePath == "" {
		log.Warn().Msg("profiling enabled [not writing to disk]")
	} else {
		log.Info().Str("path", p.filePath).Msg("profiling enabled")
	}

	sessions = append(sessions, p)

	return p
}

// Stop removes the profile from the active sessions and may write the pprof
// file to disk. See WithPath option.
func (p *Profile) Stop() {
	log := logger.Logger()

	removed := false
	for i := 0; i < len(sessions); i++ {
		if sessions[i] == p {
			sessions[i] = sessions[len(sessions)-1]
			sessions = sessions[:len(sessions)-1]
			removed = true
			break
		}
	}
	if !removed {
		log.Fatal().Msg("profile stopped multiple times")
	}

	if p.filePath != "" {
		f, err := os.Create(p.filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create profile file")
		}
		if err := p.pprof.Write(f); err != nil {
			log.Error().Err(err).Msg("writing profile")
		}
		f.Close()
		log.Info().Str("path", p.filePath).Msg("profiling disabled")
	} else {
		log.Warn().Msg("profiling disabled [not writing to disk]")
	}
}

// NbConstraints returns the number of samples (constraints) collected by the
// profile session.
func (p *Profile) NbConstraints() int {
	return len(p.pprof.Sample)
}

// RecordConstraint adds a sample (with count == 1) to all the active profiling
// sessions.
func RecordConstraint() {
	if len(sessions) == 0 {
		return
	}

	pc := make([]uintptr, 20)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	collectSample(pc[:n])
}

func collectSample(pc []uintptr) {
	// each session gets its own sample; ids of functions and locations may
	// mismatch between sessions
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1}}
	}

	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()

		if strings.Contains(frame.Function, "frontend.synthesize") {
			// we stop; previous frame was the .Define definition of the circuit
			break
		}

		if strings.HasSuffix(frame.Function, ".func1") {
			continue
		}

		// filter recorder internals from the trace
		if filterRecorderPrivateFunc(frame.Function) {
			continue
		}

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
		if strings.HasSuffix(frame.Function, ".Define") {
			for i := range sessions {
				p := sessions[i]
				p.onceSetName.Do(func() {
					// once per profile session, we set the "name of the binary";
					// here we grep the struct name where "Define" exists,
					// hopefully the circuit name. this won't work well for
					// nested Define calls.
					fe := strings.Split(frame.Function, "/")
					circuitName := strings.TrimSuffix(fe[len(fe)-1], ".Define")
					p.pprof.Mapping = []*profile.Mapping{
						{ID: 1, File: circuitName},
					}
				})
			}
		}
	}

	for i := range sessions {
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

func (p *Profile) getLocation(frame *runtime.Frame) *profile.Location {
	l, ok := p.locations[uint64(frame.PC)]
	if !ok {
		// first let's see if we have the function.
		f, ok := p.functions[frame.File+frame.Function]
		if !ok {
			fe := strings.Split(frame.Function, "/")
			fName := fe[len(fe)-1]
			f = &profile.Function{
				ID:         uint64(len(p.functions) + 1),
				Name:       fName,
				SystemName: frame.Function,
				Filename:   frame.File,
			}

			p.functions[frame.File+frame.Function] = f
			p.pprof.Function = append(p.pprof.Function, f)
		}

		l = &profile.Location{
			ID:   uint64(len(p.locations) + 1),
			Line: []profile.Line{{Function: f, Line: int64(frame.Line)}},
		}
		p.locations[uint64(frame.PC)] = l
		p.pprof.Location = append(p.pprof.Location, l)
	}

	return l
}

func filterRecorderPrivateFunc(f string) bool {
	const prefix = "github.com/zkmatter/rawr1cs/frontend.(*recorder)."
	if strings.HasPrefix(f, prefix) && len(f) > len(prefix) {
		c := []rune(f)[len(prefix)]
		if unicode.IsLower(c) {
			return true
		}
	}
	return false
}
