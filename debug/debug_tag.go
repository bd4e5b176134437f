//go:build debug

package debug

// Debug controls the verbosity of stack traces and enables internal sanity
// checks. Set with -tags=debug.
const Debug = true
