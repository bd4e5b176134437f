package frontend

// Circuit must be implemented by the circuit definition routine driving a
// recording.
type Circuit interface {
	// Define declares the circuit's variables and constraints against the
	// given api.
	Define(api API) error
}
