package integrator

// Integrable is a state vector which RK4 can advance.
//
// The slices handed to SetState and Func, and the slice returned by Func, are only valid for the
// duration of the call: RK4 reuses its buffers from one step to the next, so an implementation
// keeping a state must copy it, and Func may return the same buffer on every call.
type Integrable interface {
	// GetState returns the current state. It is read, never written, by the integrator.
	GetState() []float64
	// SetState stores the state reached at the end of iteration i.
	SetState(i uint64, s []float64)
	// Stop returns whether to stop before performing iteration i.
	Stop(i uint64) bool
	// Func returns the derivative of s at time t.
	Func(t float64, s []float64) []float64
}
