package integrator

// RK4 defines a classic fourth order Runge-Kutta integrator with a fixed step.
// Its work buffers are kept between calls to Solve, so an RK4 must not be shared between goroutines.
type RK4 struct {
	X0         float64    // The initial x0.
	StepSize   float64    // The step size.
	Integrator Integrable // What is to be integrated.

	k1, k2, k3, k4, tState, newState []float64
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) (r *RK4) {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integrator may not be nil")
	}
	r = &RK4{X0: x0, StepSize: stepSize, Integrator: inte}
	return
}

// buffers sizes the work buffers for a state of n components.
func (r *RK4) buffers(n int) {
	if len(r.k1) == n {
		return
	}
	r.k1 = make([]float64, n)
	//k2, k3, k4 are used as buffers AND result variables.
	r.k2 = make([]float64, n)
	r.k3 = make([]float64, n)
	r.k4 = make([]float64, n)
	r.tState = make([]float64, n)
	r.newState = make([]float64, n)
}

// Solve solves the configured RK4.
// Returns the number of iterations performed and the last X_i.
func (r *RK4) Solve() (uint64, float64) {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)

	iterNum := uint64(0)
	xi := r.X0
	h := r.StepSize
	for !r.Integrator.Stop(iterNum) {
		state := r.Integrator.GetState()
		r.buffers(len(state))
		k1, k2, k3, k4, tState := r.k1, r.k2, r.k3, r.k4, r.tState

		// Compute the k's.
		for i, y := range r.Integrator.Func(xi, state) {
			k1[i] = y * h
			tState[i] = state[i] + k1[i]*half
		}
		for i, y := range r.Integrator.Func(xi+h*half, tState) {
			k2[i] = y * h
			tState[i] = state[i] + k2[i]*half
		}
		for i, y := range r.Integrator.Func(xi+h*half, tState) {
			k3[i] = y * h
			tState[i] = state[i] + k3[i]
		}
		for i, y := range r.Integrator.Func(xi+h, tState) {
			k4[i] = y * h
			r.newState[i] = state[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
		}
		r.Integrator.SetState(iterNum, r.newState)

		xi += h
		iterNum++ // Don't forget to increment the number of iterations.
	}

	return iterNum, xi
}
