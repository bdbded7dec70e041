package objective

// Sphere is f(x) = sum(x_i^2): a single-basin bowl with its minimum at the
// origin. It ignores inputs and reports one output, matching the single
// floor value used in None{floor_value} training.
type Sphere struct {
	DefaultFloor
}

// Run returns a single-element slice holding the sum of squared problem
// parameters.
func (Sphere) Run(problemParams, inputs []float64) []float64 {
	var sum float64
	for _, p := range problemParams {
		sum += p * p
	}
	return []float64{sum}
}

// Rosenbrock2D is the classic banana-valley function
// f(x, y) = (1-x)^2 + 100*(y - x^2)^2, minimized at (1, 1) where f = 0.
type Rosenbrock2D struct {
	DefaultFloor
}

// Run expects exactly two problem parameters and returns a single output.
// It panics if given any other arity: the function is only defined in 2D.
func (Rosenbrock2D) Run(problemParams, inputs []float64) []float64 {
	if len(problemParams) != 2 {
		panic("objective: Rosenbrock2D requires exactly 2 problem parameters")
	}
	x, y := problemParams[0], problemParams[1]
	a := 1 - x
	b := y - x*x
	return []float64{a*a + 100*b*b}
}

// ShiftedParabola is f(x) = x^2 + shift, a single-parameter bowl whose
// lowest output is Shift itself (at x = 0), which may be negative. Scored
// against a known output of Shift, its best score is 0 at x = 0.
type ShiftedParabola struct {
	Shift float64
}

// Floor returns the same shift used in Run, since the minimum achievable
// output is exactly the shift (at x = 0).
func (s ShiftedParabola) Floor() float64 { return s.Shift }

// Run returns a single-element slice holding x^2 + Shift for the first
// problem parameter.
func (s ShiftedParabola) Run(problemParams, inputs []float64) []float64 {
	if len(problemParams) != 1 {
		panic("objective: ShiftedParabola requires exactly 1 problem parameter")
	}
	x := problemParams[0]
	return []float64{x*x + s.Shift}
}
