package search

// Config holds the Monte Carlo / BFGS driver's tunables (§4.6). All
// defaults are the literal constants fixed by the spec; DefaultConfig
// takes the ligand's heavy-atom count to derive EUpperBound.
type Config struct {
	NumMCIterations int
	NumAlphas       int
	ShrinkFactor    float64
	ArmijoC1        float64
	CurvatureC2     float64
	EUpperBound     float64

	// maxInnerIterations bounds the BFGS inner loop as a practical
	// safety net; the spec's own termination rule is "until line search
	// fails," which in a well-posed problem converges long before this
	// is reached. Task uses DefaultConfig's bound when this is zero.
	maxInnerIterations int

	// OnEvaluate, if set, is called once per ligand.Evaluate call Task
	// makes. It lets a caller (internal/dock's scheduler) count energy
	// evaluations for internal/metrics without this package importing
	// metrics itself.
	OnEvaluate func()
}

// DefaultConfig returns the driver's tunables for a ligand with the
// given heavy-atom count: e_upper_bound = 40 * num_heavy_atoms.
func DefaultConfig(numHeavyAtoms int) Config {
	return Config{
		NumMCIterations:    50,
		NumAlphas:          5,
		ShrinkFactor:       0.1,
		ArmijoC1:           1e-4,
		CurvatureC2:        0.9,
		EUpperBound:        40 * float64(numHeavyAtoms),
		maxInnerIterations: 1000,
	}
}
