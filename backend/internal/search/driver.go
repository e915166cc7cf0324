// Package search implements the Monte Carlo / BFGS pose-search driver
// (spec §4.6, §4.8): a randomized-restart quasi-Newton local optimizer
// driven by accept-only-better Metropolis acceptance. The line-search
// scaffolding is grounded on backend/internal/optimization/lbfgs.go's
// wolfeLineSearch/vedicLineSearch shape (backtracking with an Armijo
// check); the outer restart loop is grounded on
// backend/internal/sampling/monte_carlo.go's MonteCarloVedic shape. Both
// diverge from their teacher precedent exactly where the spec requires:
// a full (not limited-memory) BFGS with an explicit packed Hessian
// update, and an accept-only-better outer loop with no temperature term
// (§9 Open Question — the teacher's cooling schedules are not used).
package search

import (
	"math/rand"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/ligand"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/receptor"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/resultpool"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/scoring"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

// Task runs one independent Monte Carlo / BFGS search (one (ligand,
// seed) pair, §5) and returns the per-task result container. Every RNG
// draw, evaluator call, and BFGS update is strictly ordered within this
// function (§5): same seed, same ligand, same receptor -> bit-for-bit
// identical pool contents, regardless of how many other tasks run
// concurrently.
func Task(seed int64, l *ligand.Ligand, sf *scoring.Function, rec *receptor.Receptor, b *box.Box, cfg Config, tau float64) *resultpool.Pool {
	rng := rand.New(rand.NewSource(seed))
	u := func() float64 { return rng.Float64()*2 - 1 } // U(-1,1)

	pool := resultpool.NewPool(resultpool.DefaultCapacity, tau)

	evaluate := func(c ligand.Conformation, eUpperBound float64) (heavy, hydrogen []spatial.Vec3, e, f float64, g []float64, ok bool) {
		heavy, hydrogen, e, f, g, ok = ligand.Evaluate(c, sf, rec, eUpperBound, l)
		if cfg.OnEvaluate != nil {
			cfg.OnEvaluate()
		}
		return
	}

	maxInner := cfg.maxInnerIterations
	if maxInner <= 0 {
		// A Config built outside this package cannot set the unexported
		// bound; fall back to DefaultConfig's value.
		maxInner = DefaultConfig(0).maxInnerIterations
	}

	c0 := ligand.RandomStart(b, len(l.Torsions), u)
	heavy0, hydrogen0, e0, f0, _, ok := evaluate(c0, cfg.EUpperBound)
	if !ok {
		// A random start rejected by the energy ceiling is not retried:
		// the task returns an empty pool.
		return pool
	}
	pool.Insert(ligand.ComposeResult(e0, f0, heavy0, hydrogen0))

	for iter := 0; iter < cfg.NumMCIterations; iter++ {
		c1 := c0.Clone()
		c1.Position = c1.Position.Add(spatial.Vec3{X: u(), Y: u(), Z: u()})

		heavy1, hydrogen1, e1, f1, g1, ok := evaluate(c1, cfg.EUpperBound)
		if !ok {
			continue
		}

		h := spatial.NewTriMatrix(len(g1))
		h.SetIdentity()

		for inner := 0; inner < maxInner; inner++ {
			p := negVec(matVec(h, g1))

			alpha := 1.0
			accepted := false
			var c2 ligand.Conformation
			var heavy2, hydrogen2 []spatial.Vec3
			var e2, f2 float64
			var g2 []float64

			pg1 := dot(p, g1)
			for trial := 0; trial < cfg.NumAlphas; trial++ {
				c2 = step(c1, p, alpha)
				armijoBound := e1 + cfg.ArmijoC1*alpha*pg1
				var okTrial bool
				heavy2, hydrogen2, e2, f2, g2, okTrial = evaluate(c2, armijoBound)
				if okTrial && dot(p, g2) >= cfg.CurvatureC2*pg1 {
					accepted = true
					break
				}
				alpha *= cfg.ShrinkFactor
			}

			if !accepted {
				break // give-up terminates the inner BFGS loop (§4.8)
			}

			bfgsUpdate(h, g1, g2, p, alpha)
			c1, heavy1, hydrogen1, e1, f1, g1 = c2, heavy2, hydrogen2, e2, f2, g2
		}

		if e1 < e0 {
			pool.Insert(ligand.ComposeResult(e1, f1, heavy1, hydrogen1))
			c0, e0 = c1, e1
		}
	}

	return pool
}

// step applies a BFGS/line-search increment to a conformation (§4.6,
// §9): translation adds, orientation is premultiplied by the axis-angle
// increment and renormalized, torsions add and wrap to [-pi, pi).
func step(c ligand.Conformation, p []float64, alpha float64) ligand.Conformation {
	out := c.Clone()
	out.Position = out.Position.Add(spatial.Vec3{X: p[0], Y: p[1], Z: p[2]}.Scale(alpha))

	axisAngle := spatial.Vec3{X: p[3], Y: p[4], Z: p[5]}.Scale(alpha)
	dq := spatial.QuatFromAxisAngle(axisAngle)
	oriented := dq.Mul(out.Orientation)
	if normed, err := oriented.Normalize(); err == nil {
		out.Orientation = normed
	} else {
		out.Orientation = oriented
	}

	for i := range out.Torsions {
		out.Torsions[i] = ligand.WrapAngle(out.Torsions[i] + alpha*p[6+i])
	}
	return out
}
