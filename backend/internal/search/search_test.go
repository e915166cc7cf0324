package search

import (
	"math"
	"testing"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/ligand"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/receptor"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/scoring"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

// TestBFGSQuadraticBowlConverges exercises the same Armijo/curvature
// trial-and-shrink sequence driver.go's inner loop runs (§4.6, §4.8) on
// f(x) = x^T x (gradient g = 2x), the literal scenario in §8: alpha
// starts at 1.0 and is multiplied by cfg.ShrinkFactor on every failed
// trial, exactly as the real driver does, rather than a hand-picked
// step size. Run to convergence, ||x|| must collapse toward zero and
// every Hessian update along the way must stay symmetric.
func TestBFGSQuadraticBowlConverges(t *testing.T) {
	cfg := DefaultConfig(1)
	n := 4
	h := spatial.NewTriMatrix(n)
	h.SetIdentity()

	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	grad := func(v []float64) []float64 {
		g := make([]float64, len(v))
		for i, xi := range v {
			g[i] = 2 * xi
		}
		return g
	}
	f := func(v []float64) float64 { return dot(v, v) }

	g1 := grad(x)
	e1 := f(x)

	converged := false
	for inner := 0; inner < 1000; inner++ {
		p := negVec(matVec(h, g1))
		pg1 := dot(p, g1)

		alpha := 1.0
		accepted := false
		var x2 []float64
		var e2 float64
		var g2 []float64
		for trial := 0; trial < cfg.NumAlphas; trial++ {
			x2 = make([]float64, n)
			for i := range x {
				x2[i] = x[i] + alpha*p[i]
			}
			e2 = f(x2)
			g2 = grad(x2)
			armijoBound := e1 + cfg.ArmijoC1*alpha*pg1
			if e2 <= armijoBound && dot(p, g2) >= cfg.CurvatureC2*pg1 {
				accepted = true
				break
			}
			alpha *= cfg.ShrinkFactor
		}
		if !accepted {
			t.Fatalf("inner %d: line search failed to accept any of the %d trial alphas", inner, cfg.NumAlphas)
		}

		bfgsUpdate(h, g1, g2, p, alpha)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if h.Restrictive(i, j) != h.Permissive(j, i) {
					t.Fatalf("inner %d: H not symmetric at (%d,%d)", inner, i, j)
				}
			}
		}

		x, g1, e1 = x2, g2, e2
		if math.Sqrt(dot(x, x)) < 1e-6 {
			converged = true
			break
		}
	}

	if !converged {
		t.Fatalf("||x|| = %v after the inner-loop budget, want < 1e-6", math.Sqrt(dot(x, x)))
	}
}

func tinySetup(t *testing.T) (*box.Box, *receptor.Receptor, *scoring.Function, *ligand.Ligand) {
	t.Helper()
	b := box.New(spatial.Vec3{}, spatial.Vec3{X: 5, Y: 5, Z: 5}, 1.0)
	atoms := []atomtype.Atom{
		atomtype.NewAtom(1, "O1", spatial.Vec3{X: 1, Y: 0, Z: 0}, atomtype.ADTypeOA, "RES", false, false),
	}
	rec := receptor.Build(atoms, b)
	sf := scoring.Build()
	l := ligand.New(1, []spatial.Vec3{{}}, []atomtype.XSType{atomtype.XSNitrogenDonor}, nil, nil)
	return b, rec, sf, l
}

func TestTaskReproducibility(t *testing.T) {
	b, rec, sf, l := tinySetup(t)
	cfg := DefaultConfig(1)

	p1 := Task(42, l, sf, rec, b, cfg, 4.0)
	p2 := Task(42, l, sf, rec, b, cfg, 4.0)

	if p1.Len() != p2.Len() {
		t.Fatalf("pool sizes differ: %d vs %d", p1.Len(), p2.Len())
	}
	for i := range p1.Items() {
		a, c := p1.Items()[i], p2.Items()[i]
		if a.E != c.E {
			t.Errorf("item %d energy differs: %v vs %v", i, a.E, c.E)
		}
	}
}

func TestTaskDifferentSeedsCanDiffer(t *testing.T) {
	b, rec, sf, l := tinySetup(t)
	cfg := DefaultConfig(1)

	p1 := Task(1, l, sf, rec, b, cfg, 4.0)
	p2 := Task(2, l, sf, rec, b, cfg, 4.0)
	// Not asserting inequality (they could coincidentally match); just
	// exercising that both runs terminate and produce valid pools.
	if p1.Len() == 0 && p2.Len() == 0 {
		t.Skip("both seeds produced empty pools; nothing to compare")
	}
}
