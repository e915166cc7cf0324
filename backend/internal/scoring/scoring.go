// Package scoring implements the tabulated semi-empirical pairwise
// potential (spec §4.4): five fixed weighted terms sampled onto a
// uniform r^2 grid so that evaluation is a single array lookup.
package scoring

import (
	"math"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
)

// Constants fixed by the scoring function (§6).
const (
	Cutoff     = 8.0
	CutoffSqr  = Cutoff * Cutoff // 64
	Factor     = 256
	NumSamples = int(Factor*CutoffSqr) + 1 // 16385
)

// Term weights (§4.4), fixed at build time.
const (
	weightGauss1     = -0.035579
	weightGauss2     = -0.005156
	weightRepulsion  = 0.840245
	weightHydrophobic = -0.035069
	weightHBond      = -0.587439
)

// phi is the hydrophobic ramp: 1 for d<=0.5, 0 for d>=1.5, linear between.
func phi(d float64) float64 {
	switch {
	case d <= 0.5:
		return 1
	case d >= 1.5:
		return 0
	default:
		return 1.5 - d
	}
}

// psi is the hydrogen-bond ramp: 0 for d>=0, 1 for d<=-0.7, linear between.
func psi(d float64) float64 {
	switch {
	case d >= 0:
		return 0
	case d <= -0.7:
		return 1
	default:
		return -1.428571 * d
	}
}

// score evaluates the five-term potential at surface distance d for the
// type pair (t1, t2), given via their hydrophobic/hbond classification.
func score(d float64, hydrophobicPair, hbondPair bool) float64 {
	e := weightGauss1*math.Exp(-sq(2*d)) +
		weightGauss2*math.Exp(-sq((d-3)/2)) +
		weightRepulsion*sq(math.Max(0, -d))
	if hydrophobicPair {
		e += weightHydrophobic * phi(d)
	}
	if hbondPair {
		e += weightHBond * psi(d)
	}
	return e
}

func sq(x float64) float64 { return x * x }

// ScoreAt evaluates the potential directly (no table) at squared
// distance rSqr for the XS type pair (t1, t2); used to build the table
// and to check the boundary property in §8.
func ScoreAt(t1, t2 atomtype.XSType, rSqr float64) float64 {
	r := math.Sqrt(rSqr)
	d := r - (t1.VdwRadius() + t2.VdwRadius())
	hydrophobic := t1.IsHydrophobic() && t2.IsHydrophobic()
	hbond := atomtype.FormsHBond(t1, t2)
	return score(d, hydrophobic, hbond)
}

// table holds the tabulated (e, dor) pairs for one unordered type pair.
type table struct {
	e   []float64
	dor []float64
}

// precalculate samples e(r^2) = ScoreAt(t1,t2,rs[i]) for rs[i] = i/Factor,
// i in [0, NumSamples), then fills dor[i] = (e[i+1]-e[i]) / ((rs[i+1]-rs[i])*rs[i]),
// with dor[0] = dor[last] = 0 (§4.4).
func precalculate(t1, t2 atomtype.XSType) table {
	tb := table{e: make([]float64, NumSamples), dor: make([]float64, NumSamples)}
	for i := 0; i < NumSamples; i++ {
		rSqr := float64(i) / Factor
		tb.e[i] = ScoreAt(t1, t2, rSqr)
	}
	for i := 1; i < NumSamples-1; i++ {
		rSqrI := float64(i) / Factor
		rSqrI1 := float64(i+1) / Factor
		tb.dor[i] = (tb.e[i+1] - tb.e[i]) / ((rSqrI1 - rSqrI) * rSqrI)
	}
	tb.dor[0] = 0
	tb.dor[NumSamples-1] = 0
	return tb
}

// Function is the immutable tabulated scoring function, indexed by
// unordered XS type pair via a triangular-matrix-style flat index.
type Function struct {
	n      int
	tables []table
}

// flatIndex packs (i,j), i<=j, into an offset into a packed upper
// triangular layout of size n*(n+1)/2 — the same scheme as
// spatial.TriMatrix, duplicated here since TriMatrix only stores
// float64 and a table is a pair of slices.
func flatIndex(n, i, j int) int {
	return i*n - i*(i-1)/2 + (j - i)
}

// Build precomputes the table for every unordered XS type pair.
func Build() *Function {
	n := int(atomtype.XSTypeSize)
	f := &Function{n: n, tables: make([]table, n*(n+1)/2)}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			f.tables[flatIndex(n, i, j)] = precalculate(atomtype.XSType(i), atomtype.XSType(j))
		}
	}
	return f
}

// Lookup returns (e, dor) for the type pair (t1,t2) at squared distance
// rSqr via a single array index — no interpolation (§4.4).
func (f *Function) Lookup(t1, t2 atomtype.XSType, rSqr float64) (e, dor float64) {
	i, j := atomtype.PairIndex(t1, t2)
	tb := &f.tables[flatIndex(f.n, i, j)]
	idx := int(Factor * rSqr)
	if idx >= NumSamples {
		idx = NumSamples - 1
	}
	return tb.e[idx], tb.dor[idx]
}
