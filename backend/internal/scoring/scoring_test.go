package scoring

import (
	"math"
	"testing"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
)

func TestNumSamplesConstant(t *testing.T) {
	if NumSamples != 16385 {
		t.Errorf("NumSamples = %d, want 16385", NumSamples)
	}
}

func TestRepulsionZeroForPositiveDAndContinuousAtZero(t *testing.T) {
	if got := weightRepulsion * sq(math.Max(0, -0.1)); got != 0 {
		t.Errorf("repulsion at d=0.1 = %v, want 0", got)
	}
	atZero := weightRepulsion * sq(math.Max(0, -0.0))
	if atZero != 0 {
		t.Errorf("repulsion at d=0 = %v, want 0 (continuity)", atZero)
	}
}

func TestHydrophobicRampBoundaries(t *testing.T) {
	if got := phi(0.5); got != 1 {
		t.Errorf("phi(0.5) = %v, want 1", got)
	}
	if got := phi(1.5); got != 0 {
		t.Errorf("phi(1.5) = %v, want 0", got)
	}
	if got := phi(1.0); got != 0.5 {
		t.Errorf("phi(1.0) = %v, want 0.5 (linear midpoint)", got)
	}
}

func TestScoreAtCutoffMatchesTableEndpoint(t *testing.T) {
	f := Build()
	t1, t2 := atomtype.XSCarbonHydrophobic, atomtype.XSOxygenAcceptor
	want := ScoreAt(t1, t2, CutoffSqr)
	e, _ := f.Lookup(t1, t2, CutoffSqr)
	if math.Abs(e-want) > 1e-9 {
		t.Errorf("table at cutoff = %v, ScoreAt(cutoff) = %v", e, want)
	}
}

func TestLookupMatchesDirectScoreAtSampleBoundary(t *testing.T) {
	f := Build()
	t1, t2 := atomtype.XSNitrogenDonor, atomtype.XSCarbonHydrophobic
	rSqr := 4.0
	want := ScoreAt(t1, t2, rSqr)
	got, _ := f.Lookup(t1, t2, rSqr)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Lookup(r^2=4.0) = %v, want %v", got, want)
	}
}

func TestEndpointDorIsZero(t *testing.T) {
	f := Build()
	t1, t2 := atomtype.XSCarbonHydrophobic, atomtype.XSCarbonHydrophobic
	_, dorStart := f.Lookup(t1, t2, 0)
	_, dorEnd := f.Lookup(t1, t2, CutoffSqr)
	if dorStart != 0 {
		t.Errorf("dor[0] = %v, want 0", dorStart)
	}
	if dorEnd != 0 {
		t.Errorf("dor[last] = %v, want 0", dorEnd)
	}
}
