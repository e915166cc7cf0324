package ligand

import (
	"math"
	"testing"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/receptor"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/scoring"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

func simpleReceptor() *receptor.Receptor {
	b := box.New(spatial.Vec3{}, spatial.Vec3{X: 10, Y: 10, Z: 10}, 1.0)
	atoms := []atomtype.Atom{
		atomtype.NewAtom(1, "C1", spatial.Vec3{X: 2, Y: 0, Z: 0}, atomtype.ADTypeC, "RES", false, false),
	}
	return receptor.Build(atoms, b)
}

func oneAtomLigand() *Ligand {
	return New(1, []spatial.Vec3{{X: 0, Y: 0, Z: 0}}, []atomtype.XSType{atomtype.XSCarbonHydrophobic}, nil, nil)
}

func TestEvaluateMatchesDirectScoreForSingleAtomPair(t *testing.T) {
	rec := simpleReceptor()
	l := oneAtomLigand()
	sf := scoring.Build()

	c := Conformation{Position: spatial.Vec3{}, Orientation: spatial.QuatID}
	heavy, _, e, f, g, ok := Evaluate(c, sf, rec, 1e9, l)
	if !ok {
		t.Fatal("Evaluate returned ok=false unexpectedly")
	}
	if len(heavy) != 1 {
		t.Fatalf("len(heavy) = %d, want 1", len(heavy))
	}
	want := scoring.ScoreAt(atomtype.XSCarbonHydrophobic, atomtype.XSCarbonHydrophobic, 4.0)
	if math.Abs(e-want) > 1e-9 {
		t.Errorf("e = %v, want %v", e, want)
	}
	if math.Abs(f-want) > 1e-9 {
		t.Errorf("f = %v, want %v (no intra term with one ligand atom)", f, want)
	}
	if len(g) != 6 {
		t.Fatalf("len(g) = %d, want 6", len(g))
	}
}

func TestEvaluateRejectsAboveUpperBound(t *testing.T) {
	rec := simpleReceptor()
	l := oneAtomLigand()
	sf := scoring.Build()
	c := Conformation{Position: spatial.Vec3{}, Orientation: spatial.QuatID}
	_, _, _, _, _, ok := Evaluate(c, sf, rec, -1e9, l)
	if ok {
		t.Error("Evaluate should reject when energy exceeds an impossibly low upper bound")
	}
}

func TestWrapAngleStaysInRange(t *testing.T) {
	for _, a := range []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -3 * math.Pi, 7.5} {
		w := WrapAngle(a)
		if w < -math.Pi || w >= math.Pi {
			t.Errorf("WrapAngle(%v) = %v, out of [-pi, pi)", a, w)
		}
	}
}

func TestRandomStartZeroUIsBoxCenter(t *testing.T) {
	b := box.New(spatial.Vec3{X: 1, Y: 2, Z: 3}, spatial.Vec3{X: 5, Y: 5, Z: 5}, 1.0)
	c := RandomStart(b, 2, func() float64 { return 0 })
	if c.Position != b.Center {
		t.Errorf("RandomStart with u()=0 = %v, want box center %v", c.Position, b.Center)
	}
	if !c.Orientation.IsNormalized() {
		t.Errorf("RandomStart orientation not normalized: %+v", c.Orientation)
	}
	if len(c.Torsions) != 2 {
		t.Errorf("len(Torsions) = %d, want 2", len(c.Torsions))
	}
}
