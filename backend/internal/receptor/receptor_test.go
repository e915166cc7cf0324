package receptor

import (
	"testing"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

func TestBuildEveryBucketedAtomWithinCutoffOfCell(t *testing.T) {
	b := box.New(spatial.Vec3{}, spatial.Vec3{X: 10, Y: 10, Z: 10}, 2.0)
	atoms := []atomtype.Atom{
		atomtype.NewAtom(1, "C1", spatial.Vec3{X: 0, Y: 0, Z: 0}, atomtype.ADTypeC, "RES", false, false),
		atomtype.NewAtom(2, "O1", spatial.Vec3{X: 9, Y: 9, Z: 9}, atomtype.ADTypeOA, "RES", false, false),
		atomtype.NewAtom(3, "N1", spatial.Vec3{X: -9, Y: -9, Z: -9}, atomtype.ADTypeN, "RES", false, false),
	}
	r := Build(atoms, b)
	nx, ny, nz := b.NumPartitions()
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				cell := box.CellIndex{X: x, Y: y, Z: z}
				c1, c2 := b.CellBounds(cell)
				for _, idx := range r.Neighbors(cell) {
					d := box.ProjectDistanceSqrCell(c1, c2, atoms[idx].Coord)
					if d >= CutoffSqr {
						t.Errorf("cell %v contains atom %d at distance^2 %v >= cutoff^2 %v", cell, idx, d, CutoffSqr)
					}
				}
			}
		}
	}
}

func TestBuildNearbyAtomIsBucketedSomewhere(t *testing.T) {
	b := box.New(spatial.Vec3{}, spatial.Vec3{X: 5, Y: 5, Z: 5}, 1.0)
	atoms := []atomtype.Atom{
		atomtype.NewAtom(1, "C1", spatial.Vec3{X: 0, Y: 0, Z: 0}, atomtype.ADTypeC, "RES", false, false),
	}
	r := Build(atoms, b)
	cell := b.PartitionIndex(atoms[0].Coord)
	found := false
	for _, idx := range r.Neighbors(cell) {
		if idx == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("atom at its own cell's coordinate was not bucketed into that cell")
	}
}
