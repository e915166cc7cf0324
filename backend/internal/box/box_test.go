package box

import (
	"testing"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

func TestPartitionIndexRoundTripsInteriorCells(t *testing.T) {
	b := New(spatial.Vec3{}, spatial.Vec3{X: 10, Y: 10, Z: 10}, 1.0)
	nx, ny, nz := b.NumPartitions()
	for x := 1; x < nx-1; x++ {
		for y := 1; y < ny-1; y++ {
			for z := 1; z < nz-1; z++ {
				want := CellIndex{x, y, z}
				corner := b.PartitionCorner1(want)
				// nudge inward so we land inside the cell, not on its edge
				corner.X += 1e-6
				corner.Y += 1e-6
				corner.Z += 1e-6
				got := b.PartitionIndex(corner)
				if got != want {
					t.Errorf("PartitionIndex(PartitionCorner1(%v)) = %v, want %v", want, got, want)
				}
			}
		}
	}
}

func TestProjectClampsToBox(t *testing.T) {
	b := New(spatial.Vec3{}, spatial.Vec3{X: 5, Y: 5, Z: 5}, 1.0)
	p := spatial.Vec3{X: 100, Y: -100, Z: 2}
	got := b.Project(p)
	want := spatial.Vec3{X: 5, Y: -5, Z: 2}
	if got != want {
		t.Errorf("Project(%v) = %v, want %v", p, got, want)
	}
}

func TestProjectDistanceSqrZeroInside(t *testing.T) {
	b := New(spatial.Vec3{}, spatial.Vec3{X: 5, Y: 5, Z: 5}, 1.0)
	if d := b.ProjectDistanceSqr(spatial.Vec3{X: 1, Y: 1, Z: 1}); d != 0 {
		t.Errorf("ProjectDistanceSqr(inside) = %v, want 0", d)
	}
}

func TestPartitionsTileTheBox(t *testing.T) {
	b := New(spatial.Vec3{}, spatial.Vec3{X: 3, Y: 3, Z: 3}, 0.5)
	nx, ny, nz := b.NumPartitions()
	last := CellIndex{nx - 1, ny - 1, nz - 1}
	_, c2 := b.CellBounds(last)
	if c2.X < b.corner1.X-1e-9 {
		t.Errorf("last cell high corner %v does not reach box high corner %v", c2, b.corner1)
	}
}
