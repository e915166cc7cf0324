// Package receptor builds the immutable spatial index over a rigid
// receptor's heavy atoms (spec §4.3), generalizing the double-filter
// bucketing shape of backend/internal/physics/spatial_hash.go's
// Insert/GetNeighbors pair to the spec's explicit per-cell cutoff test.
package receptor

import (
	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
)

// CutoffSqr is the scoring function's pairwise cutoff squared, 8^2 (§4.4, §6).
const CutoffSqr = 64.0

// Receptor is the immutable receptor spatial index: an ordered atom
// sequence plus, per partition cell, the indices of atoms within Cutoff
// of that cell.
type Receptor struct {
	Atoms      []atomtype.Atom
	Box        *box.Box
	partitions map[box.CellIndex][]int
	nx, ny, nz int
}

// Build constructs the receptor index: for each cell, an atom is
// included if its projection-distance^2 to the *box* is under
// CutoffSqr (cheap prefilter) and its projection-distance^2 to that
// *cell* is also under CutoffSqr (the actual membership test). This
// keeps per-cell lists tight enough that a pose in cell (x,y,z) need
// only scan that cell's list.
func Build(atoms []atomtype.Atom, b *box.Box) *Receptor {
	r := &Receptor{
		Atoms:      atoms,
		Box:        b,
		partitions: make(map[box.CellIndex][]int),
	}
	r.nx, r.ny, r.nz = b.NumPartitions()

	// Prefilter: atoms whose projection distance to the box is within
	// cutoff are candidates for any cell at all.
	candidates := make([]int, 0, len(atoms))
	for idx, a := range atoms {
		if b.ProjectDistanceSqr(a.Coord) < CutoffSqr {
			candidates = append(candidates, idx)
		}
	}

	for x := 0; x < r.nx; x++ {
		for y := 0; y < r.ny; y++ {
			for z := 0; z < r.nz; z++ {
				cell := box.CellIndex{X: x, Y: y, Z: z}
				c1, c2 := b.CellBounds(cell)
				var list []int
				for _, idx := range candidates {
					if box.ProjectDistanceSqrCell(c1, c2, atoms[idx].Coord) < CutoffSqr {
						list = append(list, idx)
					}
				}
				if len(list) > 0 {
					r.partitions[cell] = list
				}
			}
		}
	}
	return r
}

// Neighbors returns the atom indices bucketed into the given cell.
func (r *Receptor) Neighbors(cell box.CellIndex) []int {
	return r.partitions[cell]
}
