// Package box implements the rectangular search region and its uniform
// partition grid (spec §4.2), generalizing the teacher's 2-D spatial hash
// (backend/internal/physics/spatial_hash.go) to a 3-D array of cells with
// explicit corner and projection-distance arithmetic.
package box

import (
	"math"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

// DefaultGranularity is the default partition edge length in Angstroms.
const DefaultGranularity = 0.15625

// Box is a rectangular search region centered at Center with half-span
// Span, discretized into partitions whose edge along each axis is
// 2*Span/n for n = ceil(2*Span/Granularity): at most Granularity, and
// equal to it only when it divides the box's extent on that axis.
type Box struct {
	Center      spatial.Vec3
	Span        spatial.Vec3 // half-span per axis
	Granularity float64

	corner0   spatial.Vec3 // low corner: Center - Span
	corner1   spatial.Vec3 // high corner: Center + Span
	numParts  [3]int
	partEdge  [3]float64
}

// New constructs a Box. num_partitions[k] = ceil(span[k]*2 / granularity).
func New(center, span spatial.Vec3, granularity float64) *Box {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	b := &Box{
		Center:      center,
		Span:        span,
		Granularity: granularity,
		corner0:     center.Sub(span),
		corner1:     center.Add(span),
	}
	axis := [3]float64{span.X, span.Y, span.Z}
	for k := 0; k < 3; k++ {
		n := int(math.Ceil(axis[k] * 2 / granularity))
		if n < 1 {
			n = 1
		}
		b.numParts[k] = n
		b.partEdge[k] = axis[k] * 2 / float64(n)
	}
	return b
}

// NumPartitions returns the partition counts along x, y, z.
func (b *Box) NumPartitions() (int, int, int) {
	return b.numParts[0], b.numParts[1], b.numParts[2]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Project clamps p componentwise into the box.
func (b *Box) Project(p spatial.Vec3) spatial.Vec3 {
	return spatial.Vec3{
		X: clamp(p.X, b.corner0.X, b.corner1.X),
		Y: clamp(p.Y, b.corner0.Y, b.corner1.Y),
		Z: clamp(p.Z, b.corner0.Z, b.corner1.Z),
	}
}

// ProjectDistanceSqr returns the squared distance from p to its
// projection onto the box (0 if p is inside).
func (b *Box) ProjectDistanceSqr(p spatial.Vec3) float64 {
	return p.DistSqr(b.Project(p))
}

// ProjectDistanceSqrCell returns the squared distance from p to its
// projection onto the axis-aligned cell [c1, c2].
func ProjectDistanceSqrCell(c1, c2, p spatial.Vec3) float64 {
	proj := spatial.Vec3{
		X: clamp(p.X, c1.X, c2.X),
		Y: clamp(p.Y, c1.Y, c2.Y),
		Z: clamp(p.Z, c1.Z, c2.Z),
	}
	return p.DistSqr(proj)
}

// CellIndex is a 3-D partition coordinate.
type CellIndex struct{ X, Y, Z int }

// PartitionIndex returns the cell containing Project(p).
func (b *Box) PartitionIndex(p spatial.Vec3) CellIndex {
	proj := b.Project(p)
	ix := int((proj.X - b.corner0.X) / b.partEdge[0])
	iy := int((proj.Y - b.corner0.Y) / b.partEdge[1])
	iz := int((proj.Z - b.corner0.Z) / b.partEdge[2])
	ix = clampInt(ix, 0, b.numParts[0]-1)
	iy = clampInt(iy, 0, b.numParts[1]-1)
	iz = clampInt(iz, 0, b.numParts[2]-1)
	return CellIndex{ix, iy, iz}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PartitionCorner1 returns the low corner of cell i.
func (b *Box) PartitionCorner1(i CellIndex) spatial.Vec3 {
	return spatial.Vec3{
		X: b.corner0.X + float64(i.X)*b.partEdge[0],
		Y: b.corner0.Y + float64(i.Y)*b.partEdge[1],
		Z: b.corner0.Z + float64(i.Z)*b.partEdge[2],
	}
}

// PartitionCorner2 returns the high corner of cell i.
func (b *Box) PartitionCorner2(i CellIndex) spatial.Vec3 {
	c1 := b.PartitionCorner1(i)
	return spatial.Vec3{
		X: c1.X + b.partEdge[0],
		Y: c1.Y + b.partEdge[1],
		Z: c1.Z + b.partEdge[2],
	}
}

// CellBounds returns both corners of cell i.
func (b *Box) CellBounds(i CellIndex) (c1, c2 spatial.Vec3) {
	return b.PartitionCorner1(i), b.PartitionCorner2(i)
}
