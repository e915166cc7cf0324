// Package ligand maps a Conformation (position, orientation, torsions)
// to atom coordinates and evaluates total free energy and its gradient
// (spec §4.5). Coordinate reconstruction follows the serial kinematic
// chain technique used by backend/internal/optimization/quaternion_lbfgs.go's
// ExtractDihedrals/SetDihedrals (rebuild Cartesian positions from
// internal degrees of freedom); the orientation and torsion gradient
// components are finite differences, the same technique that file's
// computeDihedralGradient uses for its own angle-space gradient.
package ligand

import (
	"math"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/receptor"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/resultpool"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/scoring"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

// Torsion rotates the atoms in Moved around the axis running from
// LocalCoords[AxisA] to LocalCoords[AxisB] in the ligand's combined
// local-coordinate template. Torsions are applied in list order, and
// each axis is read from the coordinates as already moved by the
// torsions before it, so a root-to-leaf list and a leaf-to-root list
// (the order pdbqt.ParseLigand produces) place every atom the same way.
type Torsion struct {
	AxisA, AxisB int
	Moved        []int
}

// Ligand is the static, once-per-ligand template: local-frame
// coordinates (heavy atoms first, then hydrogens), XS types for heavy
// atoms, the active torsion list, and the excluded-pair set for the
// intra-molecular term.
type Ligand struct {
	NumHeavy     int
	LocalCoords  []spatial.Vec3 // len = NumHeavy + len(hydrogens)
	XS           []atomtype.XSType // len = NumHeavy
	Torsions     []Torsion
	excludedPair map[[2]int]bool // heavy-atom pairs excluded from the intra term
}

// New constructs a Ligand template. excluded lists heavy-atom index
// pairs (bonded, or otherwise too close in the bond graph) that the
// intra-molecular clash term must skip.
func New(numHeavy int, localCoords []spatial.Vec3, xs []atomtype.XSType, torsions []Torsion, excluded [][2]int) *Ligand {
	l := &Ligand{
		NumHeavy:    numHeavy,
		LocalCoords: localCoords,
		XS:          xs,
		Torsions:    torsions,
	}
	l.excludedPair = make(map[[2]int]bool, len(excluded))
	for _, p := range excluded {
		a, b := p[0], p[1]
		if a > b {
			a, b = b, a
		}
		l.excludedPair[[2]int{a, b}] = true
	}
	return l
}

func (l *Ligand) isExcluded(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return l.excludedPair[[2]int{a, b}]
}

// Conformation is the ligand's degrees of freedom (§3): position,
// unit-quaternion orientation, and T ordered torsion angles, each
// wrapped to [-pi, pi).
type Conformation struct {
	Position    spatial.Vec3
	Orientation spatial.Quat
	Torsions    []float64
}

// Clone returns an independent copy.
func (c Conformation) Clone() Conformation {
	out := c
	out.Torsions = append([]float64(nil), c.Torsions...)
	return out
}

// WrapAngle wraps a radian value to [-pi, pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// worldCoords applies the ligand's torsion chain in the local frame,
// then the global rotation and translation, returning world-frame
// coordinates for every entry of LocalCoords (heavy atoms first).
func (l *Ligand) worldCoords(c Conformation) []spatial.Vec3 {
	local := make([]spatial.Vec3, len(l.LocalCoords))
	copy(local, l.LocalCoords)

	for ti, tor := range l.Torsions {
		axis := local[tor.AxisB].Sub(local[tor.AxisA])
		angle := c.Torsions[ti]
		if axis.Norm() == 0 {
			continue
		}
		q := spatial.QuatFromAxisAngle(axis.Scale(angle / axis.Norm()))
		m := q.ToMat3()
		origin := local[tor.AxisA]
		for _, idx := range tor.Moved {
			rel := local[idx].Sub(origin)
			local[idx] = origin.Add(m.Apply(rel))
		}
	}

	rot := c.Orientation.ToMat3()
	world := make([]spatial.Vec3, len(local))
	for i, p := range local {
		world[i] = c.Position.Add(rot.Apply(p))
	}
	return world
}

// Evaluate computes world coordinates, total energy e = e_inter +
// e_intra, the inter-molecular part f, and the gradient g of size
// 6+T. It returns ok=false if the running partial energy ever exceeds
// eUpperBound, the early-termination signal the line search relies on
// (§4.5); this is a normal control signal, never a Go error (§7
// EvaluatorReject).
func Evaluate(c Conformation, sf *scoring.Function, rec *receptor.Receptor, eUpperBound float64, l *Ligand) (heavy, hydrogen []spatial.Vec3, e, f float64, g []float64, ok bool) {
	world := l.worldCoords(c)
	heavy = world[:l.NumHeavy]
	hydrogen = world[l.NumHeavy:]

	fInter, ok := interEnergy(heavy, l.XS, rec, sf, eUpperBound)
	if !ok {
		return heavy, hydrogen, 0, 0, nil, false
	}
	eIntra := l.intraEnergy(heavy, sf)
	total := fInter + eIntra
	if total > eUpperBound {
		return heavy, hydrogen, 0, 0, nil, false
	}

	g = l.gradient(c, sf, rec, eUpperBound)
	return heavy, hydrogen, total, fInter, g, true
}

// interEnergy sums the tabulated pairwise potential between every
// ligand heavy atom and every receptor atom sharing its partition
// cell, stopping early once the running sum exceeds eUpperBound
// (§4.5).
func interEnergy(heavy []spatial.Vec3, xs []atomtype.XSType, rec *receptor.Receptor, sf *scoring.Function, eUpperBound float64) (float64, bool) {
	var sum float64
	for ai, x := range heavy {
		cell := rec.Box.PartitionIndex(x)
		for _, ri := range rec.Neighbors(cell) {
			ra := rec.Atoms[ri]
			dSqr := x.DistSqr(ra.Coord)
			if dSqr >= receptor.CutoffSqr {
				continue
			}
			e, _ := sf.Lookup(xs[ai], ra.XS, dSqr)
			sum += e
			if sum > eUpperBound {
				return sum, false
			}
		}
	}
	return sum, true
}

// intraEnergy penalizes steric clashes between non-bonded (non-excluded)
// ligand heavy atom pairs using the same tabulated potential (§4.5).
func (l *Ligand) intraEnergy(heavy []spatial.Vec3, sf *scoring.Function) float64 {
	var sum float64
	for i := 0; i < len(heavy); i++ {
		for j := i + 1; j < len(heavy); j++ {
			if l.isExcluded(i, j) {
				continue
			}
			dSqr := heavy[i].DistSqr(heavy[j])
			if dSqr >= receptor.CutoffSqr {
				continue
			}
			e, _ := sf.Lookup(l.XS[i], l.XS[j], dSqr)
			sum += e
		}
	}
	return sum
}

// totalEnergyOnly is a cheap re-evaluation used by the finite-difference
// gradient; it does not reconstruct a full Evaluate result.
func (l *Ligand) totalEnergyOnly(c Conformation, sf *scoring.Function, rec *receptor.Receptor) float64 {
	world := l.worldCoords(c)
	heavy := world[:l.NumHeavy]
	inter, _ := interEnergy(heavy, l.XS, rec, sf, math.Inf(1))
	return inter + l.intraEnergy(heavy, sf)
}

const finiteDiffStep = 1e-5

// gradient assembles g[0:3] analytically from the per-atom pairwise
// derivative-over-r tables (translation moves every atom identically,
// so the position gradient is just the sum of per-atom forces), and
// g[3:6] (orientation tangent) plus g[6:6+T] (torsions) by central
// finite differences, the same technique
// backend/internal/optimization/quaternion_lbfgs.go uses for its own
// angle-space gradient.
func (l *Ligand) gradient(c Conformation, sf *scoring.Function, rec *receptor.Receptor, eUpperBound float64) []float64 {
	t := len(c.Torsions)
	g := make([]float64, 6+t)

	world := l.worldCoords(c)
	heavy := world[:l.NumHeavy]
	for ai, x := range heavy {
		cell := rec.Box.PartitionIndex(x)
		for _, ri := range rec.Neighbors(cell) {
			ra := rec.Atoms[ri]
			sep := x.Sub(ra.Coord)
			dSqr := sep.NormSqr()
			if dSqr >= receptor.CutoffSqr {
				continue
			}
			_, dor := sf.Lookup(l.XS[ai], ra.XS, dSqr)
			g[0] += dor * sep.X
			g[1] += dor * sep.Y
			g[2] += dor * sep.Z
		}
	}
	// The intra term's per-pair force is equal and opposite on both
	// atoms, and translation moves every atom together, so it
	// contributes nothing to g[0:3]; only the inter term does.

	for k := 0; k < 3; k++ {
		v := spatial.Vec3{}
		switch k {
		case 0:
			v.X = finiteDiffStep
		case 1:
			v.Y = finiteDiffStep
		case 2:
			v.Z = finiteDiffStep
		}
		plus := c.Clone()
		plus.Orientation = spatial.QuatFromAxisAngle(v).Mul(plus.Orientation)
		minus := c.Clone()
		minus.Orientation = spatial.QuatFromAxisAngle(v.Scale(-1)).Mul(minus.Orientation)
		ePlus := l.totalEnergyOnly(plus, sf, rec)
		eMinus := l.totalEnergyOnly(minus, sf, rec)
		g[3+k] = (ePlus - eMinus) / (2 * finiteDiffStep)
	}

	for ti := range c.Torsions {
		plus := c.Clone()
		plus.Torsions[ti] = WrapAngle(plus.Torsions[ti] + finiteDiffStep)
		minus := c.Clone()
		minus.Torsions[ti] = WrapAngle(minus.Torsions[ti] - finiteDiffStep)
		ePlus := l.totalEnergyOnly(plus, sf, rec)
		eMinus := l.totalEnergyOnly(minus, sf, rec)
		g[6+ti] = (ePlus - eMinus) / (2 * finiteDiffStep)
	}

	return g
}

// ComposeResult materializes a Result from the current conformation
// (§4.5).
func ComposeResult(e, f float64, heavy, hydrogen []spatial.Vec3) resultpool.Result {
	return resultpool.Result{
		E:        e,
		F:        f,
		Heavy:    append([]spatial.Vec3(nil), heavy...),
		Hydrogen: append([]spatial.Vec3(nil), hydrogen...),
	}
}

// RandomStart samples an initial conformation uniformly within the box
// (§4.6 step 1): position = center + U(-1,1)*span, orientation =
// qtn4(U,U,U,U).normalize(), each torsion = U(-1,1).
func RandomStart(b *box.Box, numTorsions int, u func() float64) Conformation {
	pos := spatial.Vec3{
		X: b.Center.X + u()*b.Span.X,
		Y: b.Center.Y + u()*b.Span.Y,
		Z: b.Center.Z + u()*b.Span.Z,
	}
	q, err := spatial.QuatFromRaw(u(), u(), u(), u())
	if err != nil {
		q = spatial.QuatID
	}
	torsions := make([]float64, numTorsions)
	for i := range torsions {
		torsions[i] = u()
	}
	return Conformation{Position: pos, Orientation: q, Torsions: torsions}
}
