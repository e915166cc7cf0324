package pdbqt

import (
	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/ligand"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

// ToReceptorAtoms converts the ingestion-facing receptor records into
// the core's Atom type, applying the carbon-loses-hydrophobic-if-
// bonded-to-hetero-in-residue rule (§3) at the residue granularity the
// receptor stream provides.
func ToReceptorAtoms(records []AtomRecord, donorSerials map[int]bool) []atomtype.Atom {
	residueHasHetero := make(map[string]bool)
	for _, r := range records {
		if r.ADType != atomtype.ADTypeC && r.ADType != atomtype.ADTypeA {
			residueHasHetero[r.ResidueTag] = true
		}
	}

	atoms := make([]atomtype.Atom, len(records))
	for i, r := range records {
		coord := spatial.Vec3{X: r.X, Y: r.Y, Z: r.Z}
		bondedToPolarH := donorSerials[r.Serial]
		bondedToHetero := residueHasHetero[r.ResidueTag]
		atoms[i] = atomtype.NewAtom(r.Serial, r.Name, coord, r.ADType, r.ResidueTag, bondedToPolarH, bondedToHetero)
	}
	return atoms
}

// ToLigand converts a parsed LigandRecord into the core's Ligand
// template (§4.9): local coordinates in original heavy-then-hydrogen
// order, XS types, the torsion chain, and the excluded-pair set built
// from bonded relations.
func ToLigand(rec *LigandRecord) *ligand.Ligand {
	n := len(rec.Heavy)
	local := make([]spatial.Vec3, 0, n+len(rec.Hydrogens))
	xs := make([]atomtype.XSType, n)
	residueHasHetero := make(map[string]bool)
	for _, r := range rec.Heavy {
		if r.ADType != atomtype.ADTypeC && r.ADType != atomtype.ADTypeA {
			residueHasHetero[r.ResidueTag] = true
		}
	}
	for i, r := range rec.Heavy {
		coord := spatial.Vec3{X: r.X, Y: r.Y, Z: r.Z}
		local = append(local, coord)
		isDonor := rec.DonorSerials[r.Serial]
		a := atomtype.NewAtom(r.Serial, r.Name, coord, r.ADType, r.ResidueTag, isDonor, residueHasHetero[r.ResidueTag])
		xs[i] = a.XS
	}
	for _, h := range rec.Hydrogens {
		local = append(local, spatial.Vec3{X: h.X, Y: h.Y, Z: h.Z})
	}

	torsions := make([]ligand.Torsion, len(rec.ActiveTorsions))
	for i, t := range rec.ActiveTorsions {
		torsions[i] = ligand.Torsion{AxisA: t.AxisA, AxisB: t.AxisB, Moved: t.Moved}
	}

	return ligand.New(n, local, xs, torsions, rec.Bonds)
}
