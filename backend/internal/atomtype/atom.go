package atomtype

import "github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"

// Atom is the core's per-atom record (§3). Non-polar hydrogens are never
// stored; a polar hydrogen is never stored either, but its presence
// promotes the bonded heavy atom to IsDonor.
type Atom struct {
	Serial      int
	Name        string
	Coord       spatial.Vec3
	AD          ADType
	XS          XSType
	ResidueTag  string
	IsHetero    bool
	IsDonor     bool
	IsHydrophobic bool
}

// elementIsHetero reports whether an AD type is a hetero element (not
// carbon), used by the carbon-loses-hydrophobic-flag rule.
func elementIsHetero(t ADType) bool {
	return t != ADTypeC && t != ADTypeA
}

// NewAtom applies the §3 construction-time invariants: a polar hydrogen
// bonded to this atom promotes it to donor; a carbon bonded to any
// hetero atom in the same residue loses its hydrophobic flag.
func NewAtom(serial int, name string, coord spatial.Vec3, ad ADType, residueTag string, bondedToPolarH, bondedToHeteroInResidue bool) Atom {
	isDonor := bondedToPolarH
	xs := ADToXS(ad, isDonor, bondedToHeteroInResidue)
	return Atom{
		Serial:        serial,
		Name:          name,
		Coord:         coord,
		AD:            ad,
		XS:            xs,
		ResidueTag:    residueTag,
		IsHetero:      elementIsHetero(ad),
		IsDonor:       isDonor,
		IsHydrophobic: xs.IsHydrophobic(),
	}
}

// PairIndex orders an unordered XS type pair as (i, j) with i <= j, the
// row/column form the scoring function's packed triangular table is
// indexed by (§3, §4.4).
func PairIndex(a, b XSType) (i, j int) {
	if a <= b {
		return int(a), int(b)
	}
	return int(b), int(a)
}

// NumPairs is the number of unordered XS type pairs, the size a
// triangular_matrix<ScorePair> must accommodate.
func NumPairs() int {
	n := int(XSTypeSize)
	return n * (n + 1) / 2
}
