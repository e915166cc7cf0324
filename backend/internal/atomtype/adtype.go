// Package atomtype holds the AutoDock atom-typing table and the coarser
// XS typing the scoring function actually operates on (spec §3, §6).
package atomtype

// ADType indexes the AutoDock atom-typing scheme. Hydrogens other than
// AD_TYPE_HD never reach this table; see §6 for the ingestion-side rule.
type ADType int

const (
	ADTypeC   ADType = iota // nonpolar aliphatic carbon
	ADTypeA                 // aromatic carbon
	ADTypeN                 // nitrogen, neither donor nor acceptor
	ADTypeNA                // nitrogen, hydrogen-bond acceptor
	ADTypeOA                // oxygen, hydrogen-bond acceptor
	ADTypeSA                // sulfur, hydrogen-bond acceptor
	ADTypeS                 // sulfur
	ADTypeHD                // polar hydrogen (hydrogen-bond donor marker)
	ADTypeF                 // fluorine
	ADTypeCl                // chlorine
	ADTypeBr                // bromine
	ADTypeI                 // iodine
	ADTypeP                 // phosphorus
	ADTypeMet               // metal (Zn, Mg, Ca, Fe, Mn, ...)
	ADTypeSize              // sentinel: number of AD types
)

var adTypeNames = map[string]ADType{
	"C":  ADTypeC,
	"A":  ADTypeA,
	"N":  ADTypeN,
	"NA": ADTypeNA,
	"OA": ADTypeOA,
	"SA": ADTypeSA,
	"S":  ADTypeS,
	"HD": ADTypeHD,
	"F":  ADTypeF,
	"Cl": ADTypeCl,
	"Br": ADTypeBr,
	"I":  ADTypeI,
	"P":  ADTypeP,
	"Zn": ADTypeMet,
	"Mg": ADTypeMet,
	"Ca": ADTypeMet,
	"Fe": ADTypeMet,
	"Mn": ADTypeMet,
}

// nonPolarHydrogen names never produce an ADType; the ingestor filters
// them before the core ever sees a record (§6).
var nonPolarHydrogenNames = map[string]bool{
	"H": true,
}

// Lookup resolves a PDBQT AD-type token to an ADType. ok is false for an
// unknown token (receptor ingestion turns that into a ParseError). A
// non-polar hydrogen token reports isNonPolarHydrogen = true (with ok =
// true and no meaningful t); the caller must drop it, not error on it.
func Lookup(token string) (t ADType, isNonPolarHydrogen, ok bool) {
	if nonPolarHydrogenNames[token] {
		return 0, true, true
	}
	t, ok = adTypeNames[token]
	return t, false, ok
}

// XSType is the scoring function's own coarser element/role typing,
// distinct from ADType (§3, glossary "XS radius / XS class").
type XSType int

const (
	XSCarbonHydrophobic XSType = iota
	XSCarbonPolar
	XSNitrogenDonor
	XSNitrogenAcceptor
	XSNitrogenDonorAcceptor
	XSNitrogenNeither
	XSOxygenDonor
	XSOxygenAcceptor
	XSOxygenDonorAcceptor
	XSSulfur
	XSPhosphorus
	XSFluorine
	XSChlorine
	XSBromine
	XSIodine
	XSMetalDonor
	XSTypeSize
)

// xsInfo is the per-XS-type physical data the scoring function needs.
type xsInfo struct {
	vdwRadius   float64
	hydrophobic bool
}

var xsTable = [XSTypeSize]xsInfo{
	XSCarbonHydrophobic:     {1.90, true},
	XSCarbonPolar:           {1.90, false},
	XSNitrogenDonor:         {1.80, false},
	XSNitrogenAcceptor:      {1.80, false},
	XSNitrogenDonorAcceptor: {1.80, false},
	XSNitrogenNeither:       {1.80, false},
	XSOxygenDonor:           {1.70, false},
	XSOxygenAcceptor:        {1.70, false},
	XSOxygenDonorAcceptor:   {1.70, false},
	XSSulfur:                {2.00, true},
	XSPhosphorus:            {2.10, false},
	XSFluorine:              {1.50, true},
	XSChlorine:              {1.80, true},
	XSBromine:               {2.00, true},
	XSIodine:                {2.20, true},
	XSMetalDonor:            {1.20, false},
}

// VdwRadius returns the van der Waals radius used in surface-distance
// computation: d = r - (vdw(t1) + vdw(t2)) (§4.4).
func (t XSType) VdwRadius() float64 { return xsTable[t].vdwRadius }

// IsHydrophobic reports the base hydrophobic classification for the
// element/role; ADToXS additionally strips this flag for a carbon bonded
// to a hetero atom in the same residue (§3 invariant).
func (t XSType) IsHydrophobic() bool { return xsTable[t].hydrophobic }

// ADToXS maps an ADType (plus whether a polar hydrogen promoted it to a
// donor, and whether a carbon is bonded to a hetero atom in its own
// residue) to its XSType. A carbon bonded to a hetero atom in the same
// residue maps to XSCarbonPolar rather than XSCarbonHydrophobic (§3),
// so the hydrophobic term (§4.4) is computed off the XS type itself
// rather than a separately tracked bool.
func ADToXS(t ADType, isDonor, bondedToHeteroInResidue bool) XSType {
	switch t {
	case ADTypeC, ADTypeA:
		if bondedToHeteroInResidue {
			return XSCarbonPolar
		}
		return XSCarbonHydrophobic
	case ADTypeN:
		if isDonor {
			return XSNitrogenDonor
		}
		return XSNitrogenNeither
	case ADTypeNA:
		if isDonor {
			return XSNitrogenDonorAcceptor
		}
		return XSNitrogenAcceptor
	case ADTypeOA:
		if isDonor {
			return XSOxygenDonorAcceptor
		}
		return XSOxygenAcceptor
	case ADTypeSA:
		return XSSulfur
	case ADTypeS:
		return XSSulfur
	case ADTypeF:
		return XSFluorine
	case ADTypeCl:
		return XSChlorine
	case ADTypeBr:
		return XSBromine
	case ADTypeI:
		return XSIodine
	case ADTypeP:
		return XSPhosphorus
	case ADTypeMet:
		return XSMetalDonor
	default:
		return XSCarbonPolar
	}
}

// IsAcceptor reports whether an XSType can act as a hydrogen-bond
// acceptor (§4.4 term 5).
func (t XSType) IsAcceptor() bool {
	switch t {
	case XSNitrogenAcceptor, XSNitrogenDonorAcceptor,
		XSOxygenAcceptor, XSOxygenDonorAcceptor:
		return true
	default:
		return false
	}
}

// IsDonor reports whether an XSType can act as a hydrogen-bond donor.
func (t XSType) IsDonor() bool {
	switch t {
	case XSNitrogenDonor, XSNitrogenDonorAcceptor,
		XSOxygenDonor, XSOxygenDonorAcceptor, XSMetalDonor:
		return true
	default:
		return false
	}
}

// FormsHBond reports whether a and b form a donor-acceptor pair in
// either direction.
func FormsHBond(a, b XSType) bool {
	return (a.IsDonor() && b.IsAcceptor()) || (b.IsDonor() && a.IsAcceptor())
}
