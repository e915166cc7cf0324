package pdbqt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/stretchr/testify/require"
)

// atomLine builds a fixed-column PDB/PDBQT ATOM record with the
// standard column widths (serial cols 7-11, name 13-16, resName 18-20,
// x/y/z 31-38/39-46/47-54), followed by the PDBQT AD-type token.
func atomLine(serial int, name, resName string, x, y, z float64, adType string) string {
	return fmt.Sprintf("%-6s%5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %s",
		"ATOM", serial, name, resName, "A", 1, x, y, z, 1.0, 0.0, adType)
}

func TestParseReceptorFiltersHydrogensAndPromotesDonor(t *testing.T) {
	lines := strings.Join([]string{
		atomLine(1, "C1", "ALA", 1, 2, 3, "C"),
		atomLine(2, "OA1", "ALA", 2, 2, 3, "OA"),
		atomLine(3, "HD1", "ALA", 2.5, 2, 3, "HD"),
		atomLine(4, "H1", "ALA", 2.6, 2, 3, "H"),
	}, "\n")
	heavy, donors, err := ParseReceptor("test.pdbqt", strings.NewReader(lines))
	require.NoError(t, err)
	require.Len(t, heavy, 2, "nonpolar H dropped, polar H consumed not stored")
	require.True(t, donors[2], "serial 2 (OA1) should be promoted to donor by the following HD")
}

func TestParseReceptorUnknownADTypeIsParseError(t *testing.T) {
	bad := atomLine(1, "X1", "ALA", 1, 2, 3, "ZZ")
	_, _, err := ParseReceptor("bad.pdbqt", strings.NewReader(bad))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)
}

func TestParseLigandBuildsOneTorsion(t *testing.T) {
	lines := strings.Join([]string{
		"ROOT",
		atomLine(1, "C1", "LIG", 0, 0, 0, "C"),
		atomLine(2, "C2", "LIG", 1.5, 0, 0, "C"),
		"ENDROOT",
		"BRANCH    2   3",
		atomLine(3, "C3", "LIG", 3, 0, 0, "C"),
		"ENDBRANCH    2   3",
		"TORSDOF 1",
	}, "\n")
	rec, err := ParseLigand("lig.pdbqt", strings.NewReader(lines))
	require.NoError(t, err)
	require.Len(t, rec.Heavy, 3)
	require.Len(t, rec.ActiveTorsions, 1)
	tor := rec.ActiveTorsions[0]
	require.Equal(t, 1, tor.AxisA) // heavy index of serial 2
	require.Equal(t, 2, tor.AxisB) // heavy index of serial 3
	require.Contains(t, tor.Moved, 2)
}

func TestToReceptorAtomsAppliesHydrophobicRule(t *testing.T) {
	records := []AtomRecord{
		{Serial: 1, Name: "C1", X: 0, Y: 0, Z: 0, ADType: atomtype.ADTypeC, ResidueTag: "LIG"},
		{Serial: 2, Name: "O1", X: 1, Y: 0, Z: 0, ADType: atomtype.ADTypeOA, ResidueTag: "LIG"},
	}
	atoms := ToReceptorAtoms(records, nil)
	require.False(t, atoms[0].IsHydrophobic, "carbon bonded to a hetero atom in the same residue loses its hydrophobic flag")
	require.Equal(t, atomtype.XSCarbonPolar, atoms[0].XS, "the stripped flag must also change the XS type scoring keys off of")
}
