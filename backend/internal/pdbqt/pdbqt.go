// Package pdbqt reads the fixed-column PDBQT dialect and yields the
// ingestion-boundary records named in spec §6 (AtomRecord/LigandRecord),
// generalizing the fixed-column parsing approach of
// backend/internal/parser/pdb_parser.go's ParsePDB/parseAtomLine to the
// PDBQT variant's trailing AD-type column.
package pdbqt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
)

// ParseError is raised when an AD-type token is not in the table,
// carrying the source path and line number back to the driver (§7).
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pdbqt: %s:%d: %s", e.Path, e.Line, e.Msg)
}

// AtomRecord is the ingestion-facing shape the core's receptor builder
// and ligand template converter consume (SPEC_FULL §6).
type AtomRecord struct {
	Serial     int
	Name       string
	X, Y, Z    float64
	ADType     atomtype.ADType
	ResidueTag string
}

// TorsionRecord names the two heavy atoms whose bond the torsion
// rotates around, and every atom downstream of it in the ligand's
// ROOT/BRANCH tree.
type TorsionRecord struct {
	AxisA, AxisB int
	Moved        []int
}

// LigandRecord is the ingestion-facing shape for a parsed ligand
// (SPEC_FULL §6).
type LigandRecord struct {
	Heavy          []AtomRecord
	Hydrogens      []AtomRecord
	Bonds          [][2]int
	ActiveTorsions []TorsionRecord
	// DonorSerials holds the serials of heavy atoms promoted to donors
	// by a bonded polar hydrogen (§3, §6); polar hydrogens themselves
	// are not stored as heavy atoms.
	DonorSerials map[int]bool
}

// ParseReceptor reads an ATOM/HETATM stream in the PDBQT dialect
// (fixed PDB columns plus a trailing AD-type token) and yields the
// ordered heavy-atom records the core's receptor builder needs.
// Non-polar hydrogens are dropped; a polar hydrogen (AD_TYPE_HD) is
// consumed only to report which preceding heavy atom it bonds to, via
// the returned donorSerials set, so the caller can promote that atom's
// donor flag (§6).
func ParseReceptor(path string, r io.Reader) (heavy []AtomRecord, donorSerials map[int]bool, err error) {
	donorSerials = make(map[int]bool)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	var lastHeavySerial int
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !isAtomLine(line) {
			continue
		}
		rec, adToken, err := parseAtomLine(line)
		if err != nil {
			return nil, nil, &ParseError{Path: path, Line: lineNo, Msg: err.Error()}
		}
		t, isNonPolarH, ok := atomtype.Lookup(adToken)
		if isNonPolarH {
			continue
		}
		if !ok {
			return nil, nil, &ParseError{Path: path, Line: lineNo, Msg: fmt.Sprintf("unknown AD type %q", adToken)}
		}
		if t == atomtype.ADTypeHD {
			donorSerials[lastHeavySerial] = true
			continue
		}
		rec.ADType = t
		heavy = append(heavy, rec)
		lastHeavySerial = rec.Serial
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return heavy, donorSerials, nil
}

func isAtomLine(line string) bool {
	return strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM")
}

// parseAtomLine extracts the fixed-column fields plus the trailing
// whitespace-delimited AD-type token that PDBQT appends past the
// standard PDB columns.
func parseAtomLine(line string) (AtomRecord, string, error) {
	if len(line) < 54 {
		return AtomRecord{}, "", fmt.Errorf("line too short for PDB atom record")
	}
	serial, err := strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return AtomRecord{}, "", fmt.Errorf("bad serial: %w", err)
	}
	name := strings.TrimSpace(line[12:16])
	resTag := strings.TrimSpace(line[17:20])
	x, err := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	if err != nil {
		return AtomRecord{}, "", fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	if err != nil {
		return AtomRecord{}, "", fmt.Errorf("bad y: %w", err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if err != nil {
		return AtomRecord{}, "", fmt.Errorf("bad z: %w", err)
	}
	fields := strings.Fields(line)
	adToken := fields[len(fields)-1]

	return AtomRecord{Serial: serial, Name: name, X: x, Y: y, Z: z, ResidueTag: resTag}, adToken, nil
}
