// Package resultpool implements the bounded, RMSD-diverse top-K result
// container (spec §4.7), generalizing the nearest-match-then-replace
// shape of backend/internal/sampling/diversity.go's
// SelectMaximallyDiverseSubset into an online insertion rule.
package resultpool

import "github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"

// Result is one scored conformation (§3): free energy e, inter-molecular
// energy f, and the heavy/hydrogen atom coordinates in original atom
// order. ENd (normalized energy) is left zero; nothing in this module
// computes it.
type Result struct {
	E        float64
	F        float64
	Heavy    []spatial.Vec3
	Hydrogen []spatial.Vec3
	ENd      float64
}

// RMSDSqr is the atom-order aligned sum of squared distances divided by
// atom count, used both by the pool's diversity rule and by the CLI's
// per-ligand summary table.
func RMSDSqr(a, b []spatial.Vec3) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i].DistSqr(b[i])
	}
	return sum / float64(len(a))
}
