// Package dock schedules independent (ligand, seed) search tasks across
// a worker pool and folds each ligand's per-task pools into one result
// (SPEC_FULL §4.10, spec §5). No teacher file owns a worker pool
// directly; this is built from spec §5's description in the ambient
// stack's idiom (config-struct driven, doc-comment style retained from
// the rest of the package set).
package dock

import (
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/ligand"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/receptor"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/scoring"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/search"
)

// LigandJob is one ligand's share of a DockJob: its template plus the
// seeds to search it with.
type LigandJob struct {
	ID     string
	Ligand *ligand.Ligand
	Seeds  []int64
}

// DockJob is the unit of work Scheduler.Run consumes: one receptor +
// scoring function + box, shared read-only across every task, and a
// list of ligands each with its own seed set (SPEC_FULL glossary).
type DockJob struct {
	Receptor *receptor.Receptor
	Scoring  *scoring.Function
	Box      *box.Box
	Ligands  []LigandJob
	Search   search.Config
	PoolTau  float64

	// PoolCapacity overrides resultpool.DefaultCapacity when positive.
	PoolCapacity int
}
