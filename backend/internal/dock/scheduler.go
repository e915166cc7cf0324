package dock

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/logging"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/metrics"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/resultpool"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/search"
)

// Scheduler dispatches one task per (ligand, seed) pair onto a bounded
// worker pool and performs the single-threaded per-ligand merge fold
// once every task for that ligand has returned (spec §5).
type Scheduler struct {
	Workers int
	Log     logging.Logger
	Metrics *metrics.Metrics
}

// NewScheduler builds a Scheduler with workers defaulting to
// runtime.NumCPU() when workers <= 0.
func NewScheduler(workers int, log logging.Logger, m *metrics.Metrics) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logging.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Scheduler{Workers: workers, Log: log, Metrics: m}
}

// LigandResult is one ligand's merged outcome: the folded pool, or the
// first task error captured for that ligand (§7: "task aborted" is
// distinct from "empty container").
type LigandResult struct {
	LigandID string
	Pool     *resultpool.Pool
	Err      error
}

// taskSlot is a single (ligand, seed) task's outcome, captured
// independently so one task's error never aborts its siblings (§5, §7).
type taskSlot struct {
	ligandIdx int
	pool      *resultpool.Pool
	err       error
}

// Run dispatches every (ligand, seed) task in job, merges each ligand's
// task pools with a single-threaded fold, and returns one LigandResult
// per ligand in job.Ligands order. Run stops dispatching further tasks
// once ctx is done and returns context.Canceled alongside whatever
// ligand results had already completed; tasks already in flight are not
// interrupted (SPEC_FULL §4.10 — tasks do not poll, per §5).
func (s *Scheduler) Run(ctx context.Context, job DockJob) ([]LigandResult, error) {
	type work struct {
		ligandIdx int
		seed      int64
	}
	var plan []work
	for li, lj := range job.Ligands {
		for _, seed := range lj.Seeds {
			plan = append(plan, work{ligandIdx: li, seed: seed})
		}
	}

	slots := make([]taskSlot, len(plan))
	runID := uuid.NewString()
	s.Log.Info("dispatching dock run", logging.String("run_id", runID), logging.Int("tasks", len(plan)))

	var g errgroup.Group
	g.SetLimit(s.Workers)

	canceled := false
	for i, w := range plan {
		i, w := i, w
		if ctx.Err() != nil {
			canceled = true
			break
		}
		s.Metrics.TasksDispatched.Inc()
		g.Go(func() error {
			slots[i] = s.runTask(job, w.ligandIdx, w.seed)
			return nil // errors are carried in the slot, never propagated to Wait()
		})
	}
	_ = g.Wait()

	results := make([]LigandResult, len(job.Ligands))
	for li, lj := range job.Ligands {
		results[li].LigandID = lj.ID
		capacity := job.PoolCapacity
		if capacity <= 0 {
			capacity = resultpool.DefaultCapacity
		}
		pool := resultpool.NewPool(capacity, job.PoolTau)
		var firstErr error
		for _, slot := range slots {
			if slot.ligandIdx != li {
				continue
			}
			if slot.err != nil {
				if firstErr == nil {
					firstErr = slot.err
				}
				continue
			}
			if slot.pool == nil {
				continue // task never dispatched
			}
			for _, r := range slot.pool.Items() {
				switch pool.Insert(r) {
				case resultpool.OutcomeReplacedNearDuplicate:
					s.Metrics.PoolReplaced.Inc()
				case resultpool.OutcomeAppendedDiverse:
					s.Metrics.PoolAppended.Inc()
				case resultpool.OutcomeReplacedWorst:
					s.Metrics.PoolReplaced.Inc()
				case resultpool.OutcomeDropped:
					s.Metrics.PoolDropped.Inc()
				}
			}
		}
		results[li].Pool = pool
		results[li].Err = firstErr
	}

	if canceled {
		return results, context.Canceled
	}
	return results, nil
}

// runTask executes one (ligand, seed) task, recovering a panic (an
// unexpected nil pointer in malformed ligand data, say) into a captured
// error so it cannot take down a sibling worker (§7).
func (s *Scheduler) runTask(job DockJob, ligandIdx int, seed int64) (slot taskSlot) {
	slot.ligandIdx = ligandIdx
	defer func() {
		if r := recover(); r != nil {
			slot.err = fmt.Errorf("dock: task panicked: %v", r)
			s.Metrics.TasksFailed.Inc()
		}
	}()

	lj := job.Ligands[ligandIdx]
	cfg := job.Search
	cfg.OnEvaluate = s.Metrics.EnergyEvals.Inc

	start := time.Now()
	slot.pool = search.Task(seed, lj.Ligand, job.Scoring, job.Receptor, job.Box, cfg, job.PoolTau)
	s.Metrics.ObserveDuration(time.Since(start))
	s.Metrics.TasksCompleted.Inc()
	return slot
}
