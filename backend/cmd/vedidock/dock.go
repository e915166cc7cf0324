package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sarat-asymmetrica/vedidock/backend/internal/atomtype"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/box"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/dock"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/dockconfig"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/ligand"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/logging"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/metrics"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/pdbqt"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/receptor"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/resultpool"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/scoring"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/search"
	"github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"
)

// newDockCommand wires dockconfig's flag-and-file configuration layer to
// the core: read PDBQT, build the receptor index and scoring table once,
// run the scheduler over every ligand, and write each ligand's ranked
// poses to OutDir (SPEC_FULL §4.11, §6[FULL]).
func newDockCommand() *cobra.Command {
	var cfgPath string
	cfg := dockconfig.Default()

	cmd := &cobra.Command{
		Use:   "dock",
		Short: "Dock one or more ligands against a rigid receptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				loaded, err := dockconfig.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				cfg = mergeFlagsOverConfig(cmd, cfg, loaded)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runDock(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to a YAML/JSON/TOML config file (flags override its values)")
	flags.StringVar(&cfg.Receptor, "receptor", "", "receptor PDBQT path (required)")
	flags.StringSliceVar(&cfg.Ligands, "ligand", nil, "ligand PDBQT path, repeatable (required)")
	flags.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory for ranked pose files")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker pool size (0 = runtime.NumCPU())")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "if set, serve Prometheus metrics on this address (e.g. :9090) for the run's duration")
	flags.Float64Var(&cfg.Box.CenterX, "center-x", cfg.Box.CenterX, "search box center x")
	flags.Float64Var(&cfg.Box.CenterY, "center-y", cfg.Box.CenterY, "search box center y")
	flags.Float64Var(&cfg.Box.CenterZ, "center-z", cfg.Box.CenterZ, "search box center z")
	flags.Float64Var(&cfg.Box.SpanX, "span-x", cfg.Box.SpanX, "search box half-span x (required)")
	flags.Float64Var(&cfg.Box.SpanY, "span-y", cfg.Box.SpanY, "search box half-span y (required)")
	flags.Float64Var(&cfg.Box.SpanZ, "span-z", cfg.Box.SpanZ, "search box half-span z (required)")
	flags.Float64Var(&cfg.Box.Granularity, "granularity", cfg.Box.Granularity, "partition cell edge length in Angstroms")
	flags.IntVar(&cfg.Search.NumSeeds, "num-seeds", cfg.Search.NumSeeds, "independent Monte Carlo / BFGS restarts per ligand")
	flags.IntVar(&cfg.Pool.Capacity, "pool-capacity", cfg.Pool.Capacity, "maximum ranked poses kept per ligand")
	flags.Float64Var(&cfg.Pool.RMSDSqrThreshold, "pool-rmsd-sqr-threshold", cfg.Pool.RMSDSqrThreshold, "squared RMSD below which two poses are treated as duplicates")

	return cmd
}

// mergeFlagsOverConfig starts from the file-loaded config and reapplies
// every flag the user actually set on the command line, so --config and
// individual overrides compose the way viper's own precedence does.
func mergeFlagsOverConfig(cmd *cobra.Command, flagDefaults, fromFile dockconfig.Config) dockconfig.Config {
	out := fromFile
	// cobra/pflag's Changed reports only flags the user explicitly set on
	// the command line, so an unset flag never clobbers a file value.
	visitSet := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	visitSet("receptor", func() { out.Receptor = flagDefaults.Receptor })
	visitSet("ligand", func() { out.Ligands = flagDefaults.Ligands })
	visitSet("out", func() { out.OutDir = flagDefaults.OutDir })
	visitSet("workers", func() { out.Workers = flagDefaults.Workers })
	visitSet("metrics-addr", func() { out.MetricsAddr = flagDefaults.MetricsAddr })
	visitSet("center-x", func() { out.Box.CenterX = flagDefaults.Box.CenterX })
	visitSet("center-y", func() { out.Box.CenterY = flagDefaults.Box.CenterY })
	visitSet("center-z", func() { out.Box.CenterZ = flagDefaults.Box.CenterZ })
	visitSet("span-x", func() { out.Box.SpanX = flagDefaults.Box.SpanX })
	visitSet("span-y", func() { out.Box.SpanY = flagDefaults.Box.SpanY })
	visitSet("span-z", func() { out.Box.SpanZ = flagDefaults.Box.SpanZ })
	visitSet("granularity", func() { out.Box.Granularity = flagDefaults.Box.Granularity })
	visitSet("num-seeds", func() { out.Search.NumSeeds = flagDefaults.Search.NumSeeds })
	visitSet("pool-capacity", func() { out.Pool.Capacity = flagDefaults.Pool.Capacity })
	visitSet("pool-rmsd-sqr-threshold", func() { out.Pool.RMSDSqrThreshold = flagDefaults.Pool.RMSDSqrThreshold })
	return out
}

func runDock(ctx context.Context, cfg dockconfig.Config) error {
	log, err := logging.New()
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	m := metrics.New()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn("metrics server stopped", logging.Err(err))
			}
		}()
		defer srv.Close()
	}

	receptorAtoms, searchBox, rec, sf, err := loadReceptor(cfg)
	if err != nil {
		return fmt.Errorf("loading receptor: %w", err)
	}
	log.Info("receptor loaded", logging.Int("atoms", len(receptorAtoms)))

	ligandJobs := make([]dock.LigandJob, 0, len(cfg.Ligands))
	for _, path := range cfg.Ligands {
		lig, err := loadLigand(path)
		if err != nil {
			return fmt.Errorf("loading ligand %s: %w", path, err)
		}
		seeds := make([]int64, cfg.Search.NumSeeds)
		for i := range seeds {
			seeds[i] = int64(i + 1)
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		ligandJobs = append(ligandJobs, dock.LigandJob{ID: id, Ligand: lig, Seeds: seeds})
	}

	job := dock.DockJob{
		Receptor: rec,
		Scoring:  sf,
		Box:      searchBox,
		Ligands:  ligandJobs,
		Search: search.Config{
			NumMCIterations: cfg.Search.NumMCIterations,
			NumAlphas:       cfg.Search.NumAlphas,
			ShrinkFactor:    cfg.Search.ShrinkFactor,
			ArmijoC1:        cfg.Search.ArmijoC1,
			CurvatureC2:     cfg.Search.CurvatureC2,
			EUpperBound:     40 * float64(len(receptorAtoms)),
		},
		PoolTau:      cfg.Pool.RMSDSqrThreshold,
		PoolCapacity: cfg.Pool.Capacity,
	}

	sched := dock.NewScheduler(cfg.Workers, log, m)
	results, err := sched.Run(ctx, job)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("dock run: %w", err)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, r := range results {
		if r.Err != nil {
			log.Warn("ligand task error", logging.String("ligand", r.LigandID), logging.Err(r.Err))
		}
		if err := writeLigandResults(cfg.OutDir, r); err != nil {
			return fmt.Errorf("writing results for %s: %w", r.LigandID, err)
		}
	}
	log.Info("dock run complete", logging.Int("ligands", len(results)))
	return nil
}

// loadReceptor parses the receptor PDBQT file and builds the box/index/
// scoring-table triple every ligand task shares read-only (spec §5).
func loadReceptor(cfg dockconfig.Config) ([]atomtype.Atom, *box.Box, *receptor.Receptor, *scoring.Function, error) {
	f, err := os.Open(cfg.Receptor)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer f.Close()

	records, donorSerials, err := pdbqt.ParseReceptor(cfg.Receptor, f)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	atoms := pdbqt.ToReceptorAtoms(records, donorSerials)

	center := spatial.Vec3{X: cfg.Box.CenterX, Y: cfg.Box.CenterY, Z: cfg.Box.CenterZ}
	span := spatial.Vec3{X: cfg.Box.SpanX, Y: cfg.Box.SpanY, Z: cfg.Box.SpanZ}
	b := box.New(center, span, cfg.Box.Granularity)

	rec := receptor.Build(atoms, b)
	sf := scoring.Build()
	return atoms, b, rec, sf, nil
}

func loadLigand(path string) (*ligand.Ligand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rec, err := pdbqt.ParseLigand(path, f)
	if err != nil {
		return nil, err
	}
	return pdbqt.ToLigand(rec), nil
}

// writeLigandResults writes one coordinate file per ranked pose plus a
// summary table, in ascending energy order (spec §6: "up to K result
// files per ligand plus a summary table").
func writeLigandResults(outDir string, r dock.LigandResult) error {
	ligandDir := filepath.Join(outDir, r.LigandID)
	if err := os.MkdirAll(ligandDir, 0o755); err != nil {
		return err
	}

	summaryPath := filepath.Join(ligandDir, "summary.csv")
	summary, err := os.Create(summaryPath)
	if err != nil {
		return err
	}
	defer summary.Close()
	fmt.Fprintln(summary, "rank,energy,intermolecular_energy,rmsd_sqr_to_best")

	items := r.Pool.Items()
	for i, item := range items {
		fmt.Fprintf(summary, "%d,%.6f,%.6f,%.6f\n", i+1, item.E, item.F, resultpool.RMSDSqr(item.Heavy, bestHeavy(items)))

		posePath := filepath.Join(ligandDir, fmt.Sprintf("pose_%02d.xyz", i+1))
		if err := writePoseFile(posePath, item); err != nil {
			return err
		}
	}
	return nil
}

func bestHeavy(items []resultpool.Result) []spatial.Vec3 {
	if len(items) == 0 {
		return nil
	}
	return items[0].Heavy
}

// writePoseFile writes one pose's heavy- and hydrogen-atom coordinates
// as a plain XYZ-style listing; the core's Result carries coordinates
// only, not atom identities, so no richer PDBQT round-trip is attempted
// here (SPEC_FULL §6).
func writePoseFile(path string, r resultpool.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# energy=%.6f intermolecular=%.6f\n", r.E, r.F)
	for _, p := range r.Heavy {
		fmt.Fprintf(f, "HEAVY %.4f %.4f %.4f\n", p.X, p.Y, p.Z)
	}
	for _, p := range r.Hydrogen {
		fmt.Fprintf(f, "H %.4f %.4f %.4f\n", p.X, p.Y, p.Z)
	}
	return nil
}
