// Command vedidock is the CLI driver for the docking core: it parses
// PDBQT input, builds the receptor index and scoring table once, runs
// the worker-pool scheduler over every (ligand, seed) pair, and writes
// ranked pose files (SPEC_FULL §1, §6). It owns every "external
// collaborator" concern spec.md scopes out of the core: file I/O,
// logging, and CLI ergonomics.
//
// Grounded on turtacn-KeyIP-Intelligence/cmd/keyip/main.go's cobra-root
// + build-time-ldflags-version pattern.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version, commit, and buildDate are set via -ldflags at release build
// time; they default to "dev" values for local builds.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "vedidock",
		Short: "vedidock docks small-molecule ligands against a rigid receptor",
		Long: "vedidock performs protein-ligand docking: a semi-empirical scoring\n" +
			"function, a receptor spatial index, a conformation evaluator, and a\n" +
			"Monte Carlo / BFGS search driver produce a small, diverse set of\n" +
			"low-energy poses per ligand.",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
	}
	root.AddCommand(newDockCommand())
	return root
}
