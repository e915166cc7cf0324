package main

import "testing"

func TestRootCommandHasDockSubcommand(t *testing.T) {
	root := newRootCommand()
	found := false
	for _, c := range root.Commands() {
		if c.Name() == "dock" {
			found = true
		}
	}
	if !found {
		t.Fatalf("root command missing dock subcommand")
	}
}

func TestDockCommandRequiresReceptorAndLigand(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"dock", "--span-x", "5", "--span-y", "5", "--span-z", "5"})
	root.SilenceErrors = true
	root.SilenceUsage = true
	if err := root.Execute(); err == nil {
		t.Fatalf("expected validation error for missing receptor/ligand, got nil")
	}
}
