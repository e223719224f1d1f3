package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vigil/internal/spec"
	"vigil/internal/store"
)

var (
	fragKind   string
	fragSource string
	fragDB     string
)

// fragmentCmd manages persisted specification fragments
var fragmentCmd = &cobra.Command{
	Use:   "fragment",
	Short: "Manage persisted specification fragments",
}

var fragmentAddCmd = &cobra.Command{
	Use:   "add [annotation text]",
	Short: "Register a specification fragment and persist it",
	Long: `Classifies the annotation keyword, mints a fresh 128-bit identity
for the fragment, and persists it so the identity survives restarts.

Example:
  vigil fragment add --kind requires --source "lib.rs:42" "x > 0"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFragmentAdd,
}

var fragmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted specification fragments",
	RunE:  runFragmentList,
}

func init() {
	fragmentAddCmd.Flags().StringVar(&fragKind, "kind", "", "Annotation keyword: requires, ensures, invariant, predicate (required)")
	fragmentAddCmd.Flags().StringVar(&fragSource, "source", "", "Source location the annotation is attached to")
	fragmentAddCmd.MarkFlagRequired("kind")

	fragmentCmd.PersistentFlags().StringVar(&fragDB, "db", "", "Fragment database path (default from config)")

	fragmentCmd.AddCommand(fragmentAddCmd)
	fragmentCmd.AddCommand(fragmentListCmd)
}

func runFragmentAdd(cmd *cobra.Command, args []string) error {
	reg := spec.NewRegistry()
	frag, err := reg.RegisterKeyword(fragKind, fragSource, strings.Join(args, " "))
	if err != nil {
		return err
	}

	s, err := store.Open(fragmentDBPath())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveFragments(commandContext(cmd), []spec.Fragment{frag}); err != nil {
		return err
	}

	fmt.Printf("Registered %s fragment %s\n", frag.Kind, frag.ID)
	return nil
}

func runFragmentList(cmd *cobra.Command, args []string) error {
	s, err := store.Open(fragmentDBPath())
	if err != nil {
		return err
	}
	defer s.Close()

	frags, err := s.LoadFragments(commandContext(cmd))
	if err != nil {
		return err
	}

	if len(frags) == 0 {
		fmt.Println("No fragments stored")
		return nil
	}
	for _, frag := range frags {
		fmt.Printf("%s  %-13s  %-20s  %s\n", frag.ID, frag.Kind, frag.Source, frag.Raw)
	}
	return nil
}

func fragmentDBPath() string {
	if fragDB != "" {
		return fragDB
	}
	return cfg.Store.DatabasePath
}
