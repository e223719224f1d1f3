package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vigil/internal/facts"
	"vigil/internal/spec"
	"vigil/internal/store"
)

var (
	factsQuery string
	factsDB    string
)

// factsCmd exports the predicate table as datalog facts
var factsCmd = &cobra.Command{
	Use:   "facts [layouts.yaml]",
	Short: "Export the predicate table as datalog facts",
	Long: `Encodes the layout document, exports the resulting table (plus any
persisted specification fragments) into the embedded datalog engine, and
prints the base facts. With --query, prints the rows of one base or
derived predicate instead.

Example:
  vigil facts layouts.yaml
  vigil facts layouts.yaml --query abstract_predicate
  vigil facts layouts.yaml --query predicate_refs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().StringVar(&factsQuery, "query", "", "Print rows for one predicate instead of the base facts")
	factsCmd.Flags().StringVar(&factsDB, "db", "", "Fragment database path (default from config)")
}

func runFacts(cmd *cobra.Command, args []string) error {
	path := layoutsPath(args)
	ctx := commandContext(cmd)

	table, err := encodeLayouts(ctx, path)
	if err != nil {
		return err
	}
	all := facts.FromTable(table)

	// Persisted fragments ride along when the database exists.
	dbPath := factsDB
	if dbPath == "" {
		dbPath = cfg.Store.DatabasePath
	}
	if _, statErr := os.Stat(dbPath); statErr == nil {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		frags, err := s.LoadFragments(ctx)
		if cerr := s.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		reg := spec.NewRegistry()
		for _, frag := range frags {
			if err := reg.Restore(frag); err != nil {
				return err
			}
		}
		all = append(all, facts.FromRegistry(reg)...)
	}

	engine, err := facts.NewEngine()
	if err != nil {
		return err
	}
	if err := engine.AddFacts(all); err != nil {
		return err
	}

	if factsQuery != "" {
		rows, err := engine.Facts(factsQuery)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Printf("No facts found for predicate '%s'\n", factsQuery)
			return nil
		}
		fmt.Printf("Facts for '%s':\n", factsQuery)
		for _, row := range rows {
			fmt.Printf("  %s\n", row)
		}
		return nil
	}

	for _, f := range all {
		fmt.Println(f)
	}
	return nil
}
