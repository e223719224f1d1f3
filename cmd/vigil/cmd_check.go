package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vigil/internal/encoder"
)

// checkCmd runs diagnostics over the encoded predicate table
var checkCmd = &cobra.Command{
	Use:   "check [layouts.yaml]",
	Short: "Check encoded predicates for guard gaps and dangling references",
	Long: `Encodes the layout document and then checks the table:
  - every value inside an enum discriminant interval must be claimed by
    exactly one variant guard
  - every predicate-access inside a body must name a declared predicate

Findings are printed one per line; any finding fails the command.

Example:
  vigil check layouts.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := layoutsPath(args)

	table, err := encodeLayouts(commandContext(cmd), path)
	if err != nil {
		return err
	}

	findings, err := encoder.Check(table)
	if err != nil {
		return err
	}

	if len(findings) == 0 {
		fmt.Printf("OK: %d predicates, no findings\n", table.Len())
		return nil
	}

	for _, f := range findings {
		fmt.Println(f)
	}
	return fmt.Errorf("%d finding(s)", len(findings))
}
