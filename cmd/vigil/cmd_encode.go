package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vigil/internal/encoder"
	"vigil/internal/logging"
)

var watchLayouts bool

// encodeCmd encodes a layout document into heap predicates
var encodeCmd = &cobra.Command{
	Use:   "encode [layouts.yaml]",
	Short: "Encode type layouts into heap predicates",
	Long: `Reads a type layout document and encodes every layout into its
ownership predicate, printing the textual forms in input order.

Example:
  vigil encode layouts.yaml
  vigil encode layouts.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().BoolVar(&watchLayouts, "watch", false, "Re-encode when the layout document changes")
}

func runEncode(cmd *cobra.Command, args []string) error {
	path := layoutsPath(args)
	ctx := commandContext(cmd)

	if err := encodeOnce(ctx, path); err != nil {
		return err
	}
	if !watchLayouts {
		return nil
	}

	w, err := encoder.NewWatcher(path, func(changed string) {
		if err := encodeOnce(context.Background(), changed); err != nil {
			fmt.Fprintf(os.Stderr, "re-encode failed: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := w.Start(watchCtx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(os.Stderr, "Watching for layout changes. Press Ctrl+C to stop.")

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}

// encodeOnce runs the encode pipeline and prints the table, predicates
// separated by blank lines.
func encodeOnce(ctx context.Context, path string) error {
	table, err := encodeLayouts(ctx, path)
	if err != nil {
		return err
	}
	logging.CLI("encoded %d predicates from %s", table.Len(), path)

	for i, p := range table.Snapshot() {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(p)
	}
	return nil
}
