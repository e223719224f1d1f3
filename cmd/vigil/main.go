package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vigil/internal/config"
	"vigil/internal/encoder"
	"vigil/internal/logging"
)

var (
	// Global flags
	verbose bool
	cfgPath string

	// Loaded configuration, shared by every subcommand
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "vigil - specification identity and heap predicate encoder",
	Long: `vigil turns type layouts into separation-logic heap predicates.

Specification fragments (requires, ensures, invariant, predicate) are
minted 128-bit random identities so generated items keep stable,
collision-free names. Type layouts are encoded into ownership
predicates; the resulting table can be checked for guard gaps and
dangling references, exported as datalog facts, and queried through an
embedded Mangle engine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Init(level, cfg.Logging.Format); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "vigil.yaml", "Config file path")

	// Add commands to root
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(fragmentCmd)
	rootCmd.AddCommand(idgenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext returns the command context, falling back to Background
// when the handler is driven outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// layoutsPath resolves the layout document path: positional argument
// first, config fallback second.
func layoutsPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Layouts.Path
}

// encodeLayouts runs the load-validate-encode pipeline for one layout
// document and returns the resulting predicate table.
func encodeLayouts(ctx context.Context, path string) (*encoder.Table, error) {
	layouts, err := encoder.LoadLayouts(path)
	if err != nil {
		return nil, err
	}

	enc := encoder.New()
	if err := enc.EncodeAll(ctx, layouts); err != nil {
		return nil, err
	}
	return enc.Table(), nil
}
