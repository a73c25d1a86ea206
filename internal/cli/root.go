// Package cli implements the schemaid command line interface.
//
// The CLI applies the same canonicalization-and-hashing pipeline the
// library applies to Go types, but to schema documents stored as JSON or
// YAML files. This makes it possible to fingerprint schemas produced by
// other toolchains, or to check a stored document against a known hash.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schemaid",
	Short: "Deterministic schema fingerprints",
	Long: `schemaid computes short, deterministic identity hashes for schema
documents, so the shape of a data type can be compared across time without
retaining or diffing full schemas.

Documents are read from JSON or YAML files, canonicalized under the chosen
tracking settings, and hashed. The same settings always produce the same
hash for the same document.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Populate the environment from a local .env, if present.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}
