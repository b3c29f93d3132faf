package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Arithmetic practice question service",
	Long: `mathdrill generates constrained addition and subtraction practice for
young learners: difficulty levels, columnar fill-in-the-digit questions and
practice sessions served over HTTP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to mathdrill.yaml (default: ./mathdrill.yaml if present)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured store.path, then MATHDRILL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
