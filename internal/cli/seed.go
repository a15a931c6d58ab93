package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvolkov/clubfacts/internal/resolve"
	"github.com/pvolkov/clubfacts/internal/store"
)

var seedFromAliases bool

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed [clubs-file]",
	Short: "Seed the canonical club registry",
	Long: `Seed loads canonical club names into the registry, from a file (one
name per line, # comments allowed) or from the built-in alias table.

Example:
  clubfacts seed clubs.txt
  clubfacts seed --builtin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if ingestDB != "" {
			cfg.Store.DBPath = ingestDB
		}

		st, err := store.Open(store.ExpandPath(cfg.Store.DBPath))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		stats, err := st.GetStats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Clubs:  %d\n", stats.Clubs)
		fmt.Printf("Stints: %d\n", stats.Stints)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
	seedCmd.Flags().BoolVar(&seedFromAliases, "builtin", false, "seed from the built-in alias table")
	seedCmd.Flags().StringVar(&ingestDB, "db", "", "database path (default: ~/.clubfacts/clubfacts.db)")
	statusCmd.Flags().StringVar(&ingestDB, "db", "", "database path (default: ~/.clubfacts/clubfacts.db)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ingestDB != "" {
		cfg.Store.DBPath = ingestDB
	}

	var names []string
	switch {
	case seedFromAliases:
		for canonical := range resolve.DefaultAliases() {
			names = append(names, canonical)
		}
	case len(args) == 1:
		names, err = readPlayersFromFile(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("a clubs file or --builtin is required")
	}

	st, err := store.Open(store.ExpandPath(cfg.Store.DBPath))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	added, err := st.SeedClubs(context.Background(), names)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Seeded %d new clubs (%d supplied)\n", added, len(names))
	return nil
}
