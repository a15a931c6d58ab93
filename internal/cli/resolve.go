package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvolkov/clubfacts/internal/resolve"
	"github.com/pvolkov/clubfacts/internal/store"
)

var resolveThreshold float64

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a free-text club name against the registry",
	Long: `Resolve runs one club name through the resolution tiers (exact, alias,
partial, fuzzy) and prints the winning entity with its confidence, or
reports that no match clears the threshold.

Example:
  clubfacts resolve "Man Utd"
  clubfacts resolve "Machester City" --threshold 0.6`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Float64Var(&resolveThreshold, "threshold", 0, "fuzzy match acceptance threshold (default: 0.75)")
	resolveCmd.Flags().StringVar(&ingestDB, "db", "", "database path (default: ~/.clubfacts/clubfacts.db)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if resolveThreshold > 0 {
		cfg.Resolver.Threshold = resolveThreshold
	}
	if ingestDB != "" {
		cfg.Store.DBPath = ingestDB
	}

	st, err := store.Open(store.ExpandPath(cfg.Store.DBPath))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	registry, err := st.Clubs(context.Background())
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if len(registry) == 0 {
		return fmt.Errorf("registry is empty; seed clubs first with 'clubfacts seed'")
	}

	resolver, err := resolve.NewResolver(resolve.DefaultAliases(), cfg.Resolver.Threshold)
	if err != nil {
		return err
	}

	match := resolver.FindBestMatch(args[0], registry)
	if match == nil {
		fmt.Printf("✗ no match for %q (threshold %.2f, %d clubs)\n",
			args[0], cfg.Resolver.Threshold, len(registry))
		return nil
	}

	fmt.Printf("✓ %s (id %s)\n", match.EntityName, match.EntityID)
	fmt.Printf("  kind:       %s\n", match.Kind)
	fmt.Printf("  confidence: %.2f\n", match.Confidence)
	return nil
}
