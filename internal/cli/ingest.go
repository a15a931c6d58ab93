package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pvolkov/clubfacts/internal/pipeline"
	"github.com/pvolkov/clubfacts/internal/store"
)

var (
	ingestPlayer    string
	ingestDryRun    bool
	ingestDB        string
	ingestDelay     time.Duration
	ingestTimeout   time.Duration
	ingestUA        string
	ingestNoCache   bool
	ingestThreshold float64
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [players-file]",
	Short: "Fetch player articles and persist their career histories",
	Long: `Ingest fetches each player's article, extracts career facts and stores
the stints whose clubs resolve against the registry.

Players come either from a file (one name per line, # comments allowed)
or from a single --player flag. Subjects are always processed one at a
time with a polite delay between page fetches.

Example:
  clubfacts ingest players.txt
  clubfacts ingest --player "Some Player"
  clubfacts ingest players.txt --dry-run --delay 5s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestPlayer, "player", "", "ingest a single player instead of a file")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "extract and resolve but write nothing")
	ingestCmd.Flags().StringVar(&ingestDB, "db", "", "database path (default: ~/.clubfacts/clubfacts.db)")
	ingestCmd.Flags().DurationVar(&ingestDelay, "delay", 0, "minimum gap between page fetches (default: 2s)")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 0, "per-request HTTP timeout (default: 30s)")
	ingestCmd.Flags().StringVar(&ingestUA, "ua", "", "HTTP User-Agent override")
	ingestCmd.Flags().BoolVar(&ingestNoCache, "no-cache", false, "disable the page cache (force fresh fetches)")
	ingestCmd.Flags().Float64Var(&ingestThreshold, "threshold", 0, "fuzzy match acceptance threshold (default: 0.75)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ingestDB != "" {
		cfg.Store.DBPath = ingestDB
	}
	if ingestDelay > 0 {
		cfg.Source.Delay = ingestDelay
	}
	if ingestTimeout > 0 {
		cfg.HTTP.Timeout = ingestTimeout
	}
	if ingestUA != "" {
		cfg.HTTP.UserAgent = ingestUA
	}
	if ingestNoCache {
		cfg.Cache.Enabled = false
	}
	if ingestThreshold > 0 {
		cfg.Resolver.Threshold = ingestThreshold
	}

	players, err := ingestSubjects(args)
	if err != nil {
		return err
	}

	st, err := store.Open(store.ExpandPath(cfg.Store.DBPath))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	p, err := pipeline.NewPipeline(cfg, st)
	if err != nil {
		return err
	}
	p.SetDryRun(ingestDryRun)

	if verbose {
		fmt.Fprintf(os.Stderr, "Players:  %d\n", len(players))
		fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Store.DBPath)
		fmt.Fprintf(os.Stderr, "Delay:    %v\n", cfg.Source.Delay)
		if ingestDryRun {
			fmt.Fprintf(os.Stderr, "Mode:     dry run\n")
		}
		fmt.Fprintln(os.Stderr)
	}

	summary := p.IngestAll(context.Background(), players)

	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Player, r.Err)
			continue
		}
		note := ""
		if r.FromCache {
			note = " (cached)"
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %d facts, %d stored, %d duplicate, %d unresolved%s\n",
			r.Player, r.Facts, r.Inserted, r.Duplicates, r.Unresolved, note)
	}

	fmt.Fprintf(os.Stderr, "\nProcessed: %d  Failed: %d  Stored: %d  Duplicates: %d  Unresolved: %d\n",
		summary.Processed, summary.Failed, summary.Inserted, summary.Duplicates, summary.Unresolved)

	// Per-subject failures are reported above and in the summary; a run
	// that completed all subjects exits zero regardless.
	return nil
}

// ingestSubjects resolves the player list from the flag or the file
// argument.
func ingestSubjects(args []string) ([]string, error) {
	if ingestPlayer != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("use either --player or a players file, not both")
		}
		return []string{ingestPlayer}, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a players file or --player is required")
	}
	return readPlayersFromFile(args[0])
}

// readPlayersFromFile reads player names from a file (one per line).
// Blank lines and # comments are skipped; duplicates collapse.
func readPlayersFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var players []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			players = append(players, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return players, nil
}
