// Package pipeline wires the fetcher, the extraction strategies, the
// resolver and the store into the sequential ingestion run.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pvolkov/clubfacts/internal/cache"
	"github.com/pvolkov/clubfacts/internal/dates"
	"github.com/pvolkov/clubfacts/internal/extract"
	"github.com/pvolkov/clubfacts/internal/model"
	"github.com/pvolkov/clubfacts/internal/resolve"
	"github.com/pvolkov/clubfacts/internal/store"
	"github.com/pvolkov/clubfacts/internal/util"
)

// Pipeline orchestrates one ingestion run. Subjects are processed
// strictly one at a time; the limiter enforces the minimum gap between
// consecutive live fetches.
type Pipeline struct {
	fetcher     *Fetcher
	coordinator *extract.Coordinator
	resolver    *resolve.Resolver
	store       *store.Store
	limiter     *rate.Limiter
	cfg         *model.Config
	dryRun      bool
}

// NewPipeline assembles a pipeline from the configuration and an open
// store.
func NewPipeline(cfg *model.Config, st *store.Store) (*Pipeline, error) {
	resolver, err := resolve.NewResolver(resolve.DefaultAliases(), cfg.Resolver.Threshold)
	if err != nil {
		return nil, fmt.Errorf("creating resolver: %w", err)
	}

	fetcher := NewFetcher(cfg.HTTP)
	if cfg.Cache.Enabled {
		dir := store.ExpandPath(cfg.Cache.Dir)
		fetcher.WithCache(cache.NewPages(dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL))
	}
	if cfg.Source.RespectRobots {
		fetcher.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout))
	}

	return &Pipeline{
		fetcher:     fetcher,
		coordinator: extract.NewCoordinator(),
		resolver:    resolver,
		store:       st,
		limiter:     rate.NewLimiter(rate.Every(cfg.Source.Delay), 1),
		cfg:         cfg,
	}, nil
}

// SetDryRun makes the pipeline report what it would persist without
// writing stints.
func (p *Pipeline) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// SubjectResult summarizes one subject's ingestion.
type SubjectResult struct {
	Player     string
	URL        string
	FromCache  bool
	Facts      int
	Unresolved int
	Inserted   int
	Duplicates int
	Err        error
}

// RunSummary aggregates a whole run.
type RunSummary struct {
	Processed  int
	Failed     int
	Inserted   int
	Duplicates int
	Unresolved int
	Results    []*SubjectResult
}

// PageURL builds the article URL for a subject name.
func (p *Pipeline) PageURL(player string) string {
	return p.cfg.Source.BaseURL + strings.ReplaceAll(strings.TrimSpace(player), " ", "_")
}

// IngestPlayer fetches one subject's article, extracts career facts,
// resolves each club against the registry and persists the survivors.
// Facts whose club cannot be resolved are counted and dropped, never
// persisted with a guessed identity.
func (p *Pipeline) IngestPlayer(ctx context.Context, player string) (*SubjectResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	url := p.PageURL(player)
	res, err := p.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	facts := p.coordinator.Parse(doc)
	result := &SubjectResult{
		Player:    res.Subject,
		URL:       res.FinalURL,
		FromCache: res.FromCache,
		Facts:     len(facts),
	}

	if len(facts) == 0 {
		return result, nil
	}

	registry, err := p.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	seen := make(map[string]bool)
	for _, fact := range facts {
		match := p.resolver.FindBestMatch(fact.TeamName, registry)
		if match == nil {
			result.Unresolved++
			continue
		}

		key := match.EntityID + "|" + strconv.Itoa(fact.StartYear)
		if seen[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true

		clubID, err := strconv.ParseInt(match.EntityID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad registry id %q: %w", match.EntityID, err)
		}

		exists, err := p.store.HasStint(ctx, result.Player, clubID, fact.StartYear)
		if err != nil {
			return nil, fmt.Errorf("checking stint: %w", err)
		}
		if exists {
			result.Duplicates++
			continue
		}

		if !p.dryRun {
			if _, err := p.store.InsertStint(ctx, stintFromFact(result.Player, clubID, fact, match.Confidence)); err != nil {
				return nil, fmt.Errorf("persisting stint: %w", err)
			}
		}
		result.Inserted++
	}

	return result, nil
}

// IngestAll processes subjects sequentially. A failing subject is
// recorded and skipped; it never aborts the run.
func (p *Pipeline) IngestAll(ctx context.Context, players []string) *RunSummary {
	summary := &RunSummary{}
	for _, player := range players {
		if ctx.Err() != nil {
			break
		}

		result, err := p.IngestPlayer(ctx, player)
		if err != nil {
			result = &SubjectResult{Player: player, Err: err}
			summary.Failed++
		} else {
			summary.Processed++
			summary.Inserted += result.Inserted
			summary.Duplicates += result.Duplicates
			summary.Unresolved += result.Unresolved
		}
		summary.Results = append(summary.Results, result)
	}
	return summary
}

// stintFromFact converts an extracted fact into a store row. Partial
// dates widen to the stint's plausible bounds: a bare start year becomes
// July 1, a bare end year June 30 of the following season boundary.
func stintFromFact(player string, clubID int64, fact model.CareerFact, confidence float64) *store.Stint {
	start := model.ParsedDate{Year: fact.StartYear, Month: fact.StartMonth}

	st := &store.Stint{
		Player:       player,
		ClubID:       clubID,
		RawTeam:      fact.TeamName,
		StartDate:    dates.ToISODate(start, false),
		Appearances:  fact.Appearances,
		Goals:        fact.Goals,
		TransferType: "permanent",
		Tier:         string(fact.Tier),
		Confidence:   confidence,
	}
	if fact.IsLoan {
		st.TransferType = "loan"
	}
	if fact.EndYear != nil {
		end := model.ParsedDate{Year: *fact.EndYear, Month: fact.EndMonth}
		st.EndDate = dates.ToISODate(end, true)
	}
	return st
}
