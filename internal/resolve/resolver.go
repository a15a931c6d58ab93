// Package resolve matches noisy free-text club names against a canonical
// registry using a fixed-precedence strategy chain: exact, alias, partial
// containment, then fuzzy edit distance. Every match carries a confidence
// score so downstream consumers can decide what to trust.
package resolve

import (
	"fmt"
	"strings"

	"github.com/pvolkov/clubfacts/internal/model"
	"github.com/pvolkov/clubfacts/internal/names"
)

// DefaultThreshold is the minimum similarity a fuzzy match must reach.
const DefaultThreshold = 0.75

// AliasTable maps a canonical club name to its known alternate spellings
// and abbreviations. The table is an explicit immutable value passed in
// at construction, never ambient state, so tests can substitute a
// smaller one.
type AliasTable map[string][]string

// Resolver resolves free-text club names against a caller-supplied
// registry. Safe for concurrent use; it only reads its inputs.
type Resolver struct {
	aliases   AliasTable
	threshold float64
}

// NewResolver builds a resolver. A threshold outside (0, 1] is a
// programmer error, not source noise, and fails loudly.
func NewResolver(aliases AliasTable, threshold float64) (*Resolver, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("resolve: threshold must be in (0, 1], got %g", threshold)
	}
	return &Resolver{aliases: aliases, threshold: threshold}, nil
}

// FindBestMatch returns the best-matching registry entry for rawName, or
// nil when no strategy yields a qualifying candidate. Strategies run in
// strict precedence and the first one producing any candidate wins.
func (r *Resolver) FindBestMatch(rawName string, registry []model.CanonicalEntity) *model.MatchResult {
	normalized := names.Normalize(rawName)
	if normalized == "" {
		return nil
	}

	if m := r.matchExact(normalized, registry); m != nil {
		return m
	}
	if m := r.matchAlias(rawName, normalized, registry); m != nil {
		return m
	}
	if m := r.matchPartial(normalized, registry); m != nil {
		return m
	}
	return r.matchFuzzy(normalized, registry)
}

func (r *Resolver) matchExact(normalized string, registry []model.CanonicalEntity) *model.MatchResult {
	for _, entity := range registry {
		if names.Normalize(entity.Name) == normalized {
			return &model.MatchResult{
				EntityID:   entity.ID,
				EntityName: entity.Name,
				Confidence: 1.0,
				Kind:       model.MatchExact,
			}
		}
	}
	return nil
}

// matchAlias considers only aliases whose canonical name is present in
// both the alias table and the registry. An alias matches normalized or
// verbatim case-insensitive.
func (r *Resolver) matchAlias(rawName, normalized string, registry []model.CanonicalEntity) *model.MatchResult {
	for _, entity := range registry {
		for _, alias := range r.aliases[entity.Name] {
			if names.Normalize(alias) == normalized || strings.EqualFold(alias, rawName) {
				return &model.MatchResult{
					EntityID:   entity.ID,
					EntityName: entity.Name,
					Confidence: 0.95,
					Kind:       model.MatchAlias,
				}
			}
		}
	}
	return nil
}

// matchPartial accepts containment either way when the shorter name is
// more than half the length of the longer. The first qualifying registry
// entry wins; iteration order is whatever order the registry was
// supplied in.
func (r *Resolver) matchPartial(normalized string, registry []model.CanonicalEntity) *model.MatchResult {
	for _, entity := range registry {
		candidate := names.Normalize(entity.Name)
		if candidate == "" {
			continue
		}
		if !strings.Contains(candidate, normalized) && !strings.Contains(normalized, candidate) {
			continue
		}

		shorter, longer := len(normalized), len(candidate)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		ratio := float64(shorter) / float64(longer)
		if ratio <= 0.5 {
			continue
		}

		return &model.MatchResult{
			EntityID:   entity.ID,
			EntityName: entity.Name,
			Confidence: 0.85 * ratio,
			Kind:       model.MatchPartial,
		}
	}
	return nil
}

func (r *Resolver) matchFuzzy(normalized string, registry []model.CanonicalEntity) *model.MatchResult {
	var best *model.MatchResult
	bestScore := 0.0

	for _, entity := range registry {
		score := names.Similarity(normalized, names.Normalize(entity.Name))
		if score > bestScore {
			bestScore = score
			best = &model.MatchResult{
				EntityID:   entity.ID,
				EntityName: entity.Name,
				Confidence: score,
				Kind:       model.MatchFuzzy,
			}
		}
	}

	if best == nil || bestScore < r.threshold {
		return nil
	}
	return best
}
