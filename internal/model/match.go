package model

// CanonicalEntity is the authoritative record for a club in the registry.
// The registry itself is supplied by the caller (sourced from the store);
// resolution treats it as read-only.
type CanonicalEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MatchKind identifies which resolution tier produced a match.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchAlias   MatchKind = "alias"
	MatchPartial MatchKind = "partial"
	MatchFuzzy   MatchKind = "fuzzy"
)

// MatchResult is the outcome of resolving a free-text club name against
// the registry. Confidence is in [0, 1]; it expresses trust in the match,
// not in the underlying source fact.
type MatchResult struct {
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	Confidence float64   `json:"confidence"`
	Kind       MatchKind `json:"kind"`
}
