package model

// CareerTier distinguishes senior club entries from youth academy spells.
type CareerTier string

const (
	TierSenior CareerTier = "senior"
	TierYouth  CareerTier = "youth"
)

// CareerFact represents one inferred club stint for a player: the club,
// its date range, and whatever statistics the source layout exposed.
// A fact without a resolvable start year is never constructed; the
// producing strategy discards the row instead.
type CareerFact struct {
	TeamName    string       `json:"team_name"`             // Cleaned free-text club name, pre-resolution
	StartYear   int          `json:"start_year"`            // Required, in [1900, 2100]
	StartMonth  int          `json:"start_month,omitempty"` // 1-12, 0 = unknown
	EndYear     *int         `json:"end_year,omitempty"`    // nil = ongoing
	EndMonth    int          `json:"end_month,omitempty"`   // 1-12, 0 = unknown
	Appearances *int         `json:"appearances,omitempty"`
	Goals       *int         `json:"goals,omitempty"`
	IsLoan      bool         `json:"is_loan"`
	Fee         *TransferFee `json:"fee,omitempty"`
	Tier        CareerTier   `json:"tier"`
}

// FeeKind classifies a transfer fee.
type FeeKind string

const (
	FeePaid        FeeKind = "paid"
	FeeFree        FeeKind = "free"
	FeeLoan        FeeKind = "loan"
	FeeUndisclosed FeeKind = "undisclosed"
	FeeUnknown     FeeKind = "unknown"
)

// TransferFee is a parsed transfer fee. Raw always preserves the original
// source text for audit, whatever the parse outcome.
type TransferFee struct {
	Amount   *float64 `json:"amount,omitempty"`   // nil for free/loan/undisclosed/unknown
	Currency string   `json:"currency,omitempty"` // Currency glyph, may be empty
	Kind     FeeKind  `json:"kind"`
	Raw      string   `json:"raw"`
}

// ParsedDate is a partial-precision calendar date. A zero Month or Day
// signals reduced precision, not January or the first of the month.
type ParsedDate struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// DateRange is a stint interval. A nil End means ongoing/current.
// Start ≤ End is expected but not enforced: source documents sometimes
// carry reversed ranges and callers must tolerate them as noise.
type DateRange struct {
	Start ParsedDate  `json:"start"`
	End   *ParsedDate `json:"end,omitempty"`
}
