package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pvolkov/clubfacts/internal/dates"
	"github.com/pvolkov/clubfacts/internal/model"
)

// seasonRe matches "2019", "2019–20", and "2019–2020" season tokens
// (any dash glyph already normalized to a hyphen before matching).
var seasonRe = regexp.MustCompile(`\b(\d{4})(?:-(\d{2}|\d{4}))?\b`)

// WikitableStrategy extracts facts from a dedicated statistics table
// whose caption or preceding heading mentions the player's career.
// Columns are located by header keywords, falling back to positional
// columns 0 (season) and 1 (club) when no header row helps.
type WikitableStrategy struct{}

// NewWikitableStrategy creates a new wikitable strategy.
func NewWikitableStrategy() *WikitableStrategy {
	return &WikitableStrategy{}
}

// Name returns the strategy name.
func (s *WikitableStrategy) Name() string {
	return "wikitable"
}

// CanParse checks whether a career/club table exists.
func (s *WikitableStrategy) CanParse(doc *goquery.Document) bool {
	return s.findCareerTable(doc) != nil
}

// Parse reads the located career table row by row.
func (s *WikitableStrategy) Parse(doc *goquery.Document) []model.CareerFact {
	table := s.findCareerTable(doc)
	if table == nil {
		return nil
	}

	cols := locateColumns(table)
	var facts []model.CareerFact

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= cols.club || cells.Length() <= cols.season {
			return
		}

		seasonText := cells.Eq(cols.season).Text()
		startYear, endYear, ok := parseSeason(seasonText)
		if !ok {
			return
		}

		teamCell := cells.Eq(cols.club)
		teamName := CleanLinkText(teamCell)
		if teamName == "" || isSummaryRow(teamName) {
			return
		}

		fact := model.CareerFact{
			TeamName:  teamName,
			StartYear: startYear,
			EndYear:   &endYear,
			IsLoan:    hasLoanMarker(teamCell.Text(), seasonText),
			Tier:      model.TierSenior,
		}

		if cols.apps >= 0 && cells.Length() > cols.apps {
			if n, err := strconv.Atoi(strings.TrimSpace(cells.Eq(cols.apps).Text())); err == nil {
				fact.Appearances = &n
			}
		}
		if cols.goals >= 0 && cells.Length() > cols.goals {
			if n, err := strconv.Atoi(strings.TrimSpace(cells.Eq(cols.goals).Text())); err == nil {
				fact.Goals = &n
			}
		}

		facts = append(facts, fact)
	})

	return facts
}

// findCareerTable returns the first table whose caption or nearest
// preceding heading mentions "career" or "club".
func (s *WikitableStrategy) findCareerTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		caption := strings.ToLower(table.Find("caption").First().Text())
		heading := strings.ToLower(table.PrevAllFiltered("h2, h3, h4").First().Text())

		for _, text := range []string{caption, heading} {
			if strings.Contains(text, "career") || strings.Contains(text, "club") {
				found = table
				return false
			}
		}
		return true
	})

	return found
}

type columnIndexes struct {
	season int
	club   int
	apps   int
	goals  int
}

// locateColumns maps header keywords to column positions. Missing
// season/club headers fall back to columns 0 and 1; missing stats
// columns are marked absent.
func locateColumns(table *goquery.Selection) columnIndexes {
	cols := columnIndexes{season: 0, club: 1, apps: -1, goals: -1}

	headers := table.Find("tr").First().Find("th")
	headers.Each(func(i int, th *goquery.Selection) {
		text := strings.ToLower(th.Text())
		switch {
		case strings.Contains(text, "season") || strings.Contains(text, "year"):
			cols.season = i
		case strings.Contains(text, "club") || strings.Contains(text, "team"):
			cols.club = i
		case strings.Contains(text, "app"):
			cols.apps = i
		case strings.Contains(text, "goal"):
			cols.goals = i
		}
	})

	return cols
}

// parseSeason decodes a season token. A two-digit end year is expanded
// using the start year's century; "1999-00" rolls into the next century.
// A single-year season spans exactly that year.
func parseSeason(text string) (startYear, endYear int, ok bool) {
	normalized := strings.ReplaceAll(text, "–", "-")
	normalized = strings.ReplaceAll(normalized, "—", "-")

	m := seasonRe.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, false
	}

	startYear, _ = strconv.Atoi(m[1])
	if startYear < dates.MinYear || startYear > dates.MaxYear {
		return 0, 0, false
	}

	endYear = startYear
	if m[2] != "" {
		n, _ := strconv.Atoi(m[2])
		if len(m[2]) == 2 {
			endYear = startYear/100*100 + n
			if endYear < startYear {
				endYear += 100
			}
		} else {
			endYear = n
		}
	}

	return startYear, endYear, true
}
