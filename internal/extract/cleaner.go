package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pvolkov/clubfacts/internal/dates"
	"github.com/pvolkov/clubfacts/internal/model"
)

var (
	footnoteRe = regexp.MustCompile(`\[\d+\]`)
	wikiLinkRe = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`)
	statsRe    = regexp.MustCompile(`(\d+)\s*\((\d+)\)`)
)

// CleanLinkText returns the display text of a table cell, preferring the
// first embedded link's anchor text over the raw cell content. Footnote
// markers and raw [[wiki link]] markup are stripped either way.
func CleanLinkText(sel *goquery.Selection) string {
	text := sel.Text()
	if a := sel.Find("a").First(); a.Length() > 0 {
		if t := strings.TrimSpace(a.Text()); t != "" {
			text = t
		}
	}
	return CleanText(text)
}

// CleanText strips footnote markers and wiki-link markup from raw text
// and collapses whitespace.
func CleanText(text string) string {
	text = wikiLinkRe.ReplaceAllString(text, "$1")
	text = footnoteRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// isSummaryRow reports whether a cleaned team name belongs to a "Total"
// summary row. Such rows must never become facts.
func isSummaryRow(teamName string) bool {
	return strings.Contains(strings.ToLower(teamName), "total")
}

// hasLoanMarker reports whether any of the given cell texts mention a
// loan spell.
func hasLoanMarker(texts ...string) bool {
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), "loan") {
			return true
		}
	}
	return false
}

// parseStatsCell decodes an "N (M)" appearances/goals cell. Returns nil
// pointers when the cell does not match.
func parseStatsCell(text string) (apps, goals *int) {
	m := statsRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	a, _ := strconv.Atoi(m[1])
	g, _ := strconv.Atoi(m[2])
	return &a, &g
}

// buildFact assembles a fact from a years expression and a cleaned team
// name. Returns false when the team is a summary row or no start year in
// range can be resolved; such rows are discarded, not errored.
func buildFact(yearsText, teamName string, tier model.CareerTier) (model.CareerFact, bool) {
	if teamName == "" || isSummaryRow(teamName) {
		return model.CareerFact{}, false
	}

	rng, ok := dates.ParseDateRange(CleanText(yearsText))
	if !ok {
		return model.CareerFact{}, false
	}

	fact := model.CareerFact{
		TeamName:   teamName,
		StartYear:  rng.Start.Year,
		StartMonth: rng.Start.Month,
		Tier:       tier,
	}
	if rng.End != nil {
		end := rng.End.Year
		fact.EndYear = &end
		fact.EndMonth = rng.End.Month
	}
	return fact, true
}
