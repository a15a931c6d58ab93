package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pvolkov/clubfacts/internal/model"
)

// InfoboxStrategy extracts career facts from the sidebar infobox panel
// most player articles carry. Infobox rows are grouped under label rows:
// "Youth career" switches subsequent rows to the youth tier until a
// senior-career label switches back, and national/international sections
// are skipped entirely because caps are out of scope.
type InfoboxStrategy struct{}

// NewInfoboxStrategy creates a new infobox strategy.
func NewInfoboxStrategy() *InfoboxStrategy {
	return &InfoboxStrategy{}
}

// Name returns the strategy name.
func (s *InfoboxStrategy) Name() string {
	return "infobox"
}

// CanParse checks for at least one infobox-like panel.
func (s *InfoboxStrategy) CanParse(doc *goquery.Document) bool {
	return doc.Find("table.infobox").Length() > 0
}

// Parse walks every row of every infobox panel.
func (s *InfoboxStrategy) Parse(doc *goquery.Document) []model.CareerFact {
	var facts []model.CareerFact

	doc.Find("table.infobox").Each(func(_ int, table *goquery.Selection) {
		tier := model.TierSenior
		skipSection := false

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			label := strings.ToLower(strings.TrimSpace(row.Find("th").First().Text()))
			switch {
			case strings.Contains(label, "youth career"):
				tier = model.TierYouth
				skipSection = false
				return
			case strings.Contains(label, "senior career") || strings.Contains(label, "club career") || label == "career":
				tier = model.TierSenior
				skipSection = false
				return
			case strings.Contains(label, "national") || strings.Contains(label, "international"):
				skipSection = true
				return
			}
			if skipSection {
				return
			}

			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			yearsCell := cells.Eq(0)
			teamCell := cells.Eq(1)
			teamName := CleanLinkText(teamCell)

			fact, ok := buildFact(yearsCell.Text(), teamName, tier)
			if !ok {
				return
			}
			fact.IsLoan = hasLoanMarker(teamCell.Text(), yearsCell.Text())

			if cells.Length() >= 3 {
				fact.Appearances, fact.Goals = parseStatsCell(cells.Eq(2).Text())
			}

			facts = append(facts, fact)
		})
	})

	return facts
}
