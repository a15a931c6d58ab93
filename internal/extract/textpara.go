package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pvolkov/clubfacts/internal/dates"
	"github.com/pvolkov/clubfacts/internal/model"
)

// maxFallbackParagraphs bounds the prose scanned when no career section
// heading exists.
const maxFallbackParagraphs = 5

var (
	// "joined Arsenal in 2019", "signed for Real Madrid", "moved to Milan in July 2003"
	joinedRe = regexp.MustCompile(`\b(?:[Jj]oined|[Ss]igned for|[Mm]oved to)\s+([A-Z][A-Za-z0-9 .'’-]{1,40}?)(?:\s+in\s+((?:[A-Za-z]+\s+)?\d{4}))?(?:[.,;]|$)`)

	// "Arsenal (2019–2022)", "Milan (2003–present)"
	stintRe = regexp.MustCompile(`([A-Z][A-Za-z0-9 .'’-]{1,40}?)\s*\((\d{4})\s*[–—-]\s*(\d{4}|[Pp]resent)?\)`)
)

// TextStrategy is the universal fallback: it scans the prose of the
// career section (or the first paragraphs) for join and stint phrases.
// Free text both over- and under-extracts, which is why this strategy is
// intentionally last in precedence.
type TextStrategy struct{}

// NewTextStrategy creates a new text-paragraph strategy.
func NewTextStrategy() *TextStrategy {
	return &TextStrategy{}
}

// Name returns the strategy name.
func (s *TextStrategy) Name() string {
	return "text"
}

// CanParse always claims the document; this is the fallback.
func (s *TextStrategy) CanParse(doc *goquery.Document) bool {
	return true
}

// Parse scans the career prose for both patterns.
func (s *TextStrategy) Parse(doc *goquery.Document) []model.CareerFact {
	text := strings.TrimSpace(s.careerText(doc))
	if text == "" {
		return nil
	}

	var facts []model.CareerFact
	seen := make(map[string]bool)

	add := func(fact model.CareerFact) {
		key := strings.ToLower(fact.TeamName) + "|" + strconv.Itoa(fact.StartYear)
		if seen[key] {
			return
		}
		seen[key] = true
		facts = append(facts, fact)
	}

	for _, m := range joinedRe.FindAllStringSubmatch(text, -1) {
		name := CleanText(m[1])
		if name == "" || isSummaryRow(name) {
			continue
		}
		date, ok := dates.ParseDate(m[2])
		if !ok {
			continue
		}
		add(model.CareerFact{
			TeamName:   name,
			StartYear:  date.Year,
			StartMonth: date.Month,
			Tier:       model.TierSenior,
		})
	}

	for _, m := range stintRe.FindAllStringSubmatch(text, -1) {
		name := CleanText(m[1])
		if name == "" || isSummaryRow(name) {
			continue
		}
		start, ok := dates.ParseDate(m[2])
		if !ok {
			continue
		}
		fact := model.CareerFact{
			TeamName:  name,
			StartYear: start.Year,
			Tier:      model.TierSenior,
		}
		if end, ok := dates.ParseDate(m[3]); ok {
			y := end.Year
			fact.EndYear = &y
		}
		add(fact)
	}

	return facts
}

// careerText returns the prose under a "Career" heading, or the first
// few paragraphs when no such heading exists.
func (s *TextStrategy) careerText(doc *goquery.Document) string {
	var b strings.Builder

	heading := doc.Find("h2, h3").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(h.Text()), "career")
	}).First()

	if heading.Length() > 0 {
		heading.NextUntil("h2, h3").Filter("p").Each(func(_ int, p *goquery.Selection) {
			b.WriteString(p.Text())
			b.WriteString(" ")
		})
	}

	if b.Len() == 0 {
		doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
			if i >= maxFallbackParagraphs {
				return false
			}
			b.WriteString(p.Text())
			b.WriteString(" ")
			return true
		})
	}

	return b.String()
}
