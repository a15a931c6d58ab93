package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pvolkov/clubfacts/internal/dates"
	"github.com/pvolkov/clubfacts/internal/model"
)

var fourDigitRe = regexp.MustCompile(`\b\d{4}\b`)

// TransferboxStrategy extracts facts from transfer-history tables. Such
// tables have no fixed column order, so cells are classified
// heuristically: a cell with a four-digit number is the date, a cell
// mentioning "free" or carrying a currency glyph is the fee, and the
// first and second linked cells are the outgoing and incoming club. A
// row becomes a fact only when both a destination club and a date were
// found; appearances and goals are never available in this layout.
type TransferboxStrategy struct{}

// NewTransferboxStrategy creates a new transferbox strategy.
func NewTransferboxStrategy() *TransferboxStrategy {
	return &TransferboxStrategy{}
}

// Name returns the strategy name.
func (s *TransferboxStrategy) Name() string {
	return "transferbox"
}

// CanParse checks whether any table mentions transfers or fees.
func (s *TransferboxStrategy) CanParse(doc *goquery.Document) bool {
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		text := strings.ToLower(table.Text())
		if strings.Contains(text, "transfer") || strings.Contains(text, "fee") {
			found = true
			return false
		}
		return true
	})
	return found
}

// Parse walks the rows of every transfer-like table.
func (s *TransferboxStrategy) Parse(doc *goquery.Document) []model.CareerFact {
	var facts []model.CareerFact

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		text := strings.ToLower(table.Text())
		if !strings.Contains(text, "transfer") && !strings.Contains(text, "fee") {
			return
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}
			if fact, ok := s.parseRow(cells); ok {
				facts = append(facts, fact)
			}
		})
	})

	return facts
}

func (s *TransferboxStrategy) parseRow(cells *goquery.Selection) (model.CareerFact, bool) {
	var dateText, feeText, destName string
	linkedCells := 0

	cells.Each(func(_ int, cell *goquery.Selection) {
		text := cell.Text()
		lower := strings.ToLower(text)

		if dateText == "" && fourDigitRe.MatchString(text) {
			dateText = text
		}
		if feeText == "" && (strings.Contains(lower, "free") || strings.Contains(lower, "loan") || hasCurrencyGlyph(text)) {
			feeText = text
		}
		if cell.Find("a").Length() > 0 {
			linkedCells++
			// first linked cell is the outgoing club, second the destination
			if linkedCells == 2 {
				destName = CleanLinkText(cell)
			}
		}
	})

	if destName == "" || isSummaryRow(destName) {
		return model.CareerFact{}, false
	}

	date, ok := dates.ParseDate(CleanText(dateText))
	if !ok {
		return model.CareerFact{}, false
	}

	fact := model.CareerFact{
		TeamName:   destName,
		StartYear:  date.Year,
		StartMonth: date.Month,
		IsLoan:     hasLoanMarker(destName, dateText),
		Tier:       model.TierSenior,
	}

	if feeText != "" {
		fee := ParseTransferFee(CleanText(feeText))
		fact.Fee = &fee
		if fee.Kind == model.FeeLoan {
			fact.IsLoan = true
		}
	}

	return fact, true
}

func hasCurrencyGlyph(text string) bool {
	return strings.ContainsAny(text, "£€$¥")
}
