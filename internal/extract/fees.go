package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pvolkov/clubfacts/internal/model"
)

var feeAmountRe = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(million|thousand|m|k)?\b`)

// ParseTransferFee decodes a free-text fee expression into a structured
// value. The raw text is always preserved; an expression that cannot be
// decoded yields kind "unknown" rather than an error.
func ParseTransferFee(text string) model.TransferFee {
	fee := model.TransferFee{
		Raw:  strings.TrimSpace(text),
		Kind: model.FeeUnknown,
	}

	lower := strings.ToLower(fee.Raw)
	switch {
	case strings.Contains(lower, "loan"):
		fee.Kind = model.FeeLoan
		return fee
	case strings.Contains(lower, "free"):
		fee.Kind = model.FeeFree
		return fee
	case strings.Contains(lower, "undisclosed"):
		fee.Kind = model.FeeUndisclosed
		return fee
	}

	for _, glyph := range []string{"£", "€", "$", "¥"} {
		if strings.Contains(fee.Raw, glyph) {
			fee.Currency = glyph
			break
		}
	}

	if m := feeAmountRe.FindStringSubmatch(fee.Raw); m != nil {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			switch strings.ToLower(m[2]) {
			case "million", "m":
				amount *= 1_000_000
			case "thousand", "k":
				amount *= 1_000
			}
			fee.Amount = &amount
			fee.Kind = model.FeePaid
		}
	}

	return fee
}
