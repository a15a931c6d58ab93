// Package dates parses the heterogeneous natural-language date expressions
// found in career tables ("1 July 2019", "Summer 2019", "2019–2022") into
// partial-precision dates, and normalizes them to ISO calendar dates.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pvolkov/clubfacts/internal/model"
)

// Years outside this window are treated as non-matches, not errors.
const (
	MinYear = 1900
	MaxYear = 2100
)

var monthsByName = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// Season names map to a representative month.
var seasonsByName = map[string]int{
	"winter": 1,
	"spring": 4,
	"summer": 7,
	"autumn": 10,
	"fall":   10,
}

var (
	dayMonthYearRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([a-z]+)\s+(\d{4})\b`)
	monthDayYearRe = regexp.MustCompile(`(?i)\b([a-z]+)\s+(\d{1,2}),?\s+(\d{4})\b`)
	wordYearRe     = regexp.MustCompile(`(?i)\b([a-z]+)\s+(\d{4})\b`)
	bareYearRe     = regexp.MustCompile(`\b(\d{4})\b`)
)

// Words that mark an open-ended range ("2019–present").
var ongoingWords = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"today":   true,
	"date":    true, // "to date"
	"ongoing": true,
}

// ParseDate parses a single date expression. Attempts, in fixed order:
// a full day+month+year pattern (either word order), "Month Year",
// "Season Year", then a bare four-digit year. A month name always wins
// over a season interpretation because the month pattern is tried first;
// that ordering is load-bearing for output stability.
func ParseDate(text string) (model.ParsedDate, bool) {
	if m := dayMonthYearRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		if month, ok := monthsByName[strings.ToLower(m[2])]; ok && validDay(day) {
			if year, ok := parseYear(m[3]); ok {
				return model.ParsedDate{Year: year, Month: month, Day: day}, true
			}
		}
	}

	if m := monthDayYearRe.FindStringSubmatch(text); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
			day, _ := strconv.Atoi(m[2])
			if validDay(day) {
				if year, ok := parseYear(m[3]); ok {
					return model.ParsedDate{Year: year, Month: month, Day: day}, true
				}
			}
		}
	}

	if m := wordYearRe.FindStringSubmatch(text); m != nil {
		word := strings.ToLower(m[1])
		if month, ok := monthsByName[word]; ok {
			if year, ok := parseYear(m[2]); ok {
				return model.ParsedDate{Year: year, Month: month}, true
			}
		}
		if month, ok := seasonsByName[word]; ok {
			if year, ok := parseYear(m[2]); ok {
				return model.ParsedDate{Year: year, Month: month}, true
			}
		}
	}

	if m := bareYearRe.FindStringSubmatch(text); m != nil {
		if year, ok := parseYear(m[1]); ok {
			return model.ParsedDate{Year: year}, true
		}
	}

	return model.ParsedDate{}, false
}

// ParseDateRange parses a date range split on any of the three common
// dash glyphs. An empty or "present"-like right side yields an ongoing
// range. A start that fails to parse fails the whole range; an end that
// fails to parse degrades to ongoing instead, because source documents
// are noisier on end dates than start dates. A single dash-free
// expression parses as an ongoing range starting at that date.
func ParseDateRange(text string) (model.DateRange, bool) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "–", "-") // en dash
	s = strings.ReplaceAll(s, "—", "-") // em dash

	parts := strings.SplitN(s, "-", 2)
	start, ok := ParseDate(parts[0])
	if !ok {
		return model.DateRange{}, false
	}

	rng := model.DateRange{Start: start}
	if len(parts) < 2 {
		return rng, true
	}

	endText := strings.TrimSpace(parts[1])
	if endText == "" || isOngoing(endText) {
		return rng, true
	}

	if end, ok := ParseDate(endText); ok {
		rng.End = &end
	}
	return rng, true
}

// ToISODate converts a partial date into a full "YYYY-MM-DD" string using
// the defaulting rules for validity intervals. A month-only end date uses
// day 28, valid in every month; the true month length is deliberately not
// computed because downstream consumers depend on the fixed value. A
// year-only date defaults to the mid-year season boundary: July 1 for a
// start, June 30 for an end.
func ToISODate(d model.ParsedDate, isEnd bool) string {
	switch {
	case d.Month != 0 && d.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.Month != 0:
		if isEnd {
			return fmt.Sprintf("%04d-%02d-28", d.Year, d.Month)
		}
		return fmt.Sprintf("%04d-%02d-01", d.Year, d.Month)
	default:
		if isEnd {
			return fmt.Sprintf("%04d-06-30", d.Year)
		}
		return fmt.Sprintf("%04d-07-01", d.Year)
	}
}

func parseYear(s string) (int, bool) {
	year, err := strconv.Atoi(s)
	if err != nil || year < MinYear || year > MaxYear {
		return 0, false
	}
	return year, true
}

func validDay(day int) bool {
	return day >= 1 && day <= 31
}

// isOngoing matches whole words only: "2020 update" carries a real end
// year despite containing "date".
func isOngoing(s string) bool {
	for _, field := range strings.Fields(strings.ToLower(s)) {
		if ongoingWords[strings.Trim(field, ".,;:()")] {
			return true
		}
	}
	return false
}
