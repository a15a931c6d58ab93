// Package extract turns parsed encyclopedia articles into career facts.
//
// Four strategies each recognize one common document layout. The
// Coordinator tries them in a fixed precedence order and returns the
// first non-empty result; an article no strategy can decode yields an
// empty result, which is a normal outcome rather than an error.
package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/pvolkov/clubfacts/internal/model"
)

// Strategy is one self-contained applicability-plus-extraction rule for
// a specific article layout.
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// CanParse checks if this strategy recognizes the document layout
	CanParse(doc *goquery.Document) bool

	// Parse extracts career facts from the document
	Parse(doc *goquery.Document) []model.CareerFact
}

// Coordinator holds the strategies in precedence order.
type Coordinator struct {
	strategies []Strategy
}

// NewCoordinator creates a coordinator with the built-in strategies:
// infobox, wikitable, transferbox, then the text-paragraph fallback.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		strategies: []Strategy{
			NewInfoboxStrategy(),
			NewWikitableStrategy(),
			NewTransferboxStrategy(),
			NewTextStrategy(),
		},
	}
}

// Parse tries each strategy in order. The first one that both claims the
// document and yields at least one fact wins; a strategy that claims the
// document but extracts nothing does not stop the chain.
func (c *Coordinator) Parse(doc *goquery.Document) []model.CareerFact {
	for _, s := range c.strategies {
		if !s.CanParse(doc) {
			continue
		}
		if facts := s.Parse(doc); len(facts) > 0 {
			return facts
		}
	}
	return nil
}

// Strategies returns the configured strategies in precedence order.
func (c *Coordinator) Strategies() []Strategy {
	return c.strategies
}
