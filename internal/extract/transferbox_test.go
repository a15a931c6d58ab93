package extract

import (
	"testing"

	"github.com/pvolkov/clubfacts/internal/model"
)

func TestTransferbox_BasicRow(t *testing.T) {
	doc := mustDoc(t, `
	<h2>Transfer history</h2>
	<table>
		<tr><th>From</th><th>To</th><th>Date</th><th>Transfer fee</th></tr>
		<tr>
			<td><a>Benfica</a></td>
			<td><a>Atlético Madrid</a></td>
			<td>3 July 2019</td>
			<td>€126 million</td>
		</tr>
	</table>`)

	s := NewTransferboxStrategy()
	if !s.CanParse(doc) {
		t.Fatal("Expected transferbox strategy to claim the document")
	}

	facts := s.Parse(doc)
	if len(facts) != 1 {
		t.Fatalf("Expected 1 fact, got %d", len(facts))
	}

	f := facts[0]
	if f.TeamName != "Atlético Madrid" {
		t.Errorf("TeamName = %q, want destination club", f.TeamName)
	}
	if f.StartYear != 2019 || f.StartMonth != 7 {
		t.Errorf("Start = %d-%d", f.StartYear, f.StartMonth)
	}
	if f.Appearances != nil || f.Goals != nil {
		t.Error("Transfer rows must never carry appearances or goals")
	}
	if f.Fee == nil {
		t.Fatal("Expected a parsed fee")
	}
	if f.Fee.Kind != model.FeePaid || f.Fee.Currency != "€" {
		t.Errorf("Fee = %+v", f.Fee)
	}
	if f.Fee.Amount == nil || *f.Fee.Amount != 126_000_000 {
		t.Errorf("Fee amount = %v", f.Fee.Amount)
	}
}

func TestTransferbox_RequiresDestinationAndDate(t *testing.T) {
	// no second linked cell: destination unknown
	doc := mustDoc(t, `
	<table>
		<tr><td>fee</td><td>x</td><td>y</td></tr>
		<tr><td><a>Benfica</a></td><td>2019</td><td>€5 million</td></tr>
	</table>`)

	if facts := NewTransferboxStrategy().Parse(doc); len(facts) != 0 {
		t.Errorf("Expected 0 facts without a destination club, got %d", len(facts))
	}

	// destination but no date
	doc = mustDoc(t, `
	<table>
		<tr><td>fee</td><td>x</td><td>y</td></tr>
		<tr><td><a>Benfica</a></td><td><a>Porto</a></td><td>Free</td></tr>
	</table>`)

	if facts := NewTransferboxStrategy().Parse(doc); len(facts) != 0 {
		t.Errorf("Expected 0 facts without a date, got %d", len(facts))
	}
}

func TestTransferbox_LoanFeeSetsLoanFlag(t *testing.T) {
	doc := mustDoc(t, `
	<table>
		<tr><th>Transfer</th><th></th><th></th></tr>
		<tr>
			<td><a>Chelsea</a></td>
			<td><a>Vitesse</a></td>
			<td>2011</td>
			<td>Loan</td>
		</tr>
	</table>`)

	facts := NewTransferboxStrategy().Parse(doc)
	if len(facts) != 1 {
		t.Fatalf("Expected 1 fact, got %d", len(facts))
	}
	if !facts[0].IsLoan {
		t.Error("Expected loan fee to set IsLoan")
	}
	if facts[0].Fee == nil || facts[0].Fee.Kind != model.FeeLoan {
		t.Errorf("Fee = %+v", facts[0].Fee)
	}
}

func TestTransferbox_NotApplicable(t *testing.T) {
	doc := mustDoc(t, `<table><tr><td>2019</td><td>Cup final</td><td>Won</td></tr></table>`)
	if NewTransferboxStrategy().CanParse(doc) {
		t.Error("Expected table without transfer/fee mention to be ignored")
	}
}
