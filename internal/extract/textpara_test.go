package extract

import "testing"

func TestText_AlwaysApplicable(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>Nothing relevant at all.</p></body></html>`)
	if !NewTextStrategy().CanParse(doc) {
		t.Error("Text strategy must always claim the document")
	}
}

func TestText_JoinedPattern(t *testing.T) {
	doc := mustDoc(t, `
	<h2>Career</h2>
	<p>After his breakthrough he joined Arsenal in 2019, making an
	immediate impact. Two years later he signed for Real Madrid in July 2021.</p>`)

	facts := NewTextStrategy().Parse(doc)
	if len(facts) != 2 {
		t.Fatalf("Expected 2 facts, got %d: %+v", len(facts), facts)
	}

	if facts[0].TeamName != "Arsenal" || facts[0].StartYear != 2019 {
		t.Errorf("First fact = %+v", facts[0])
	}
	if facts[1].TeamName != "Real Madrid" || facts[1].StartYear != 2021 || facts[1].StartMonth != 7 {
		t.Errorf("Second fact = %+v", facts[1])
	}
}

// A join phrase that ends the career prose without trailing punctuation
// still counts.
func TestText_JoinedPatternAtEndOfText(t *testing.T) {
	doc := mustDoc(t, `
	<h2>Career</h2>
	<p>In his final move he joined Arsenal in 2019</p>`)

	facts := NewTextStrategy().Parse(doc)
	if len(facts) != 1 {
		t.Fatalf("Expected 1 fact, got %d: %+v", len(facts), facts)
	}
	if facts[0].TeamName != "Arsenal" || facts[0].StartYear != 2019 {
		t.Errorf("Fact = %+v", facts[0])
	}
}

func TestText_StintPattern(t *testing.T) {
	doc := mustDoc(t, `
	<h2>Playing career</h2>
	<p>His clubs included Benfica (2015–2019) and Juventus (2019–present).</p>`)

	facts := NewTextStrategy().Parse(doc)
	if len(facts) != 2 {
		t.Fatalf("Expected 2 facts, got %d: %+v", len(facts), facts)
	}

	if facts[0].TeamName != "Benfica" || facts[0].StartYear != 2015 {
		t.Errorf("First fact = %+v", facts[0])
	}
	if facts[0].EndYear == nil || *facts[0].EndYear != 2019 {
		t.Errorf("First fact end = %v", facts[0].EndYear)
	}
	if facts[1].EndYear != nil {
		t.Errorf("Second fact end = %v, want nil for present", facts[1].EndYear)
	}
}

func TestText_FallbackToLeadParagraphs(t *testing.T) {
	doc := mustDoc(t, `
	<p>He is a footballer who joined Porto in 2018.</p>
	<p>Unrelated trailing text.</p>`)

	facts := NewTextStrategy().Parse(doc)
	if len(facts) != 1 {
		t.Fatalf("Expected 1 fact from lead paragraphs, got %d", len(facts))
	}
	if facts[0].TeamName != "Porto" || facts[0].StartYear != 2018 {
		t.Errorf("Fact = %+v", facts[0])
	}
}

func TestText_ImplausibleYearDiscarded(t *testing.T) {
	doc := mustDoc(t, `<h2>Career</h2><p>He joined Arsenal in 1850.</p>`)
	if facts := NewTextStrategy().Parse(doc); len(facts) != 0 {
		t.Errorf("Expected 0 facts for out-of-range year, got %d", len(facts))
	}
}

func TestText_DuplicateMentionsCollapsed(t *testing.T) {
	doc := mustDoc(t, `
	<h2>Career</h2>
	<p>He joined Arsenal in 2019. Later reports confirmed he joined Arsenal in 2019.</p>`)

	if facts := NewTextStrategy().Parse(doc); len(facts) != 1 {
		t.Errorf("Expected duplicate mention collapsed to 1 fact, got %d", len(facts))
	}
}
