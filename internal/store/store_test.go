package store

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedClubsAndRegistry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.SeedClubs(ctx, []string{"Arsenal F.C.", "Chelsea F.C.", ""})
	if err != nil {
		t.Fatalf("SeedClubs: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	// Re-seeding the same names inserts nothing.
	added, err = s.SeedClubs(ctx, []string{"Arsenal F.C.", "Chelsea F.C."})
	if err != nil {
		t.Fatalf("SeedClubs again: %v", err)
	}
	if added != 0 {
		t.Errorf("re-seed added = %d, want 0", added)
	}

	registry, err := s.Clubs(ctx)
	if err != nil {
		t.Fatalf("Clubs: %v", err)
	}
	if len(registry) != 2 {
		t.Fatalf("registry size = %d, want 2", len(registry))
	}
	if registry[0].Name != "Arsenal F.C." || registry[0].ID == "" {
		t.Errorf("registry[0] = %+v", registry[0])
	}
}

func TestEnsureClubIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.EnsureClub(ctx, "Real Madrid CF")
	if err != nil {
		t.Fatalf("EnsureClub: %v", err)
	}
	second, err := s.EnsureClub(ctx, "Real Madrid CF")
	if err != nil {
		t.Fatalf("EnsureClub again: %v", err)
	}
	if first != second {
		t.Errorf("ids differ: %d vs %d", first, second)
	}

	if _, err := s.EnsureClub(ctx, ""); err == nil {
		t.Error("expected error for empty club name")
	}
}

func TestInsertAndListStints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	clubID, err := s.EnsureClub(ctx, "Real Madrid CF")
	if err != nil {
		t.Fatalf("EnsureClub: %v", err)
	}

	apps, goals := 45, 12
	_, err = s.InsertStint(ctx, &Stint{
		Player:       "Some Player",
		ClubID:       clubID,
		RawTeam:      "Real Madrid",
		StartDate:    "2019-07-01",
		EndDate:      "2022-06-30",
		Appearances:  &apps,
		Goals:        &goals,
		TransferType: "permanent",
		Tier:         "senior",
		Confidence:   0.95,
	})
	if err != nil {
		t.Fatalf("InsertStint: %v", err)
	}

	stints, err := s.StintsForPlayer(ctx, "Some Player")
	if err != nil {
		t.Fatalf("StintsForPlayer: %v", err)
	}
	if len(stints) != 1 {
		t.Fatalf("stints = %d, want 1", len(stints))
	}
	st := stints[0]
	if st.ClubName != "Real Madrid CF" || st.RawTeam != "Real Madrid" {
		t.Errorf("names = %q / %q", st.ClubName, st.RawTeam)
	}
	if st.Appearances == nil || *st.Appearances != 45 || st.Goals == nil || *st.Goals != 12 {
		t.Errorf("stats = %v / %v", st.Appearances, st.Goals)
	}
	if st.Confidence != 0.95 {
		t.Errorf("confidence = %v", st.Confidence)
	}
}

func TestNullStatsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	clubID, _ := s.EnsureClub(ctx, "Ajax")
	_, err := s.InsertStint(ctx, &Stint{
		Player:       "Some Player",
		ClubID:       clubID,
		RawTeam:      "Ajax",
		StartDate:    "2010-07-01",
		TransferType: "loan",
		Tier:         "youth",
		Confidence:   0.8,
	})
	if err != nil {
		t.Fatalf("InsertStint: %v", err)
	}

	stints, err := s.StintsForPlayer(ctx, "Some Player")
	if err != nil {
		t.Fatalf("StintsForPlayer: %v", err)
	}
	st := stints[0]
	if st.Appearances != nil || st.Goals != nil {
		t.Errorf("expected nil stats, got %v / %v", st.Appearances, st.Goals)
	}
	if st.EndDate != "" {
		t.Errorf("expected ongoing stint, got end %q", st.EndDate)
	}
	if st.TransferType != "loan" || st.Tier != "youth" {
		t.Errorf("type/tier = %q / %q", st.TransferType, st.Tier)
	}
}

func TestHasStintDedupesOnStartYear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	clubID, _ := s.EnsureClub(ctx, "Chelsea F.C.")
	_, err := s.InsertStint(ctx, &Stint{
		Player:       "Some Player",
		ClubID:       clubID,
		RawTeam:      "Chelsea",
		StartDate:    "2015-01-15",
		TransferType: "permanent",
		Tier:         "senior",
		Confidence:   1,
	})
	if err != nil {
		t.Fatalf("InsertStint: %v", err)
	}

	// Same year with a different exact date still counts as a duplicate.
	ok, err := s.HasStint(ctx, "Some Player", clubID, 2015)
	if err != nil {
		t.Fatalf("HasStint: %v", err)
	}
	if !ok {
		t.Error("expected duplicate for same start year")
	}

	ok, err = s.HasStint(ctx, "Some Player", clubID, 2016)
	if err != nil {
		t.Fatalf("HasStint: %v", err)
	}
	if ok {
		t.Error("different start year should not be a duplicate")
	}

	ok, err = s.HasStint(ctx, "Other Player", clubID, 2015)
	if err != nil {
		t.Fatalf("HasStint: %v", err)
	}
	if ok {
		t.Error("different player should not be a duplicate")
	}
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	clubID, _ := s.EnsureClub(ctx, "Arsenal F.C.")
	s.EnsureClub(ctx, "Chelsea F.C.")
	s.InsertStint(ctx, &Stint{
		Player: "Some Player", ClubID: clubID, RawTeam: "Arsenal",
		StartDate: "2019-07-01", TransferType: "permanent", Tier: "senior", Confidence: 1,
	})

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Clubs != 2 || stats.Stints != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
