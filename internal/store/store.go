// Package store persists resolved career stints in a single SQLite
// database file. Clubs form the canonical registry that resolution runs
// against; stints reference clubs by foreign key and carry the raw
// source name alongside for audit.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/pvolkov/clubfacts/internal/model"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.clubfacts/clubfacts.db"

// Stint is one persisted career entry. StartDate and EndDate are ISO
// dates; an empty EndDate means the spell is ongoing.
type Stint struct {
	ID           int64
	Player       string
	ClubID       int64
	ClubName     string
	RawTeam      string
	StartDate    string
	EndDate      string
	Appearances  *int
	Goals        *int
	TransferType string // "loan" or "permanent"
	Tier         string
	Confidence   float64
}

// Stats holds counts for the status output.
type Stats struct {
	Clubs  int64
	Stints int64
}

// Store is the SQLite-backed persistence layer.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates or opens the database at path and runs migrations.
// Pass ":memory:" for in-memory databases (testing).
func Open(path string) (*Store, error) {
	if path == "" {
		path = ExpandPath(DefaultDBPath)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, dbPath: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS clubs (
			id   INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS career_stints (
			id            INTEGER PRIMARY KEY,
			player        TEXT NOT NULL,
			club_id       INTEGER NOT NULL REFERENCES clubs(id),
			raw_team      TEXT NOT NULL,
			start_date    TEXT NOT NULL,
			end_date      TEXT NOT NULL DEFAULT '',
			appearances   INTEGER,
			goals         INTEGER,
			transfer_type TEXT NOT NULL DEFAULT 'permanent',
			tier          TEXT NOT NULL DEFAULT 'senior',
			confidence    REAL NOT NULL,
			created_at    TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_stints_dedupe
			ON career_stints (player, club_id, substr(start_date, 1, 4))`,
		`CREATE INDEX IF NOT EXISTS idx_stints_player ON career_stints (player)`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SeedClubs inserts any club names not already present in the registry.
// Returns the number of newly inserted clubs.
func (s *Store) SeedClubs(ctx context.Context, names []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO clubs (name) VALUES (?)`, name)
		if err != nil {
			return 0, fmt.Errorf("seeding club %q: %w", name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}
	return added, nil
}

// EnsureClub returns the id of the named club, inserting it first when
// it does not exist yet.
func (s *Store) EnsureClub(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("club name cannot be empty")
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO clubs (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("inserting club %q: %w", name, err)
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM clubs WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("looking up club %q: %w", name, err)
	}
	return id, nil
}

// Clubs returns the full canonical registry, ordered by name. The ids
// are rendered as strings so the registry can be handed straight to the
// resolver.
func (s *Store) Clubs(ctx context.Context) ([]model.CanonicalEntity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM clubs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing clubs: %w", err)
	}
	defer rows.Close()

	var registry []model.CanonicalEntity
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning club: %w", err)
		}
		registry = append(registry, model.CanonicalEntity{
			ID:   strconv.FormatInt(id, 10),
			Name: name,
		})
	}
	return registry, rows.Err()
}

// InsertStint persists one resolved stint.
func (s *Store) InsertStint(ctx context.Context, st *Stint) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO career_stints
			(player, club_id, raw_team, start_date, end_date, appearances, goals, transfer_type, tier, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.Player, st.ClubID, st.RawTeam, st.StartDate, st.EndDate,
		st.Appearances, st.Goals, st.TransferType, st.Tier, st.Confidence)
	if err != nil {
		return 0, fmt.Errorf("inserting stint: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	st.ID = id
	return id, nil
}

// HasStint reports whether a stint for this player, club and start year
// already exists. Equality is on the year only; sources disagree on
// exact dates far too often to dedupe on the full value.
func (s *Store) HasStint(ctx context.Context, player string, clubID int64, startYear int) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM career_stints
		 WHERE player = ? AND club_id = ? AND substr(start_date, 1, 4) = ?`,
		player, clubID, strconv.Itoa(startYear)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking stint: %w", err)
	}
	return n > 0, nil
}

// StintsForPlayer returns the player's stints ordered by start date.
func (s *Store) StintsForPlayer(ctx context.Context, player string) ([]*Stint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.player, s.club_id, c.name, s.raw_team, s.start_date, s.end_date,
		        s.appearances, s.goals, s.transfer_type, s.tier, s.confidence
		 FROM career_stints s
		 JOIN clubs c ON c.id = s.club_id
		 WHERE s.player = ?
		 ORDER BY s.start_date`, player)
	if err != nil {
		return nil, fmt.Errorf("listing stints for %q: %w", player, err)
	}
	defer rows.Close()

	var stints []*Stint
	for rows.Next() {
		st := &Stint{}
		var apps, goals sql.NullInt64
		if err := rows.Scan(&st.ID, &st.Player, &st.ClubID, &st.ClubName, &st.RawTeam,
			&st.StartDate, &st.EndDate, &apps, &goals,
			&st.TransferType, &st.Tier, &st.Confidence); err != nil {
			return nil, fmt.Errorf("scanning stint: %w", err)
		}
		if apps.Valid {
			v := int(apps.Int64)
			st.Appearances = &v
		}
		if goals.Valid {
			v := int(goals.Int64)
			st.Goals = &v
		}
		stints = append(stints, st)
	}
	return stints, rows.Err()
}

// GetStats returns row counts for the status output.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM clubs`).Scan(&st.Clubs); err != nil {
		return nil, fmt.Errorf("counting clubs: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM career_stints`).Scan(&st.Stints); err != nil {
		return nil, fmt.Errorf("counting stints: %w", err)
	}
	return st, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
