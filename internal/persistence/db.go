// Package persistence provides SQLite-based court state storage.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/engine"
	"github.com/talgya/crownfall/internal/politics"
)

// DB wraps a SQLite connection for court state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS advisors (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		loyalty REAL NOT NULL,
		influence REAL NOT NULL,
		imprisoned INTEGER NOT NULL,
		personality_json TEXT NOT NULL,
		memories_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS relationships (
		source INTEGER NOT NULL,
		target INTEGER NOT NULL,
		trust REAL NOT NULL,
		influence REAL NOT NULL,
		conspiracy_level REAL NOT NULL,
		shared_secrets_json TEXT NOT NULL,
		PRIMARY KEY (source, target)
	);

	CREATE TABLE IF NOT EXISTS conspiracies (
		id TEXT PRIMARY KEY,
		archived INTEGER NOT NULL,
		body_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS factions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		body_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reforms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		proposed_by TEXT NOT NULL,
		status TEXT NOT NULL,
		support REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS court_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	CREATE INDEX IF NOT EXISTS idx_conspiracies_archived ON conspiracies(archived);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveAdvisors writes the full council to the database (full replace).
func (db *DB) SaveAdvisors(council []*advisors.Advisor) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM advisors"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO advisors
		(id, name, role, loyalty, influence, imprisoned, personality_json, memories_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range council {
		personalityJSON, _ := json.Marshal(a.Personality)
		memoriesJSON, _ := json.Marshal(a.Memories)

		imprisoned := 0
		if a.Imprisoned {
			imprisoned = 1
		}

		_, err := stmt.Exec(
			a.ID, a.Name, a.Role, a.Loyalty, a.Influence, imprisoned,
			string(personalityJSON), string(memoriesJSON),
		)
		if err != nil {
			return fmt.Errorf("insert advisor %d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// SaveRelationships writes all edges to the database (full replace).
func (db *DB) SaveRelationships(edges []*politics.Relationship) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM relationships"); err != nil {
		return err
	}

	for _, r := range edges {
		secretsJSON, _ := json.Marshal(r.SharedSecrets)
		_, err := tx.Exec(`INSERT INTO relationships
			(source, target, trust, influence, conspiracy_level, shared_secrets_json)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.Source, r.Target, r.Trust, r.Influence, r.ConspiracyLevel, string(secretsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert edge %d->%d: %w", r.Source, r.Target, err)
		}
	}

	return tx.Commit()
}

// SaveConspiracies writes live and archived networks (full replace).
func (db *DB) SaveConspiracies(live, archive []*politics.ConspiracyNetwork) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conspiracies"); err != nil {
		return err
	}

	insert := func(networks []*politics.ConspiracyNetwork, archived int) error {
		for _, n := range networks {
			bodyJSON, _ := json.Marshal(n)
			if _, err := tx.Exec(
				"INSERT INTO conspiracies (id, archived, body_json) VALUES (?, ?, ?)",
				n.ID, archived, string(bodyJSON),
			); err != nil {
				return fmt.Errorf("insert conspiracy %s: %w", n.ID, err)
			}
		}
		return nil
	}
	if err := insert(live, 0); err != nil {
		return err
	}
	if err := insert(archive, 1); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveFactions writes all factions to the database (full replace).
func (db *DB) SaveFactions(factions []*politics.PoliticalFaction) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM factions"); err != nil {
		return err
	}

	for _, f := range factions {
		bodyJSON, _ := json.Marshal(f)
		_, err := tx.Exec(
			"INSERT INTO factions (id, name, body_json) VALUES (?, ?, ?)",
			f.ID, f.Name, string(bodyJSON),
		)
		if err != nil {
			return fmt.Errorf("insert faction %s: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

// SaveReforms writes all reforms to the database (full replace).
func (db *DB) SaveReforms(reforms []*politics.Reform) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM reforms"); err != nil {
		return err
	}

	for _, r := range reforms {
		_, err := tx.Exec(
			"INSERT INTO reforms (id, name, proposed_by, status, support) VALUES (?, ?, ?, ?, ?)",
			r.ID, r.Name, r.ProposedBy, r.Status, r.Support,
		)
		if err != nil {
			return fmt.Errorf("insert reform %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (turn, description, category) VALUES (?, ?, ?)",
			e.Turn, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in court metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO court_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM court_meta WHERE key = ?", key)
	return value, err
}

// HasCourt reports whether a saved court exists in this database.
func (db *DB) HasCourt() bool {
	_, err := db.GetMeta("turn")
	return err == nil
}

// SaveCourt performs a full save of a court snapshot. Events are saved
// separately by the caller; the snapshot only carries the bounded tail.
func (db *DB) SaveCourt(snap *engine.Snapshot) error {
	slog.Info("saving court state",
		"civilization", snap.Civilization,
		"turn", snap.Turn,
		"advisors", len(snap.Advisors),
		"conspiracies", len(snap.Conspiracies),
	)

	if err := db.SaveAdvisors(snap.Advisors); err != nil {
		return fmt.Errorf("save advisors: %w", err)
	}
	if err := db.SaveRelationships(snap.Relationships); err != nil {
		return fmt.Errorf("save relationships: %w", err)
	}
	if err := db.SaveConspiracies(snap.Conspiracies, snap.Archive); err != nil {
		return fmt.Errorf("save conspiracies: %w", err)
	}
	if err := db.SaveFactions(snap.Factions); err != nil {
		return fmt.Errorf("save factions: %w", err)
	}
	if err := db.SaveReforms(snap.Reforms); err != nil {
		return fmt.Errorf("save reforms: %w", err)
	}

	leaderJSON, _ := json.Marshal(snap.Leader)
	stateJSON, _ := json.Marshal(snap.State)
	meta := map[string]string{
		"civilization": snap.Civilization,
		"turn":         strconv.FormatUint(snap.Turn, 10),
		"temperature":  strconv.FormatFloat(snap.Temperature, 'f', -1, 64),
		"leader":       string(leaderJSON),
		"state":        string(stateJSON),
	}
	for k, v := range meta {
		if err := db.SaveMeta(k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	slog.Info("court state saved")
	return nil
}

// LoadCourt reconstructs a snapshot from the database. Returns the saved
// snapshot minus the event history, which stays queryable via RecentEvents.
func (db *DB) LoadCourt() (*engine.Snapshot, error) {
	snap := &engine.Snapshot{}

	civ, err := db.GetMeta("civilization")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	snap.Civilization = civ

	turnStr, err := db.GetMeta("turn")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	snap.Turn, err = strconv.ParseUint(turnStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse turn %q: %w", turnStr, err)
	}

	tempStr, err := db.GetMeta("temperature")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	snap.Temperature, err = strconv.ParseFloat(tempStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parse temperature %q: %w", tempStr, err)
	}

	leaderJSON, err := db.GetMeta("leader")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	if err := json.Unmarshal([]byte(leaderJSON), &snap.Leader); err != nil {
		return nil, fmt.Errorf("decode leader: %w", err)
	}
	stateJSON, err := db.GetMeta("state")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	if err := json.Unmarshal([]byte(stateJSON), &snap.State); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	if snap.Advisors, err = db.loadAdvisors(); err != nil {
		return nil, fmt.Errorf("load advisors: %w", err)
	}
	if snap.Relationships, err = db.loadRelationships(); err != nil {
		return nil, fmt.Errorf("load relationships: %w", err)
	}
	if snap.Conspiracies, snap.Archive, err = db.loadConspiracies(); err != nil {
		return nil, fmt.Errorf("load conspiracies: %w", err)
	}
	if snap.Factions, err = db.loadFactions(); err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	if snap.Reforms, err = db.loadReforms(); err != nil {
		return nil, fmt.Errorf("load reforms: %w", err)
	}

	slog.Info("court state loaded",
		"civilization", snap.Civilization,
		"turn", snap.Turn,
		"advisors", len(snap.Advisors),
	)
	return snap, nil
}

type advisorRow struct {
	ID              advisors.AdvisorID `db:"id"`
	Name            string             `db:"name"`
	Role            advisors.Role      `db:"role"`
	Loyalty         float64            `db:"loyalty"`
	Influence       float64            `db:"influence"`
	Imprisoned      int                `db:"imprisoned"`
	PersonalityJSON string             `db:"personality_json"`
	MemoriesJSON    string             `db:"memories_json"`
}

func (db *DB) loadAdvisors() ([]*advisors.Advisor, error) {
	var rows []advisorRow
	if err := db.conn.Select(&rows, "SELECT * FROM advisors ORDER BY id"); err != nil {
		return nil, err
	}

	out := make([]*advisors.Advisor, 0, len(rows))
	for _, row := range rows {
		a := &advisors.Advisor{
			ID:         row.ID,
			Name:       row.Name,
			Role:       row.Role,
			Loyalty:    row.Loyalty,
			Influence:  row.Influence,
			Imprisoned: row.Imprisoned != 0,
		}
		if err := json.Unmarshal([]byte(row.PersonalityJSON), &a.Personality); err != nil {
			return nil, fmt.Errorf("decode personality for advisor %d: %w", row.ID, err)
		}
		if err := json.Unmarshal([]byte(row.MemoriesJSON), &a.Memories); err != nil {
			return nil, fmt.Errorf("decode memories for advisor %d: %w", row.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

type relationshipRow struct {
	Source            advisors.AdvisorID `db:"source"`
	Target            advisors.AdvisorID `db:"target"`
	Trust             float64            `db:"trust"`
	Influence         float64            `db:"influence"`
	ConspiracyLevel   float64            `db:"conspiracy_level"`
	SharedSecretsJSON string             `db:"shared_secrets_json"`
}

func (db *DB) loadRelationships() ([]*politics.Relationship, error) {
	var rows []relationshipRow
	if err := db.conn.Select(&rows, "SELECT * FROM relationships ORDER BY source, target"); err != nil {
		return nil, err
	}

	out := make([]*politics.Relationship, 0, len(rows))
	for _, row := range rows {
		r := &politics.Relationship{
			Source:          row.Source,
			Target:          row.Target,
			Trust:           row.Trust,
			Influence:       row.Influence,
			ConspiracyLevel: row.ConspiracyLevel,
		}
		if err := json.Unmarshal([]byte(row.SharedSecretsJSON), &r.SharedSecrets); err != nil {
			return nil, fmt.Errorf("decode secrets for edge %d->%d: %w", row.Source, row.Target, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (db *DB) loadConspiracies() (live, archive []*politics.ConspiracyNetwork, err error) {
	var rows []struct {
		Archived int    `db:"archived"`
		BodyJSON string `db:"body_json"`
	}
	if err := db.conn.Select(&rows, "SELECT archived, body_json FROM conspiracies ORDER BY id"); err != nil {
		return nil, nil, err
	}

	for _, row := range rows {
		var n politics.ConspiracyNetwork
		if err := json.Unmarshal([]byte(row.BodyJSON), &n); err != nil {
			return nil, nil, fmt.Errorf("decode conspiracy: %w", err)
		}
		if row.Archived != 0 {
			archive = append(archive, &n)
		} else {
			live = append(live, &n)
		}
	}
	return live, archive, nil
}

func (db *DB) loadFactions() ([]*politics.PoliticalFaction, error) {
	var bodies []string
	if err := db.conn.Select(&bodies, "SELECT body_json FROM factions ORDER BY id"); err != nil {
		return nil, err
	}

	out := make([]*politics.PoliticalFaction, 0, len(bodies))
	for _, body := range bodies {
		var f politics.PoliticalFaction
		if err := json.Unmarshal([]byte(body), &f); err != nil {
			return nil, fmt.Errorf("decode faction: %w", err)
		}
		out = append(out, &f)
	}
	return out, nil
}

type reformRow struct {
	ID         string                `db:"id"`
	Name       string                `db:"name"`
	ProposedBy string                `db:"proposed_by"`
	Status     politics.ReformStatus `db:"status"`
	Support    float64               `db:"support"`
}

func (db *DB) loadReforms() ([]*politics.Reform, error) {
	var rows []reformRow
	if err := db.conn.Select(&rows, "SELECT * FROM reforms ORDER BY id"); err != nil {
		return nil, err
	}

	out := make([]*politics.Reform, 0, len(rows))
	for _, row := range rows {
		out = append(out, &politics.Reform{
			ID:         row.ID,
			Name:       row.Name,
			ProposedBy: row.ProposedBy,
			Status:     row.Status,
			Support:    row.Support,
		})
	}
	return out, nil
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT turn, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
