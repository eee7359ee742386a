// Package persistence provides SQLite-based storage for computed
// routing results. The routing core itself never touches storage;
// this is one caller-side sink for its output.
// See design doc Section 3.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tradewinds/internal/geo"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

// DB wraps a SQLite connection for result persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path, creating
// missing parent directories.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
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
	CREATE TABLE IF NOT EXISTS hubs (
		id INTEGER PRIMARY KEY,
		province INTEGER NOT NULL,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		terminal INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assignments (
		province INTEGER PRIMARY KEY,
		hub_id INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS upstreams (
		hub_id INTEGER PRIMARY KEY,
		upstream_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routes (
		from_hub INTEGER NOT NULL,
		to_hub INTEGER NOT NULL,
		cost REAL NOT NULL,
		path_json TEXT NOT NULL,
		PRIMARY KEY (from_hub, to_hub)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_hub ON assignments(hub_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveHubs writes the hub list (full replace).
func (db *DB) SaveHubs(hubs []trade.Hub) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM hubs"); err != nil {
		return err
	}
	for _, h := range hubs {
		terminal := 0
		if h.Terminal {
			terminal = 1
		}
		_, err := tx.Exec(
			"INSERT INTO hubs (id, province, name, lat, lng, terminal) VALUES (?, ?, ?, ?, ?, ?)",
			h.ID, h.Province, h.Name, h.Pos.Lat, h.Pos.Lng, terminal,
		)
		if err != nil {
			return fmt.Errorf("insert hub %d: %w", h.ID, err)
		}
	}
	return tx.Commit()
}

// SaveAssignments writes the province→hub table (full replace).
func (db *DB) SaveAssignments(assignments map[world.ProvinceID]trade.HubID) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM assignments"); err != nil {
		return err
	}
	stmt, err := tx.Preparex("INSERT INTO assignments (province, hub_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for province, hub := range assignments {
		if _, err := stmt.Exec(province, hub); err != nil {
			return fmt.Errorf("insert assignment %d: %w", province, err)
		}
	}
	return tx.Commit()
}

// SaveUpstreams writes the hierarchical upstream table (full replace).
func (db *DB) SaveUpstreams(upstreams map[trade.HubID][]trade.HubID) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM upstreams"); err != nil {
		return err
	}
	for hub, ups := range upstreams {
		upsJSON, _ := json.Marshal(ups)
		_, err := tx.Exec(
			"INSERT INTO upstreams (hub_id, upstream_json) VALUES (?, ?)",
			hub, string(upsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert upstream %d: %w", hub, err)
		}
	}
	return tx.Commit()
}

// SaveRoutes writes the flat route table (full replace). Paths are
// stored as JSON arrays of province ids.
func (db *DB) SaveRoutes(routes map[trade.HubPair]trade.Route) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM routes"); err != nil {
		return err
	}
	stmt, err := tx.Preparex("INSERT INTO routes (from_hub, to_hub, cost, path_json) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pair, route := range routes {
		pathJSON, _ := json.Marshal(route.Path)
		if _, err := stmt.Exec(pair.From, pair.To, route.Cost, string(pathJSON)); err != nil {
			return fmt.Errorf("insert route %d-%d: %w", pair.From, pair.To, err)
		}
	}
	return tx.Commit()
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}

// SaveResults performs a full save of one computation run, stamped
// with a fresh run id and timestamp.
func (db *DB) SaveResults(
	hubs []trade.Hub,
	assignments map[world.ProvinceID]trade.HubID,
	upstreams map[trade.HubID][]trade.HubID,
	routes map[trade.HubPair]trade.Route,
) (string, error) {
	runID := uuid.NewString()
	slog.Info("saving results",
		"run", runID,
		"hubs", len(hubs),
		"assignments", len(assignments),
		"routes", len(routes))

	if err := db.SaveHubs(hubs); err != nil {
		return "", fmt.Errorf("save hubs: %w", err)
	}
	if err := db.SaveAssignments(assignments); err != nil {
		return "", fmt.Errorf("save assignments: %w", err)
	}
	if err := db.SaveUpstreams(upstreams); err != nil {
		return "", fmt.Errorf("save upstreams: %w", err)
	}
	if err := db.SaveRoutes(routes); err != nil {
		return "", fmt.Errorf("save routes: %w", err)
	}
	if err := db.SaveMeta("run_id", runID); err != nil {
		return "", fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("computed_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("save meta: %w", err)
	}
	return runID, nil
}

// LoadHubs reads back the hub list, ordered by id.
func (db *DB) LoadHubs() ([]trade.Hub, error) {
	rows, err := db.conn.Queryx("SELECT id, province, name, lat, lng, terminal FROM hubs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hubs []trade.Hub
	for rows.Next() {
		var (
			h        trade.Hub
			lat, lng float64
			terminal int
		)
		if err := rows.Scan(&h.ID, &h.Province, &h.Name, &lat, &lng, &terminal); err != nil {
			return nil, err
		}
		h.Pos = geo.LatLng{Lat: lat, Lng: lng}
		h.Terminal = terminal != 0
		hubs = append(hubs, h)
	}
	return hubs, rows.Err()
}

// LoadAssignments reads back the province→hub table.
func (db *DB) LoadAssignments() (map[world.ProvinceID]trade.HubID, error) {
	rows, err := db.conn.Queryx("SELECT province, hub_id FROM assignments")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[world.ProvinceID]trade.HubID)
	for rows.Next() {
		var (
			province world.ProvinceID
			hub      trade.HubID
		)
		if err := rows.Scan(&province, &hub); err != nil {
			return nil, err
		}
		out[province] = hub
	}
	return out, rows.Err()
}

// LoadRoutes reads back the flat route table.
func (db *DB) LoadRoutes() (map[trade.HubPair]trade.Route, error) {
	rows, err := db.conn.Queryx("SELECT from_hub, to_hub, cost, path_json FROM routes")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[trade.HubPair]trade.Route)
	for rows.Next() {
		var (
			r        trade.Route
			pathJSON string
		)
		if err := rows.Scan(&r.From, &r.To, &r.Cost, &pathJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(pathJSON), &r.Path); err != nil {
			return nil, fmt.Errorf("route %d-%d path: %w", r.From, r.To, err)
		}
		out[trade.HubPair{From: r.From, To: r.To}] = r
	}
	return out, rows.Err()
}

// LoadUpstreams reads back the hierarchical upstream table.
func (db *DB) LoadUpstreams() (map[trade.HubID][]trade.HubID, error) {
	rows, err := db.conn.Queryx("SELECT hub_id, upstream_json FROM upstreams")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[trade.HubID][]trade.HubID)
	for rows.Next() {
		var (
			hub     trade.HubID
			upsJSON string
		)
		if err := rows.Scan(&hub, &upsJSON); err != nil {
			return nil, err
		}
		ups := []trade.HubID{}
		if err := json.Unmarshal([]byte(upsJSON), &ups); err != nil {
			return nil, fmt.Errorf("upstream %d: %w", hub, err)
		}
		out[hub] = ups
	}
	return out, rows.Err()
}
