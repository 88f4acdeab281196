// Package sqlite exports linked STASH models into a SQLite catalog so that
// requests and profiles can be queried across files and over time. Each
// export is a snapshot identified by a UUID v7.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Catalog is an open SQLite catalog database.
type Catalog struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Snapshot describes one exported model.
type Snapshot struct {
	ID        string
	Module    string
	Version   string
	Source    string
	CreatedAt time.Time
}

// Open opens or creates the catalog at path and applies the schema.
// A nil logger discards log output.
func Open(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	return &Catalog{db: db, path: path, logger: logger}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// newSnapshotID returns a UUID v7, falling back to v4.
func newSnapshotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Add inserts a model as a new snapshot in one transaction and returns the
// snapshot ID. source records where the model was read from.
func (c *Catalog) Add(m *roseconf.Model, source string) (string, error) {
	id := newSnapshotID()

	tx, err := c.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO snapshots (snapshot_id, module, version, source, created_at) VALUES (?, ?, ?, ?, ?)",
		id, m.Module, m.Version, source, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}

	if err := insertSections(tx, id, m); err != nil {
		return "", err
	}
	if err := insertLinks(tx, id, m); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}

	c.logger.Debug("catalog snapshot added",
		"snapshot", id,
		"path", c.path,
		"sections", len(m.Store().Sections()))
	return id, nil
}

func insertSections(tx *sql.Tx, id string, m *roseconf.Model) error {
	secStmt, err := tx.Prepare(
		"INSERT INTO sections (snapshot_id, section, kind, name, isec, item, ordinal) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing section insert: %w", err)
	}
	defer secStmt.Close()

	fieldStmt, err := tx.Prepare(
		"INSERT INTO fields (snapshot_id, section, key, state, value, ordinal) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing field insert: %w", err)
	}
	defer fieldStmt.Close()

	for ordinal, section := range m.Store().Sections() {
		rec, ok := m.Record(section)
		if !ok {
			return fmt.Errorf("section [%s] has no record", section)
		}

		var name, isec, item any
		if ident, ok := rec.Identity(); ok {
			name = ident
		}
		if rec.Kind == types.KindRequest {
			isec, item = intOrNil(rec, "isec"), intOrNil(rec, "item")
			if rec.DisplayName != "" {
				name = rec.DisplayName
			}
		}

		if _, err := secStmt.Exec(id, section, rec.Kind.String(), name, isec, item, ordinal); err != nil {
			return fmt.Errorf("inserting section [%s]: %w", section, err)
		}

		for i, key := range rec.Keys() {
			f, _ := rec.Get(key)
			if f.State == types.FieldUnset {
				continue
			}
			if _, err := fieldStmt.Exec(id, section, key, f.State.String(), f.Value, i); err != nil {
				return fmt.Errorf("inserting field %s of [%s]: %w", key, section, err)
			}
		}
	}
	return nil
}

func insertLinks(tx *sql.Tx, id string, m *roseconf.Model) error {
	stmt, err := tx.Prepare("INSERT INTO links (snapshot_id, request, kind, target) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing link insert: %w", err)
	}
	defer stmt.Close()

	for _, req := range m.Requests() {
		for _, kind := range types.ReferencedKinds {
			target, ok := m.Target(req, kind)
			if !ok {
				continue
			}
			if _, err := stmt.Exec(id, req.ID, kind.String(), target.ID); err != nil {
				return fmt.Errorf("inserting %s link of [%s]: %w", kind, req.ID, err)
			}
		}
	}
	return nil
}

func intOrNil(r *types.Record, key string) any {
	f, _ := r.Get(key)
	v, ok := f.Active()
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return n
}

// Snapshots lists the catalog's snapshots, oldest first. UUID v7 IDs sort
// by creation time.
func (c *Catalog) Snapshots() ([]Snapshot, error) {
	rows, err := c.db.Query(
		"SELECT snapshot_id, module, version, source, created_at FROM snapshots ORDER BY snapshot_id")
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var created string
		if err := rows.Scan(&s.ID, &s.Module, &s.Version, &s.Source, &created); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		s.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Dependents returns the request sections in a snapshot that link to the
// named domain, time or use record, in file order. Returns ErrNotFound if
// the snapshot has no such record.
func (c *Catalog) Dependents(snapshotID string, kind types.Kind, name string) ([]string, error) {
	var target string
	err := c.db.QueryRow(
		"SELECT section FROM sections WHERE snapshot_id = ? AND kind = ? AND name = ?",
		snapshotID, kind.String(), name,
	).Scan(&target)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s %q in snapshot %s", types.ErrNotFound, kind, name, snapshotID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s %q: %w", kind, name, err)
	}

	rows, err := c.db.Query(`SELECT l.request FROM links l
JOIN sections s ON s.snapshot_id = l.snapshot_id AND s.section = l.request
WHERE l.snapshot_id = ? AND l.target = ?
ORDER BY s.ordinal`, snapshotID, target)
	if err != nil {
		return nil, fmt.Errorf("querying dependents: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var req string
		if err := rows.Scan(&req); err != nil {
			return nil, fmt.Errorf("scanning dependent: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// CountSections returns the number of sections of a kind in a snapshot.
func (c *Catalog) CountSections(snapshotID string, kind types.Kind) (int, error) {
	var n int
	err := c.db.QueryRow(
		"SELECT COUNT(*) FROM sections WHERE snapshot_id = ? AND kind = ?",
		snapshotID, kind.String(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s sections: %w", kind, err)
	}
	return n, nil
}

// Export opens the catalog at path, adds m as a snapshot and closes it.
func Export(path string, m *roseconf.Model, source string, logger *slog.Logger) (string, error) {
	c, err := Open(path, logger)
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.Add(m, source)
}
