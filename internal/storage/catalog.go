package storage

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Catalog is the SQLite index of saved runs. The per-run artifacts stay on
// disk as plain files; the catalog only serves listing and lookup.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	stepper    TEXT NOT NULL,
	dt         REAL NOT NULL,
	duration   REAL NOT NULL,
	x0         REAL NOT NULL,
	v0         REAL NOT NULL,
	coupling   REAL NOT NULL,
	radius     REAL NOT NULL
);
`

func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error { return c.db.Close() }

func (c *Catalog) Insert(meta RunMetadata) error {
	_, err := c.db.Exec(
		`INSERT INTO runs (id, created_at, stepper, dt, duration, x0, v0, coupling, radius)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID,
		meta.Timestamp.UTC().Format(time.RFC3339Nano),
		meta.Stepper,
		meta.Dt,
		meta.Duration,
		meta.X0,
		meta.V0,
		meta.Coupling,
		meta.Radius,
	)
	return err
}

func (c *Catalog) List() ([]RunMetadata, error) {
	rows, err := c.db.Query(
		`SELECT id, created_at, stepper, dt, duration, x0, v0, coupling, radius
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var created string
		if err := rows.Scan(&meta.ID, &created, &meta.Stepper, &meta.Dt, &meta.Duration,
			&meta.X0, &meta.V0, &meta.Coupling, &meta.Radius); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, err
		}
		meta.Timestamp = ts
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}
