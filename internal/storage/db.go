package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"presyo/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS bulletins (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  url TEXT NOT NULL,
  filename TEXT NOT NULL,
  publishedAt TEXT,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'fetched',
  fetchedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(hash)
);
CREATE INDEX IF NOT EXISTS idx_bulletins_publishedAt ON bulletins(publishedAt);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  bulletinId INTEGER NOT NULL,
  recordNo INTEGER NOT NULL,
  category TEXT NOT NULL,
  commodity TEXT NOT NULL,
  specification TEXT,
  origin TEXT NOT NULL,
  unit TEXT NOT NULL,
  price REAL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(bulletinId, recordNo),
  FOREIGN KEY(bulletinId) REFERENCES bulletins(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  bulletinId INTEGER,
  timingsJson TEXT NOT NULL,
  countersJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(bulletinId) REFERENCES bulletins(id)
);
`
	_, err := d.conn.Exec(schema)
	return err
}

// UpsertBulletin registers a downloaded bulletin, keyed by content hash so a
// re-download of the same document reuses the existing row.
func (d *DB) UpsertBulletin(url, filename string, publishedAt *string, hash string) (int, error) {
	_, err := d.conn.Exec(`
INSERT INTO bulletins (url, filename, publishedAt, hash, status)
VALUES (?, ?, ?, ?, 'fetched')
ON CONFLICT(hash) DO UPDATE SET url = excluded.url, filename = excluded.filename,
  publishedAt = COALESCE(excluded.publishedAt, bulletins.publishedAt),
  updatedAt = CURRENT_TIMESTAMP`,
		url, filename, publishedAt, hash)
	if err != nil {
		return 0, err
	}

	var id int
	if err := d.conn.QueryRow(`SELECT id FROM bulletins WHERE hash = ?`, hash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DB) UpdateBulletinStatus(id int, status string) error {
	_, err := d.conn.Exec(`UPDATE bulletins SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (d *DB) GetBulletin(id int) (internal.BulletinRow, error) {
	row := d.conn.QueryRow(`SELECT id, url, filename, publishedAt, hash, status, fetchedAt FROM bulletins WHERE id = ?`, id)
	var b internal.BulletinRow
	if err := row.Scan(&b.ID, &b.URL, &b.Filename, &b.PublishedAt, &b.Hash, &b.Status, &b.FetchedAt); err != nil {
		return internal.BulletinRow{}, fmt.Errorf("bulletin %d: %w", id, err)
	}
	return b, nil
}

func (d *DB) ListBulletins(limit int) ([]internal.BulletinRow, error) {
	rows, err := d.conn.Query(`SELECT id, url, filename, publishedAt, hash, status, fetchedAt FROM bulletins ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.BulletinRow{}
	for rows.Next() {
		var b internal.BulletinRow
		if err := rows.Scan(&b.ID, &b.URL, &b.Filename, &b.PublishedAt, &b.Hash, &b.Status, &b.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ReplaceRecords swaps the stored record set of a bulletin for the given one.
func (d *DB) ReplaceRecords(bulletinID int, records []internal.PriceRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records WHERE bulletinId = ?`, bulletinID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO records (bulletinId, recordNo, category, commodity, specification, origin, unit, price)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.Exec(bulletinID, i+1, rec.Category, rec.Commodity, rec.Specification, string(rec.Origin), rec.Unit, rec.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) GetRecords(bulletinID int) ([]internal.PriceRecord, error) {
	rows, err := d.conn.Query(`
SELECT category, commodity, specification, origin, unit, price
FROM records WHERE bulletinId = ? ORDER BY recordNo`, bulletinID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.PriceRecord{}
	for rows.Next() {
		var rec internal.PriceRecord
		var origin string
		if err := rows.Scan(&rec.Category, &rec.Commodity, &rec.Specification, &origin, &rec.Unit, &rec.Price); err != nil {
			return nil, err
		}
		rec.Origin = internal.Origin(origin)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (d *DB) GetExportRows(bulletinID int) ([]internal.RecordExportRow, error) {
	rows, err := d.conn.Query(`
SELECT recordNo, category, commodity, specification, origin, unit, price
FROM records WHERE bulletinId = ? ORDER BY recordNo`, bulletinID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.RecordExportRow{}
	for rows.Next() {
		var row internal.RecordExportRow
		if err := rows.Scan(&row.RecordNo, &row.Category, &row.Commodity, &row.Specification, &row.Origin, &row.Unit, &row.Price); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID string, bulletinID int, timings map[string]float64, counters map[string]int) error {
	timingsJSON, err := json.Marshal(timings)
	if err != nil {
		return err
	}
	countersJSON, err := json.Marshal(counters)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`INSERT INTO runs (traceId, bulletinId, timingsJson, countersJson) VALUES (?, ?, ?, ?)`,
		traceID, bulletinID, string(timingsJSON), string(countersJSON))
	return err
}
