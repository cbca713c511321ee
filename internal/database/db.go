package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jgoulah/ecomonitor/internal/energy"
	"github.com/jgoulah/ecomonitor/pkg/models"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// ArchivedReading is a reading as stored in the archive
type ArchivedReading struct {
	ID        int
	Appliance string
	Seq       int // position in the appliance's sequence
	Reading   models.Reading
	BatchID   string
}

// ApplianceTotal summarizes archived usage for one appliance
type ApplianceTotal struct {
	Appliance string
	Readings  int
	KWh       float64
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		appliance TEXT NOT NULL,
		seq INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		usage REAL NOT NULL,
		batch_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(appliance, seq, timestamp)
	);
	CREATE INDEX IF NOT EXISTS idx_readings_appliance ON readings(appliance);
	CREATE INDEX IF NOT EXISTS idx_readings_batch ON readings(batch_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// insertReading inserts a reading, ignoring duplicates. It reports whether a row was added.
func insertReading(ex execer, appliance string, seq int, r models.Reading, batchID, createdAt string) (bool, error) {
	query := `
	INSERT OR IGNORE INTO readings (appliance, seq, timestamp, usage, batch_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := ex.Exec(query, appliance, seq, r.Timestamp, r.Usage, batchID, createdAt)
	if err != nil {
		return false, fmt.Errorf("inserting %s reading %d: %w", appliance, seq, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking inserted rows: %w", err)
	}

	return n > 0, nil
}

// ArchiveStore copies every reading of the store into the archive in one
// transaction. It returns the batch id and the number of new rows.
func (db *DB) ArchiveStore(store *energy.Store) (string, int, error) {
	batchID := uuid.NewString()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, appliance := range store.Appliances() {
		for seq, r := range store.Readings(appliance) {
			added, err := insertReading(tx, appliance, seq, r, batchID, createdAt)
			if err != nil {
				return "", 0, err
			}
			if added {
				inserted++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("committing archive: %w", err)
	}

	return batchID, inserted, nil
}

// ListReadings retrieves archived readings for an appliance in sequence order
func (db *DB) ListReadings(appliance string) ([]ArchivedReading, error) {
	query := `
	SELECT id, appliance, seq, timestamp, usage, batch_id
	FROM readings
	WHERE appliance = ?
	ORDER BY seq, id
	`

	rows, err := db.conn.Query(query, appliance)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var results []ArchivedReading
	for rows.Next() {
		var ar ArchivedReading
		if err := rows.Scan(&ar.ID, &ar.Appliance, &ar.Seq, &ar.Reading.Timestamp, &ar.Reading.Usage, &ar.BatchID); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, ar)
	}

	return results, rows.Err()
}

// Totals returns archived usage per appliance, ordered by appliance name
func (db *DB) Totals() ([]ApplianceTotal, error) {
	query := `
	SELECT appliance, COUNT(*), SUM(usage)
	FROM readings
	GROUP BY appliance
	ORDER BY appliance
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying totals: %w", err)
	}
	defer rows.Close()

	var results []ApplianceTotal
	for rows.Next() {
		var t ApplianceTotal
		if err := rows.Scan(&t.Appliance, &t.Readings, &t.KWh); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, t)
	}

	return results, rows.Err()
}
