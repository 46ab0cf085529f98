// Package history persists webhook delivery records to SQLite.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates the requested delivery doesn't exist.
var ErrNotFound = errors.New("not found")

// StatusProcessing marks a delivery that has been accepted but whose
// background flow hasn't finished yet. Terminal statuses come from the
// delivery result.
const StatusProcessing = "processing"

// Record is one stored delivery. Results holds the delivery's full result
// structure as JSON; it is "{}" while the delivery is still processing.
type Record struct {
	ID         string
	ReceivedAt time.Time
	EventType  string
	Product    string
	Title      string
	ScanPath   string
	Status     string
	Results    string
}

// Store persists delivery records.
type Store struct {
	db *sql.DB
}

// NewStore creates a delivery history store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Accept inserts the provisional record for a freshly accepted delivery.
// It is a no-op when the id already exists, so a completion that got there
// first is never demoted back to processing.
func (s *Store) Accept(r Record) error {
	if r.Results == "" {
		r.Results = "{}"
	}
	_, err := s.db.Exec(`
		INSERT INTO deliveries (id, received_at, event_type, product, title, scan_path, status, results)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		r.ID, r.ReceivedAt, r.EventType, r.Product, r.Title, r.ScanPath, r.Status, r.Results,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Put inserts the record, or replaces everything but received_at when the
// id is already present. Acceptance writes the first version; completion
// overwrites it with the terminal one, keeping the original receipt time.
func (s *Store) Put(r Record) error {
	if r.Results == "" {
		r.Results = "{}"
	}
	_, err := s.db.Exec(`
		INSERT INTO deliveries (id, received_at, event_type, product, title, scan_path, status, results)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_type = excluded.event_type,
			product    = excluded.product,
			title      = excluded.title,
			scan_path  = excluded.scan_path,
			status     = excluded.status,
			results    = excluded.results`,
		r.ID, r.ReceivedAt, r.EventType, r.Product, r.Title, r.ScanPath, r.Status, r.Results,
	)
	if err != nil {
		return fmt.Errorf("upsert delivery: %w", err)
	}
	return nil
}

// Get returns one delivery by webhook id.
// Returns ErrNotFound if the delivery does not exist.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, received_at, event_type, product, title, scan_path, status, results
		FROM deliveries
		WHERE id = ?`,
		id,
	)

	var r Record
	err := row.Scan(&r.ID, &r.ReceivedAt, &r.EventType, &r.Product, &r.Title, &r.ScanPath, &r.Status, &r.Results)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query delivery: %w", err)
	}
	return &r, nil
}

// Recent returns the newest deliveries, most recent first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, received_at, event_type, product, title, scan_path, status, results
		FROM deliveries
		ORDER BY received_at DESC, id
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.ReceivedAt, &r.EventType, &r.Product, &r.Title, &r.ScanPath, &r.Status, &r.Results); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of stored deliveries.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM deliveries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count deliveries: %w", err)
	}
	return n, nil
}

// Prune deletes all but the newest keep deliveries and reports how many
// rows went.
func (s *Store) Prune(keep int) (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM deliveries
		WHERE id NOT IN (
			SELECT id FROM deliveries ORDER BY received_at DESC, id LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune deliveries: %w", err)
	}
	return res.RowsAffected()
}
