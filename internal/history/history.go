// Package history keeps a SQLite log of every push and its per-channel
// outcomes.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
	"github.com/RobinCoderZhao/checkin-notify/pkg/storage"
)

// Schema creates the history tables.
const Schema = `
CREATE TABLE IF NOT EXISTS pushes (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS deliveries (
    push_id     INTEGER NOT NULL REFERENCES pushes(id),
    position    INTEGER NOT NULL,
    channel     TEXT NOT NULL,
    ok          INTEGER NOT NULL,
    error       TEXT,
    duration_ms INTEGER NOT NULL,
    PRIMARY KEY (push_id, position)
);

CREATE INDEX IF NOT EXISTS idx_pushes_created ON pushes(created_at);
`

// Delivery is one stored channel outcome.
type Delivery struct {
	Channel  notify.Channel `json:"channel"`
	OK       bool           `json:"ok"`
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// Push is one stored dispatch.
type Push struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	CreatedAt  time.Time  `json:"created_at"`
	Deliveries []Delivery `json:"deliveries"`
}

// Store persists push history. It implements notify.Recorder.
type Store struct {
	db  *storage.DB
	now func() time.Time
}

var _ notify.Recorder = (*Store)(nil)

// Open opens the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := storage.Open(ctx, storage.Config{Path: path})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one push with its outcomes in dispatch order.
func (s *Store) Record(ctx context.Context, title string, outcomes notify.Outcomes) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO pushes (title, created_at) VALUES (?, ?)`,
			title, s.now().UTC())
		if err != nil {
			return goerr.Wrap(err, "insert push")
		}
		pushID, err := res.LastInsertId()
		if err != nil {
			return goerr.Wrap(err, "read push id")
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO deliveries (push_id, position, channel, ok, error, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return goerr.Wrap(err, "prepare delivery insert")
		}
		defer stmt.Close()

		for i, o := range outcomes {
			var errText sql.NullString
			if o.Err != nil {
				errText = sql.NullString{String: o.Err.Error(), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, pushID, i, string(o.Channel), o.OK(), errText, o.Duration.Milliseconds()); err != nil {
				return goerr.Wrap(err, "insert delivery", goerr.V("channel", o.Channel))
			}
		}
		return nil
	})
}

// Recent returns up to limit pushes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Push, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at FROM pushes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "query pushes")
	}
	var pushes []Push
	for rows.Next() {
		var p Push
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, goerr.Wrap(err, "scan push")
		}
		pushes = append(pushes, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, goerr.Wrap(err, "iterate pushes")
	}
	rows.Close()

	for i := range pushes {
		deliveries, err := s.deliveries(ctx, pushes[i].ID)
		if err != nil {
			return nil, err
		}
		pushes[i].Deliveries = deliveries
	}
	return pushes, nil
}

func (s *Store) deliveries(ctx context.Context, pushID int64) ([]Delivery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel, ok, error, duration_ms FROM deliveries
		WHERE push_id = ? ORDER BY position
	`, pushID)
	if err != nil {
		return nil, goerr.Wrap(err, "query deliveries", goerr.V("push_id", pushID))
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var (
			d       Delivery
			channel string
			errText sql.NullString
			ms      int64
		)
		if err := rows.Scan(&channel, &d.OK, &errText, &ms); err != nil {
			return nil, goerr.Wrap(err, "scan delivery")
		}
		d.Channel = notify.Channel(channel)
		d.Error = errText.String
		d.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, d)
	}
	return out, rows.Err()
}
