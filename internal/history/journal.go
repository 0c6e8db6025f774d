// Package history keeps a local journal of order activity so the UI can
// show what this client submitted even before the indexer catches up.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Entry is one journaled order action.
type Entry struct {
	ID        int64
	OrderID   string
	Market    string // base asset id
	Kind      string // spot | perp
	Action    string // create | cancel | fulfill
	Trader    string
	Size      string
	Price     string
	CreatedAt time.Time
}

const (
	KindSpot = "spot"
	KindPerp = "perp"

	ActionCreate  = "create"
	ActionCancel  = "cancel"
	ActionFulfill = "fulfill"
)

// Journal is a SQLite-backed activity log. Writes are best-effort from the
// adapter's point of view; a journal failure never fails a trade.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS order_activity (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id TEXT NOT NULL,
	market TEXT NOT NULL,
	kind TEXT NOT NULL,
	action TEXT NOT NULL,
	trader TEXT NOT NULL,
	size TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_activity_trader ON order_activity(trader);
`

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "history: open db")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "history: apply schema")
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one entry. CreatedAt defaults to now.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO order_activity (order_id, market, kind, action, trader, size, price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.OrderID, e.Market, e.Kind, e.Action, e.Trader, e.Size, e.Price, created.Unix())
	return errors.Wrap(err, "history: record")
}

// List returns the most recent entries for a trader, newest first.
func (j *Journal) List(ctx context.Context, trader string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, order_id, market, kind, action, trader, size, price, created_at
		 FROM order_activity WHERE trader = ? ORDER BY id DESC LIMIT ?`, trader, limit)
	if err != nil {
		return nil, errors.Wrap(err, "history: list")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Market, &e.Kind, &e.Action, &e.Trader, &e.Size, &e.Price, &created); err != nil {
			return nil, errors.Wrap(err, "history: scan")
		}
		e.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
