// Package store keeps scrapbook pages in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"snapbook/internal/applog"
	"snapbook/internal/canvas"
)

// ErrNotFound is returned when a page id has no row.
var ErrNotFound = errors.New("store: page not found")

// Schema creates the page and item tables. Item data is the JSON item
// record produced by canvas.MarshalItem.
const Schema = `
CREATE TABLE IF NOT EXISTS pages (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT    NOT NULL DEFAULT '',
	created_date     INTEGER NOT NULL,
	last_modified    INTEGER NOT NULL,
	background_image TEXT    NOT NULL DEFAULT '',
	background_color INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	page_id  INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	id       TEXT    NOT NULL,
	type     INTEGER NOT NULL,
	data     TEXT    NOT NULL,
	PRIMARY KEY (page_id, position)
);

CREATE INDEX IF NOT EXISTS idx_pages_modified ON pages(last_modified DESC);
`

// Store reads and writes pages. It is safe for concurrent use.
type Store struct {
	DB *sql.DB
}

// Open opens or creates the database at path and applies Schema.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// SQLite has a single writer; one connection also keeps ":memory:"
	// databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database and applies Schema.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: DB is required")
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// SavePage writes p and replaces its items. A page with ID zero is
// inserted and gets its new id. p's ID and modified time are updated only
// once the save has committed.
func (s *Store) SavePage(ctx context.Context, p *canvas.Page) (int64, error) {
	modified := time.UnixMilli(time.Now().UnixMilli())
	id := p.ID
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if id == 0 {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO pages (title, created_date, last_modified, background_image, background_color)
				 VALUES (?, ?, ?, ?, ?)`,
				p.Title, p.Created.UnixMilli(), modified.UnixMilli(), p.BackgroundImage, int64(p.Background))
			if err != nil {
				return fmt.Errorf("store: insert page: %w", err)
			}
			if id, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("store: page id: %w", err)
			}
		} else {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO pages (id, title, created_date, last_modified, background_image, background_color)
				 VALUES (?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   title = excluded.title,
				   created_date = excluded.created_date,
				   last_modified = excluded.last_modified,
				   background_image = excluded.background_image,
				   background_color = excluded.background_color`,
				id, p.Title, p.Created.UnixMilli(), modified.UnixMilli(), p.BackgroundImage, int64(p.Background))
			if err != nil {
				return fmt.Errorf("store: update page %d: %w", id, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE page_id = ?`, id); err != nil {
			return fmt.Errorf("store: clear items of page %d: %w", id, err)
		}
		for i, it := range p.Items {
			data, err := canvas.MarshalItem(it)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (page_id, position, id, type, data) VALUES (?, ?, ?, ?, ?)`,
				id, i, it.ID, int(it.Kind()), string(data)); err != nil {
				return fmt.Errorf("store: insert item %s: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		applog.Logger().Error("store: save page", "id", p.ID, "error", err)
		return 0, err
	}
	p.ID = id
	p.Modified = modified
	applog.Logger().Debug("store: page saved", "id", id, "items", len(p.Items))
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*canvas.Page, error) {
	var (
		p                 canvas.Page
		created, modified int64
		bg                int64
	)
	if err := row.Scan(&p.ID, &p.Title, &created, &modified, &p.BackgroundImage, &bg); err != nil {
		return nil, err
	}
	p.Created = time.UnixMilli(created)
	p.Modified = time.UnixMilli(modified)
	p.Background = canvas.Color(bg)
	return &p, nil
}

func (s *Store) loadItems(ctx context.Context, p *canvas.Page) error {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT data FROM items WHERE page_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("store: items of page %d: %w", p.ID, err)
	}
	defer rows.Close()

	p.Items = p.Items[:0]
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("store: scan item: %w", err)
		}
		it, err := canvas.UnmarshalItem([]byte(data))
		if err != nil {
			return fmt.Errorf("store: page %d: %w", p.ID, err)
		}
		p.Items = append(p.Items, it)
	}
	return rows.Err()
}

const pageColumns = `id, title, created_date, last_modified, background_image, background_color`

// LoadPage returns the page with the given id and its items in z-order.
func (s *Store) LoadPage(ctx context.Context, id int64) (*canvas.Page, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load page %d: %w", id, err)
	}
	if err := s.loadItems(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPages returns every page, most recently modified first.
func (s *Store) ListPages(ctx context.Context) ([]*canvas.Page, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY last_modified DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list pages: %w", err)
	}
	var pages []*canvas.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Items are read after the page cursor is closed: the pool holds a
	// single connection.
	rows.Close()

	for _, p := range pages {
		if err := s.loadItems(ctx, p); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

// DeletePage removes a page and its items.
func (s *Store) DeletePage(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE page_id = ?`, id); err != nil {
			return fmt.Errorf("store: delete items of page %d: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("store: delete page %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountPages returns the number of stored pages.
func (s *Store) CountPages(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count pages: %w", err)
	}
	return n, nil
}
