// Package snapshot persists the last successfully fetched product
// listing to sqlite. Read-only flows fall back to it when the listing
// endpoint is not bound, degrading instead of failing. Controller
// state itself is never persisted - only the raw records.
package snapshot

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/peaksport/vitrina/internal/catalog"
	_ "modernc.org/sqlite"
)

// Store handles sqlite persistence. Concrete type, not an interface.
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given database path, creating tables if
// they don't exist. Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same
		// in-memory database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT,
		price_minor INTEGER NOT NULL DEFAULT 0,
		currency TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		image TEXT
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveProducts replaces the snapshot with the given listing. The total
// is the server-reported count, which may exceed the page size.
func (s *Store) SaveProducts(items []catalog.Product, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO products (id, name, slug, price_minor, currency, active, stock, created_at, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range items {
		if _, err := stmt.Exec(p.ID, p.Name, p.Slug, p.PriceMinorUnits, p.Currency,
			boolToInt(p.Active), p.Stock, p.CreatedAt.UTC().Format(time.RFC3339), p.CoverImage()); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('total', ?), ('saved_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprint(total), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	return tx.Commit()
}

// LoadProducts returns the snapshotted listing and the server total it
// was saved with.
func (s *Store) LoadProducts() ([]catalog.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, slug, price_minor, currency, active, stock, created_at, image
		FROM products ORDER BY id`)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var items []catalog.Product
	for rows.Next() {
		var p catalog.Product
		var active int
		var createdAt, image string
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.PriceMinorUnits, &p.Currency,
			&active, &p.Stock, &createdAt, &image); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		p.Active = active != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = t
		}
		p.ImageReference = image
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := len(items)
	var totalStr string
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = 'total'`).Scan(&totalStr)
	if err == nil {
		if _, scanErr := fmt.Sscanf(totalStr, "%d", &total); scanErr != nil {
			total = len(items)
		}
	} else if err != sql.ErrNoRows {
		return nil, 0, err
	}

	return items, total, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
