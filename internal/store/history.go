// Package store keeps a SQLite history of generation runs and the variants
// they produced.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrRunNotFound is returned when a run id is not in the history.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    layouts    TEXT NOT NULL,
    door       TEXT NOT NULL,
    top        TEXT NOT NULL,
    budget_usd INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS variants (
    id         TEXT PRIMARY KEY,
    run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position   INTEGER NOT NULL,
    layout     TEXT NOT NULL,
    target_usd INTEGER NOT NULL,
    price_usd  INTEGER NOT NULL,
    ops_count  INTEGER NOT NULL,
    root       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS variants_run ON variants(run_id, position);
`

// Run is one recorded generation run.
type Run struct {
	ID        string    `json:"run_id" yaml:"run_id"`
	CreatedAt string    `json:"created_at" yaml:"created_at"`
	Layouts   []string  `json:"layouts" yaml:"layouts"`
	Door      string    `json:"door" yaml:"door"`
	Top       string    `json:"top" yaml:"top"`
	BudgetUSD int       `json:"budget_usd" yaml:"budget_usd"`
	Variants  []Variant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Variant is one recorded variant of a run.
type Variant struct {
	ID        string `json:"variant_id" yaml:"variant_id"`
	Layout    string `json:"layout_canonical" yaml:"layout_canonical"`
	TargetUSD int    `json:"target_usd" yaml:"target_usd"`
	PriceUSD  int    `json:"price_usd" yaml:"price_usd"`
	OpsCount  int    `json:"ops_count" yaml:"ops_count"`
	Root      string `json:"root" yaml:"root"`
}

// History is the run history repository.
type History struct {
	db *sql.DB
}

// Open opens or creates the history database at path and applies the schema.
func Open(ctx context.Context, path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the database.
func (h *History) Close() error {
	return h.db.Close()
}

// RecordRun stores a run and its variants in one transaction.
func (h *History) RecordRun(ctx context.Context, run Run) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO runs (id, created_at, layouts, door, top, budget_usd)
        VALUES (?, ?, ?, ?, ?, ?)
    `, run.ID, run.CreatedAt, strings.Join(run.Layouts, ","), run.Door, run.Top, run.BudgetUSD)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	for i, v := range run.Variants {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO variants (id, run_id, position, layout, target_usd, price_usd, ops_count, root)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `, v.ID, run.ID, i, v.Layout, v.TargetUSD, v.PriceUSD, v.OpsCount, v.Root)
		if err != nil {
			return fmt.Errorf("failed to insert variant %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first, without their variants.
// A limit <= 0 returns every run.
func (h *History) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.QueryContext(ctx, `
        SELECT id, created_at, layouts, door, top, budget_usd
        FROM runs
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a run with its variants in recorded order.
func (h *History) GetRun(ctx context.Context, id string) (Run, error) {
	row := h.db.QueryRowContext(ctx, `
        SELECT id, created_at, layouts, door, top, budget_usd
        FROM runs
        WHERE id = ?
    `, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return Run{}, err
	}

	rows, err := h.db.QueryContext(ctx, `
        SELECT id, layout, target_usd, price_usd, ops_count, root
        FROM variants
        WHERE run_id = ?
        ORDER BY position
    `, id)
	if err != nil {
		return Run{}, fmt.Errorf("failed to load variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.Layout, &v.TargetUSD, &v.PriceUSD, &v.OpsCount, &v.Root); err != nil {
			return Run{}, fmt.Errorf("failed to scan variant: %w", err)
		}
		run.Variants = append(run.Variants, v)
	}
	return run, rows.Err()
}

// DeleteRun removes a run and its variants.
func (h *History) DeleteRun(ctx context.Context, id string) error {
	res, err := h.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run     Run
		layouts string
	)
	if err := s.Scan(&run.ID, &run.CreatedAt, &layouts, &run.Door, &run.Top, &run.BudgetUSD); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	if layouts != "" {
		run.Layouts = strings.Split(layouts, ",")
	}
	return run, nil
}
