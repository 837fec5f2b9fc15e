package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

const schema = `
	CREATE TABLE IF NOT EXISTS canonical_sales (
		sales  NUMERIC NOT NULL,
		date   DATE    NOT NULL,
		region TEXT    NOT NULL
	);
	CREATE INDEX IF NOT EXISTS canonical_sales_date_idx ON canonical_sales (date);
`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the canonical_sales table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// Save replaces the stored dataset with records in a single transaction.
func (s *Store) Save(ctx context.Context, records []sales.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM canonical_sales`); err != nil {
		return fmt.Errorf("clearing canonical sales: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO canonical_sales (sales, date, region) VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Revenue, r.Date, r.Region); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Load returns every stored record. An empty table is an empty dataset.
func (s *Store) Load(ctx context.Context) ([]sales.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sales, date, region FROM canonical_sales ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing canonical sales: %w", err)
	}
	defer rows.Close()

	records := make([]sales.Record, 0)

	for rows.Next() {
		var r sales.Record
		if err := rows.Scan(&r.Revenue, &r.Date, &r.Region); err != nil {
			return nil, fmt.Errorf("scanning canonical sale: %w", err)
		}

		r.Date = r.Date.UTC()
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating canonical sales: %w", err)
	}

	return records, nil
}
