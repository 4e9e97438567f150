package db

import (
	"context"
	"fmt"

	"fedspeak/internal/models"
)

// MaxTermLength bounds the stored term so free-form misses cannot bloat the table.
const MaxTermLength = 64

// IncrementAcronymLookup upserts a lookup count by term, direction and outcome.
func (d *DB) IncrementAcronymLookup(ctx context.Context, term, direction, outcome string) error {
	if term == "" {
		return ErrEmptyTerm
	}
	if r := []rune(term); len(r) > MaxTermLength {
		term = string(r[:MaxTermLength])
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO acronym_lookups (term, direction, outcome, count, last_seen_at)
		VALUES ($1, $2, $3, 1, NOW())
		ON CONFLICT (term, direction, outcome) DO UPDATE
		SET count = acronym_lookups.count + 1, last_seen_at = NOW()
	`, term, direction, outcome)
	if err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// GetAllAcronymLookups returns all lookup rows for metrics export.
func (d *DB) GetAllAcronymLookups(ctx context.Context) ([]models.AcronymLookup, error) {
	rows, err := d.Pool.Query(ctx, `SELECT term, direction, outcome, count, last_seen_at FROM acronym_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLookups(rows)
}

// GetTopAcronymLookups returns the most frequent lookups, highest count first.
func (d *DB) GetTopAcronymLookups(ctx context.Context, outcome string, limit int) ([]models.AcronymLookup, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT term, direction, outcome, count, last_seen_at
		FROM acronym_lookups
		WHERE ($1 = '' OR outcome = $1)
		ORDER BY count DESC, term ASC
		LIMIT $2
	`, outcome, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top lookups: %w", err)
	}
	defer rows.Close()

	return scanLookups(rows)
}

type lookupRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanLookups(rows lookupRows) ([]models.AcronymLookup, error) {
	lookups := []models.AcronymLookup{}
	for rows.Next() {
		var l models.AcronymLookup
		if err := rows.Scan(&l.Term, &l.Direction, &l.Outcome, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}
