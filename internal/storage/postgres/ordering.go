package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type orderedRow struct {
	ID       uuid.UUID
	Ordering int
}

// densify computes the minimal set of updates that turns the orderings of a
// sibling set into a dense 1..N sequence. Rows must already be sorted by
// their current ordering. Running it on an already dense set returns nothing.
func densify(rows []orderedRow) []orderedRow {
	var changed []orderedRow
	expected := 1
	for _, row := range rows {
		if row.Ordering != expected {
			changed = append(changed, orderedRow{ID: row.ID, Ordering: expected})
		}
		expected++
	}
	return changed
}

// resequence renumbers a sibling set to 1..N inside the caller's
// transaction. selectQuery must return (id, ordering) rows sorted by
// ordering for the given scope args; updateQuery takes (ordering, id). Only
// rows whose ordering actually changes are written.
func resequence(ctx context.Context, tx pgx.Tx, selectQuery, updateQuery string, scopeArgs ...any) error {
	rows, err := tx.Query(ctx, selectQuery, scopeArgs...)
	if err != nil {
		return fmt.Errorf("failed to query sibling orderings: %w", err)
	}

	var siblings []orderedRow
	for rows.Next() {
		var row orderedRow
		if err := rows.Scan(&row.ID, &row.Ordering); err != nil {
			rows.Close()
			return err
		}
		siblings = append(siblings, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, row := range densify(siblings) {
		if _, err := tx.Exec(ctx, updateQuery, row.Ordering, row.ID); err != nil {
			return fmt.Errorf("failed to resequence sibling %s: %w", row.ID, err)
		}
	}
	return nil
}
