package store

import (
	"context"
	"fmt"

	"github.com/hubcycle/imbibe/internal/domain"
)

// gapSQL finds ascending heights with no corresponding block row.
const gapSQL = `
SELECT gs.height
FROM generate_series($1, $2) AS gs(height)
LEFT JOIN block ON block.height = gs.height
WHERE block.height IS NULL
`

// FetchMissingBlockHeights streams ascending heights in [lo, hi] absent
// from block, closing the channel when the query is drained or on error
// (the final item carries the error).
func (p *Postgres) FetchMissingBlockHeights(ctx context.Context, lo, hi int64) (<-chan HeightOrError, error) {
	rows, err := p.pool.Query(ctx, gapSQL, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query missing heights [%d,%d]: %w", lo, hi, domain.ErrStore)
	}

	out := make(chan HeightOrError)
	go func() {
		defer close(out)
		defer rows.Close()
		for rows.Next() {
			var h int64
			if err := rows.Scan(&h); err != nil {
				out <- HeightOrError{Err: fmt.Errorf("scan height: %w", domain.ErrStore)}
				return
			}
			select {
			case out <- HeightOrError{Height: h}:
			case <-ctx.Done():
				return
			}
		}
		if err := rows.Err(); err != nil {
			out <- HeightOrError{Err: fmt.Errorf("iterate missing heights: %w", domain.ErrStore)}
		}
	}()
	return out, nil
}
