package store

import (
	_ "embed"
	"context"
	"fmt"

	"github.com/hubcycle/imbibe/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the idempotent CREATE TABLE IF NOT EXISTS schema. Schema
// migrations beyond this are an explicit non-goal; there is no versioned
// migration framework here.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", domain.ErrStore)
	}
	return nil
}
