package store

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema drops and recreates the teams and games tables.
//
//go:embed schema.sql
var Schema string

// ResetSchema recreates both tables. Every row is lost.
func (s *Store) ResetSchema(ctx context.Context) error {
	if _, err := s.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to reset schema: %w", err)
	}
	return nil
}
