package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/truck-tco-calculator/internal/repository"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

// SeedCorridors upserts the built-in corridor profiles so saved calculations can
// reference them.
func SeedCorridors(ctx context.Context, pool *pgxpool.Pool) error {
	repo := repository.NewCorridorRepository(pool)
	corridors := tco.Corridors()
	if err := repo.UpsertAll(ctx, corridors); err != nil {
		return fmt.Errorf("seed corridors: %w", err)
	}

	stored, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count corridors: %w", err)
	}
	log.Info().Int("seeded", len(corridors)).Int("stored", stored).Msg("corridors seeded")
	return nil
}
