package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

type CorridorRepository struct {
	pool *pgxpool.Pool
}

func NewCorridorRepository(pool *pgxpool.Pool) *CorridorRepository {
	return &CorridorRepository{pool: pool}
}

func (r *CorridorRepository) UpsertAll(ctx context.Context, corridors []tco.CorridorProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin corridor upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, c := range corridors {
		batch.Queue(
			`INSERT INTO corridors (id, name, currency, currency_symbol, distance_one_way_km, exchange_rate)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				currency = EXCLUDED.currency,
				currency_symbol = EXCLUDED.currency_symbol,
				distance_one_way_km = EXCLUDED.distance_one_way_km,
				exchange_rate = EXCLUDED.exchange_rate`,
			c.ID, c.Name, c.Currency, c.CurrencySymbol, c.DistanceOneWay, c.ExchangeRate,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range corridors {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("upsert corridor %s: %w", corridors[i].ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *CorridorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM corridors WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *CorridorRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM corridors`).Scan(&count)
	return count, err
}
