package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

func TestSeedCorridors(t *testing.T) {
	pool, dbURL := testPool(t)
	ctx := context.Background()

	_ = RollbackMigrations(dbURL)
	require.NoError(t, RunMigrations(dbURL))
	t.Cleanup(func() { _ = RollbackMigrations(dbURL) })

	t.Run("seed inserts every corridor", func(t *testing.T) {
		require.NoError(t, SeedCorridors(ctx, pool))

		var count int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM corridors").Scan(&count))
		assert.Equal(t, len(tco.Corridors()), count)
	})

	t.Run("seed is idempotent and refreshes values", func(t *testing.T) {
		_, err := pool.Exec(ctx, "UPDATE corridors SET exchange_rate = 99 WHERE id = 'kenya'")
		require.NoError(t, err)
		require.NoError(t, SeedCorridors(ctx, pool))

		kenya, ok := tco.LookupCorridor("kenya")
		require.True(t, ok)
		var rate float64
		require.NoError(t, pool.QueryRow(ctx, "SELECT exchange_rate FROM corridors WHERE id = 'kenya'").Scan(&rate))
		assert.Equal(t, kenya.ExchangeRate, rate)
	})
}
