package repository

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

type localStore interface {
	Prepend(ctx context.Context, clientID string, rec model.SavedCalculation) error
	List(ctx context.Context, clientID string, limit int) ([]model.SavedCalculation, error)
	Delete(ctx context.Context, clientID, id string) error
	UpdateNotes(ctx context.Context, clientID, id, notes string) error
}

func record(id, name string) model.SavedCalculation {
	return model.SavedCalculation{
		ID:        model.RecordID(id),
		Name:      name,
		Corridor:  "kenya",
		Inputs:    json.RawMessage(`{"corridor":"kenya"}`),
		Results:   json.RawMessage(`{"diesel":{"euro":{}},"electric":{"europeanEV":{}}}`),
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func exerciseLocalStore(t *testing.T, store localStore) {
	ctx := context.Background()
	client := ulid.Make().String()
	other := ulid.Make().String()

	require.NoError(t, store.Prepend(ctx, client, record("1", "first")))
	require.NoError(t, store.Prepend(ctx, client, record("2", "second")))
	require.NoError(t, store.Prepend(ctx, client, record("3", "third")))
	require.NoError(t, store.Prepend(ctx, other, record("9", "someone else")))

	t.Run("happy: most recent first", func(t *testing.T) {
		list, err := store.List(ctx, client, 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "third", list[0].Name)
		assert.Equal(t, "first", list[2].Name)
		assert.JSONEq(t, `{"corridor":"kenya"}`, string(list[0].Inputs))
	})

	t.Run("happy: limit", func(t *testing.T) {
		list, err := store.List(ctx, client, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, model.RecordID("3"), list[0].ID)
		assert.Equal(t, model.RecordID("2"), list[1].ID)
	})

	t.Run("happy: update notes", func(t *testing.T) {
		require.NoError(t, store.UpdateNotes(ctx, client, "2", "fleet B"))
		list, err := store.List(ctx, client, 0)
		require.NoError(t, err)
		assert.Equal(t, "fleet B", list[1].Notes)
		assert.Equal(t, "second", list[1].Name)
	})

	t.Run("happy: delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, client, "2"))
		list, err := store.List(ctx, client, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, model.RecordID("3"), list[0].ID)
		assert.Equal(t, model.RecordID("1"), list[1].ID)
	})

	t.Run("bad: unknown id", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, client, "missing"), model.ErrNotFound)
		assert.ErrorIs(t, store.UpdateNotes(ctx, client, "missing", "x"), model.ErrNotFound)
	})

	t.Run("bad: clients cannot reach each other's records", func(t *testing.T) {
		list, err := store.List(ctx, other, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "someone else", list[0].Name)

		assert.ErrorIs(t, store.Delete(ctx, other, "1"), model.ErrNotFound)
		assert.ErrorIs(t, store.UpdateNotes(ctx, other, "3", "x"), model.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, client, "9"), model.ErrNotFound)

		mine, err := store.List(ctx, client, 0)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("bad: missing client id", func(t *testing.T) {
		assert.ErrorIs(t, store.Prepend(ctx, "", record("x", "x")), model.ErrNoClient)
		_, err := store.List(ctx, "", 0)
		assert.ErrorIs(t, err, model.ErrNoClient)
		assert.ErrorIs(t, store.Delete(ctx, "", "1"), model.ErrNoClient)
		assert.ErrorIs(t, store.UpdateNotes(ctx, "", "1", "x"), model.ErrNoClient)
	})
}

func TestMemoryLocalStore(t *testing.T) {
	exerciseLocalStore(t, NewMemoryLocalStore())

	t.Run("edge: empty store", func(t *testing.T) {
		list, err := NewMemoryLocalStore().List(context.Background(), "c1", 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("edge: list is a copy", func(t *testing.T) {
		store := NewMemoryLocalStore()
		require.NoError(t, store.Prepend(context.Background(), "c1", record("a", "a")))
		list, _ := store.List(context.Background(), "c1", 0)
		list[0].Name = "changed"
		again, _ := store.List(context.Background(), "c1", 0)
		assert.Equal(t, "a", again[0].Name)
	})
}

func TestRedisLocalStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := NewRedisClient(RedisOptions{Address: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("no redis available")
	}

	prefix := "tco_calculations_test_" + ulid.Make().String()
	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), prefix+":*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
	})

	store := NewRedisLocalStore(client, prefix)
	exerciseLocalStore(t, store)

	t.Run("edge: unreadable entries are skipped", func(t *testing.T) {
		id := ulid.Make().String()
		require.NoError(t, store.Prepend(context.Background(), id, record("1", "ok")))
		require.NoError(t, client.LPush(context.Background(), prefix+":"+id, "not json").Err())
		list, err := store.List(context.Background(), id, 0)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("edge: default prefix", func(t *testing.T) {
		s := NewRedisLocalStore(redis.NewClient(&redis.Options{}), "")
		key, err := s.key("abc")
		require.NoError(t, err)
		assert.Equal(t, DefaultLocalStoreKey+":abc", key)
	})
}
