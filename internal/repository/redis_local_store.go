package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

const DefaultLocalStoreKey = "tco_calculations"

type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// RedisLocalStore keeps each client's history as a Redis list of JSON records under
// "<prefix>:<clientID>". New records are pushed to the head so LRANGE returns newest first.
type RedisLocalStore struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewRedisLocalStore(client *redis.Client, prefix string) *RedisLocalStore {
	if prefix == "" {
		prefix = DefaultLocalStoreKey
	}
	return &RedisLocalStore{client: client, prefix: prefix}
}

func (s *RedisLocalStore) key(clientID string) (string, error) {
	if clientID == "" {
		return "", model.ErrNoClient
	}
	return s.prefix + ":" + clientID, nil
}

func (s *RedisLocalStore) Prepend(ctx context.Context, clientID string, rec model.SavedCalculation) error {
	key, err := s.key(clientID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode calculation: %w", err)
	}
	if err := s.client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("push calculation: %w", err)
	}
	return nil
}

func (s *RedisLocalStore) List(ctx context.Context, clientID string, limit int) ([]model.SavedCalculation, error) {
	key, err := s.key(clientID)
	if err != nil {
		return nil, err
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	items, err := s.client.LRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read calculations: %w", err)
	}

	out := make([]model.SavedCalculation, 0, len(items))
	for _, item := range items {
		var rec model.SavedCalculation
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			// unreadable entries are skipped rather than failing the whole history
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisLocalStore) Delete(ctx context.Context, clientID, id string) error {
	key, err := s.key(clientID)
	if err != nil {
		return err
	}
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, _, err := find(ctx, tx, key, id)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LRem(ctx, key, 1, raw)
			return nil
		})
		return err
	}, key)
}

func (s *RedisLocalStore) UpdateNotes(ctx context.Context, clientID, id, notes string) error {
	key, err := s.key(clientID)
	if err != nil {
		return err
	}
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, idx, err := find(ctx, tx, key, id)
		if err != nil {
			return err
		}
		var rec model.SavedCalculation
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("decode calculation: %w", err)
		}
		rec.Notes = notes
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode calculation: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, key, idx, data)
			return nil
		})
		return err
	}, key)
}

func (s *RedisLocalStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func find(ctx context.Context, tx *redis.Tx, key, id string) (string, int64, error) {
	items, err := tx.LRange(ctx, key, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", 0, fmt.Errorf("read calculations: %w", err)
	}
	for i, item := range items {
		var head struct {
			ID model.RecordID `json:"id"`
		}
		if json.Unmarshal([]byte(item), &head) == nil && string(head.ID) == id {
			return item, int64(i), nil
		}
	}
	return "", 0, model.ErrNotFound
}
