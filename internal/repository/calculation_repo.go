package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

// CalculationRepository is the self-hosted account store: saved calculations keyed by
// the Moodle user id of the session that wrote them.
type CalculationRepository struct {
	pool      *pgxpool.Pool
	corridors *CorridorRepository
}

func NewCalculationRepository(pool *pgxpool.Pool) *CalculationRepository {
	return &CalculationRepository{pool: pool, corridors: NewCorridorRepository(pool)}
}

func userID(sess model.Session) (int64, error) {
	if !sess.Authenticated || sess.User == nil {
		return 0, model.ErrUnauthenticated
	}
	return sess.User.ID, nil
}

func (r *CalculationRepository) Save(ctx context.Context, sess model.Session, rec model.SavedCalculation) (string, error) {
	uid, err := userID(sess)
	if err != nil {
		return "", err
	}

	inputs, err := tco.DecodeDocument(rec.Inputs)
	if err != nil {
		return "", fmt.Errorf("decode inputs: %w", err)
	}
	if inputs == nil {
		inputs = []byte("{}")
	}
	results, err := tco.DecodeDocument(rec.Results)
	if err != nil {
		return "", fmt.Errorf("decode results: %w", err)
	}

	id := string(rec.ID)
	if id == "" {
		id = ulid.Make().String()
	}
	createdAt := rec.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// unknown corridor ids are stored without a corridor reference
	corridor := rec.Corridor
	if corridor != "" {
		known, err := r.corridors.Exists(ctx, corridor)
		if err != nil {
			return "", fmt.Errorf("check corridor: %w", err)
		}
		if !known {
			log.Warn().Str("corridor", corridor).Str("calculation_id", id).Msg("unknown corridor, saving without reference")
			corridor = ""
		}
	}

	var resultsArg any
	if results != nil {
		resultsArg = string(results)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO calculations (id, user_id, name, notes, corridor_id, inputs, results, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6::jsonb, $7::jsonb, $8)`,
		id, uid, rec.Name, rec.Notes, corridor, string(inputs), resultsArg, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert calculation: %w", err)
	}
	return id, nil
}

func (r *CalculationRepository) List(ctx context.Context, sess model.Session, limit int) ([]model.SavedCalculation, error) {
	uid, err := userID(sess)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, notes, COALESCE(corridor_id, ''), inputs, results, created_at
		FROM calculations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	results := make([]model.SavedCalculation, 0)
	for rows.Next() {
		var (
			rec             model.SavedCalculation
			id              string
			inputs, outputs []byte
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Notes, &rec.Corridor, &inputs, &outputs, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		rec.ID = model.RecordID(id)
		rec.Inputs = inputs
		rec.Results = outputs
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}
	return results, nil
}

func (r *CalculationRepository) Delete(ctx context.Context, sess model.Session, id string) error {
	uid, err := userID(sess)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM calculations WHERE id = $1 AND user_id = $2`, id, uid)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CalculationRepository) UpdateNotes(ctx context.Context, sess model.Session, id, notes string) error {
	uid, err := userID(sess)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE calculations SET notes = $3, updated_at = now() WHERE id = $1 AND user_id = $2`,
		id, uid, notes)
	if err != nil {
		return fmt.Errorf("update notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
