package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/passforge/passforge-go/internal/model"
)

// createHistoryDDL is portable between MySQL and SQLite.
const createHistoryDDL = `
CREATE TABLE IF NOT EXISTS generation_history (
	id            VARCHAR(36)      PRIMARY KEY,
	source        VARCHAR(16)      NOT NULL,
	preset        VARCHAR(32)      NOT NULL DEFAULT '',
	pw_length     INTEGER          NOT NULL,
	classes       VARCHAR(64)      NOT NULL DEFAULT '',
	strength      VARCHAR(16)      NOT NULL,
	entropy_bits  DOUBLE PRECISION NOT NULL,
	created_at_ns BIGINT           NOT NULL
)`

// HistoryRepository persists generation metadata. Passwords are never stored.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// EnsureSchema creates the history table if it does not exist.
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createHistoryDDL)
	return err
}

// Insert stores a record, assigning an ID and timestamp when missing.
func (r *HistoryRepository) Insert(ctx context.Context, rec *model.GenerationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO generation_history
		(id, source, preset, pw_length, classes, strength, entropy_bits, created_at_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Source,
		rec.Preset,
		rec.Length,
		rec.Classes,
		rec.Strength,
		rec.EntropyBits,
		rec.CreatedAt.UnixNano(),
	)
	return err
}

// Record implements the service recorder interface.
func (r *HistoryRepository) Record(ctx context.Context, rec model.GenerationRecord) error {
	return r.Insert(ctx, &rec)
}

// CountByStrength returns the number of recorded generations per rating.
func (r *HistoryRepository) CountByStrength(ctx context.Context) (map[string]int64, error) {
	query := `SELECT strength, COUNT(*) FROM generation_history GROUP BY strength`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var strength string
		var n int64
		if err := rows.Scan(&strength, &n); err != nil {
			return nil, err
		}
		counts[strength] = n
	}

	return counts, rows.Err()
}

// Recent returns up to limit records, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	query := `SELECT id, source, preset, pw_length, classes, strength, entropy_bits, created_at_ns
		FROM generation_history ORDER BY created_at_ns DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.GenerationRecord
	for rows.Next() {
		var rec model.GenerationRecord
		var createdNs int64
		if err := rows.Scan(
			&rec.ID, &rec.Source, &rec.Preset, &rec.Length,
			&rec.Classes, &rec.Strength, &rec.EntropyBits, &createdNs,
		); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(0, createdNs).UTC()
		records = append(records, rec)
	}

	return records, rows.Err()
}
