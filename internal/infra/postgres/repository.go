package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
)

type PredictionRepository struct {
	pool *pgxpool.Pool
}

func NewPredictionRepository(pool *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{pool: pool}
}

func (r *PredictionRepository) Create(ctx context.Context, p *entity.Prediction) error {
	query := `
		INSERT INTO predictions (
			id, filename, format, num_frames, total_frames, stage,
			action, caption, confidence, error_message,
			created_at, updated_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Filename, string(p.Format), p.NumFrames, p.TotalFrames,
		string(p.Stage), p.Action, p.Caption, p.Confidence, p.ErrorMessage,
		p.CreatedAt, p.UpdatedAt, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) Update(ctx context.Context, p *entity.Prediction) error {
	query := `
		UPDATE predictions SET
			total_frames=$2, stage=$3, action=$4, caption=$5, confidence=$6,
			error_message=$7, updated_at=$8, completed_at=$9
		WHERE id=$1`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.TotalFrames, string(p.Stage), p.Action, p.Caption,
		p.Confidence, p.ErrorMessage, p.UpdatedAt, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error) {
	query := selectColumns + ` FROM predictions WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanPrediction(row)
	if err != nil {
		return nil, fmt.Errorf("find prediction by id: %w", err)
	}
	return p, nil
}

func (r *PredictionRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Prediction, error) {
	query := selectColumns + ` FROM predictions ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const selectColumns = `
	SELECT id, filename, format, num_frames, total_frames, stage,
		action, caption, confidence, error_message,
		created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*entity.Prediction, error) {
	p := &entity.Prediction{}
	var format, stage string
	err := row.Scan(
		&p.ID, &p.Filename, &format, &p.NumFrames, &p.TotalFrames, &stage,
		&p.Action, &p.Caption, &p.Confidence, &p.ErrorMessage,
		&p.CreatedAt, &p.UpdatedAt, &p.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Format = entity.VideoFormat(format)
	p.Stage = entity.Stage(stage)
	return p, nil
}
