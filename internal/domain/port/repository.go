package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
)

// PredictionRepository persists prediction records.
type PredictionRepository interface {
	Create(ctx context.Context, p *entity.Prediction) error
	Update(ctx context.Context, p *entity.Prediction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Prediction, error)
}
