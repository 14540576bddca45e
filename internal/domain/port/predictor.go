package port

import (
	"context"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
)

// Predictor runs the loaded action classifier. The model is loaded once at
// startup and read-only afterwards; implementations must be safe for
// concurrent callers, serializing the underlying inference call if the
// runtime does not guarantee it.
type Predictor interface {
	// Predict returns the class probability distribution for the clip.
	// The clip length must equal NumFrames or the call fails with a
	// shape-mismatch error.
	Predict(ctx context.Context, clip entity.Clip) ([]float32, error)

	// NumFrames is the temporal dimension the model was trained with.
	NumFrames() int

	// Ready reports whether the model finished loading.
	Ready() bool
}
