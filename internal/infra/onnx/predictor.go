// Package onnx runs the pre-trained CNN+LSTM action classifier through
// ONNX Runtime.
package onnx

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

type Config struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	NumFrames   int
}

// Predictor owns the loaded model session. Loaded once at startup and
// read-only afterwards; ONNX Runtime sessions are not documented as safe
// for concurrent Run calls, so every inference holds mu.
type Predictor struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	numFrames  int
	logger     *zap.Logger
	mu         sync.Mutex
}

// Load initializes the ONNX Runtime environment and loads the model.
// Failure here is fatal to the process: the service must not accept
// requests without a model.
func Load(cfg Config, logger *zap.Logger) (*Predictor, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: model file %s: %v", entity.ErrModelLoad, cfg.ModelPath, err)
	}

	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("%w: initialize onnxruntime: %v", entity.ErrModelLoad, err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", entity.ErrModelLoad, err)
	}

	logger.Info("model loaded",
		zap.String("path", cfg.ModelPath),
		zap.Int("num_frames", cfg.NumFrames),
		zap.Int("num_classes", entity.NumClasses),
	)

	return &Predictor{
		session:    session,
		inputName:  cfg.InputName,
		outputName: cfg.OutputName,
		numFrames:  cfg.NumFrames,
		logger:     logger,
	}, nil
}

// Predict runs one inference call and returns the softmax distribution
// over the action classes. Deterministic for a given clip; failures are
// never transient and are not retried.
func (p *Predictor) Predict(_ context.Context, clip entity.Clip) ([]float32, error) {
	if clip.Len() != p.numFrames {
		return nil, fmt.Errorf("%w: clip has %d frames, model expects %d",
			entity.ErrShapeMismatch, clip.Len(), p.numFrames)
	}

	inputShape := ort.NewShape(1, int64(p.numFrames),
		entity.FrameSize, entity.FrameSize, entity.FrameChannels)
	input, err := ort.NewTensor(inputShape, clip.Tensor())
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, entity.NumClasses))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer output.Destroy()

	p.mu.Lock()
	err = p.session.Run([]ort.Value{input}, []ort.Value{output})
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}

	return validateOutput(output.GetData())
}

// validateOutput checks the model produced one probability per class and
// returns a copy of the distribution. A wrong output count is a model
// defect, not a request problem, so it is deliberately not wrapped in a
// client-facing error kind.
func validateOutput(raw []float32) ([]float32, error) {
	if len(raw) != entity.NumClasses {
		return nil, fmt.Errorf("model produced %d outputs, expected %d",
			len(raw), entity.NumClasses)
	}
	probabilities := make([]float32, entity.NumClasses)
	copy(probabilities, raw)
	return probabilities, nil
}

// NumFrames is the temporal dimension the model was trained with.
func (p *Predictor) NumFrames() int { return p.numFrames }

// Ready reports whether the session is available.
func (p *Predictor) Ready() bool { return p.session != nil }

// Close releases the session.
func (p *Predictor) Close() error {
	if p.session != nil {
		return p.session.Destroy()
	}
	return nil
}
