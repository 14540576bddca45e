package entity

import (
	"time"

	"github.com/google/uuid"
)

// Stage is a step of the recognition pipeline. Transitions are strictly
// sequential; any failure jumps straight to StageFailed.
type Stage string

const (
	StageReceived      Stage = "RECEIVED"
	StageDecoding      Stage = "DECODING"
	StageSampling      Stage = "SAMPLING"
	StagePreprocessing Stage = "PREPROCESSING"
	StageInferring     Stage = "INFERRING"
	StageCompleted     Stage = "COMPLETED"
	StageFailed        Stage = "FAILED"
)

// Prediction tracks one recognition request from upload to terminal state.
type Prediction struct {
	ID           uuid.UUID
	Filename     string
	Format       VideoFormat
	NumFrames    int
	TotalFrames  int
	Stage        Stage
	Action       string
	Caption      string
	Confidence   float64
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

// NewPrediction starts tracking an accepted upload.
func NewPrediction(filename string, format VideoFormat, numFrames int) *Prediction {
	now := time.Now().UTC()
	return &Prediction{
		ID:        uuid.New(),
		Filename:  filename,
		Format:    format,
		NumFrames: numFrames,
		Stage:     StageReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the prediction to the next pipeline stage.
func (p *Prediction) Advance(stage Stage) {
	p.Stage = stage
	p.UpdatedAt = time.Now().UTC()
}

// Complete records the classification result and ends the pipeline.
func (p *Prediction) Complete(action string, confidence float64) {
	now := time.Now().UTC()
	p.Stage = StageCompleted
	p.Action = action
	p.Caption = Caption(action)
	p.Confidence = confidence
	p.UpdatedAt = now
	p.CompletedAt = &now
}

// Fail ends the pipeline with the originating error message. Failed is
// terminal: no further transitions happen on this prediction.
func (p *Prediction) Fail(errMsg string) {
	now := time.Now().UTC()
	p.Stage = StageFailed
	p.ErrorMessage = errMsg
	p.UpdatedAt = now
	p.CompletedAt = &now
}

// Terminal reports whether the prediction reached a final stage.
func (p *Prediction) Terminal() bool {
	return p.Stage == StageCompleted || p.Stage == StageFailed
}

// PredictionEvent is the message published after a prediction reaches a
// terminal state.
type PredictionEvent struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	Filename     string    `json:"filename"`
	Stage        Stage     `json:"stage"`
	Action       string    `json:"action,omitempty"`
	Confidence   float64   `json:"confidence,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	NumFrames    int       `json:"num_frames"`
	TotalFrames  int       `json:"total_frames,omitempty"`
}

// Event builds the outbound event for the prediction's current state.
func (p *Prediction) Event() PredictionEvent {
	return PredictionEvent{
		PredictionID: p.ID,
		Filename:     p.Filename,
		Stage:        p.Stage,
		Action:       p.Action,
		Confidence:   p.Confidence,
		ErrorMessage: p.ErrorMessage,
		NumFrames:    p.NumFrames,
		TotalFrames:  p.TotalFrames,
	}
}
