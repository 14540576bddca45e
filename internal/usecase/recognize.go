package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/port"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// RecognizeActionUseCase drives one upload through the pipeline:
// decode -> sample -> preprocess -> infer. Stages are strictly sequential
// with no retries; the first failing stage terminates the request.
type RecognizeActionUseCase struct {
	decoder   port.VideoDecoder
	clips     port.ClipBuilder
	predictor port.Predictor
	repo      port.PredictionRepository
	archive   port.VideoArchive
	publisher port.EventPublisher
	logger    *zap.Logger

	decodeTimeout time.Duration
}

type RecognizeConfig struct {
	DecodeTimeout time.Duration
}

func NewRecognizeActionUseCase(
	decoder port.VideoDecoder,
	clips port.ClipBuilder,
	predictor port.Predictor,
	repo port.PredictionRepository,
	archive port.VideoArchive,
	publisher port.EventPublisher,
	logger *zap.Logger,
	cfg RecognizeConfig,
) *RecognizeActionUseCase {
	return &RecognizeActionUseCase{
		decoder:       decoder,
		clips:         clips,
		predictor:     predictor,
		repo:          repo,
		archive:       archive,
		publisher:     publisher,
		logger:        logger,
		decodeTimeout: cfg.DecodeTimeout,
	}
}

// Input describes an accepted upload already staged on local disk. The
// caller owns VideoPath's directory and removes it when Execute returns.
type Input struct {
	VideoPath string
	Filename  string
	Format    entity.VideoFormat
	NumFrames int
}

// Execute runs the recognition pipeline and returns the terminal
// prediction. The returned error carries the originating stage's kind and
// is scoped to this request only.
func (uc *RecognizeActionUseCase) Execute(ctx context.Context, in Input) (*entity.Prediction, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "RecognizeActionUseCase.Execute")
	defer span.End()

	p := entity.NewPrediction(in.Filename, in.Format, in.NumFrames)
	span.SetAttributes(
		attribute.String("prediction.id", p.ID.String()),
		attribute.String("prediction.filename", in.Filename),
		attribute.Int("prediction.num_frames", in.NumFrames),
	)

	log := uc.logger.With(
		zap.String("prediction_id", p.ID.String()),
		zap.String("filename", in.Filename),
	)

	if err := uc.repo.Create(ctx, p); err != nil {
		log.Error("failed to create prediction record", zap.Error(err))
	}

	metrics.InFlightRequests.Inc()
	defer metrics.InFlightRequests.Dec()

	probs, err := uc.runPipeline(ctx, p, in, log)
	if err != nil {
		p.Fail(err.Error())
		uc.finish(ctx, p, log)
		metrics.PredictionsTotal.WithLabelValues("failed").Inc()
		return p, err
	}

	idx := entity.Argmax(probs)
	label, err := entity.ActionLabel(idx)
	if err != nil {
		p.Fail(err.Error())
		uc.finish(ctx, p, log)
		metrics.PredictionsTotal.WithLabelValues("failed").Inc()
		return p, err
	}

	p.Complete(label, float64(probs[idx]))
	uc.finish(ctx, p, log)
	uc.archiveVideo(ctx, p, in, log)

	metrics.PredictionsTotal.WithLabelValues("completed").Inc()
	metrics.PredictionsByAction.WithLabelValues(label).Inc()

	log.Info("prediction completed",
		zap.String("action", p.Action),
		zap.Float64("confidence", p.Confidence),
		zap.Int("total_frames", p.TotalFrames),
	)

	return p, nil
}

func (uc *RecognizeActionUseCase) runPipeline(ctx context.Context, p *entity.Prediction, in Input, log *zap.Logger) ([]float32, error) {
	tracer := otel.Tracer("usecase")

	// A slow or malicious upload must not hold a worker indefinitely; the
	// decode stages share one deadline.
	decodeCtx, cancel := context.WithTimeout(ctx, uc.decodeTimeout)
	defer cancel()

	// Decoding: probe stream properties.
	start := time.Now()
	probeCtx, span := tracer.Start(decodeCtx, "probe_video")
	p.Advance(entity.StageDecoding)
	probe, err := uc.decoder.Probe(probeCtx, in.VideoPath)
	span.End()
	if err != nil {
		log.Warn("video probe failed", zap.Error(err))
		return nil, err
	}
	p.TotalFrames = probe.TotalFrames
	metrics.StageDuration.WithLabelValues("decode").Observe(time.Since(start).Seconds())

	// Sampling: compute indices, then decode exactly those frames.
	start = time.Now()
	sampleCtx, span := tracer.Start(decodeCtx, "sample_frames")
	p.Advance(entity.StageSampling)
	indices, err := entity.SampleIndices(probe.TotalFrames, in.NumFrames)
	if err != nil {
		span.End()
		return nil, err
	}

	framesDir := filepath.Join(filepath.Dir(in.VideoPath), "frames")
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		span.End()
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	framePaths, err := uc.decoder.ExtractFrames(sampleCtx, in.VideoPath, indices, framesDir)
	span.End()
	if err != nil {
		log.Warn("frame extraction failed", zap.Error(err))
		return nil, err
	}
	metrics.StageDuration.WithLabelValues("sample").Observe(time.Since(start).Seconds())
	metrics.FramesSampledTotal.Add(float64(len(framePaths)))

	// Preprocessing: resize + normalize, assemble the clip in order.
	start = time.Now()
	_, span = tracer.Start(ctx, "preprocess_frames")
	p.Advance(entity.StagePreprocessing)
	clip, err := uc.clips.BuildClip(framePaths)
	span.End()
	if err != nil {
		log.Warn("preprocessing failed", zap.Error(err))
		return nil, err
	}
	metrics.StageDuration.WithLabelValues("preprocess").Observe(time.Since(start).Seconds())

	// Inferring: single serialized model call.
	start = time.Now()
	inferCtx, span := tracer.Start(ctx, "infer")
	p.Advance(entity.StageInferring)
	probs, err := uc.predictor.Predict(inferCtx, clip)
	span.End()
	if err != nil {
		log.Warn("inference failed", zap.Error(err))
		return nil, err
	}
	metrics.StageDuration.WithLabelValues("infer").Observe(time.Since(start).Seconds())

	return probs, nil
}

// finish persists the terminal state and publishes the prediction event.
// Both are best-effort: the caller already holds the result and a storage
// or broker outage must not fail the request.
func (uc *RecognizeActionUseCase) finish(ctx context.Context, p *entity.Prediction, log *zap.Logger) {
	if err := uc.repo.Update(ctx, p); err != nil {
		log.Error("failed to update prediction record", zap.Error(err))
	}

	data, _ := json.Marshal(p.Event())
	if err := uc.publisher.PublishPrediction(ctx, data); err != nil {
		log.Error("failed to publish prediction event", zap.Error(err))
	}
}

func (uc *RecognizeActionUseCase) archiveVideo(ctx context.Context, p *entity.Prediction, in Input, log *zap.Logger) {
	key := fmt.Sprintf("%s/%s", p.ID.String(), in.Filename)
	if err := uc.archive.ArchiveVideo(ctx, key, in.VideoPath); err != nil {
		log.Error("failed to archive video", zap.String("key", key), zap.Error(err))
	}
}
