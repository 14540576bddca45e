package port

import (
	"context"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
)

// VideoProbe describes a decodable video source.
type VideoProbe struct {
	TotalFrames int
	FPS         float64
}

// VideoDecoder probes an uploaded video and materializes a chosen set of
// frame indices. Extraction decodes the stream sequentially and discards
// frames outside the index set.
type VideoDecoder interface {
	// Probe returns the total frame count and frame rate of the video.
	Probe(ctx context.Context, videoPath string) (VideoProbe, error)

	// ExtractFrames decodes exactly the given ascending frame indices into
	// image files under outputDir and returns their paths in temporal order.
	ExtractFrames(ctx context.Context, videoPath string, indices []int, outputDir string) ([]string, error)
}

// ClipBuilder preprocesses extracted frame files into a clip tensor,
// preserving temporal order.
type ClipBuilder interface {
	BuildClip(framePaths []string) (entity.Clip, error)
}
