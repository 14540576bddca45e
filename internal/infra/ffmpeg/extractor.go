package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	"go.uber.org/zap"
)

// Decoder extracts individual frames from uploaded videos by shelling out
// to ffmpeg/ffprobe.
type Decoder struct {
	format string
	logger *zap.Logger
}

func NewDecoder(format string, logger *zap.Logger) *Decoder {
	return &Decoder{format: format, logger: logger}
}

// ExtractFrames decodes exactly the frames at the given ascending indices
// into outputDir and returns the written paths in temporal order. The
// stream is decoded sequentially up to the last index; unselected frames
// are discarded by the select filter, never buffered.
func (d *Decoder) ExtractFrames(ctx context.Context, videoPath string, indices []int, outputDir string) ([]string, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("no frame indices requested")
	}

	framePattern := filepath.Join(outputDir, fmt.Sprintf("frame_%%04d.%s", d.format))
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", selectFilter(indices),
		"-vsync", "0",
		"-y",
		framePattern,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := classifyCtx(ctx); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: ffmpeg: %v, output: %s", entity.ErrVideoDecode, err, string(output))
	}

	globPattern := filepath.Join(outputDir, fmt.Sprintf("*.%s", d.format))
	frames, err := filepath.Glob(globPattern)
	if err != nil {
		return nil, fmt.Errorf("glob frames: %w", err)
	}
	if len(frames) != len(indices) {
		return nil, fmt.Errorf("%w: expected %d frames, decoded %d",
			entity.ErrVideoDecode, len(indices), len(frames))
	}
	// ffmpeg numbers outputs in decode order; sorted paths are temporal order.
	sort.Strings(frames)

	d.logger.Debug("frames extracted",
		zap.Int("count", len(frames)),
		zap.Ints("indices", indices),
	)

	return frames, nil
}

// selectFilter builds the ffmpeg select expression matching exactly the
// given frame numbers, e.g. select=eq(n\,0)+eq(n\,7)+eq(n\,15). Commas are
// escaped for the filtergraph parser; the argument bypasses any shell.
func selectFilter(indices []int) string {
	terms := make([]string, len(indices))
	for i, idx := range indices {
		terms[i] = fmt.Sprintf("eq(n\\,%d)", idx)
	}
	return "select=" + strings.Join(terms, "+")
}
