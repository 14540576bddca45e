package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/port"
)

// Probe reads the total frame count and frame rate of the first video
// stream. The frame count is exact (-count_frames decodes the stream)
// because sampling indices are computed against it.
func (d *Decoder) Probe(ctx context.Context, videoPath string) (port.VideoProbe, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-count_frames",
		"-show_entries", "stream=nb_read_frames,avg_frame_rate",
		"-of", "default=noprint_wrappers=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		if ctxErr := classifyCtx(ctx); ctxErr != nil {
			return port.VideoProbe{}, ctxErr
		}
		return port.VideoProbe{}, fmt.Errorf("%w: ffprobe: %v", entity.ErrVideoDecode, err)
	}

	probe, err := parseProbeOutput(string(output))
	if err != nil {
		return port.VideoProbe{}, err
	}
	return probe, nil
}

func parseProbeOutput(output string) (port.VideoProbe, error) {
	var probe port.VideoProbe
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "nb_read_frames":
			n, err := strconv.Atoi(value)
			if err != nil {
				return probe, fmt.Errorf("%w: unreadable frame count %q", entity.ErrVideoDecode, value)
			}
			probe.TotalFrames = n
		case "avg_frame_rate":
			probe.FPS = parseFrameRate(value)
		}
	}

	if probe.TotalFrames <= 0 {
		return probe, fmt.Errorf("%w: video reports no decodable frames", entity.ErrVideoDecode)
	}
	if probe.FPS <= 0 {
		return probe, fmt.Errorf("%w: cannot determine frame rate", entity.ErrVideoDecode)
	}
	return probe, nil
}

// parseFrameRate handles ffprobe's fractional rates such as "30000/1001".
func parseFrameRate(value string) float64 {
	num, den, ok := strings.Cut(value, "/")
	if !ok {
		f, _ := strconv.ParseFloat(value, 64)
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

func classifyCtx(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: video decode", entity.ErrTimeout)
	}
	return nil
}
