package entity

import (
	"fmt"
	"math"
)

// FrameSize is the square resolution every sampled frame is resized to.
const FrameSize = 224

// FrameChannels is the number of color channels per pixel (RGB).
const FrameChannels = 3

// DefaultNumFrames is the clip length used when the request does not ask
// for a specific one.
const DefaultNumFrames = 5

// Frame is one preprocessed video frame: FrameSize x FrameSize RGB pixels
// normalized to [0,1], laid out row-major with interleaved channels.
type Frame struct {
	Pixels [FrameSize * FrameSize * FrameChannels]float32
}

// Clip is the ordered frame sequence fed to the model in one inference
// call. Order is temporal, ascending. A Clip is immutable once built and
// owned by the request that created it.
type Clip struct {
	frames []Frame
}

// BuildClip assembles frames into a Clip, preserving input order.
func BuildClip(frames []Frame) Clip {
	out := make([]Frame, len(frames))
	copy(out, frames)
	return Clip{frames: out}
}

// Len returns the number of frames in the clip.
func (c Clip) Len() int { return len(c.frames) }

// Tensor flattens the clip into the model input layout
// [1, len, FrameSize, FrameSize, FrameChannels].
func (c Clip) Tensor() []float32 {
	data := make([]float32, 0, len(c.frames)*FrameSize*FrameSize*FrameChannels)
	for i := range c.frames {
		data = append(data, c.frames[i].Pixels[:]...)
	}
	return data
}

// SampleIndices computes n evenly spaced frame indices across a video with
// totalFrames frames. For n > 1 index i maps to round(i*(total-1)/(n-1)),
// which always covers the first and last frame; for n == 1 the middle frame
// is chosen. Indices are strictly increasing and deterministic.
func SampleIndices(totalFrames, n int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("frame count must be >= 1, got %d", n)
	}
	if totalFrames < n {
		return nil, fmt.Errorf("%w: video has %d frames, %d required",
			ErrInsufficientFrames, totalFrames, n)
	}
	if n == 1 {
		return []int{int(math.Round(float64(totalFrames-1) / 2))}, nil
	}

	indices := make([]int, n)
	step := float64(totalFrames-1) / float64(n-1)
	for i := 0; i < n; i++ {
		indices[i] = int(math.Round(float64(i) * step))
	}
	return indices, nil
}
