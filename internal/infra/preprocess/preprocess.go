// Package preprocess turns decoded video frames into the normalized clip
// tensor the classifier expects: 224x224 RGB, values in [0,1], temporal
// order preserved.
package preprocess

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	"golang.org/x/image/draw"
)

// FrameFile decodes an extracted frame image from disk and preprocesses it.
func FrameFile(path string) (entity.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("open frame %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("%w: decode frame %s: %v", entity.ErrVideoDecode, path, err)
	}
	return FrameImage(img), nil
}

// FrameImage resizes an image to 224x224 with bilinear interpolation
// (arbitrary aspect ratios are stretched, not cropped) and normalizes
// channel values to [0,1]. Pure function, safe to call concurrently.
func FrameImage(img image.Image) entity.Frame {
	dst := image.NewRGBA(image.Rect(0, 0, entity.FrameSize, entity.FrameSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var frame entity.Frame
	i := 0
	for y := 0; y < entity.FrameSize; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+entity.FrameSize*4]
		for x := 0; x < entity.FrameSize; x++ {
			frame.Pixels[i] = float32(row[x*4]) / 255.0
			frame.Pixels[i+1] = float32(row[x*4+1]) / 255.0
			frame.Pixels[i+2] = float32(row[x*4+2]) / 255.0
			i += entity.FrameChannels
		}
	}
	return frame
}

// Builder implements the clip-building port on top of the package
// functions.
type Builder struct{}

func NewBuilder() Builder { return Builder{} }

func (Builder) BuildClip(framePaths []string) (entity.Clip, error) {
	return Clip(framePaths)
}

// Clip preprocesses the extracted frame files in order and assembles the
// clip tensor. Order corresponds to ascending decode time and must match
// the order the model was trained on.
func Clip(framePaths []string) (entity.Clip, error) {
	frames := make([]entity.Frame, 0, len(framePaths))
	for _, path := range framePaths {
		frame, err := FrameFile(path)
		if err != nil {
			return entity.Clip{}, err
		}
		frames = append(frames, frame)
	}
	return entity.BuildClip(frames), nil
}
