package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionLabel(t *testing.T) {
	label, err := ActionLabel(0)
	require.NoError(t, err)
	assert.Equal(t, "Walking", label)

	label, err = ActionLabel(6)
	require.NoError(t, err)
	assert.Equal(t, "Jogging", label)

	_, err = ActionLabel(7)
	assert.Error(t, err)
	_, err = ActionLabel(-1)
	assert.Error(t, err)
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "A person is Boxing", Caption("Boxing"))
}

func TestArgmax(t *testing.T) {
	probs := []float32{0.05, 0.1, 0.6, 0.05, 0.1, 0.05, 0.05}
	assert.Equal(t, 2, Argmax(probs))
}

func TestArgmaxTieResolvesToLowestIndex(t *testing.T) {
	probs := []float32{0.3, 0.3, 0.1, 0.1, 0.1, 0.05, 0.05}
	assert.Equal(t, 0, Argmax(probs))
}

func TestParseVideoFormat(t *testing.T) {
	for filename, want := range map[string]VideoFormat{
		"clip.mp4":     FormatMP4,
		"CLIP.MP4":     FormatMP4,
		"a.b.c.avi":    FormatAVI,
		"movie.mov":    FormatMOV,
		"capture.mkv":  FormatMKV,
	} {
		got, err := ParseVideoFormat(filename)
		require.NoError(t, err, filename)
		assert.Equal(t, want, got, filename)
	}
}

func TestParseVideoFormatRejected(t *testing.T) {
	for _, filename := range []string{"notes.txt", "clip.webm", "video", "clip.mp4.exe"} {
		_, err := ParseVideoFormat(filename)
		require.Error(t, err, filename)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, filename)
	}
}
