package onnx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

func TestLoadMissingModelFile(t *testing.T) {
	_, err := Load(Config{
		ModelPath:   filepath.Join(t.TempDir(), "no_such_model.onnx"),
		LibraryPath: "/usr/lib/libonnxruntime.so",
		InputName:   "input",
		OutputName:  "output",
		NumFrames:   5,
	}, zap.NewNop())

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrModelLoad))
}

func TestLoadBadRuntimeLibrary(t *testing.T) {
	if ort.IsInitialized() {
		t.Skip("onnxruntime already initialized in this process")
	}

	modelPath := filepath.Join(t.TempDir(), "model.onnx")
	require.NoError(t, os.WriteFile(modelPath, []byte("not a real model"), 0644))

	_, err := Load(Config{
		ModelPath:   modelPath,
		LibraryPath: filepath.Join(t.TempDir(), "no_such_libonnxruntime.so"),
		InputName:   "input",
		OutputName:  "output",
		NumFrames:   5,
	}, zap.NewNop())

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrModelLoad))
}

func TestValidateOutput(t *testing.T) {
	raw := []float32{0.1, 0.1, 0.1, 0.5, 0.1, 0.05, 0.05}
	probs, err := validateOutput(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, probs)

	// The copy must not alias the runtime's output buffer.
	raw[3] = 0
	assert.Equal(t, float32(0.5), probs[3])
}

func TestValidateOutputWrongCount(t *testing.T) {
	for _, raw := range [][]float32{nil, {0.5}, make([]float32, entity.NumClasses+1)} {
		_, err := validateOutput(raw)
		require.Error(t, err)

		// A truncated or oversized output means a broken model, which must
		// surface as a server error, never as a rejected request.
		assert.False(t, entity.IsClientError(err))
		assert.False(t, errors.Is(err, entity.ErrShapeMismatch))
	}
}
