package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIndicesEvenSpacing(t *testing.T) {
	indices, err := SampleIndices(30, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 7, 15, 22, 29}, indices)
}

func TestSampleIndicesCoversFirstAndLast(t *testing.T) {
	for _, tc := range []struct{ total, n int }{
		{2, 2}, {10, 2}, {10, 3}, {100, 5}, {7, 7}, {1000, 16}, {31, 30},
	} {
		indices, err := SampleIndices(tc.total, tc.n)
		require.NoError(t, err, "total=%d n=%d", tc.total, tc.n)
		require.Len(t, indices, tc.n)
		assert.Equal(t, 0, indices[0], "total=%d n=%d", tc.total, tc.n)
		assert.Equal(t, tc.total-1, indices[len(indices)-1], "total=%d n=%d", tc.total, tc.n)
	}
}

func TestSampleIndicesStrictlyIncreasingInBounds(t *testing.T) {
	for total := 1; total <= 120; total++ {
		for n := 1; n <= total; n++ {
			indices, err := SampleIndices(total, n)
			require.NoError(t, err)
			require.Len(t, indices, n)
			for i, idx := range indices {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, total)
				if i > 0 {
					assert.Greater(t, idx, indices[i-1],
						"total=%d n=%d indices=%v", total, n, indices)
				}
			}
		}
	}
}

func TestSampleIndicesSingleFramePicksMiddle(t *testing.T) {
	indices, err := SampleIndices(30, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{15}, indices)

	indices, err = SampleIndices(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, indices)
}

func TestSampleIndicesDeterministic(t *testing.T) {
	a, err := SampleIndices(173, 9)
	require.NoError(t, err)
	b, err := SampleIndices(173, 9)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleIndicesVideoTooShort(t *testing.T) {
	_, err := SampleIndices(3, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientFrames)
}

func TestSampleIndicesRejectsNonPositiveN(t *testing.T) {
	_, err := SampleIndices(10, 0)
	assert.Error(t, err)
	_, err = SampleIndices(10, -3)
	assert.Error(t, err)
}

func TestBuildClipPreservesOrder(t *testing.T) {
	frames := make([]Frame, 4)
	for i := range frames {
		frames[i].Pixels[0] = float32(i + 1)
	}

	clip := BuildClip(frames)
	require.Equal(t, 4, clip.Len())

	tensor := clip.Tensor()
	stride := FrameSize * FrameSize * FrameChannels
	require.Len(t, tensor, 4*stride)
	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(i+1), tensor[i*stride])
	}
}

func TestBuildClipCopiesInput(t *testing.T) {
	frames := make([]Frame, 2)
	clip := BuildClip(frames)

	frames[0].Pixels[0] = 42
	assert.Equal(t, float32(0), clip.Tensor()[0])
}
