package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMono_SingleChannelIsIdempotent(t *testing.T) {
	in := []int32{10, -20, 30, -40}
	out, err := ToMono(in, 1)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestToMono_AveragesChannels(t *testing.T) {
	// 2 channels, 2 frames: (10,20) (30,-10)
	in := []int32{10, 20, 30, -10}
	out, err := ToMono(in, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int32(15), out[0])
	assert.Equal(t, int32(10), out[1])
}

func TestToMono_EmptyIsError(t *testing.T) {
	_, err := ToMono(nil, 2)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestToMono_Idempotent(t *testing.T) {
	in := []int32{1, 2, 3, 4, 5, 6}
	once, err := ToMono(in, 2)
	require.NoError(t, err)
	twice, err := ToMono(once, 1)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestPadToMultiple(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := PadToMultiple(in, 4)
	assert.Len(t, out, 8)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 0, 0, 0}, out)
}

func TestPadToMultiple_AlreadyAligned(t *testing.T) {
	in := []float64{1, 2, 3, 4}
	out := PadToMultiple(in, 4)
	assert.Equal(t, in, out)
}

func TestPadToMultiple_Empty(t *testing.T) {
	out := PadToMultiple(nil, 4)
	assert.Empty(t, out)
}
