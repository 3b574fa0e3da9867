package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreqBin_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, uint32(0), freqBin(-100))
	assert.Equal(t, uint32(freqBinMax), freqBin(100_000))
	assert.Equal(t, uint32(0), freqBin(0))
}

func TestPackUnpackHash_RoundTrip(t *testing.T) {
	anchor, target, delta := uint32(12), uint32(900), uint32(7)
	h := packHash(anchor, target, delta)

	gotAnchor, gotTarget, gotDelta := UnpackHash(h)
	assert.Equal(t, anchor, gotAnchor)
	assert.Equal(t, target, gotTarget)
	assert.Equal(t, delta, gotDelta)
}

func TestGenerateHashes_FiltersFrameDelta(t *testing.T) {
	constellation := []Peak{
		{FrameIndex: 0, FreqHz: 100},
		{FrameIndex: 1, FreqHz: 200}, // delta 1: excluded
		{FrameIndex: 2, FreqHz: 300}, // delta 2: included
		{FrameIndex: 11, FreqHz: 400}, // delta 11: excluded
	}

	hashes := GenerateHashes(constellation)
	require.NotEmpty(t, hashes)

	for h := range hashes {
		_, _, delta := UnpackHash(h)
		assert.GreaterOrEqual(t, delta, uint32(2))
		assert.LessOrEqual(t, delta, uint32(10))
	}
}

func TestGenerateHashes_Deterministic(t *testing.T) {
	constellation := []Peak{
		{FrameIndex: 0, FreqHz: 100},
		{FrameIndex: 3, FreqHz: 250},
		{FrameIndex: 5, FreqHz: 400},
	}

	first := GenerateHashes(constellation)
	second := GenerateHashes(constellation)
	assert.Equal(t, first, second)
}

func TestGenerateHashes_FanOutBound(t *testing.T) {
	// Only the first fanOut peaks after an anchor are considered; build a
	// constellation longer than fanOut and confirm it doesn't panic or
	// silently include out-of-range slices.
	constellation := make([]Peak, fanOut+10)
	for i := range constellation {
		constellation[i] = Peak{FrameIndex: uint32(i), FreqHz: float32(100 + i)}
	}
	assert.NotPanics(t, func() {
		GenerateHashes(constellation)
	})
}
