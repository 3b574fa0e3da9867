package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineWave(freqHz float64, sampleRate, numSamples int) []float64 {
	out := make([]float64, numSamples)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sampleRate))
	}
	return out
}

func TestBuildConstellation_Deterministic(t *testing.T) {
	const sampleRate = 8000
	samples := sineWave(440, sampleRate, sampleRate*2)

	first := BuildConstellation(samples, sampleRate)
	second := BuildConstellation(samples, sampleRate)

	require.Equal(t, first, second)
}

func TestBuildConstellation_SortedByFrame(t *testing.T) {
	const sampleRate = 8000
	samples := sineWave(440, sampleRate, sampleRate*2)

	peaks := BuildConstellation(samples, sampleRate)
	require.NotEmpty(t, peaks)

	for i := 1; i < len(peaks); i++ {
		assert.LessOrEqual(t, peaks[i-1].FrameIndex, peaks[i].FrameIndex)
	}
}

func TestBuildConstellation_RespectsMaxPeaksPerFrame(t *testing.T) {
	const sampleRate = 8000
	samples := sineWave(440, sampleRate, sampleRate*2)

	peaks := BuildConstellation(samples, sampleRate)
	counts := map[uint32]int{}
	for _, p := range peaks {
		counts[p.FrameIndex]++
	}
	for _, c := range counts {
		assert.LessOrEqual(t, c, MaxPeaksPerFrame)
	}
}

func TestBuildConstellation_EmptyInput(t *testing.T) {
	peaks := BuildConstellation(nil, 8000)
	assert.Empty(t, peaks)
}

func TestBuildConstellation_DominantFrequencyIsCaptured(t *testing.T) {
	const sampleRate = 8000
	samples := sineWave(1000, sampleRate, sampleRate*2)

	peaks := BuildConstellation(samples, sampleRate)
	require.NotEmpty(t, peaks)

	found := false
	for _, p := range peaks {
		if math.Abs(float64(p.FreqHz)-1000) < 50 {
			found = true
			break
		}
	}
	assert.True(t, found, "expected a peak near the dominant 1kHz tone")
}

func TestSelectPeaks_Prominence(t *testing.T) {
	magnitude := []float64{0, 1, 0, 5, 0, 1, 0}
	bins := selectPeaks(magnitude, 1, 10)
	assert.Contains(t, bins, 3)
}
