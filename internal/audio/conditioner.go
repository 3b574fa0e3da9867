// Package audio implements the signal conditioning step that normalizes raw
// PCM input before it reaches the constellation builder.
package audio

import (
	"errors"
)

// ErrEmptyAudio is returned by ToMono when given zero samples.
var ErrEmptyAudio = errors.New("audio: empty input")

// ToMono reduces interleaved multi-channel PCM to a single channel by
// arithmetic mean, using integer division (truncation toward zero) so the
// rounding rule is identical at ingest and query time.
func ToMono(samples []int32, channels int) ([]int32, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyAudio
	}
	if channels <= 1 {
		out := make([]int32, len(samples))
		copy(out, samples)
		return out, nil
	}
	if len(samples)%channels != 0 {
		samples = samples[:len(samples)-(len(samples)%channels)]
	}
	frames := len(samples) / channels
	out := make([]int32, frames)
	for i := 0; i < frames; i++ {
		var sum int64
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			sum += int64(samples[base+ch])
		}
		out[i] = int32(sum / int64(channels))
	}
	return out, nil
}

// PadToMultiple appends trailing zero samples so len(result) is a multiple
// of windowLen. windowLen must be positive.
func PadToMultiple(samples []float64, windowLen int) []float64 {
	if len(samples) == 0 {
		return samples
	}
	remainder := len(samples) % windowLen
	if remainder == 0 {
		return samples
	}
	padding := windowLen - remainder
	out := make([]float64, len(samples)+padding)
	copy(out, samples)
	return out
}

// ToFloat64 converts int32 PCM samples to float64 in [-1, 1], normalizing
// against the full int32 range.
func ToFloat64(samples []int32) []float64 {
	out := make([]float64, len(samples))
	const scale = 1.0 / 2147483648.0
	for i, s := range samples {
		out[i] = float64(s) * scale
	}
	return out
}
