// Package fingerprint implements the constellation builder and
// combinatorial hash generator described by the DSP pipeline's components B
// and C: short-time spectral analysis, prominence-based peak picking, and
// 32-bit hash packing.
package fingerprint

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// WindowSeconds is the STFT frame length in seconds.
	WindowSeconds = 0.5
	// MaxPeaksPerFrame caps how many peaks survive per time frame.
	MaxPeaksPerFrame = 15
	// MinPeakDistanceBins is the minimum bin spacing between surviving peaks.
	MinPeakDistanceBins = 200
)

// Peak is a single constellation point: a time frame index paired with the
// frequency, in Hz, of a spectral peak within that frame.
type Peak struct {
	FrameIndex uint32
	FreqHz     float32
}

// windowLength returns the STFT window length in samples for sampleRate,
// rounded up to an even number of samples as the reference algorithm does.
func windowLength(sampleRate int) int {
	n := int(WindowSeconds * float64(sampleRate))
	if n%2 != 0 {
		n++
	}
	if n < 2 {
		n = 2
	}
	return n
}

// hannWindow returns the n-point symmetric Hann window.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// BuildConstellation computes the STFT magnitude of mono samples and selects
// the most prominent peaks of each non-overlapping frame. samples must
// already be padded to a multiple of the frame length (see internal/audio).
// The returned Peaks are ordered by FrameIndex ascending, matching the
// invariant the hash generator relies on.
func BuildConstellation(samples []float64, sampleRate int) []Peak {
	n := windowLength(sampleRate)
	if len(samples) == 0 || n <= 0 {
		return nil
	}

	window := hannWindow(n)
	numFrames := len(samples) / n

	var constellation []Peak
	for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
		frame := samples[frameIdx*n : (frameIdx+1)*n]

		windowed := make([]float64, n)
		for i, s := range frame {
			windowed[i] = s * window[i]
		}

		spectrum := fft.FFTReal(windowed)
		// One-sided spectrum: bins [0, n/2] inclusive.
		half := n/2 + 1
		magnitude := make([]float64, half)
		for i := 0; i < half; i++ {
			magnitude[i] = cmplxAbs(spectrum[i])
		}

		peakBins := selectPeaks(magnitude, MinPeakDistanceBins, MaxPeaksPerFrame)
		for _, bin := range peakBins {
			freqHz := float64(bin) * float64(sampleRate) / float64(n)
			constellation = append(constellation, Peak{
				FrameIndex: uint32(frameIdx),
				FreqHz:     float32(freqHz),
			})
		}
	}

	return constellation
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// selectPeaks finds local maxima in magnitude, suppresses candidates closer
// than minDistance bins to a taller neighbor, scores the survivors by
// prominence, and returns at most maxPeaks bin indices, highest prominence
// first disregarding order (caller only needs the set of bins).
func selectPeaks(magnitude []float64, minDistance, maxPeaks int) []int {
	candidates := localMaxima(magnitude)
	if len(candidates) == 0 {
		return nil
	}

	survivors := suppressByDistance(magnitude, candidates, minDistance)

	type scored = struct {
		bin        int
		prominence float64
	}
	scoredPeaks := make([]scored, 0, len(survivors))
	for _, bin := range survivors {
		scoredPeaks = append(scoredPeaks, scored{bin: bin, prominence: prominence(magnitude, bin)})
	}

	// Partial selection of the top maxPeaks by prominence; ties keep the
	// lower bin index first, for determinism across re-extraction.
	sortByProminenceDesc(scoredPeaks)

	n := maxPeaks
	if n > len(scoredPeaks) {
		n = len(scoredPeaks)
	}

	bins := make([]int, n)
	for i := 0; i < n; i++ {
		bins[i] = scoredPeaks[i].bin
	}
	return bins
}

func sortByProminenceDesc(peaks []struct {
	bin        int
	prominence float64
}) {
	for i := 1; i < len(peaks); i++ {
		j := i
		for j > 0 {
			a, b := peaks[j-1], peaks[j]
			if a.prominence < b.prominence || (a.prominence == b.prominence && a.bin > b.bin) {
				peaks[j-1], peaks[j] = peaks[j], peaks[j-1]
				j--
				continue
			}
			break
		}
	}
}

// localMaxima returns bin indices that are strictly greater than both
// immediate neighbors (edges compare only against their single neighbor).
func localMaxima(magnitude []float64) []int {
	var out []int
	for i := range magnitude {
		left := i == 0 || magnitude[i] > magnitude[i-1]
		right := i == len(magnitude)-1 || magnitude[i] > magnitude[i+1]
		if left && right {
			out = append(out, i)
		}
	}
	return out
}

// suppressByDistance keeps, within every sliding window of minDistance bins,
// only the tallest candidate; ties favor the earlier (lower-bin) candidate.
func suppressByDistance(magnitude []float64, candidates []int, minDistance int) []int {
	if minDistance <= 1 {
		return candidates
	}

	kept := make([]bool, len(candidates))
	for i := range candidates {
		kept[i] = true
	}

	for i := 0; i < len(candidates); i++ {
		if !kept[i] {
			continue
		}
		for j := i + 1; j < len(candidates) && candidates[j]-candidates[i] < minDistance; j++ {
			if !kept[j] {
				continue
			}
			if magnitude[candidates[j]] > magnitude[candidates[i]] {
				kept[i] = false
				break
			}
			kept[j] = false
		}
	}

	var out []int
	for i, c := range candidates {
		if kept[i] {
			out = append(out, c)
		}
	}
	return out
}

// prominence scans outward from bin in both directions until a strictly
// higher sample or an array edge is reached, tracking the lowest point
// (valley) seen on each side, and returns height minus the higher valley.
func prominence(magnitude []float64, bin int) float64 {
	height := magnitude[bin]

	leftMin := height
	for i := bin - 1; i >= 0; i-- {
		if magnitude[i] > height {
			break
		}
		if magnitude[i] < leftMin {
			leftMin = magnitude[i]
		}
	}

	rightMin := height
	for i := bin + 1; i < len(magnitude); i++ {
		if magnitude[i] > height {
			break
		}
		if magnitude[i] < rightMin {
			rightMin = magnitude[i]
		}
	}

	higherValley := leftMin
	if rightMin > higherValley {
		higherValley = rightMin
	}
	return height - higherValley
}
