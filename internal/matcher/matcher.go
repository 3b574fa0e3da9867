// Package matcher holds the query-time index lookup and offset-histogram
// scoring, plus the lock-free Empty/Loaded state machine that lets queries
// run concurrently with a snapshot load.
package matcher

import (
	"sort"
	"sync/atomic"

	"github.com/maxfilov/shazam/internal/audio"
	"github.com/maxfilov/shazam/internal/fingerprint"
	"github.com/maxfilov/shazam/internal/index"
	"github.com/maxfilov/shazam/internal/metrics"
)

// Score is one track's best offset alignment: the frame offset and how many
// hashes agreed on it.
type Score struct {
	TrackID    uint32
	TrackLabel string
	Offset     int64
	Count      int
}

type loadedState struct {
	idx      index.Index
	registry *index.TrackRegistry
}

// Matcher owns the currently loaded index and registry. The zero value is
// an unloaded (Empty) matcher; Load transitions it to Loaded. Reads never
// block on a concurrent Load: Query reads a single atomic pointer.
type Matcher struct {
	state atomic.Pointer[loadedState]
}

// New returns an unloaded Matcher.
func New() *Matcher {
	return &Matcher{}
}

// Load atomically swaps in a new index and registry. Safe to call while
// queries are in flight: a query observes either the old or the new state,
// never a partial one.
func (m *Matcher) Load(idx index.Index, registry *index.TrackRegistry) {
	m.state.Store(&loadedState{idx: idx, registry: registry})

	met := metrics.Get()
	met.IndexHashCount.Set(float64(len(idx)))
	met.IndexTrackCount.Set(float64(registry.Len()))
}

// Ready reports whether a snapshot has been loaded.
func (m *Matcher) Ready() bool {
	return m.state.Load() != nil
}

// Query extracts a constellation and hashes from samples, then scores every
// track against the loaded index, returning results ordered by descending
// count (ties broken by ascending track ID for determinism).
func (m *Matcher) Query(samples []int32, channels, sampleRate int) ([]Score, error) {
	state := m.state.Load()
	if state == nil {
		return nil, ErrNotReady
	}

	mono, err := audio.ToMono(samples, channels)
	if err != nil {
		return nil, err
	}

	floatSamples := audio.ToFloat64(mono)
	windowSamples := floatSamples
	padded := audio.PadToMultiple(windowSamples, frameLength(sampleRate))

	constellation := fingerprint.BuildConstellation(padded, sampleRate)
	hashes := fingerprint.GenerateHashes(constellation)

	met := metrics.Get()
	met.PeaksExtracted.Observe(float64(len(constellation)))
	met.HashesGenerated.Observe(float64(len(hashes)))

	return score(state.idx, state.registry, hashes), nil
}

func frameLength(sampleRate int) int {
	n := int(fingerprint.WindowSeconds * float64(sampleRate))
	if n%2 != 0 {
		n++
	}
	if n < 2 {
		n = 2
	}
	return n
}

// score accumulates, per track, a histogram of (sourceFrame - queryFrame)
// offsets across every matching hash, then keeps each track's best-scoring
// offset. Per §4.D.2, ties in the per-track offset histogram are broken by
// the smaller offset, and the overall ranking's secondary key is ascending
// track ID — both needed for byte-identical output across runs, since map
// iteration order is randomized.
func score(idx index.Index, registry *index.TrackRegistry, queryHashes map[uint32]uint32) []Score {
	type offsetCounts map[int64]int
	perTrack := make(map[uint32]offsetCounts)

	for hash, queryFrame := range queryHashes {
		postings, ok := idx[hash]
		if !ok {
			continue
		}
		for _, p := range postings {
			counts, ok := perTrack[p.TrackID]
			if !ok {
				counts = make(offsetCounts)
				perTrack[p.TrackID] = counts
			}
			offset := int64(p.AnchorFrame) - int64(queryFrame)
			counts[offset]++
		}
	}

	scores := make([]Score, 0, len(perTrack))
	for trackID, counts := range perTrack {
		label, ok := registry.Label(trackID)
		if !ok {
			continue
		}
		bestOffset, bestCount := int64(0), 0
		first := true
		for offset, count := range counts {
			if first || count > bestCount || (count == bestCount && offset < bestOffset) {
				bestOffset, bestCount = offset, count
				first = false
			}
		}
		scores = append(scores, Score{TrackID: trackID, TrackLabel: label, Offset: bestOffset, Count: bestCount})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Count != scores[j].Count {
			return scores[i].Count > scores[j].Count
		}
		return scores[i].TrackID < scores[j].TrackID
	})

	return scores
}

// Ingest fingerprints one track's samples and adds its hashes to idx under
// the track ID registered for label.
func Ingest(idx index.Index, registry *index.TrackRegistry, label string, samples []int32, channels, sampleRate int) error {
	mono, err := audio.ToMono(samples, channels)
	if err != nil {
		return err
	}

	floatSamples := audio.ToFloat64(mono)
	padded := audio.PadToMultiple(floatSamples, frameLength(sampleRate))

	constellation := fingerprint.BuildConstellation(padded, sampleRate)
	hashes := fingerprint.GenerateHashes(constellation)

	met := metrics.Get()
	met.PeaksExtracted.Observe(float64(len(constellation)))
	met.HashesGenerated.Observe(float64(len(hashes)))

	trackID := registry.Register(label)
	for hash, anchorFrame := range hashes {
		idx.Add(hash, index.Posting{AnchorFrame: anchorFrame, TrackID: trackID})
	}

	return nil
}
