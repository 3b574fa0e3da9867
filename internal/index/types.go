// Package index defines the inverted-index data model: hash tokens mapped
// to postings, and the dense track-id-to-label registry.
package index

// Posting is one occurrence of a hash token within a specific track, at a
// specific anchor frame.
type Posting struct {
	AnchorFrame uint32
	TrackID     uint32
}

// Index maps a combinatorial hash token to every Posting recorded for it
// across all ingested tracks.
type Index map[uint32][]Posting

// NewIndex returns an empty Index.
func NewIndex() Index {
	return make(Index)
}

// Add appends a posting for hash.
func (idx Index) Add(hash uint32, posting Posting) {
	idx[hash] = append(idx[hash], posting)
}

// TrackRegistry maps dense track IDs to their human-readable labels. IDs
// are assigned in ingestion order and are never reused.
type TrackRegistry struct {
	labels map[uint32]string
	nextID uint32
}

// NewTrackRegistry returns an empty TrackRegistry.
func NewTrackRegistry() *TrackRegistry {
	return &TrackRegistry{labels: make(map[uint32]string)}
}

// Register assigns the next dense ID to label and returns it.
func (r *TrackRegistry) Register(label string) uint32 {
	id := r.nextID
	r.labels[id] = label
	r.nextID++
	return id
}

// Label returns the label for id, and whether it exists.
func (r *TrackRegistry) Label(id uint32) (string, bool) {
	label, ok := r.labels[id]
	return label, ok
}

// Len returns the number of registered tracks.
func (r *TrackRegistry) Len() int {
	return len(r.labels)
}
