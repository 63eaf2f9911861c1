// Package coherence defines the MESI coherence metadata attached to cache
// lines. The directory protocol itself is modeled externally; accesses arrive
// already annotated with a state and a sharer count, and this package only
// provides the shared representation.
package coherence

// State is a MESI coherence state.
type State uint8

const (
	// Invalid means the line holds no valid copy.
	Invalid State = 0
	// Shared means a clean copy that may be replicated in other caches.
	Shared State = 1
	// Exclusive means the sole clean copy.
	Exclusive State = 2
	// Modified means the sole dirty copy. Evicting it forces a write-back.
	Modified State = 3
)

// String returns the canonical single-letter MESI name.
func (s State) String() string {
	switch s {
	case Invalid:
		return "I"
	case Shared:
		return "S"
	case Exclusive:
		return "E"
	case Modified:
		return "M"
	}
	return "?"
}
