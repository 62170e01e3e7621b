package navigation

// Sequencer tracks the current index into a fixed ordered image list.
// Movement clamps to [0, Len()-1]; there is no wraparound.
type Sequencer struct {
	index  int
	length int
}

// NewSequencer returns a sequencer at index 0 over length items.
func NewSequencer(length int) *Sequencer {
	if length < 0 {
		length = 0
	}
	return &Sequencer{length: length}
}

// Index returns the current index (0 for an empty list).
func (s *Sequencer) Index() int { return s.index }

// Len returns the list length.
func (s *Sequencer) Len() int { return s.length }

// Next moves forward one item; reports whether the index changed.
func (s *Sequencer) Next() bool { return s.Select(s.index + 1) }

// Prev moves back one item; reports whether the index changed.
func (s *Sequencer) Prev() bool { return s.Select(s.index - 1) }

// Select jumps to i, clamped; reports whether the index changed.
func (s *Sequencer) Select(i int) bool {
	if s.length == 0 {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i > s.length-1 {
		i = s.length - 1
	}
	if i == s.index {
		return false
	}
	s.index = i
	return true
}

// AtEnd reports whether the current index is the last item.
func (s *Sequencer) AtEnd() bool { return s.length == 0 || s.index == s.length-1 }
