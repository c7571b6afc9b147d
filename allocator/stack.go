package allocator

// recencyStack holds the slots of recently freed regions, most recent last.
// Entries are not removed when their region is merged away, they are
// dropped only once they reach the top.
type recencyStack struct {
	slots []uint32
}

func newRecencyStack() *recencyStack {
	return &recencyStack{}
}

func (s *recencyStack) len() int {
	return len(s.slots)
}

func (s *recencyStack) push(slot uint32) {
	s.slots = append(s.slots, slot)
}

func (s *recencyStack) top() uint32 {
	return s.slots[len(s.slots)-1]
}

func (s *recencyStack) pop() uint32 {
	n := len(s.slots) - 1
	slot := s.slots[n]
	s.slots = s.slots[:n]
	return slot
}

// surface finds the first entry from the top that is not stale, without
// popping anything. It returns the number of stale entries above that entry.
func (s *recencyStack) surface(stale func(slot uint32) bool) (slot uint32, depth int, ok bool) {
	for i := len(s.slots) - 1; i >= 0; i-- {
		if !stale(s.slots[i]) {
			return s.slots[i], len(s.slots) - 1 - i, true
		}
	}
	return nullSlot, len(s.slots), false
}

// contentOfStack returns the entries from bottom to top
func (s *recencyStack) contentOfStack() []uint32 {
	result := make([]uint32, len(s.slots))
	copy(result, s.slots)
	return result
}
