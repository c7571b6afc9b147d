package allocator

// ledger is the ordered partition of the address space into regions,
// linked through arena slots.
type ledger struct {
	arena *arena

	next uint32
	prev uint32
	size uint32
}

func newLedger(a *arena) *ledger {
	return &ledger{
		arena: a,

		next: nullSlot,
		prev: nullSlot,
		size: 0,
	}
}

// content returns the regions in address order
func (l *ledger) content() []Region {
	var result []Region
	n := l.next
	for n != nullSlot {
		node := l.arena.get(n)
		result = append(result, node.region)
		n = node.next
	}
	return result
}

func (l *ledger) front() uint32 {
	return l.next
}

func (l *ledger) nextOf(slot uint32) uint32 {
	return l.arena.get(slot).next
}

func (l *ledger) prevOf(slot uint32) uint32 {
	return l.arena.get(slot).prev
}

// pushBack is only used to seed an empty ledger
func (l *ledger) pushBack(r Region) uint32 {
	return l.insertBefore(nullSlot, r)
}

// insertBefore links a new region in front of anchor, nullSlot means the end
func (l *ledger) insertBefore(anchor uint32, r Region) uint32 {
	slot := l.arena.allocate(r)
	node := l.arena.get(slot)
	l.size++

	var prev uint32
	if anchor == nullSlot {
		prev = l.prev
		l.prev = slot
	} else {
		anchorNode := l.arena.get(anchor)
		prev = anchorNode.prev
		anchorNode.prev = slot
	}

	if prev == nullSlot {
		l.next = slot
	} else {
		l.arena.get(prev).next = slot
	}

	node.next = anchor
	node.prev = prev
	return slot
}

// unlink removes the slot from the list, the arena slot stays allocated
func (l *ledger) unlink(slot uint32) {
	l.size--
	node := l.arena.get(slot)

	if node.next != nullSlot {
		l.arena.get(node.next).prev = node.prev
	} else {
		l.prev = node.prev
	}

	if node.prev != nullSlot {
		l.arena.get(node.prev).next = node.next
	} else {
		l.next = node.next
	}

	node.next = nullSlot
	node.prev = nullSlot
}

// erase unlinks the slot and gives it back to the arena
func (l *ledger) erase(slot uint32) {
	l.unlink(slot)
	l.arena.deallocate(slot)
}
