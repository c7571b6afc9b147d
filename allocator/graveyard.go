package allocator

// graveyard keeps merged-away regions out of arena reuse while the recency
// stack may still refer to them. A retired slot is given back to the arena
// only when its stack entry is pruned.
type graveyard struct {
	arena  *arena
	ledger *ledger
	slots  map[uint32]struct{}
}

func newGraveyard(a *arena, l *ledger) *graveyard {
	return &graveyard{
		arena:  a,
		ledger: l,
		slots:  map[uint32]struct{}{},
	}
}

// retire moves a live region out of the ledger and marks it invalid
func (g *graveyard) retire(slot uint32) {
	g.ledger.unlink(slot)
	g.arena.region(slot).State = StateInvalid
	g.slots[slot] = struct{}{}
}

func (g *graveyard) contains(slot uint32) bool {
	_, ok := g.slots[slot]
	return ok
}

// bury destroys a retired region for good
func (g *graveyard) bury(slot uint32) {
	delete(g.slots, slot)
	g.arena.deallocate(slot)
}

func (g *graveyard) size() int {
	return len(g.slots)
}
