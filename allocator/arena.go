package allocator

import "math"

const nullSlot uint32 = math.MaxUint32

type regionNode struct {
	region Region

	// next doubles as the free list link while the slot is unused
	next uint32
	prev uint32
}

// arena stores regions in stable slots, so that the ledger, the address index
// and the recency stack can refer to a region by slot number.
type arena struct {
	nodes    []regionNode
	freeList uint32
	used     uint32
}

func newArena(capacityHint uint32) *arena {
	return &arena{
		nodes:    make([]regionNode, 0, capacityHint),
		freeList: nullSlot,
		used:     0,
	}
}

func (a *arena) contentOfFreeList() []uint32 {
	var result []uint32
	n := a.freeList
	for n != nullSlot {
		result = append(result, n)
		n = a.nodes[n].next
	}
	return result
}

func (a *arena) allocate(r Region) uint32 {
	a.used++
	if a.freeList == nullSlot {
		a.nodes = append(a.nodes, regionNode{
			region: r,
			next:   nullSlot,
			prev:   nullSlot,
		})
		return uint32(len(a.nodes) - 1)
	}

	slot := a.freeList
	node := &a.nodes[slot]
	a.freeList = node.next

	node.region = r
	node.next = nullSlot
	node.prev = nullSlot
	return slot
}

func (a *arena) deallocate(slot uint32) {
	a.used--
	node := &a.nodes[slot]
	node.region = Region{}
	node.prev = nullSlot
	node.next = a.freeList
	a.freeList = slot
}

func (a *arena) get(slot uint32) *regionNode {
	return &a.nodes[slot]
}

func (a *arena) region(slot uint32) *Region {
	return &a.nodes[slot].region
}
