package allocator

// addressIndex maps the start address of a busy region to its ledger slot
type addressIndex struct {
	slots []uint32
}

func newAddressIndex(capacity uint32) *addressIndex {
	slots := make([]uint32, capacity)
	for i := range slots {
		slots[i] = nullSlot
	}
	return &addressIndex{slots: slots}
}

func (x *addressIndex) lookup(addr uint32) (uint32, bool) {
	if addr >= uint32(len(x.slots)) {
		return nullSlot, false
	}
	slot := x.slots[addr]
	return slot, slot != nullSlot
}

func (x *addressIndex) set(addr uint32, slot uint32) {
	x.slots[addr] = slot
}

func (x *addressIndex) clear(addr uint32) {
	x.slots[addr] = nullSlot
}

func (x *addressIndex) count() int {
	n := 0
	for _, s := range x.slots {
		if s != nullSlot {
			n++
		}
	}
	return n
}
