package allocator

import (
	"github.com/cockroachdb/errors"
	"github.com/go-kit/log/level"
)

// assertf panics with an assertion failure when cond does not hold.
// It guards internal state only and is never triggered by caller input.
func (a *Allocator) assertf(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	err := errors.AssertionFailedf(format, args...)
	level.Error(a.logger).Log("msg", "internal invariant violated", "err", err)
	panic(err)
}

func (a *Allocator) verify() {
	if !a.checkInvariants {
		return
	}
	if err := a.Validate(); err != nil {
		level.Error(a.logger).Log("msg", "internal invariant violated", "err", err)
		panic(err)
	}
}

// Validate walks every structure of the allocator and reports the first
// broken invariant as an assertion failure.
func (a *Allocator) Validate() error {
	var (
		expectedStart uint32
		busy          uint32
		size          uint32
		busyCount     int
		prevFree      bool
	)
	prevSlot := nullSlot
	freeSlots := map[uint32]int{}

	for n := a.ledger.front(); n != nullSlot; n = a.ledger.nextOf(n) {
		node := a.arena.get(n)
		r := node.region
		size++

		if node.prev != prevSlot {
			return errors.AssertionFailedf("region %s links back to slot %d, expected %d", r, node.prev, prevSlot)
		}
		if r.State == StateInvalid {
			return errors.AssertionFailedf("invalid region %s is still in the ledger", r)
		}
		if r.Length == 0 {
			return errors.AssertionFailedf("empty region at %d", r.Start)
		}
		if r.Start != expectedStart {
			return errors.AssertionFailedf("region %s does not start at %d", r, expectedStart)
		}
		if uint64(r.Start)+uint64(r.Length) > uint64(a.capacity) {
			return errors.AssertionFailedf("region %s exceeds capacity %d", r, a.capacity)
		}

		switch r.State {
		case StateFree:
			if prevFree {
				return errors.AssertionFailedf("free region %s follows another free region", r)
			}
			freeSlots[n] = 0
		case StateBusy:
			slot, ok := a.index.lookup(r.Start)
			if !ok || slot != n {
				return errors.AssertionFailedf("busy region %s is not indexed", r)
			}
			busy += r.Length
			busyCount++
		}

		prevFree = r.State == StateFree
		prevSlot = n
		expectedStart = r.End()
	}

	if expectedStart != a.capacity {
		return errors.AssertionFailedf("ledger covers %d cells, capacity is %d", expectedStart, a.capacity)
	}
	if size != a.ledger.size {
		return errors.AssertionFailedf("ledger has %d regions, size says %d", size, a.ledger.size)
	}
	if busy != a.busyCells {
		return errors.AssertionFailedf("ledger has %d busy cells, counter says %d", busy, a.busyCells)
	}
	if n := a.index.count(); n != busyCount {
		return errors.AssertionFailedf("address index has %d entries for %d busy regions", n, busyCount)
	}

	stale := 0
	for _, slot := range a.stack.contentOfStack() {
		if a.graveyard.contains(slot) {
			if !a.isStale(slot) {
				return errors.AssertionFailedf("graveyard slot %d is not invalid", slot)
			}
			stale++
			continue
		}
		count, ok := freeSlots[slot]
		if !ok {
			return errors.AssertionFailedf("recency stack entry %d is neither free nor retired", slot)
		}
		if count > 0 {
			return errors.AssertionFailedf("free region %s is on the recency stack twice", *a.arena.region(slot))
		}
		freeSlots[slot] = count + 1
	}
	for slot, count := range freeSlots {
		if count == 0 {
			return errors.AssertionFailedf("free region %s is missing from the recency stack", *a.arena.region(slot))
		}
	}
	if stale != a.graveyard.size() {
		return errors.AssertionFailedf("%d stale stack entries for %d graveyard regions", stale, a.graveyard.size())
	}

	if _, _, ok := a.stack.surface(a.isStale); ok != (a.FreeSpace() != 0) {
		return errors.AssertionFailedf("recency stack has a live top: %t, but %d cells are free", ok, a.FreeSpace())
	}
	if a.arena.used != a.ledger.size+uint32(a.graveyard.size()) {
		return errors.AssertionFailedf("arena holds %d regions, ledger and graveyard hold %d",
			a.arena.used, a.ledger.size+uint32(a.graveyard.size()))
	}
	return nil
}
