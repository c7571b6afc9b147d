package allocator

import (
	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
)

// Config ...
type Config struct {
	// Capacity is the number of cells in the address space, fixed for the
	// lifetime of the Allocator
	Capacity uint32

	Logger     log.Logger
	Registerer prometheus.Registerer

	// CheckInvariants runs Validate after every mutating call and panics on failure
	CheckInvariants bool
}

// Allocator simulates a heap over a linear address space of Capacity cells.
// The region freed most recently is the only candidate for the next
// allocation. An Allocator must not be used concurrently.
type Allocator struct {
	capacity  uint32
	busyCells uint32

	arena     *arena
	ledger    *ledger
	index     *addressIndex
	stack     *recencyStack
	graveyard *graveyard

	logger          log.Logger
	metrics         *allocatorMetrics
	checkInvariants bool
}

func allocatorValidateConfig(conf Config) {
	if conf.Capacity == 0 {
		panic("Capacity must > 0")
	}
}

// New ...
func New(conf Config) *Allocator {
	allocatorValidateConfig(conf)

	logger := conf.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	a := newArena(16)
	l := newLedger(a)

	result := &Allocator{
		capacity:  conf.Capacity,
		busyCells: 0,

		arena:     a,
		ledger:    l,
		index:     newAddressIndex(conf.Capacity),
		stack:     newRecencyStack(),
		graveyard: newGraveyard(a, l),

		logger:          log.With(logger, "component", "allocator"),
		metrics:         newAllocatorMetrics(conf.Registerer),
		checkInvariants: conf.CheckInvariants,
	}

	first := l.pushBack(Region{Start: 0, Length: conf.Capacity, State: StateFree})
	result.stack.push(first)
	result.metrics.observeUsage(0, conf.Capacity)

	return result
}

// Capacity ...
func (a *Allocator) Capacity() uint32 {
	return a.capacity
}

// FreeSpace returns the total number of free cells, wherever they are
func (a *Allocator) FreeSpace() uint32 {
	return a.capacity - a.busyCells
}

// Regions returns the ledger in address order
func (a *Allocator) Regions() []Region {
	return a.ledger.content()
}

func (a *Allocator) isStale(slot uint32) bool {
	return a.arena.region(slot).State == StateInvalid
}

// Allocate grants size contiguous cells carved from the front of the most
// recently freed region and returns the first address.
func (a *Allocator) Allocate(size uint32) (uint32, error) {
	if size == 0 {
		a.metrics.allocations.WithLabelValues(outcomeInvalidSize).Inc()
		return 0, errors.Wrap(ErrInvalidSize, "allocate")
	}

	top, stale, ok := a.stack.surface(a.isStale)
	a.assertf(ok == (a.FreeSpace() != 0),
		"recency stack has a live top: %t, but %d cells are free", ok, a.FreeSpace())

	if !ok || a.arena.region(top).Length < size {
		var topLen uint32
		if ok {
			topLen = a.arena.region(top).Length
		}
		a.metrics.allocations.WithLabelValues(outcomeDenied).Inc()
		level.Debug(a.logger).Log("msg", "allocation denied", "size", size, "top_length", topLen, "free", a.FreeSpace())
		return 0, errors.Wrapf(ErrAllocationDenied, "size %d, most recently freed region has %d cells", size, topLen)
	}

	a.prune(stale)

	popped := a.stack.pop()
	freed := *a.arena.region(popped)
	a.assertf(freed.State != StateInvalid, "recency stack top %s is invalid", freed)
	a.assertf(freed.State == StateFree, "recency stack top %s is not free", freed)

	addr := freed.Start
	busy := a.ledger.insertBefore(popped, Region{Start: addr, Length: size, State: StateBusy})

	if freed.Length > size {
		rest := a.ledger.insertBefore(popped, Region{
			Start:  addr + size,
			Length: freed.Length - size,
			State:  StateFree,
		})
		a.stack.push(rest)
	}
	a.ledger.erase(popped)

	_, taken := a.index.lookup(addr)
	a.assertf(!taken, "address index slot %d is already taken", addr)
	a.index.set(addr, busy)

	a.busyCells += size
	a.metrics.allocations.WithLabelValues(outcomeGranted).Inc()
	a.metrics.observeUsage(a.busyCells, a.capacity)

	a.verify()
	return addr, nil
}

// Release gives back the allocation starting at addr, merging it with free
// neighbors. The merged region becomes the next allocation candidate.
func (a *Allocator) Release(addr uint32) error {
	slot, ok := a.index.lookup(addr)
	if !ok {
		a.metrics.releases.WithLabelValues(outcomeUnknown).Inc()
		level.Debug(a.logger).Log("msg", "release of unknown address", "addr", addr)
		return errors.Wrapf(ErrUnknownAddress, "release %d", addr)
	}
	a.index.clear(addr)

	freed := a.arena.region(slot)
	a.assertf(freed.State == StateBusy && freed.Start == addr,
		"address index slot %d refers to %s", addr, *freed)

	freed.State = StateFree
	a.busyCells -= freed.Length

	if next := a.ledger.nextOf(slot); next != nullSlot {
		r := a.arena.region(next)
		if r.State == StateFree {
			freed.Length += r.Length
			a.graveyard.retire(next)
			a.metrics.merges.WithLabelValues(directionRight).Inc()
		}
	}

	if prev := a.ledger.prevOf(slot); prev != nullSlot {
		r := a.arena.region(prev)
		if r.State == StateFree {
			freed.Start = r.Start
			freed.Length += r.Length
			a.graveyard.retire(prev)
			a.metrics.merges.WithLabelValues(directionLeft).Inc()
		}
	}

	_, stale, _ := a.stack.surface(a.isStale)
	a.prune(stale)
	a.stack.push(slot)

	level.Debug(a.logger).Log("msg", "released", "addr", addr, "region", *freed)
	a.metrics.releases.WithLabelValues(outcomeReleased).Inc()
	a.metrics.observeUsage(a.busyCells, a.capacity)

	a.verify()
	return nil
}

// prune drops n stale entries from the top of the stack
func (a *Allocator) prune(n int) {
	for i := 0; i < n; i++ {
		slot := a.stack.pop()
		a.assertf(a.graveyard.contains(slot), "stale stack entry %d is not in the graveyard", slot)
		a.graveyard.bury(slot)
	}
	if n > 0 {
		level.Debug(a.logger).Log("msg", "pruned recency stack", "count", n)
		a.metrics.pruned.Add(float64(n))
	}
}
