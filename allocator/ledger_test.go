package allocator

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewLedger(t *testing.T) {
	a := newArena(4)
	l := newLedger(a)

	assert.Equal(t, a, l.arena)
	assert.Equal(t, nullSlot, l.next)
	assert.Equal(t, nullSlot, l.prev)
	assert.Equal(t, uint32(0), l.size)
	assert.Equal(t, []Region(nil), l.content())
	assert.Equal(t, nullSlot, l.front())
}

func TestLedger_Insert_Erase(t *testing.T) {
	a := newArena(4)
	l := newLedger(a)

	r0 := Region{Start: 10, Length: 10, State: StateFree}
	r1 := Region{Start: 0, Length: 10, State: StateBusy}
	r2 := Region{Start: 20, Length: 5, State: StateBusy}

	s0 := l.pushBack(r0)
	assert.Equal(t, []Region{r0}, l.content())
	assert.Equal(t, s0, l.front())
	assert.Equal(t, s0, l.prev)

	s1 := l.insertBefore(s0, r1)
	assert.Equal(t, []Region{r1, r0}, l.content())
	assert.Equal(t, s1, l.front())
	assert.Equal(t, s0, l.nextOf(s1))
	assert.Equal(t, s1, l.prevOf(s0))
	assert.Equal(t, nullSlot, l.prevOf(s1))

	s2 := l.pushBack(r2)
	assert.Equal(t, []Region{r1, r0, r2}, l.content())
	assert.Equal(t, s0, l.prevOf(s2))
	assert.Equal(t, nullSlot, l.nextOf(s2))
	assert.Equal(t, uint32(3), l.size)

	l.erase(s0)
	assert.Equal(t, []Region{r1, r2}, l.content())
	assert.Equal(t, s2, l.nextOf(s1))
	assert.Equal(t, s1, l.prevOf(s2))
	assert.Equal(t, []uint32{s0}, a.contentOfFreeList())
	assert.Equal(t, uint32(2), l.size)

	l.unlink(s1)
	assert.Equal(t, []Region{r2}, l.content())
	assert.Equal(t, s2, l.front())
	assert.Equal(t, uint32(1), l.size)
	assert.Equal(t, uint32(2), a.used)

	l.erase(s2)
	assert.Equal(t, []Region(nil), l.content())
	assert.Equal(t, nullSlot, l.next)
	assert.Equal(t, nullSlot, l.prev)
	assert.Equal(t, uint32(1), a.used)
}

func TestLedger_InsertBefore_Reuses_Slot(t *testing.T) {
	a := newArena(4)
	l := newLedger(a)

	s0 := l.pushBack(Region{Start: 0, Length: 100, State: StateFree})
	s1 := l.insertBefore(s0, Region{Start: 0, Length: 40, State: StateBusy})
	s2 := l.insertBefore(s0, Region{Start: 40, Length: 60, State: StateFree})
	l.erase(s0)

	assert.Equal(t, []Region{
		{Start: 0, Length: 40, State: StateBusy},
		{Start: 40, Length: 60, State: StateFree},
	}, l.content())

	s3 := l.insertBefore(s2, Region{Start: 40, Length: 10, State: StateBusy})
	assert.Equal(t, s0, s3)
	assert.Equal(t, s3, l.nextOf(s1))
	assert.Equal(t, s2, l.nextOf(s3))
}
