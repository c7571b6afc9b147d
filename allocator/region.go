package allocator

import "fmt"

// State ...
type State uint8

const (
	// StateBusy marks a region granted by Allocate
	StateBusy State = 0
	// StateFree marks a region available for reuse
	StateFree State = 1
	// StateInvalid marks a region merged away into a neighbor, never live in the ledger
	StateInvalid State = 2
)

func (s State) String() string {
	switch s {
	case StateBusy:
		return "busy"
	case StateFree:
		return "free"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Region is a contiguous span [Start, Start+Length) of the address space
type Region struct {
	Start  uint32
	Length uint32
	State  State
}

// End ...
func (r Region) End() uint32 {
	return r.Start + r.Length
}

func (r Region) String() string {
	return fmt.Sprintf("%s[%d,%d)", r.State, r.Start, r.End())
}
