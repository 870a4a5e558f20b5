// Package arena provides a slot-based container with stable indices.
//
// Slots move through three states: free, allocated (reserved but not yet
// written) and occupied. Read and iteration APIs only ever expose occupied
// slots; the allocated state is a transient window between reservation and
// initialization. Freed slots are reused by later allocations (first-fit from
// index 0), so indices are only stable while the slot stays occupied.
package arena

import (
	"errors"
	"fmt"
	"iter"
)

// Sentinel errors for arena misuse. All of these indicate a caller bug
// (stale index, double insert, bad pair) rather than a runtime condition.
var (
	ErrOutOfRange    = errors.New("arena: index out of range")
	ErrUninitialized = errors.New("arena: slot not initialized")
	ErrSamePair      = errors.New("arena: pair indices must differ")
	ErrSlotState     = errors.New("arena: target slot not in allocated state")
	ErrCapacity      = errors.New("arena: slot capacity exceeded")
)

type slotState uint8

const (
	slotFree slotState = iota
	slotAllocated
	slotOccupied
)

type slot[T any] struct {
	state slotState
	value T
}

// Arena stores values in reusable slots addressed by index.
// The zero value is ready to use and grows without bound; SetMaxSlots
// installs an explicit cap.
type Arena[T any] struct {
	slots    []slot[T]
	maxSlots int // 0 = unbounded
}

// New creates an arena with the given number of initially free slots.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], capacity)}
}

// SetMaxSlots caps the total slot count. Allocations that would grow the
// backing storage past n fail with ErrCapacity. n = 0 removes the cap.
func (a *Arena[T]) SetMaxSlots(n int) {
	a.maxSlots = n
}

// Allocate reserves n contiguous free slots and returns the start index.
// It scans existing storage first-fit from index 0 and only extends the
// backing storage when no free run is large enough. Reserved slots are not
// readable until Insert fills them.
func (a *Arena[T]) Allocate(n int) (int, error) {
	for i := 0; i+n <= len(a.slots); i++ {
		run := true
		for j := i; j < i+n; j++ {
			if a.slots[j].state != slotFree {
				run = false
				break
			}
		}
		if !run {
			continue
		}
		for j := i; j < i+n; j++ {
			a.slots[j].state = slotAllocated
		}
		return i, nil
	}

	start := len(a.slots)
	if a.maxSlots > 0 && start+n > a.maxSlots {
		return 0, fmt.Errorf("%w: need %d slots, cap %d", ErrCapacity, start+n, a.maxSlots)
	}
	for range n {
		a.slots = append(a.slots, slot[T]{state: slotAllocated})
	}
	return start, nil
}

// Insert writes values into slots previously reserved by Allocate, starting
// at start. Every target slot must be in the allocated state; a free or
// occupied target is a contract violation.
func (a *Arena[T]) Insert(start int, values []T) error {
	end := start + len(values)
	if start < 0 || end > len(a.slots) {
		return fmt.Errorf("%w: insert [%d, %d) into %d slots", ErrOutOfRange, start, end, len(a.slots))
	}
	for i := start; i < end; i++ {
		if a.slots[i].state != slotAllocated {
			return fmt.Errorf("%w: slot %d", ErrSlotState, i)
		}
	}
	for i, v := range values {
		a.slots[start+i] = slot[T]{state: slotOccupied, value: v}
	}
	return nil
}

// InsertBatch allocates and fills slots for values in one call, returning
// the start index.
func (a *Arena[T]) InsertBatch(values []T) (int, error) {
	start, err := a.Allocate(len(values))
	if err != nil {
		return 0, err
	}
	if err := a.Insert(start, values); err != nil {
		return 0, err
	}
	return start, nil
}

// Free resets slot i to free regardless of its prior state. Freeing an
// already-free or never-allocated index is a no-op. The freed slot becomes
// eligible for reuse, so the caller must drop every external reference to i.
func (a *Arena[T]) Free(i int) {
	if i < 0 || i >= len(a.slots) {
		return
	}
	a.slots[i] = slot[T]{}
}

// Get returns a pointer to the value at index i. The pointer is only valid
// until the next call that mutates the arena's storage.
func (a *Arena[T]) Get(i int) (*T, error) {
	if i < 0 || i >= len(a.slots) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if a.slots[i].state != slotOccupied {
		return nil, fmt.Errorf("%w: %d", ErrUninitialized, i)
	}
	return &a.slots[i].value, nil
}

// GetPair returns simultaneously usable pointers to two distinct occupied
// slots. The backing storage is split at the larger index into two disjoint
// windows, so the returned pointers can never alias.
func (a *Arena[T]) GetPair(i, j int) (*T, *T, error) {
	if i == j {
		return nil, nil, fmt.Errorf("%w: %d", ErrSamePair, i)
	}
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || hi >= len(a.slots) {
		return nil, nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, i, j)
	}

	left, right := a.slots[:hi], a.slots[hi:]
	if left[lo].state != slotOccupied {
		return nil, nil, fmt.Errorf("%w: %d", ErrUninitialized, lo)
	}
	if right[0].state != slotOccupied {
		return nil, nil, fmt.Errorf("%w: %d", ErrUninitialized, hi)
	}

	pLo, pHi := &left[lo].value, &right[0].value
	if i < j {
		return pLo, pHi, nil
	}
	return pHi, pLo, nil
}

// Len returns the total slot count, including free and reserved slots.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Count returns the number of occupied slots.
func (a *Arena[T]) Count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].state == slotOccupied {
			n++
		}
	}
	return n
}

// Values iterates over occupied slots in slot order.
func (a *Arena[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range a.slots {
			if a.slots[i].state != slotOccupied {
				continue
			}
			if !yield(&a.slots[i].value) {
				return
			}
		}
	}
}

// Entry locates an occupied slot both by its stable slot index and by its
// dense rank among occupied slots. The dense rank gives downstream consumers
// a gap-free index space without exposing slot reuse.
type Entry struct {
	Index int // stable slot index
	Dense int // 0-based rank among occupied slots
}

// Enumerate iterates over occupied slots in slot order, yielding each slot's
// Entry alongside its value.
func (a *Arena[T]) Enumerate() iter.Seq2[Entry, *T] {
	return func(yield func(Entry, *T) bool) {
		dense := 0
		for i := range a.slots {
			if a.slots[i].state != slotOccupied {
				continue
			}
			if !yield(Entry{Index: i, Dense: dense}, &a.slots[i].value) {
				return
			}
			dense++
		}
	}
}
