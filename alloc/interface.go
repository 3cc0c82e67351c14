package alloc

// Ref identifies an outstanding allocation. For the bitmap allocator it is
// the start index of the contiguous run; for the list allocator it is the
// index of the chain's head node. Valid refs are always in [0, Capacity).
type Ref = int

// DefaultBlockCount is the size of the simulated block store.
const DefaultBlockCount = 64

// Allocator is the common surface of both allocation strategies.
//
// Implementations:
//   - BitmapAllocator: first-fit contiguous runs over an occupancy bit vector
//   - ListAllocator: LIFO chains popped from a linked free list
//   - SpanAllocator: contiguous extents carved from a coalescing free-span
//     list by a best-fit, worst-fit, or next-fit placement policy
//
// All operations are deterministic given an identical call sequence.
type Allocator interface {
	// Alloc claims n blocks and returns a ref for the allocation.
	// Returns ErrInvalidRequest or ErrNoSpace on failure; a failed call
	// has no effect on allocator state.
	Alloc(n int) (Ref, error)

	// Free releases the allocation identified by ref. Returns ErrBadFree
	// if ref is not an outstanding allocation; state is untouched on error.
	Free(ref Ref) error

	// Dump renders occupancy as Capacity() ASCII digits in ascending block
	// order, '1' for allocated and '0' for free.
	Dump() string

	// Reset returns the store to its freshly initialized state with every
	// block free.
	Reset()

	// Capacity reports the total number of blocks in the store.
	Capacity() int

	// FreeBlocks reports how many blocks are currently unallocated.
	FreeBlocks() int
}

// Strategy names accepted by harnesses and the CLI.
const (
	StrategyBitmap   = "bitmap"
	StrategyList     = "list"
	StrategyBestFit  = "bestfit"
	StrategyWorstFit = "worstfit"
	StrategyNextFit  = "nextfit"
)

// AllStrategies lists every strategy name New accepts, in display order.
var AllStrategies = []string{
	StrategyBitmap,
	StrategyList,
	StrategyBestFit,
	StrategyWorstFit,
	StrategyNextFit,
}

// New constructs an allocator of the named strategy with the given
// capacity. Unknown names return nil.
func New(strategy string, capacity int) Allocator {
	switch strategy {
	case StrategyBitmap:
		return NewBitmap(capacity)
	case StrategyList:
		return NewList(capacity)
	case StrategyBestFit:
		return NewSpanList(capacity, BestFit)
	case StrategyWorstFit:
		return NewSpanList(capacity, WorstFit)
	case StrategyNextFit:
		return NewSpanList(capacity, NextFit)
	default:
		return nil
	}
}
