package alloc

// Policy selects which free span a placement-policy allocator carves a
// request from.
type Policy uint8

const (
	// BestFit picks the smallest span that fits, minimizing leftover space.
	BestFit Policy = iota
	// WorstFit picks the largest span, preserving mid-sized spans.
	WorstFit
	// NextFit resumes the scan from a roving pointer at the last placement,
	// distributing allocations across the store.
	NextFit
)

// span is one contiguous free extent. The free list keeps spans in
// ascending address order so adjacent extents can be coalesced on free.
type span struct {
	start int
	size  int
	next  *span
}

// SpanAllocator tracks free space as a linked list of contiguous extents
// instead of per-block state, and places requests with a configurable
// policy (best fit, worst fit, or next fit). Freed extents are reinserted
// in address order and merged with their neighbors, so unlike
// ListAllocator the free list never fragments beyond what allocation
// geometry forces. As with the other strategies, an explicit span table
// validates Free against outstanding allocations.
type SpanAllocator struct {
	capacity int
	policy   Policy
	free     *span // ascending by start
	rover    *span // next-fit resume point; ignored by other policies

	// Outstanding allocations by start index.
	spans map[int]int
}

// NewSpanList creates a placement-policy allocator over capacity blocks
// with one free span covering the whole store. Capacities below 1 fall
// back to DefaultBlockCount.
func NewSpanList(capacity int, policy Policy) *SpanAllocator {
	if capacity < 1 {
		capacity = DefaultBlockCount
	}
	s := &SpanAllocator{capacity: capacity, policy: policy}
	s.Reset()
	return s
}

// Reset returns the store to a single free span and forgets all
// outstanding allocations.
func (s *SpanAllocator) Reset() {
	s.free = &span{start: 0, size: s.capacity}
	s.rover = s.free
	s.spans = make(map[int]int)
}

// Capacity reports the total number of blocks.
func (s *SpanAllocator) Capacity() int { return s.capacity }

// FreeBlocks reports the total size of all free spans.
func (s *SpanAllocator) FreeBlocks() int {
	total := 0
	for c := s.free; c != nil; c = c.next {
		total += c.size
	}
	return total
}

// Policy reports the placement policy this allocator was built with.
func (s *SpanAllocator) Policy() Policy { return s.policy }

// Strategy reports the strategy name matching this allocator's policy.
func (s *SpanAllocator) Strategy() string {
	switch s.policy {
	case WorstFit:
		return StrategyWorstFit
	case NextFit:
		return StrategyNextFit
	default:
		return StrategyBestFit
	}
}

// pick selects the span to carve a request of n blocks from, or nil if no
// span is large enough. Best and worst fit scan the whole list; ties go to
// the lower address. Next fit scans from the rover and wraps once.
func (s *SpanAllocator) pick(n int) *span {
	switch s.policy {
	case WorstFit:
		var worst *span
		for c := s.free; c != nil; c = c.next {
			if c.size >= n && (worst == nil || c.size > worst.size) {
				worst = c
			}
		}
		return worst

	case NextFit:
		start := s.rover
		if start == nil {
			start = s.free
		}
		if start == nil {
			return nil
		}
		wrapped := false
		for c := start; ; {
			if c.size >= n {
				return c
			}
			c = c.next
			if c == nil {
				if wrapped {
					return nil
				}
				c = s.free
				wrapped = true
			}
			if wrapped && c == start {
				return nil
			}
		}

	default: // BestFit
		var best *span
		for c := s.free; c != nil; c = c.next {
			if c.size >= n && (best == nil || c.size < best.size) {
				best = c
			}
		}
		return best
	}
}

// unlink removes target from the free list.
func (s *SpanAllocator) unlink(target *span) {
	if s.free == target {
		s.free = target.next
		return
	}
	for prev := s.free; prev != nil; prev = prev.next {
		if prev.next == target {
			prev.next = target.next
			return
		}
	}
}

// Alloc carves n blocks from the span the policy selects and returns the
// carved extent's start index. A failed call leaves the free list
// untouched.
func (s *SpanAllocator) Alloc(n int) (Ref, error) {
	if n <= 0 || n > s.capacity {
		return 0, ErrInvalidRequest
	}

	target := s.pick(n)
	if target == nil {
		return 0, ErrNoSpace
	}

	start := target.start
	if target.size == n {
		// Exact fit: the span leaves the list; the rover moves past it.
		s.unlink(target)
		s.rover = target.next
		if s.rover == nil {
			s.rover = s.free
		}
	} else {
		// Split: allocate from the front, keep the remainder in place.
		target.start += n
		target.size -= n
		s.rover = target
	}

	s.spans[start] = n
	return start, nil
}

// Free returns the extent starting at ref to the free list, inserting it
// in address order and merging it with adjacent free spans. The ref must
// be the start index of an outstanding allocation.
func (s *SpanAllocator) Free(ref Ref) error {
	n, ok := s.spans[ref]
	if !ok {
		return ErrBadFree
	}
	delete(s.spans, ref)

	ns := &span{start: ref, size: n}
	if s.free == nil || ref < s.free.start {
		ns.next = s.free
		s.free = ns
	} else {
		prev := s.free
		for prev.next != nil && prev.next.start < ref {
			prev = prev.next
		}
		ns.next = prev.next
		prev.next = ns
	}
	s.coalesce()

	// Coalescing may have merged the rover's span away.
	if !s.onFreeList(s.rover) {
		s.rover = s.free
	}
	return nil
}

// coalesce merges adjacent free spans in one pass over the sorted list.
func (s *SpanAllocator) coalesce() {
	for c := s.free; c != nil && c.next != nil; {
		if c.start+c.size == c.next.start {
			c.size += c.next.size
			c.next = c.next.next
		} else {
			c = c.next
		}
	}
}

func (s *SpanAllocator) onFreeList(t *span) bool {
	for c := s.free; c != nil; c = c.next {
		if c == t {
			return true
		}
	}
	return false
}

// Dump renders occupancy as capacity ASCII digits in ascending block
// order, marking every free span's range '0'.
func (s *SpanAllocator) Dump() string {
	occ := make([]byte, s.capacity)
	for i := range occ {
		occ[i] = '1'
	}
	for c := s.free; c != nil; c = c.next {
		for i := c.start; i < c.start+c.size; i++ {
			occ[i] = '0'
		}
	}
	return string(occ)
}

// Compile-time interface check
var _ Allocator = (*SpanAllocator)(nil)
