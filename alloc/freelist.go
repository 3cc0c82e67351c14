package alloc

import "fmt"

// noBlock terminates next links inside the node array. It never escapes the
// package; the public API reports failure through errors, not -1.
const noBlock = -1

// node is one block of the simulated store. The data field stands in for
// file contents and carries a small tag describing the block's last use;
// it has no semantic weight beyond making dumps and the TUI legible.
type node struct {
	data string
	next int
}

// ListAllocator threads all free blocks into a singly linked free list.
// Alloc pops nodes off the front and links them into a chain, so a chain's
// physical order matches pop order: ascending on a fresh store, but after
// churn it reflects recent free history, because Free splices returned
// chains back onto the front (LIFO). An explicit chain table records
// outstanding chain heads so Free can validate its argument.
type ListAllocator struct {
	nodes    []node
	freeHead int
	freeLen  int

	// Outstanding chains by head index -> chain length.
	chains map[int]int
}

// NewList creates a list allocator over capacity blocks, all threaded into
// one ascending free list. Capacities below 1 fall back to
// DefaultBlockCount.
func NewList(capacity int) *ListAllocator {
	if capacity < 1 {
		capacity = DefaultBlockCount
	}
	l := &ListAllocator{nodes: make([]node, capacity)}
	l.Reset()
	return l
}

// Reset rebuilds the free list as a single ascending chain 0 -> 1 -> ... and
// forgets all outstanding chains.
func (l *ListAllocator) Reset() {
	last := len(l.nodes) - 1
	for i := range l.nodes {
		l.nodes[i].data = fmt.Sprintf("block-%d-initial", i)
		if i < last {
			l.nodes[i].next = i + 1
		} else {
			l.nodes[i].next = noBlock
		}
	}
	l.freeHead = 0
	l.freeLen = len(l.nodes)
	l.chains = make(map[int]int)
}

// Capacity reports the total number of blocks.
func (l *ListAllocator) Capacity() int { return len(l.nodes) }

// FreeBlocks reports the number of nodes on the free list.
func (l *ListAllocator) FreeBlocks() int { return l.freeLen }

// allocOne pops the head of the free list and detaches it.
func (l *ListAllocator) allocOne() (int, bool) {
	if l.freeHead == noBlock {
		return noBlock, false
	}
	taken := l.freeHead
	l.freeHead = l.nodes[taken].next
	l.nodes[taken].next = noBlock
	l.freeLen--
	return taken, true
}

// pushFree puts a single detached node back on the front of the free list.
func (l *ListAllocator) pushFree(i int) {
	l.nodes[i].next = l.freeHead
	l.freeHead = i
	l.freeLen++
}

// Alloc builds a chain of n nodes popped from the free list and returns the
// head node's index. If the list runs out mid-request, every node already
// chained is pushed back individually and the store is exactly as before
// the call.
func (l *ListAllocator) Alloc(n int) (Ref, error) {
	if n <= 0 || n > len(l.nodes) {
		return 0, ErrInvalidRequest
	}

	head := noBlock
	prev := noBlock
	for i := 0; i < n; i++ {
		taken, ok := l.allocOne()
		if !ok {
			// Unwind the partial chain front to back.
			for head != noBlock {
				next := l.nodes[head].next
				l.pushFree(head)
				head = next
			}
			return 0, ErrNoSpace
		}
		l.nodes[taken].data = fmt.Sprintf("file-data-%d", i)
		if prev == noBlock {
			head = taken
		} else {
			l.nodes[prev].next = taken
		}
		prev = taken
	}

	l.chains[head] = n
	return head, nil
}

// Free splices the chain headed at ref back onto the front of the free
// list. Finding the tail walks the chain, so this is O(chain length); the
// splice itself is one pointer swap.
func (l *ListAllocator) Free(ref Ref) error {
	n, ok := l.chains[ref]
	if !ok {
		return ErrBadFree
	}

	tail := ref
	for l.nodes[tail].next != noBlock {
		tail = l.nodes[tail].next
	}
	l.nodes[tail].next = l.freeHead
	l.freeHead = ref
	l.freeLen += n
	delete(l.chains, ref)
	return nil
}

// Walk visits every node index of the outstanding chain headed at ref in
// chain order. Returns ErrBadFree if ref is not an outstanding chain head.
func (l *ListAllocator) Walk(ref Ref, fn func(index int)) error {
	if _, ok := l.chains[ref]; !ok {
		return ErrBadFree
	}
	for i := ref; i != noBlock; i = l.nodes[i].next {
		fn(i)
	}
	return nil
}

// ChainLen reports the length of the outstanding chain headed at ref, or 0
// if ref is not an outstanding chain head.
func (l *ListAllocator) ChainLen(ref Ref) int { return l.chains[ref] }

// Dump renders occupancy as capacity ASCII digits in ascending block order.
// Free-set membership comes from one walk of the free list; everything not
// on it is allocated.
func (l *ListAllocator) Dump() string {
	occ := make([]byte, len(l.nodes))
	for i := range occ {
		occ[i] = '1'
	}
	for i := l.freeHead; i != noBlock; i = l.nodes[i].next {
		occ[i] = '0'
	}
	return string(occ)
}

// Compile-time interface check
var _ Allocator = (*ListAllocator)(nil)
