// Package alloc implements classic fixed-region block allocation
// strategies over a simulated block store.
//
// # Overview
//
// The package models a small disk as a fixed run of equally sized blocks
// (64 by default) and provides independent allocators over it:
//
//   - BitmapAllocator: one occupancy bit per block. Allocation is a
//     first-fit scan for the lowest-addressed run of n contiguous free
//     bits; the whole run is claimed or nothing is.
//
//   - ListAllocator: every block is a node with a next link, and all free
//     nodes are threaded into a singly linked free list. Allocation pops n
//     nodes off the front of the list and links them into a chain; freeing
//     splices the entire chain back onto the front.
//
//   - SpanAllocator: free space is a linked list of contiguous extents kept
//     in ascending address order. A placement policy (best fit, worst fit,
//     or next fit) chooses the span a request is carved from; freeing
//     reinserts the extent in address order and coalesces adjacent spans.
//
// All implement the Allocator interface, so harnesses and tools can run
// the same workload against any strategy and compare behavior.
//
// # Failure Modes
//
// Allocation and free report failure through error values, never through
// in-band sentinel indexes:
//
//   - ErrInvalidRequest: size is zero, negative, or exceeds capacity
//   - ErrNoSpace: no contiguous run (bitmap) or not enough free nodes (list)
//   - ErrBadFree: the ref being freed is not an outstanding allocation
//
// A failed multi-block list allocation is fully rolled back: nodes already
// chained for the request are pushed back onto the free list one by one, so
// exhaustion never leaks blocks.
//
// # Allocation Order
//
// The two strategies diverge deliberately after churn. The bitmap always
// hands out the lowest-addressed run (first-fit), so its placement is
// monotonic in address. The free list reinserts freed chains at the head
// (LIFO), so after fragmentation the pop order reflects recent free history
// rather than ascending block index. A chain returned by the list allocator
// is therefore not guaranteed to be physically contiguous or even ascending.
// This is the defining behavioral difference between the strategies and is
// what the fragmentation harness in blockkit/sim measures: the list
// allocator succeeds whenever enough free nodes exist anywhere, while the
// bitmap additionally needs them adjacent.
//
// The span allocator is contiguous like the bitmap but varies placement:
// best fit carves the tightest hole, worst fit the largest, and next fit
// resumes scanning where the previous allocation left off, so identical
// workloads fragment the store differently under each policy.
//
// # Usage Example
//
//	b := alloc.NewBitmap(alloc.DefaultBlockCount)
//	ref, err := b.Alloc(5)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(b.Dump()) // "1111100...0"
//	if err := b.Free(ref); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Allocator instances are not thread-safe. The simulation is single
// threaded by design; callers needing shared access must synchronize
// externally.
package alloc
