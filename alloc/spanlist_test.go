package alloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freeSpans walks the free list and returns (start, size) pairs in list
// order.
func freeSpans(s *SpanAllocator) [][2]int {
	var out [][2]int
	for c := s.free; c != nil; c = c.next {
		out = append(out, [2]int{c.start, c.size})
	}
	return out
}

// requireSpanGeometry asserts the structural invariants every span
// allocator state must satisfy: the free list is ascending by address
// with no two adjacent spans left unmerged, and free plus outstanding
// blocks account for the whole store.
func requireSpanGeometry(t *testing.T, s *SpanAllocator) {
	t.Helper()

	prevEnd := -1
	for c := s.free; c != nil; c = c.next {
		require.Positive(t, c.size)
		require.Greater(t, c.start, prevEnd, "free list must be ascending and coalesced")
		prevEnd = c.start + c.size
	}
	require.LessOrEqual(t, prevEnd, s.capacity)

	outstanding := 0
	for _, n := range s.spans {
		outstanding += n
	}
	require.Equal(t, s.capacity, s.FreeBlocks()+outstanding)
	require.Equal(t, outstanding, strings.Count(s.Dump(), "1"))
}

func TestSpan_InitAllFree(t *testing.T) {
	s := NewSpanList(DefaultBlockCount, BestFit)

	assert.Equal(t, DefaultBlockCount, s.Capacity())
	assert.Equal(t, DefaultBlockCount, s.FreeBlocks())
	assert.Equal(t, strings.Repeat("0", DefaultBlockCount), s.Dump())
	assert.Equal(t, [][2]int{{0, 64}}, freeSpans(s))
}

func TestSpan_BestFitPicksTightestHole(t *testing.T) {
	s := NewSpanList(64, BestFit)

	_, err := s.Alloc(8) // [0,8)
	require.NoError(t, err)
	b, err := s.Alloc(4) // [8,12)
	require.NoError(t, err)
	_, err = s.Alloc(20) // [12,32)
	require.NoError(t, err)
	require.NoError(t, s.Free(b))

	// Holes: 4 blocks at 8, 32 blocks at 32. The tight hole wins even
	// though the large one comes later in the scan.
	ref, err := s.Alloc(4)
	require.NoError(t, err)
	assert.Equal(t, 8, ref)

	// A request too big for the tight hole falls through to the tail.
	s.Reset()
	_, _ = s.Alloc(8)
	b, _ = s.Alloc(4)
	_, _ = s.Alloc(20)
	require.NoError(t, s.Free(b))
	ref, err = s.Alloc(10)
	require.NoError(t, err)
	assert.Equal(t, 32, ref)

	requireSpanGeometry(t, s)
}

func TestSpan_WorstFitPicksLargestHole(t *testing.T) {
	s := NewSpanList(64, WorstFit)

	_, err := s.Alloc(8)
	require.NoError(t, err)
	b, err := s.Alloc(4)
	require.NoError(t, err)
	_, err = s.Alloc(20)
	require.NoError(t, err)
	require.NoError(t, s.Free(b))

	// Same holes as the best-fit scenario; worst fit carves the 32-block
	// tail and leaves the small hole intact.
	ref, err := s.Alloc(4)
	require.NoError(t, err)
	assert.Equal(t, 32, ref)
	assert.Equal(t, [][2]int{{8, 4}, {36, 28}}, freeSpans(s))

	requireSpanGeometry(t, s)
}

func TestSpan_NextFitResumesAtRover(t *testing.T) {
	s := NewSpanList(64, NextFit)

	a, err := s.Alloc(10) // [0,10)
	require.NoError(t, err)
	_, err = s.Alloc(10) // [10,20), rover at the tail remainder
	require.NoError(t, err)
	require.NoError(t, s.Free(a)) // holes: 10 at 0, 44 at 20

	// First fit would reuse the hole at 0; next fit continues from where
	// the last placement ended.
	ref, err := s.Alloc(8)
	require.NoError(t, err)
	assert.Equal(t, 20, ref)

	// Nothing fits 40 anymore even with a wrap, and the failed scan
	// leaves state untouched.
	before := freeSpans(s)
	_, err = s.Alloc(40)
	require.ErrorIs(t, err, ErrNoSpace)
	assert.Equal(t, before, freeSpans(s))

	// Exact fit removes the rover's span; the rover falls back to the
	// list head for the next placement.
	ref, err = s.Alloc(36)
	require.NoError(t, err)
	assert.Equal(t, 28, ref)
	ref, err = s.Alloc(5)
	require.NoError(t, err)
	assert.Equal(t, 0, ref)

	requireSpanGeometry(t, s)
}

func TestSpan_NextFitWrapsAround(t *testing.T) {
	s := NewSpanList(16, NextFit)

	a, err := s.Alloc(6)
	require.NoError(t, err)
	_, err = s.Alloc(6)
	require.NoError(t, err)
	require.NoError(t, s.Free(a)) // holes: 6 at 0, 4 at 12; rover at 12

	// The hole at the rover is too small, so the scan wraps to the head.
	ref, err := s.Alloc(6)
	require.NoError(t, err)
	assert.Equal(t, 0, ref)

	requireSpanGeometry(t, s)
}

func TestSpan_CoalesceOnFree(t *testing.T) {
	s := NewSpanList(64, BestFit)

	a, err := s.Alloc(16)
	require.NoError(t, err)
	b, err := s.Alloc(16)
	require.NoError(t, err)
	c, err := s.Alloc(16)
	require.NoError(t, err)

	require.NoError(t, s.Free(b))
	assert.Equal(t, [][2]int{{16, 16}, {48, 16}}, freeSpans(s))

	// Freeing a merges with b's hole on its right.
	require.NoError(t, s.Free(a))
	assert.Equal(t, [][2]int{{0, 32}, {48, 16}}, freeSpans(s))

	// Freeing c bridges both remaining holes back into one span.
	require.NoError(t, s.Free(c))
	assert.Equal(t, [][2]int{{0, 64}}, freeSpans(s))
	assert.Equal(t, 64, s.FreeBlocks())
}

func TestSpan_InvalidRequests(t *testing.T) {
	for _, policy := range []Policy{BestFit, WorstFit, NextFit} {
		s := NewSpanList(64, policy)

		for _, n := range []int{0, -1, -64, 65} {
			_, err := s.Alloc(n)
			assert.ErrorIs(t, err, ErrInvalidRequest, "Alloc(%d)", n)
		}
		assert.Equal(t, 64, s.FreeBlocks())
	}
}

func TestSpan_Exhaustion(t *testing.T) {
	s := NewSpanList(64, WorstFit)

	ref, err := s.Alloc(64)
	require.NoError(t, err)
	assert.Equal(t, 0, ref)
	assert.Equal(t, 0, s.FreeBlocks())
	assert.Nil(t, s.free)

	_, err = s.Alloc(1)
	assert.ErrorIs(t, err, ErrNoSpace)

	require.NoError(t, s.Free(ref))
	assert.Equal(t, [][2]int{{0, 64}}, freeSpans(s))
}

func TestSpan_ValidatedFree(t *testing.T) {
	s := NewSpanList(64, NextFit)

	assert.ErrorIs(t, s.Free(5), ErrBadFree)

	ref, err := s.Alloc(4)
	require.NoError(t, err)

	// Only the extent's start index is a valid ref.
	assert.ErrorIs(t, s.Free(ref+1), ErrBadFree)

	require.NoError(t, s.Free(ref))
	assert.ErrorIs(t, s.Free(ref), ErrBadFree)

	requireSpanGeometry(t, s)
}

func TestSpan_RoundTrip(t *testing.T) {
	for _, policy := range []Policy{BestFit, WorstFit, NextFit} {
		s := NewSpanList(64, policy)

		refs := make([]Ref, 0, 5)
		for _, n := range []int{7, 3, 12, 1, 9} {
			ref, err := s.Alloc(n)
			require.NoError(t, err)
			refs = append(refs, ref)
		}

		// Free out of order; coalescing must still rebuild one span.
		for _, i := range []int{3, 0, 4, 2, 1} {
			require.NoError(t, s.Free(refs[i]))
		}
		assert.Equal(t, [][2]int{{0, 64}}, freeSpans(s), "policy %d", policy)
		assert.Equal(t, strings.Repeat("0", 64), s.Dump())
	}
}

func TestSpan_StrategyNames(t *testing.T) {
	assert.Equal(t, StrategyBestFit, NewSpanList(8, BestFit).Strategy())
	assert.Equal(t, StrategyWorstFit, NewSpanList(8, WorstFit).Strategy())
	assert.Equal(t, StrategyNextFit, NewSpanList(8, NextFit).Strategy())

	a := New(StrategyWorstFit, 8)
	s, ok := a.(*SpanAllocator)
	require.True(t, ok)
	assert.Equal(t, WorstFit, s.Policy())
}
