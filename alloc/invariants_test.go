package alloc

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Fuzz_Bitmap_RandomAllocFree performs random alloc/free against the
// bitmap allocator with a fixed seed and validates the occupancy invariant
// after every step: set bits == sum of outstanding span sizes.
func Test_Fuzz_Bitmap_RandomAllocFree(t *testing.T) {
	b := NewBitmap(DefaultBlockCount)
	rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility

	outstanding := make(map[Ref]int)
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			n := rng.Intn(8) + 1
			ref, err := b.Alloc(n)
			if err == nil {
				outstanding[ref] = n
			} else {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", i)
			}
		} else if len(outstanding) > 0 {
			for ref := range outstanding {
				require.NoError(t, b.Free(ref), "step %d", i)
				delete(outstanding, ref)
				break
			}
		}

		used := 0
		for _, n := range outstanding {
			used += n
		}
		require.Equal(t, used, strings.Count(b.Dump(), "1"),
			"step %d: set bits must equal outstanding total", i)
		require.Equal(t, DefaultBlockCount-used, b.FreeBlocks(), "step %d", i)
	}
}

// Test_Fuzz_List_RandomAllocFree performs random alloc/free against the
// list allocator with a fixed seed and validates the partition invariant
// after every step.
func Test_Fuzz_List_RandomAllocFree(t *testing.T) {
	l := NewList(DefaultBlockCount)
	rng := rand.New(rand.NewSource(43))

	outstanding := make(map[Ref]int)
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			n := rng.Intn(8) + 1
			ref, err := l.Alloc(n)
			if err == nil {
				outstanding[ref] = n
			} else {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", i)
				require.Less(t, l.FreeBlocks(), n, "step %d: failure only on exhaustion", i)
			}
		} else if len(outstanding) > 0 {
			for ref := range outstanding {
				require.NoError(t, l.Free(ref), "step %d", i)
				delete(outstanding, ref)
				break
			}
		}

		refs := make([]Ref, 0, len(outstanding))
		for ref := range outstanding {
			refs = append(refs, ref)
		}
		requireListPartition(t, l, refs)
	}
}

// Test_Fuzz_Span_RandomAllocFree performs random alloc/free against each
// span placement policy with a fixed seed and validates the free-list
// geometry after every step: ascending, coalesced, and accounting for
// every block not outstanding.
func Test_Fuzz_Span_RandomAllocFree(t *testing.T) {
	for seed, policy := range map[int64]Policy{44: BestFit, 45: WorstFit, 46: NextFit} {
		s := NewSpanList(DefaultBlockCount, policy)
		rng := rand.New(rand.NewSource(seed))

		outstanding := make(map[Ref]int)
		for i := 0; i < 1000; i++ {
			if rng.Intn(2) == 0 {
				n := rng.Intn(8) + 1
				ref, err := s.Alloc(n)
				if err == nil {
					outstanding[ref] = n
				} else {
					require.ErrorIs(t, err, ErrNoSpace, "policy %d step %d", policy, i)
				}
			} else if len(outstanding) > 0 {
				for ref := range outstanding {
					require.NoError(t, s.Free(ref), "policy %d step %d", policy, i)
					delete(outstanding, ref)
					break
				}
			}

			requireSpanGeometry(t, s)
		}
	}
}

// Test_Fuzz_MixedStrategies runs the same random workload against both
// allocators and checks that success/failure of each request agrees
// whenever no fragmentation is possible (all frees undone in LIFO order).
func Test_Fuzz_MixedStrategies(t *testing.T) {
	b := NewBitmap(DefaultBlockCount)
	l := NewList(DefaultBlockCount)
	rng := rand.New(rand.NewSource(7))

	// Alloc-only workload: with zero frees the bitmap is never fragmented,
	// so both strategies must agree on every outcome. Occupancy maps match
	// too until the first failure (a failed list alloc reverses part of the
	// free list while rolling back, changing later pop order).
	failed := false
	for i := 0; i < 100; i++ {
		n := rng.Intn(6) + 1
		_, errB := b.Alloc(n)
		_, errL := l.Alloc(n)
		require.Equal(t, errB == nil, errL == nil,
			"step %d: strategies disagree on alloc(%d)", i, n)
		require.Equal(t, b.FreeBlocks(), l.FreeBlocks(), "step %d", i)
		if errL != nil {
			failed = true
		}
		if !failed {
			require.Equal(t, b.Dump(), l.Dump(), "step %d: alloc-only occupancy matches", i)
		}
	}
}
