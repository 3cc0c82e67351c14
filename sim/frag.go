package sim

import (
	"math/rand"

	"blockkit/alloc"
)

// FragConfig controls the fragmentation harness. Zero values take the
// classic defaults: 20 files of size 1..5, 5 deletions, one 12-block
// request on a 64-block store.
type FragConfig struct {
	Files      int   `json:"files"`
	Deletes    int   `json:"deletes"`
	Request    int   `json:"request"`
	MaxRequest int   `json:"max_request"` // file sizes are 1..MaxRequest
	Seed       int64 `json:"seed"`
}

func (c *FragConfig) applyDefaults() {
	if c.Files <= 0 {
		c.Files = 20
	}
	if c.Deletes <= 0 {
		c.Deletes = 5
	}
	if c.Request <= 0 {
		c.Request = 12
	}
	if c.MaxRequest <= 0 {
		c.MaxRequest = 5
	}
	if c.Seed == 0 {
		c.Seed = 999
	}
}

// FileAlloc records one small-file allocation made during setup.
type FileAlloc struct {
	Size int       `json:"size"`
	Ref  alloc.Ref `json:"ref"`
	OK   bool      `json:"ok"`
}

// FragReport summarizes one fragmentation run.
type FragReport struct {
	Strategy       string      `json:"strategy"`
	Files          []FileAlloc `json:"files"`
	Freed          []int       `json:"freed"` // indexes into Files
	Request        int         `json:"request"`
	RequestOK      bool        `json:"request_ok"`
	RequestRef     alloc.Ref   `json:"request_ref,omitempty"`
	FreeBlocks     int         `json:"free_blocks"`      // at request time
	LargestFreeRun int         `json:"largest_free_run"` // at request time
	Occupancy      string      `json:"occupancy"`        // at request time
}

// Fragmentation allocates cfg.Files small files, frees cfg.Deletes of them
// chosen at random (without replacement - freeing the same file twice is an
// error under validated Free), then attempts one cfg.Request-block
// allocation. The report captures free count and largest contiguous free
// run at request time, which together explain the outcome: the bitmap
// succeeds iff the largest run covers the request, the list iff the free
// count does.
func Fragmentation(a alloc.Allocator, cfg FragConfig) FragReport {
	cfg.applyDefaults()
	a.Reset()
	rng := rand.New(rand.NewSource(cfg.Seed))

	files := make([]FileAlloc, cfg.Files)
	for i := range files {
		size := rng.Intn(cfg.MaxRequest) + 1
		ref, err := a.Alloc(size)
		files[i] = FileAlloc{Size: size, Ref: ref, OK: err == nil}
	}

	freed := make([]int, 0, cfg.Deletes)
	seen := make(map[int]bool)
	for len(freed) < cfg.Deletes && len(seen) < cfg.Files {
		id := rng.Intn(cfg.Files)
		if seen[id] {
			continue
		}
		seen[id] = true
		if !files[id].OK {
			continue
		}
		// Fresh valid ref; Free cannot fail here.
		_ = a.Free(files[id].Ref)
		freed = append(freed, id)
	}

	report := FragReport{
		Strategy:       strategyName(a),
		Files:          files,
		Freed:          freed,
		Request:        cfg.Request,
		FreeBlocks:     a.FreeBlocks(),
		LargestFreeRun: largestRun(a.Dump()),
		Occupancy:      a.Dump(),
	}

	ref, err := a.Alloc(cfg.Request)
	if err == nil {
		report.RequestOK = true
		report.RequestRef = ref
	}
	return report
}

// largestRun measures the longest run of '0' in an occupancy dump.
func largestRun(dump string) int {
	best, run := 0, 0
	for i := 0; i < len(dump); i++ {
		if dump[i] != '0' {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}
