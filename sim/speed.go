package sim

import (
	"math/rand"
	"time"

	"blockkit/alloc"
)

// SpeedConfig controls the speed harness. Zero values take the classic
// defaults: 100 iterations of 100 allocs + frees with request sizes 1..5.
type SpeedConfig struct {
	Iterations int   `json:"iterations"`
	Ops        int   `json:"ops"`         // allocations per iteration
	MaxRequest int   `json:"max_request"` // request sizes are 1..MaxRequest
	Seed       int64 `json:"seed"`
	SeedStride int64 `json:"seed_stride"` // per-iteration seed = Seed + iter*SeedStride
}

func (c *SpeedConfig) applyDefaults() {
	if c.Iterations <= 0 {
		c.Iterations = 100
	}
	if c.Ops <= 0 {
		c.Ops = 100
	}
	if c.MaxRequest <= 0 {
		c.MaxRequest = 5
	}
	if c.SeedStride == 0 {
		c.SeedStride = 123
	}
}

// SpeedReport summarizes one speed run.
type SpeedReport struct {
	Strategy     string        `json:"strategy"`
	Iterations   int           `json:"iterations"`
	OpsPerIter   int           `json:"ops_per_iteration"` // allocs + frees
	TotalOps     int           `json:"total_ops"`
	FailedAllocs int           `json:"failed_allocs"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	OpsPerSec    float64       `json:"ops_per_sec"`
	AvgMicros    float64       `json:"avg_micros_per_op"`
}

// Speed runs repeated alloc/free cycles against a and measures throughput.
// Each iteration resets the store, performs cfg.Ops allocations of random
// size 1..MaxRequest, then frees every allocation that succeeded. Failed
// allocations count toward the op total (the scan that fails is the work
// being measured) and are reported separately.
func Speed(a alloc.Allocator, cfg SpeedConfig) SpeedReport {
	cfg.applyDefaults()

	refs := make([]alloc.Ref, cfg.Ops)
	oks := make([]bool, cfg.Ops)
	failed := 0

	start := time.Now()
	for iter := 0; iter < cfg.Iterations; iter++ {
		a.Reset()
		rng := rand.New(rand.NewSource(cfg.Seed + int64(iter)*cfg.SeedStride))

		for i := 0; i < cfg.Ops; i++ {
			n := rng.Intn(cfg.MaxRequest) + 1
			ref, err := a.Alloc(n)
			refs[i], oks[i] = ref, err == nil
			if err != nil {
				failed++
			}
		}
		for i := 0; i < cfg.Ops; i++ {
			if oks[i] {
				// Refs are fresh from this iteration; Free cannot fail.
				_ = a.Free(refs[i])
			}
		}
	}
	elapsed := time.Since(start)

	total := cfg.Iterations * cfg.Ops * 2
	secs := elapsed.Seconds()
	r := SpeedReport{
		Strategy:     strategyName(a),
		Iterations:   cfg.Iterations,
		OpsPerIter:   cfg.Ops * 2,
		TotalOps:     total,
		FailedAllocs: failed,
		Elapsed:      elapsed,
	}
	if secs > 0 {
		r.OpsPerSec = float64(total) / secs
		r.AvgMicros = elapsed.Seconds() * 1e6 / float64(total)
	}
	return r
}

func strategyName(a alloc.Allocator) string {
	switch v := a.(type) {
	case *alloc.BitmapAllocator:
		return alloc.StrategyBitmap
	case *alloc.ListAllocator:
		return alloc.StrategyList
	case *alloc.SpanAllocator:
		return v.Strategy()
	default:
		return "unknown"
	}
}
