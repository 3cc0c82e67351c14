// Package sim runs the three classic workloads against a blockkit
// allocator and returns structured reports.
//
//   - Speed: repeated alloc/free cycles under a wall clock, reporting
//     throughput (ops/sec) and mean latency per operation.
//   - Fragmentation: allocate many small files, delete a few at random,
//     then attempt one large request. The contiguous strategies (bitmap and
//     the span placement policies) need a free run that covers the request;
//     the list only needs enough free nodes, so this is where the
//     strategies diverge.
//   - Trace: a fixed allocation sequence with the occupancy map captured
//     after every step, for deterministic side-by-side comparison.
//
// Harnesses never print; they return report structs that the blockctl CLI
// and blockview TUI render. All randomness comes from seeds in the config,
// so every run is reproducible.
package sim
