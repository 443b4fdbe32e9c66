// Package testutil provides deterministic helpers for tests and benchmarks:
// a seeded random point generator and a brute-force nearest-neighbor
// reference implementation used as ground truth.
package testutil
