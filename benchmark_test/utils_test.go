package benchmark_test

import (
	"fmt"

	"github.com/hupe1980/xmatch/matcher"
	"github.com/hupe1980/xmatch/testutil"
)

var matchers = []struct {
	name string
	m    matcher.Matcher
}{
	{"Lookup", matcher.Lookup{}},
	{"SortMerge", matcher.SortMerge{}},
}

func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// workload is one query/reference key distribution.
type workload struct {
	name      string
	query     []int64
	reference []int64
}

// workloads builds the key distributions the benchmarks run against.
//
//   - dense:   reference packed into a small span, high hit rate
//   - sparse:  reference spread over a 2^31 span, low hit rate
//   - zipfian: queries concentrated on a few hot reference keys
//   - miss:    disjoint key ranges, nothing matches
func workloads(n int) []workload {
	rng := testutil.NewRNG(42)

	dense := rng.UniqueKeys(n, 0, int64(2*n))
	sparse := rng.UniqueKeys(n, 0, 1<<31)

	return []workload{
		{"dense", rng.Keys(n, 0, int64(2*n)), dense},
		{"sparse", rng.Keys(n, 0, 1<<31), sparse},
		{"zipfian", rng.ZipfKeys(n, dense, 1.5), dense},
		{"miss", rng.Keys(n, int64(4*n), int64(8*n)), dense},
	}
}
