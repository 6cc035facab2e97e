package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Keys returns n keys drawn uniformly from [lo, hi). Repeats are likely.
func (r *RNG) Keys(n int, lo, hi int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int64, n)
	for i := range keys {
		keys[i] = lo + r.rand.Int63n(hi-lo)
	}
	return keys
}

// UniqueKeys returns n distinct keys from [lo, hi) in random order.
// It panics if the range holds fewer than n values.
func (r *RNG) UniqueKeys(n int, lo, hi int64) []int64 {
	if hi-lo < int64(n) {
		panic(fmt.Sprintf("testutil: range [%d, %d) too small for %d unique keys", lo, hi, n))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, n)
	keys := make([]int64, 0, n)
	for len(keys) < n {
		k := lo + r.rand.Int63n(hi-lo)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// ZipfKeys draws n keys from pool with Zipfian skew s.
// s=1.5 concentrates most draws on a handful of keys, which exercises
// heavily repeated query values.
func (r *RNG) ZipfKeys(n int, pool []int64, s float64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int64, n)
	for i := range keys {
		keys[i] = pool[r.zipfLocked(len(pool), s)]
	}
	return keys
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Words returns n short lowercase strings drawn from an alphabet of
// the given size. Small alphabets produce many repeats.
func (r *RNG) Words(n, alphabet int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", r.rand.Intn(alphabet))
	}
	return words
}

// BruteForceMatch returns every pair (i, j) with x[i] == y[j], ordered by
// i and then j. It is the quadratic ground truth for matcher tests.
func BruteForceMatch[E comparable](x, y []E) (inds1, inds2 []int) {
	inds1, inds2 = []int{}, []int{}
	for i, xv := range x {
		for j, yv := range y {
			if xv == yv {
				inds1 = append(inds1, i)
				inds2 = append(inds2, j)
			}
		}
	}
	return inds1, inds2
}

// Pair is a single (query, reference) index pair.
type Pair struct {
	I, J int
}

// Pairs zips two index arrays into pairs sorted by I then J.
func Pairs(inds1, inds2 []int) []Pair {
	n := min(len(inds1), len(inds2))
	out := make([]Pair, n)
	for k := range n {
		out[k] = Pair{inds1[k], inds2[k]}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// SamePairs reports whether two match results contain the same pairs,
// ignoring order.
func SamePairs(want1, want2, got1, got2 []int) bool {
	if len(want1) != len(got1) || len(want2) != len(got2) || len(want1) != len(want2) {
		return false
	}
	a, b := Pairs(want1, want2), Pairs(got1, got2)
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
