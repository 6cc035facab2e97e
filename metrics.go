package xmatch

import (
	"sync/atomic"
	"time"
)

// Operation names a join operation in logs and metrics.
type Operation string

const (
	OpOrderedMatch         Operation = "ordered_match"
	OpFetchAssociated      Operation = "fetch_associated"
	OpScatterJoin          Operation = "scatter_join"
	OpCrossmatchNonNumeric Operation = "crossmatch_non_numeric"
	OpCrossmatchComparable Operation = "crossmatch_comparable"
	OpOrderedMatchBatch    Operation = "ordered_match_batch"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    matchHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordMatch(op xmatch.Operation, q, m int, d time.Duration, err error) {
//	    p.matchHistogram.WithLabelValues(string(op)).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordMatch is called after each match-based operation.
	// queryLen is the query array length, matches the number of pairs found.
	RecordMatch(op Operation, queryLen, matches int, duration time.Duration, err error)

	// RecordNumerify is called after each numerify call.
	// newCodes is the number of codes added to the codebook.
	RecordNumerify(values, newCodes int, duration time.Duration, err error)

	// RecordBatch is called after each batch match.
	RecordBatch(queries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMatch(Operation, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordNumerify(int, int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordBatch(int, time.Duration, error)                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MatchCount       atomic.Int64
	MatchErrors      atomic.Int64
	MatchPairs       atomic.Int64
	MatchTotalNanos  atomic.Int64
	NumerifyCount    atomic.Int64
	NumerifyValues   atomic.Int64
	NumerifyNewCodes atomic.Int64
	NumerifyErrors   atomic.Int64
	BatchCount       atomic.Int64
	BatchQueries     atomic.Int64
	BatchErrors      atomic.Int64
}

// RecordMatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatch(_ Operation, _, matches int, duration time.Duration, err error) {
	b.MatchCount.Add(1)
	b.MatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MatchErrors.Add(1)
		return
	}
	b.MatchPairs.Add(int64(matches))
}

// RecordNumerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNumerify(values, newCodes int, _ time.Duration, err error) {
	b.NumerifyCount.Add(1)
	b.NumerifyValues.Add(int64(values))
	b.NumerifyNewCodes.Add(int64(newCodes))
	if err != nil {
		b.NumerifyErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(queries int, _ time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchQueries.Add(int64(queries))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MatchCount:       b.MatchCount.Load(),
		MatchErrors:      b.MatchErrors.Load(),
		MatchPairs:       b.MatchPairs.Load(),
		MatchAvgNanos:    b.getAvgMatchNanos(),
		NumerifyCount:    b.NumerifyCount.Load(),
		NumerifyValues:   b.NumerifyValues.Load(),
		NumerifyNewCodes: b.NumerifyNewCodes.Load(),
		NumerifyErrors:   b.NumerifyErrors.Load(),
		BatchCount:       b.BatchCount.Load(),
		BatchQueries:     b.BatchQueries.Load(),
		BatchErrors:      b.BatchErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgMatchNanos() int64 {
	count := b.MatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.MatchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MatchCount       int64
	MatchErrors      int64
	MatchPairs       int64
	MatchAvgNanos    int64
	NumerifyCount    int64
	NumerifyValues   int64
	NumerifyNewCodes int64
	NumerifyErrors   int64
	BatchCount       int64
	BatchQueries     int64
	BatchErrors      int64
}
