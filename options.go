package xmatch

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/xmatch/internal/resource"
	"github.com/hupe1980/xmatch/matcher"
)

type options struct {
	matcher            matcher.Matcher
	skipBoundsChecking bool
	numerify           bool
	combineTuples      bool
	concurrency        int
	limits             resource.Config
	metricsCollector   MetricsCollector
	logger             *Logger
}

// Option configures a join operation.
type Option func(*options)

// WithMatcher configures the crossmatch primitive.
//
// If nil is passed, matcher.Default is used.
func WithMatcher(m matcher.Matcher) Option {
	return func(o *options) {
		if m == nil {
			m = matcher.Default
		}
		o.matcher = m
	}
}

// WithSkipBoundsChecking disables the matcher's validation of the key
// domain (and, for matcher.Lookup, of reference uniqueness).
//
// Only use this when the caller guarantees the keys fit the matcher's
// domain; otherwise results are unspecified.
func WithSkipBoundsChecking() Option {
	return func(o *options) {
		o.skipBoundsChecking = true
	}
}

// WithNumerify controls whether CrossmatchNonNumeric converts its input to
// codes before matching (default true). When disabled, the input must
// already hold integers.
func WithNumerify(enabled bool) Option {
	return func(o *options) {
		o.numerify = enabled
	}
}

// WithCombineTuples controls whether CrossmatchNonNumeric converts each
// item into a tuple before numerify (default true).
func WithCombineTuples(enabled bool) Option {
	return func(o *options) {
		o.combineTuples = enabled
	}
}

// WithConcurrency bounds the number of goroutines used by
// OrderedMatchBatch. Values < 1 select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMaxInFlightKeys caps the total number of query keys OrderedMatchBatch
// probes at the same time. A query longer than n runs alone.
func WithMaxInFlightKeys(n int64) Option {
	return func(o *options) {
		o.limits.MaxInFlightKeys = n
	}
}

// WithRateLimit throttles OrderedMatchBatch to about keysPerSecond query
// keys per second. Waiting respects the batch context.
func WithRateLimit(keysPerSecond float64) Option {
	return func(o *options) {
		o.limits.KeysPerSecond = keysPerSecond
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &xmatch.BasicMetricsCollector{}
//	_, _, _ = xmatch.OrderedMatch(q, r, xmatch.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Matches: %d, Avg latency: %dns\n", stats.MatchCount, stats.MatchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := xmatch.NewJSONLogger(slog.LevelDebug)
//	_, _, _ = xmatch.OrderedMatch(q, r, xmatch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		matcher:          matcher.Default,
		numerify:         true,
		combineTuples:    true,
		metricsCollector: NoopMetricsCollector{},
		logger:           noopLogger,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

var noopLogger = NoopLogger()

func (o *options) observeMatch(ctx context.Context, op Operation, queryLen, referenceLen, matches int, start time.Time, err error) {
	o.metricsCollector.RecordMatch(op, queryLen, matches, time.Since(start), err)
	o.logger.LogMatch(ctx, op, queryLen, referenceLen, matches, err)
}

func (o *options) observeNumerify(ctx context.Context, values, newCodes int, start time.Time, err error) {
	o.metricsCollector.RecordNumerify(values, newCodes, time.Since(start), err)
	o.logger.LogNumerify(ctx, values, newCodes, err)
}
