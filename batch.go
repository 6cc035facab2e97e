package xmatch

import (
	"context"
	"time"

	"github.com/hupe1980/xmatch/internal/resource"
	"github.com/hupe1980/xmatch/matcher"
	"golang.org/x/sync/errgroup"
)

// MatchResult is one ordered match produced by OrderedMatchBatch.
type MatchResult struct {
	Inds1 []int
	Inds2 []int
}

// OrderedMatchBatch runs OrderedMatch for every query against one
// reference. Results are aligned with queries.
//
// If the configured matcher implements matcher.Preparer, the reference is
// prepared once and probed from up to WithConcurrency goroutines. The first
// error, or cancellation of ctx, stops the remaining work.
//
// WithMaxInFlightKeys and WithRateLimit bound how much query data is
// admitted at once.
func OrderedMatchBatch[K Key](ctx context.Context, queries [][]K, reference []K, optFns ...Option) ([]MatchResult, error) {
	o := applyOptions(optFns)
	start := time.Now()

	results, err := orderedMatchBatch(ctx, &o, queries, reference)

	o.metricsCollector.RecordBatch(len(queries), time.Since(start), err)
	o.logger.WithOperation(OpOrderedMatchBatch).LogBatch(ctx, len(queries), len(reference), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func orderedMatchBatch[K Key](ctx context.Context, o *options, queries [][]K, reference []K) ([]MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	y := matcher.Widen(reference)

	match := func(x []int64) ([]int, []int, error) {
		return o.matcher.Match(x, y, o.skipBoundsChecking)
	}
	if p, ok := o.matcher.(matcher.Preparer); ok {
		idx, err := p.Prepare(y, o.skipBoundsChecking)
		if err != nil {
			return nil, err
		}
		match = func(x []int64) ([]int, []int, error) {
			inds1, inds2 := idx.Probe(x, o.skipBoundsChecking)
			return inds1, inds2, nil
		}
	}

	rc := resource.NewController(o.limits)
	results := make([]MatchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := rc.Acquire(gctx, len(q)); err != nil {
				return err
			}
			defer rc.Release(len(q))

			inds1, inds2, err := match(matcher.Widen(q))
			if err != nil {
				return err
			}
			if err := sortByQuery(inds1, inds2); err != nil {
				return err
			}
			results[i] = MatchResult{Inds1: inds1, Inds2: inds2}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancellation that raced the last Go call is still reported.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
