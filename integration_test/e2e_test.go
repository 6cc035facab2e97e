package integration_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/xmatch"
	"github.com/hupe1980/xmatch/codebook"
	"github.com/hupe1980/xmatch/codec"
	"github.com/hupe1980/xmatch/matcher"
	"github.com/hupe1980/xmatch/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_CodebookAcrossSessions numerifies, persists the codebook, and
// matches new data against codes from the reloaded codebook.
func TestE2E_CodebookAcrossSessions(t *testing.T) {
	rng := testutil.NewRNG(2024)
	catalogue := rng.Words(500, 300)

	refCodes, cb := xmatch.Numerify(catalogue, nil)

	for _, c := range []codebook.Compression{codebook.CompressionNone, codebook.CompressionLZ4, codebook.CompressionZSTD} {
		for _, cd := range []codec.Codec{codec.JSON{}, codec.GoJSON{}, codec.Msgpack{}} {
			t.Run(c.String()+"/"+cd.Name(), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, codebook.Write(&buf, cb, codebook.WithCompression(c), codebook.WithCodec(cd)))

				loaded, err := codebook.Read[string](&buf)
				require.NoError(t, err)
				require.Equal(t, cb.Values(), loaded.Values())

				queries := rng.Words(200, 400)
				qCodes, _ := xmatch.Numerify(queries, loaded.Clone())

				got1, got2, err := xmatch.OrderedMatch(qCodes, refCodes, xmatch.WithMatcher(matcher.SortMerge{}))
				require.NoError(t, err)

				want1, want2 := testutil.BruteForceMatch(queries, catalogue)
				assert.Equal(t, want1, got1)
				assert.Equal(t, want2, got2)
			})
		}
	}
}

// TestE2E_JoinPipeline matches, fetches and scatters over one dataset and
// checks the three results agree with each other.
func TestE2E_JoinPipeline(t *testing.T) {
	rng := testutil.NewRNG(77)
	refKeys := rng.UniqueKeys(1000, -5000, 5000)
	targetKeys := rng.Keys(3000, -6000, 6000)

	type row struct {
		ID    int64
		Score float64
	}
	source := make([]row, len(refKeys))
	for i, k := range refKeys {
		source[i] = row{ID: k, Score: float64(i)}
	}
	target := make([]row, len(targetKeys))

	inds1, inds2, err := xmatch.OrderedMatch(targetKeys, refKeys)
	require.NoError(t, err)

	fetched, err := xmatch.FetchAssociated(targetKeys, refKeys, source)
	require.NoError(t, err)
	require.Len(t, fetched, len(inds1))

	res, err := xmatch.ScatterJoinWithIndices(target, targetKeys, refKeys, source)
	require.NoError(t, err)
	assert.Equal(t, inds1, res.Inds1)
	assert.Equal(t, inds2, res.Inds2)
	assert.Equal(t, fetched, res.Values)

	matched := make(map[int]bool, len(inds1))
	for k, i := range inds1 {
		matched[i] = true
		assert.Equal(t, targetKeys[i], res.Target[i].ID)
		assert.Equal(t, fetched[k], res.Target[i])
	}
	for i := range target {
		if !matched[i] {
			assert.Equal(t, row{}, res.Target[i])
		}
	}
	for _, r := range target {
		assert.Equal(t, row{}, r)
	}
}

// TestE2E_BatchAgreesWithCrossmatch runs the same work through the batch
// path and the non-numeric path.
func TestE2E_BatchAgreesWithCrossmatch(t *testing.T) {
	rng := testutil.NewRNG(5)
	reference := rng.UniqueKeys(400, 0, 1000)

	queries := make([][]int64, 8)
	for i := range queries {
		queries[i] = rng.ZipfKeys(300, reference, 1.2)
	}

	results, err := xmatch.OrderedMatchBatch(context.Background(), queries, reference, xmatch.WithConcurrency(3))
	require.NoError(t, err)

	refAny := make([]any, len(reference))
	for i, v := range reference {
		refAny[i] = v
	}
	for qi, q := range queries {
		qAny := make([]any, len(q))
		for i, v := range q {
			qAny[i] = v
		}

		for _, numerify := range []bool{true, false} {
			inds1, inds2, err := xmatch.CrossmatchNonNumeric(qAny, refAny,
				xmatch.WithNumerify(numerify),
				xmatch.WithCombineTuples(false),
			)
			require.NoError(t, err)
			assert.True(t, testutil.SamePairs(results[qi].Inds1, results[qi].Inds2, inds1, inds2), "query %d numerify=%v", qi, numerify)
		}
	}
}
