package aspectsum

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// A BatchResult is the outcome of summarizing one business.
type BatchResult struct {
	BusinessID string
	Summary    *BusinessSummary
	Reviews    int
	Sentences  int
	Elapsed    time.Duration
	Err        error
}

// A BatchOpt represents a setting that changes a SummarizeAll run.
type BatchOpt func(opts *batchOpts)

type batchOpts struct {
	business []BusinessOpt
	progress func(BatchResult)
}

// WithBusinessOpts applies opts to every Business in the batch.
func WithBusinessOpts(opts ...BusinessOpt) BatchOpt {
	return func(o *batchOpts) {
		o.business = append(o.business, opts...)
	}
}

// WithProgressCallback is called once per finished business. Calls are
// serialized.
func WithProgressCallback(callback func(BatchResult)) BatchOpt {
	return func(o *batchOpts) {
		o.progress = callback
	}
}

// SummarizeAll summarizes each corpus independently on at most workers
// goroutines. Results are returned in corpus order. A failing business yields
// a result with Err set and no summary; all such failures are joined into the
// returned error. A panic while summarizing one business is reported the same
// way. Cancelling ctx stops scheduling new businesses.
func SummarizeAll(ctx context.Context, m *Model, corpora [][]ReviewRecord, workers int, opts ...BatchOpt) ([]BatchResult, error) {
	var o batchOpts
	for _, applyOpt := range opts {
		applyOpt(&o)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]BatchResult, len(corpora))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, records := range corpora {
		if err := gctx.Err(); err != nil {
			break
		}
		i, records := i, records
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := summarizeOne(m, records, o.business)
			results[i] = res
			if o.progress != nil {
				mu.Lock()
				o.progress(res)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}

func summarizeOne(m *Model, records []ReviewRecord, opts []BusinessOpt) (res BatchResult) {
	start := time.Now()
	res = BatchResult{Reviews: len(records)}
	if len(records) > 0 {
		res.BusinessID = records[0].BusinessID
	}
	defer func() {
		if r := recover(); r != nil {
			res.Summary = nil
			res.Err = fmt.Errorf("business %q: panic: %v", res.BusinessID, r)
			res.Elapsed = time.Since(start)
		}
	}()

	b, err := NewBusiness(m, records, opts...)
	if err != nil {
		res.Err = fmt.Errorf("business %q: %w", res.BusinessID, err)
		res.Elapsed = time.Since(start)
		return res
	}
	res.Sentences = b.SentenceCount()

	summary, err := b.AspectBasedSummary()
	if err != nil {
		res.Err = fmt.Errorf("business %q: %w", res.BusinessID, err)
	} else {
		res.Summary = &summary
	}
	res.Elapsed = time.Since(start)
	return res
}
