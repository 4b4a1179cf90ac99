package golayout

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/golayout/internal/conv"
	"github.com/hupe1980/golayout/layout"
)

// Missing marks a needle without a matching key in FindBatch output.
const Missing layout.UnorderedIndex = -1

// minShard is the smallest needle count worth a goroutine.
const minShard = 256

// FindBatch looks up every needle and stores its physical index (or
// Missing) in out[i]. It returns the number of hits.
//
// When the policy implements layout.BatchSearcher the lookups run
// interleaved through the amac coordinator, up to the configured batch
// width at a time.
func (m *Map[K, V, P]) FindBatch(needles []K, out []layout.UnorderedIndex) (int, error) {
	start := time.Now()
	hits, err := m.findBatch(needles, out)
	m.opts.logger.LogBatch(context.Background(), m.Policy(), len(needles), hits, 1, err)
	if err == nil {
		m.opts.metricsCollector.RecordBatch(m.Policy(), len(needles), hits, time.Since(start))
	}
	return hits, err
}

func (m *Map[K, V, P]) findBatch(needles []K, out []layout.UnorderedIndex) (int, error) {
	if len(out) < len(needles) {
		return 0, fmt.Errorf("%w: %d < %d", layout.ErrShortOutput, len(out), len(needles))
	}

	var p P
	lb := make([]int, len(needles))
	if bs, ok := any(p).(layout.BatchSearcher[K]); ok && len(needles) > 1 {
		if err := bs.LowerBoundBatch(m.keys, needles, m.order, m.opts.batchWidth, lb); err != nil {
			return 0, err
		}
	} else {
		for i, q := range needles {
			lb[i] = p.LowerBound(m.keys, q, m.order)
		}
	}

	hits := 0
	for i, q := range needles {
		j := lb[i]
		if j < len(m.keys) && !m.order.Less(q, m.keys[j]) {
			out[i] = layout.UnorderedIndex(j)
			hits++
		} else {
			out[i] = Missing
		}
	}
	return hits, nil
}

// ContainsBatch returns the positions of the needles that are present.
func (m *Map[K, V, P]) ContainsBatch(needles []K) (*roaring.Bitmap, error) {
	out := make([]layout.UnorderedIndex, len(needles))
	if _, err := m.FindBatch(needles, out); err != nil {
		return nil, err
	}

	bm := roaring.New()
	for i, idx := range out {
		if idx == Missing {
			continue
		}
		pos, err := conv.IntToUint32(i)
		if err != nil {
			return nil, err
		}
		bm.Add(pos)
	}
	return bm, nil
}

// FindBatchParallel is FindBatch with the needles split into shards looked
// up concurrently, at most the configured parallelism at a time. It stops
// early when ctx is cancelled.
func (m *Map[K, V, P]) FindBatchParallel(ctx context.Context, needles []K, out []layout.UnorderedIndex) (int, error) {
	if len(out) < len(needles) {
		return 0, fmt.Errorf("%w: %d < %d", layout.ErrShortOutput, len(out), len(needles))
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()
	workers := max(1, min(m.opts.parallelism, (len(needles)+minShard-1)/minShard))
	shard := max(1, (len(needles)+workers-1)/workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var hits atomic.Int64
	for lo := 0; lo < len(needles); lo += shard {
		hi := min(lo+shard, len(needles))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h, err := m.findBatch(needles[lo:hi], out[lo:hi])
			hits.Add(int64(h))
			return err
		})
	}

	err := g.Wait()
	total := int(hits.Load())
	m.opts.logger.LogBatch(ctx, m.Policy(), len(needles), total, workers, err)
	if err != nil {
		return 0, err
	}
	m.opts.metricsCollector.RecordBatch(m.Policy(), len(needles), total, time.Since(start))
	return total, nil
}
