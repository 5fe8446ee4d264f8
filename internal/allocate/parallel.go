package allocate

import (
	"context"

	"github.com/dgallion1/deckplan/internal/deck"
)

type outcome struct {
	idx         int
	sourceIndex int
	entry       *deck.AllocationEntry
	err         error
}

// allocateAll runs allocateOne over every expanded request, with bounded
// concurrency when more than one worker is configured. Results always come
// back in input order.
func (a *Allocator) allocateAll(ctx context.Context, reqs []expandedRequest) []outcome {
	if a.cfg.Workers <= 1 {
		out := make([]outcome, len(reqs))
		for i, er := range reqs {
			if err := ctx.Err(); err != nil {
				out[i] = outcome{idx: i, sourceIndex: er.sourceIndex, err: err}
				continue
			}
			entry, err := a.allocateOne(er.req)
			out[i] = outcome{idx: i, sourceIndex: er.sourceIndex, entry: entry, err: err}
		}
		return out
	}

	results := make(chan outcome, len(reqs))
	sem := make(chan struct{}, a.cfg.Workers)
	for i, er := range reqs {
		sem <- struct{}{}
		go func(i int, er expandedRequest) {
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				results <- outcome{idx: i, sourceIndex: er.sourceIndex, err: err}
				return
			}
			entry, err := a.allocateOne(er.req)
			results <- outcome{idx: i, sourceIndex: er.sourceIndex, entry: entry, err: err}
		}(i, er)
	}

	out := make([]outcome, len(reqs))
	for range reqs {
		r := <-results
		out[r.idx] = r
	}
	return out
}
