package engine

import (
	"context"
	"sync"

	"github.com/Veraticus/rplmatch/internal/fuzzy"
	"github.com/Veraticus/rplmatch/internal/model"
	"golang.org/x/sync/errgroup"
)

// runParallel evaluates records on a worker pool. Every worker owns its own
// Selector over the shared, read-only CandidateSet and writes only its
// record's slot, so results stay in input order. Progress and checkpoints
// run on the calling goroutine as completions arrive.
func (m *Matcher) runParallel(ctx context.Context, session *Session, onProgress ProgressFunc) ([]model.MatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := len(session.Records)
	results := make([]model.MatchResult, total)
	workers := min(m.opts.Workers, total)

	workChan := make(chan int)
	doneChan := make(chan int, workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(workChan)
		for i := range session.Records {
			select {
			case workChan <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			defer wg.Done()
			sel := fuzzy.NewSelector(session.Candidates)
			for i := range workChan {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = matchRecord(sel, session.Records[i], session.Selector, i)
				select {
				case doneChan <- i:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(doneChan)
	}()

	processed := 0
	var reportErr error
	for range doneChan {
		processed++
		if reportErr != nil {
			continue
		}
		if err := m.advance(ctx, session, processed, total, onProgress); err != nil {
			reportErr = err
			cancel()
		}
	}

	waitErr := g.Wait()
	if reportErr != nil {
		return nil, reportErr
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if processed != total {
		// Only reachable through cancellation of the parent context.
		return nil, ctx.Err()
	}
	return results, nil
}
