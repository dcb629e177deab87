package urlup

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ResolveBatch dereferences every request and returns one Result per input,
// in input order. With Options.Workers > 1 requests overlap, but each worker
// writes only its own slot so ordering is preserved without sorting.
func (r *Resolver) ResolveBatch(ctx context.Context, reqs []Request) []Result {
	out := make([]Result, len(reqs))

	var limiter *rate.Limiter
	if r.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.opts.RateLimit), 1)
	}

	type job struct {
		idx int
		req Request
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						out[jb.idx] = Result{Original: jb.req.URL, Error: categorize(err)}
						continue
					}
				}
				out[jb.idx] = r.Resolve(ctx, jb.req)
			}
		}()
	}

	go func() {
		for i, rq := range reqs {
			if ctx.Err() != nil {
				break
			}
			jobs <- job{idx: i, req: rq}
		}
		close(jobs)
	}()

	wg.Wait()

	// Jobs skipped because the context ended still get a slot.
	if err := ctx.Err(); err != nil {
		for i := range out {
			if out[i] == (Result{}) {
				out[i] = Result{Original: reqs[i].URL, Error: categorize(err)}
			}
		}
	}
	return out
}
