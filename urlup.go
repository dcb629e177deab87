package urlup

import "context"

// Resolve dereferences a single URL and returns its Result. Failures are
// reported through Result.Error, never by panicking or aborting.
func Resolve(ctx context.Context, rawURL string, opts Options) Result {
	return NewResolver(opts).Resolve(ctx, Request{URL: rawURL})
}

// ResolveAll dereferences urls and returns one Result per input URL, in the
// same order. Individual failures do not stop the batch.
func ResolveAll(ctx context.Context, urls []string, opts Options) []Result {
	r := NewResolver(opts)
	reqs := make([]Request, len(urls))
	for i, u := range urls {
		reqs[i] = Request{URL: u}
	}
	return r.ResolveBatch(ctx, reqs)
}
