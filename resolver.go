package urlup

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// Short failure descriptions recorded in Result.Error.
const (
	errEmptyURL         = "Empty URL"
	errMalformedURL     = "Malformed URL"
	errNoHost           = "Cannot resolve host name"
	errRefused          = "Connection refused"
	errTimeout          = "Connection timed out"
	errTooManyRedirects = "Too many redirects"
	errRedirectLoop     = "Redirect loop detected"
	errBadLocation      = "Malformed redirect location"
)

// acceptedPause is how long to wait before re-requesting a URL that answered
// 202 Accepted, which some servers use for deferred batch processing.
const acceptedPause = 1 * time.Second

// Resolver dereferences URLs by walking their redirect chains manually.
// It is safe for concurrent use.
type Resolver struct {
	client *http.Client
	proxy  *ProxyHelper
	opts   Options
}

// NewResolver builds a Resolver from opts.
func NewResolver(opts Options) *Resolver {
	opts = opts.withDefaults()
	return &Resolver{
		client: newClient(opts),
		proxy:  opts.Proxy,
		opts:   opts,
	}
}

// Resolve dereferences a single request. It never returns an error; failures
// are recorded in Result.Error so a batch can keep going.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	original := strings.TrimSpace(req.URL)
	res := Result{Original: original}
	if original == "" {
		res.Error = errEmptyURL
		return res
	}
	if u, err := url.Parse(original); err != nil || u.Scheme == "" || u.Host == "" {
		res.Error = errMalformedURL
		return res
	}

	current := original
	firstStatus := 0
	paused := false
	seen := make(map[string]struct{})

	for hop := 0; hop < r.opts.MaxRedirects; hop++ {
		if _, ok := seen[current]; ok {
			res.Error = errRedirectLoop
			return res
		}
		seen[current] = struct{}{}

		resp, err := r.fetch(ctx, current, req)
		if err != nil {
			res.Error = categorize(err)
			return res
		}
		if firstStatus == 0 {
			firstStatus = resp.StatusCode
		}

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			reqURL := resp.Request.URL
			_ = resp.Body.Close()
			if loc == "" {
				// Redirect with nowhere to go; treat it as terminal.
				res.Final = reqURL.String()
				res.Status = firstStatus
				return res
			}
			next, perr := url.Parse(loc)
			if perr != nil {
				res.Error = errBadLocation
				return res
			}
			current = reqURL.ResolveReference(next).String()
			continue
		}

		if resp.StatusCode == http.StatusAccepted && !paused {
			// The request was taken for deferred processing; give the
			// server a moment and ask once more.
			_ = resp.Body.Close()
			paused = true
			delete(seen, current)
			select {
			case <-ctx.Done():
				res.Error = categorize(ctx.Err())
				return res
			case <-time.After(acceptedPause):
			}
			continue
		}

		res.Final = resp.Request.URL.String()
		res.Status = firstStatus
		_ = resp.Body.Close()
		return res
	}

	res.Error = errTooManyRedirects
	return res
}

func (r *Resolver) fetch(ctx context.Context, target string, req Request) (*http.Response, error) {
	out, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		out.Header.Set(k, v)
	}
	for name, value := range req.Cookies {
		out.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	if r.proxy != nil {
		cookies, cerr := r.proxy.Cookies(ctx, target)
		if cerr != nil {
			return nil, cerr
		}
		for _, c := range cookies {
			out.AddCookie(c)
		}
	}
	return r.client.Do(out)
}

// categorize maps a transport error to one of the short descriptions above,
// falling back to the unwrapped error text.
func categorize(err error) string {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr):
		return errNoHost
	case errors.Is(err, syscall.ECONNREFUSED):
		return errRefused
	case errors.Is(err, context.DeadlineExceeded):
		return errTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return errTimeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}
