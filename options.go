package urlup

import "time"

// Default limits. The redirect ceiling exists to stop infinite redirect
// chains that never revisit the same URL.
const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxRedirects = 30
)

// Options configures resolution. The zero value is usable: sequential
// processing, DefaultTimeout, DefaultMaxRedirects, no retries, no proxy.
type Options struct {
	// Timeout bounds each outbound request. <= 0 means DefaultTimeout.
	Timeout time.Duration

	// MaxRedirects caps the number of redirect hops followed per URL.
	// <= 0 means DefaultMaxRedirects.
	MaxRedirects int

	// Retries is the number of extra attempts the underlying client makes
	// on 5xx responses or transport errors. 0 disables retrying.
	Retries int

	// Workers is the number of URLs resolved concurrently by ResolveAll.
	// <= 1 means strictly sequential, which is the default. Output order
	// always matches input order regardless.
	Workers int

	// RateLimit caps outgoing request starts per second across the whole
	// batch. 0 means unlimited.
	RateLimit int

	// Headers are added to every request.
	Headers map[string]string

	// Cookies are sent with every request.
	Cookies map[string]string

	// Insecure skips TLS certificate verification.
	Insecure bool

	// Proxy, when set, authenticates to EZproxy-style hosts and attaches
	// the session cookies to requests that go through them.
	Proxy *ProxyHelper
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = DefaultMaxRedirects
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.RateLimit < 0 {
		o.RateLimit = 0
	}
	return o
}
