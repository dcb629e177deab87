package urlup

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// injectRoundTripper wraps a base RoundTripper to add configured headers and
// cookies to every request, retrying transport errors and 5xx responses when
// retries are enabled.
type injectRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
	cookies map[string]string
	retries int
}

func (h *injectRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if h.base == nil {
		h.base = http.DefaultTransport
	}

	var resp *http.Response
	var err error

	for attempt := 0; ; attempt++ {
		// Clone the request to avoid mutations across retries.
		r := req.Clone(req.Context())
		if req.Body != nil {
			if req.GetBody != nil {
				if body, berr := req.GetBody(); berr == nil {
					r.Body = body
				}
			} else {
				r.Body = req.Body
			}
		}

		for k, v := range h.headers {
			r.Header.Set(k, v)
		}
		for name, value := range h.cookies {
			r.AddCookie(&http.Cookie{Name: name, Value: value})
		}

		resp, err = h.base.RoundTrip(r)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if attempt >= h.retries {
			if err != nil {
				return nil, err
			}
			return resp, nil
		}

		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(time.Duration(100*(1<<attempt)) * time.Millisecond)
	}
}

// newClient returns an HTTP client that never follows redirects on its own;
// the Resolver walks the chain manually so it can record every hop.
func newClient(opts Options) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.Insecure},
		DialContext: (&net.Dialer{
			Timeout:   opts.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: &injectRoundTripper{
			base:    transport,
			headers: opts.Headers,
			cookies: opts.Cookies,
			retries: opts.Retries,
		},
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
