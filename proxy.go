package urlup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrProxyLogin reports that authenticating to a proxy host failed.
var ErrProxyLogin = errors.New("proxy login failed")

// CredentialFunc supplies the username and password for a proxy host. It is
// called at most once per host per run; the helper caches the session.
type CredentialFunc func(proxyHost string) (user, password string, err error)

// ProxyHelper authenticates to EZproxy-style URL-rewriting proxies and hands
// out the session cookies needed to reach URLs routed through them. Safe for
// concurrent use; each proxy host is logged into at most once per run.
type ProxyHelper struct {
	credentials CredentialFunc
	client      *http.Client

	mu       sync.Mutex
	sessions map[string][]*http.Cookie
}

// NewProxyHelper builds a helper that obtains credentials through creds and
// logs in with the given per-request timeout.
func NewProxyHelper(creds CredentialFunc, timeout time.Duration) *ProxyHelper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ProxyHelper{
		credentials: creds,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// The login response's Set-Cookie is the whole point;
				// following its redirect would lose it.
				return http.ErrUseLastResponse
			},
		},
		sessions: make(map[string][]*http.Cookie),
	}
}

// Cookies returns the session cookies to attach to a request for target. For
// URLs that do not go through a proxy it returns nothing.
func (p *ProxyHelper) Cookies(ctx context.Context, target string) ([]*http.Cookie, error) {
	if !ContainsProxy(target) {
		return nil, nil
	}
	host, err := ProxyHost(target)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cookies, ok := p.sessions[host]; ok {
		return cookies, nil
	}
	cookies, err := p.login(ctx, host)
	if err != nil {
		return nil, err
	}
	p.sessions[host] = cookies
	return cookies, nil
}

// login posts the credential form to the proxy's login endpoint and captures
// the session cookies from its response.
func (p *ProxyHelper) login(ctx context.Context, host string) ([]*http.Cookie, error) {
	user, password, err := p.credentials(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxyLogin, err)
	}

	form := url.Values{}
	form.Set("user", user)
	form.Set("pass", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		host+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxyLogin, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxyLogin, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrProxyLogin, host, resp.StatusCode)
	}
	return resp.Cookies(), nil
}

// ContainsProxy reports whether rawURL appears to be routed through a
// URL-rewriting proxy.
func ContainsProxy(rawURL string) bool {
	return strings.Contains(rawURL, "proxy")
}

// ProxyHost extracts the proxy's own address (scheme plus host) from a
// proxied URL such as https://clsproxy.library.example.edu/login?url=...
func ProxyHost(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: cannot determine proxy host of %q", ErrProxyLogin, rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// ProxiedURL returns the target URL embedded in a proxied URL's query, or the
// input unchanged when no embedded URL is present.
func ProxiedURL(rawURL string) string {
	if i := strings.Index(rawURL, "url="); i >= 0 {
		return rawURL[i+len("url="):]
	}
	return rawURL
}
