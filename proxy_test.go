package urlup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProxyServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.FormValue("user") != "libuser" || r.FormValue("pass") != "s3cret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "ezproxy", Value: "session123"})
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("/proxy/page", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("ezproxy")
		if err != nil || cookie.Value != "session123" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("journal article"))
	})
	return httptest.NewServer(mux)
}

func TestProxyCookies(t *testing.T) {
	srv := setupProxyServer(t)
	defer srv.Close()

	calls := 0
	helper := NewProxyHelper(func(host string) (string, string, error) {
		calls++
		assert.Equal(t, srv.URL, host)
		return "libuser", "s3cret", nil
	}, 5*time.Second)

	target := srv.URL + "/proxy/page"
	cookies, err := helper.Cookies(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "ezproxy", cookies[0].Name)

	// Second lookup reuses the cached session; no new login, no new
	// credential acquisition.
	_, err = helper.Cookies(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestProxyCookiesNonProxyURL(t *testing.T) {
	helper := NewProxyHelper(func(string) (string, string, error) {
		t.Fatal("credentials should not be requested for plain URLs")
		return "", "", nil
	}, time.Second)

	cookies, err := helper.Cookies(context.Background(), "http://example.com/page")
	require.NoError(t, err)
	assert.Nil(t, cookies)
}

func TestProxyLoginRejected(t *testing.T) {
	srv := setupProxyServer(t)
	defer srv.Close()

	helper := NewProxyHelper(func(string) (string, string, error) {
		return "libuser", "wrong", nil
	}, 5*time.Second)

	_, err := helper.Cookies(context.Background(), srv.URL+"/proxy/page")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProxyLogin)
}

func TestResolveThroughProxy(t *testing.T) {
	srv := setupProxyServer(t)
	defer srv.Close()

	helper := NewProxyHelper(func(string) (string, string, error) {
		return "libuser", "s3cret", nil
	}, 5*time.Second)

	r := NewResolver(Options{Timeout: 5 * time.Second, Proxy: helper})
	res := r.Resolve(context.Background(), Request{URL: srv.URL + "/proxy/page"})

	require.Empty(t, res.Error)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, srv.URL+"/proxy/page", res.Final)
}

func TestContainsProxy(t *testing.T) {
	assert.True(t, ContainsProxy("https://clsproxy.library.example.edu/login?url=https://doi.org/x"))
	assert.False(t, ContainsProxy("https://doi.org/10.1000/x"))
}

func TestProxyHost(t *testing.T) {
	host, err := ProxyHost("https://clsproxy.library.example.edu/login?url=https://doi.org/x")
	require.NoError(t, err)
	assert.Equal(t, "https://clsproxy.library.example.edu", host)

	_, err = ProxyHost("notaurl")
	assert.Error(t, err)
}

func TestProxiedURL(t *testing.T) {
	assert.Equal(t, "https://doi.org/10.1000/x",
		ProxiedURL("https://clsproxy.library.example.edu/login?url=https://doi.org/10.1000/x"))
	assert.Equal(t, "https://doi.org/10.1000/x", ProxiedURL("https://doi.org/10.1000/x"))
}
