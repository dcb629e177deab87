// Package urlup finds the ultimate destination of HTTP(S) URLs after
// following redirections.
//
// Given one URL or a batch of URLs, it follows each redirect chain to its
// terminal response and reports the original URL, the final URL, the status
// code returned by the first request, and any resolution error. Requests can
// carry extra headers and cookies, and URLs routed through an EZproxy-style
// rewriting proxy can be authenticated transparently via a ProxyHelper.
//
// Basic use:
//
//	results := urlup.ResolveAll(ctx, []string{"http://sbml.org"}, urlup.Options{})
//	for _, r := range results {
//		fmt.Println(r.Original, "==>", r.Final, r.Status)
//	}
//
// The reported status code is always the one from the first response in the
// chain, i.e. the code the original URL itself returned. The final URL is the
// URL of the last response after all redirections.
package urlup
