package urlup

// Request describes a single URL to dereference, plus optional per-request
// cookies and headers that are attached on top of anything configured in
// Options.
type Request struct {
	URL     string            `json:"url"`
	Cookies map[string]string `json:"cookies,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Result is the outcome of dereferencing one URL.
//
// On success Final and Status are set and Error is empty. On failure Error
// holds a short description, Final is empty and Status is zero. Status is the
// code of the first response received for Original, not the terminal one.
type Result struct {
	Original string `json:"original"`
	Final    string `json:"final,omitempty"`
	Status   int    `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

// OK reports whether the URL was resolved without error.
func (r Result) OK() bool { return r.Error == "" }

// Redirected reports whether resolution ended somewhere other than where it
// started.
func (r Result) Redirected() bool { return r.OK() && r.Final != r.Original }
