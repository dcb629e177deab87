package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

// DefaultService identifies this tool's entry in the OS keyring.
const DefaultService = "org.urlup"

// keyringUser is the fixed account name the credential is stored under. The
// remote user name lives inside the stored value itself, so it can differ
// from the login name of whoever runs the tool.
const keyringUser = "credentials"

// sep separates the fields of the stored value. Deliberately something no
// one types at a shell prompt.
const sep = "\x1f"

// ErrNoCredentials reports that no credential could be obtained: nothing was
// supplied, nothing was stored, and prompting was not possible.
var ErrNoCredentials = errors.New("no credentials available and prompting is not possible")

// Credential is a username/password pair for a proxy service.
type Credential struct {
	User     string
	Password string
}

// Provider obtains proxy credentials. Explicit values always win; otherwise
// the OS keyring is consulted (when UseStore is set) and missing pieces are
// prompted for interactively. The first credential obtained is cached for
// the rest of the run, so concurrent callers never prompt twice.
type Provider struct {
	// Service is the keyring service identifier; empty means DefaultService.
	Service string

	// UseStore enables keyring lookup and persistence.
	UseStore bool

	// Input supplies prompt answers; defaults to os.Stdin. Output receives
	// prompt text; defaults to os.Stderr.
	Input  io.Reader
	Output io.Writer

	mu     sync.Mutex
	reader *bufio.Reader
	cached *Credential
}

// Obtain returns the credential to use, given optionally supplied explicit
// values. See the Provider doc for precedence.
func (p *Provider) Obtain(user, password string) (Credential, error) {
	if user != "" && password != "" {
		return Credential{User: user, Password: password}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		c := *p.cached
		if user != "" {
			c.User = user
		}
		if password != "" {
			c.Password = password
		}
		return c, nil
	}

	var stored Credential
	storeUsable := p.UseStore
	if p.UseStore {
		value, err := keyring.Get(p.service(), keyringUser)
		switch {
		case err == nil:
			stored = decode(value)
		case errors.Is(err, keyring.ErrNotFound):
			// Nothing saved yet; prompt and persist below.
		default:
			// Store unusable on this system; fall back to prompting
			// without persistence.
			storeUsable = false
		}
	}

	if user == "" {
		user = stored.User
	}
	if password == "" {
		password = stored.Password
	}

	prompted := false
	var err error
	if user == "" {
		if user, err = p.promptLine("Proxy user name: "); err != nil {
			return Credential{}, err
		}
		prompted = true
	}
	if password == "" {
		if password, err = p.promptPassword("Proxy password: "); err != nil {
			return Credential{}, err
		}
		prompted = true
	}
	if user == "" || password == "" {
		return Credential{}, ErrNoCredentials
	}

	if storeUsable && prompted && (user != stored.User || password != stored.Password) {
		// Best effort; a credential we cannot persist is still usable
		// for this run.
		_ = keyring.Set(p.service(), keyringUser, encode(user, password))
	}

	p.cached = &Credential{User: user, Password: password}
	return *p.cached, nil
}

func (p *Provider) service() string {
	if p.Service == "" {
		return DefaultService
	}
	return p.Service
}

func (p *Provider) promptLine(prompt string) (string, error) {
	fmt.Fprint(p.output(), prompt)
	line, err := p.bufReader().ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return strings.TrimSpace(line), nil
}

func (p *Provider) promptPassword(prompt string) (string, error) {
	// On a terminal, read without echoing. Anywhere else (pipes, tests)
	// fall back to a plain line read.
	if f, ok := p.input().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(p.output(), prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.output())
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoCredentials, err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return p.promptLine(prompt)
}

func (p *Provider) input() io.Reader {
	if p.Input == nil {
		return os.Stdin
	}
	return p.Input
}

func (p *Provider) output() io.Writer {
	if p.Output == nil {
		return os.Stderr
	}
	return p.Output
}

func (p *Provider) bufReader() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.input())
	}
	return p.reader
}

func encode(user, password string) string {
	return user + sep + password
}

func decode(value string) Credential {
	parts := strings.SplitN(value, sep, 2)
	if len(parts) != 2 {
		return Credential{}
	}
	return Credential{User: parts[0], Password: parts[1]}
}
