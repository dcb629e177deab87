package credentials

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestObtainExplicitWins(t *testing.T) {
	keyring.MockInit()
	service := "org.urlup.test.explicit"
	require.NoError(t, keyring.Set(service, keyringUser, encode("stored", "storedpw")))

	p := &Provider{Service: service, UseStore: true}
	cred, err := p.Obtain("explicit", "explicitpw")
	require.NoError(t, err)
	assert.Equal(t, Credential{User: "explicit", Password: "explicitpw"}, cred)
}

func TestObtainFromStore(t *testing.T) {
	keyring.MockInit()
	service := "org.urlup.test.stored"
	require.NoError(t, keyring.Set(service, keyringUser, encode("libuser", "s3cret")))

	p := &Provider{Service: service, UseStore: true}
	cred, err := p.Obtain("", "")
	require.NoError(t, err)
	assert.Equal(t, Credential{User: "libuser", Password: "s3cret"}, cred)
}

func TestObtainPromptsAndPersists(t *testing.T) {
	keyring.MockInit()
	service := "org.urlup.test.prompt"

	var out strings.Builder
	p := &Provider{
		Service:  service,
		UseStore: true,
		Input:    strings.NewReader("alice\nwonderland\n"),
		Output:   &out,
	}
	cred, err := p.Obtain("", "")
	require.NoError(t, err)
	assert.Equal(t, Credential{User: "alice", Password: "wonderland"}, cred)
	assert.Contains(t, out.String(), "Proxy user name")

	value, err := keyring.Get(service, keyringUser)
	require.NoError(t, err)
	assert.Equal(t, encode("alice", "wonderland"), value)
}

func TestObtainPromptWithoutStore(t *testing.T) {
	keyring.MockInit()
	service := "org.urlup.test.nostore"

	p := &Provider{
		Service: service,
		Input:   strings.NewReader("bob\nhunter2\n"),
		Output:  &strings.Builder{},
	}
	cred, err := p.Obtain("", "")
	require.NoError(t, err)
	assert.Equal(t, Credential{User: "bob", Password: "hunter2"}, cred)

	_, err = keyring.Get(service, keyringUser)
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestObtainNonInteractiveFails(t *testing.T) {
	p := &Provider{
		Input:  strings.NewReader(""),
		Output: &strings.Builder{},
	}
	_, err := p.Obtain("", "")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestObtainCachesAcrossCalls(t *testing.T) {
	p := &Provider{
		Input:  strings.NewReader("carol\npass\n"),
		Output: &strings.Builder{},
	}
	first, err := p.Obtain("", "")
	require.NoError(t, err)

	// A second call must not prompt again; the exhausted reader would
	// make any further prompt fail.
	second, err := p.Obtain("", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestObtainConcurrentSinglePrompt(t *testing.T) {
	p := &Provider{
		Input:  strings.NewReader("dave\nonlyonce\n"),
		Output: &strings.Builder{},
	}

	var wg sync.WaitGroup
	creds := make([]Credential, 4)
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			creds[i], errs[i] = p.Obtain("", "")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, Credential{User: "dave", Password: "onlyonce"}, creds[i])
	}
}

func TestEncodeDecode(t *testing.T) {
	assert.Equal(t, Credential{User: "u", Password: "p"}, decode(encode("u", "p")))
	assert.Equal(t, Credential{}, decode("malformed"))
}
