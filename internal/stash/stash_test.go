package stash_test

import (
	"io/ioutil"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"polishstash/internal/stash"
)

func setup() (store *stash.Store, cleanup func()) {
	tmpfile, err := ioutil.TempFile("", "polishstash.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	store, err = stash.OpenStore(filename)
	if err != nil {
		panic(err)
	}

	return store, func() {
		store.Close()
		os.Remove(filename)
	}
}

// fakeClient is an in-memory libstash.Client for reconciliation tests.
type fakeClient struct {
	mu     sync.Mutex
	codes  map[string]bool
	userID string

	failFetch  bool
	failUpsert bool
	failClear  bool

	upserts int
	clears  int
}

func newFakeClient(codes ...string) *fakeClient {
	c := &fakeClient{codes: make(map[string]bool), userID: "user-1"}
	for _, code := range codes {
		c.codes[code] = true
	}
	return c
}

func (c *fakeClient) Register(email, password string) error { return nil }
func (c *fakeClient) Login(email, password string) error    { return nil }
func (c *fakeClient) BearerToken() string                   { return "token" }
func (c *fakeClient) SetBearerToken(token string)           {}
func (c *fakeClient) UserID() string                        { return c.userID }

func (c *fakeClient) FetchInventory() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failFetch {
		return nil, errors.New("fetch failed")
	}

	codes := make([]string, 0, len(c.codes))
	for code := range c.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (c *fakeClient) UpsertCode(code string) error {
	return c.UpsertCodes([]string{code})
}

func (c *fakeClient) DeleteCode(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.codes, code)
	return nil
}

func (c *fakeClient) UpsertCodes(codes []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failUpsert {
		return errors.New("upsert failed")
	}

	c.upserts++
	for _, code := range codes {
		c.codes[code] = true
	}
	return nil
}

func (c *fakeClient) ReplaceCodes(codes []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.codes = make(map[string]bool)
	for _, code := range codes {
		c.codes[code] = true
	}
	return nil
}

func (c *fakeClient) ClearInventory() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failClear {
		return errors.New("clear failed")
	}

	c.clears++
	c.codes = make(map[string]bool)
	return nil
}

func (c *fakeClient) Profile() (string, error)              { return "", nil }
func (c *fakeClient) SaveProfile(businessName string) error { return nil }

func (c *fakeClient) inventory() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	codes := make([]string, 0, len(c.codes))
	for code := range c.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
