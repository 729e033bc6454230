package libstash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a polishstash server.
	Client interface {
		// Register creates an account on the server and authenticates the client.
		Register(email, password string) error
		// Login authenticates the client against the server.
		Login(email, password string) error
		// BearerToken returns the token used for authenticated requests.
		BearerToken() string
		// SetBearerToken sets the token used for authenticated requests.
		SetBearerToken(token string)
		// UserID returns the account identifier returned by the last Login/Register.
		UserID() string

		// FetchInventory returns the distinct codes stored for the account.
		FetchInventory() ([]string, error)
		// UpsertCode stores one code for the account.
		UpsertCode(code string) error
		// DeleteCode removes one code for the account.
		DeleteCode(code string) error
		// UpsertCodes stores the given codes for the account. No-op for an empty set.
		UpsertCodes(codes []string) error
		// ReplaceCodes swaps the account's whole inventory for the given codes
		// in one server-side transaction. An empty set empties the inventory.
		ReplaceCodes(codes []string) error
		// ClearInventory removes every code stored for the account.
		ClearInventory() error

		// Profile returns the account's business name. A missing profile is an empty name.
		Profile() (string, error)
		// SaveProfile upserts the account's business name.
		SaveProfile(businessName string) error
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		bearer   string
		userID   string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Register(email, password string) error {
	return c.authenticate("/auth", email, password)
}

func (c *client) Login(email, password string) error {
	return c.authenticate("/auth/sign_in", email, password)
}

func (c *client) authenticate(route, email, password string) error {
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"uuid"`
		} `json:"user"`
	}

	err := c.perform(http.MethodPost, route, nil, p{"email": email, "password": password}, &login)
	if err != nil {
		return err
	}

	c.bearer = login.Token
	c.userID = login.User.ID
	return nil
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) UserID() string {
	return c.userID
}

func (c *client) FetchInventory() ([]string, error) {
	var inventory struct {
		Codes []string `json:"codes"`
	}

	err := c.perform(http.MethodGet, "/inventory", nil, nil, &inventory)
	return inventory.Codes, err
}

func (c *client) UpsertCode(code string) error {
	return c.perform(http.MethodPut, "/inventory/"+url.PathEscape(code), nil, p{}, nil)
}

func (c *client) DeleteCode(code string) error {
	return c.perform(http.MethodDelete, "/inventory/"+url.PathEscape(code), nil, nil, nil)
}

func (c *client) UpsertCodes(codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return c.perform(http.MethodPost, "/inventory", nil, p{"codes": codes}, nil)
}

func (c *client) ReplaceCodes(codes []string) error {
	if codes == nil {
		codes = []string{}
	}
	return c.perform(http.MethodPost, "/inventory/replace", nil, p{"codes": codes}, nil)
}

func (c *client) ClearInventory() error {
	return c.perform(http.MethodDelete, "/inventory", nil, nil, nil)
}

func (c *client) Profile() (string, error) {
	var profile struct {
		BusinessName string `json:"business_name"`
	}

	err := c.perform(http.MethodGet, "/profile", nil, nil, &profile)
	return profile.BusinessName, err
}

func (c *client) SaveProfile(businessName string) error {
	return c.perform(http.MethodPost, "/profile", nil, p{"business_name": businessName}, nil)
}

func (c *client) perform(method, route string, query url.Values, body, out any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	//
	// Build request
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "could not serialize request body")
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, u.String(), payload)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.bearer))
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	//
	// Process response
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(out), "could not parse response")
}
