package libstash_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"polishstash/pkg/libstash"
)

func TestClientLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/sign_in", r.URL.Path)

		var params map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "george.abitbol@nowhere.lan", params["email"])
		assert.Equal(t, "password42", params["password"])

		w.Write([]byte(`{"token":"jwt42","user":{"uuid":"user-1","email":"george.abitbol@nowhere.lan"}}`))
	}))
	defer server.Close()

	client, err := libstash.NewDefaultClient(server.URL)
	assert.NoError(t, err)

	assert.NoError(t, client.Login("george.abitbol@nowhere.lan", "password42"))
	assert.Equal(t, "jwt42", client.BearerToken())
	assert.Equal(t, "user-1", client.UserID())
}

func TestClientLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid email or password."}}`))
	}))
	defer server.Close()

	client, err := libstash.NewDefaultClient(server.URL)
	assert.NoError(t, err)

	err = client.Login("george.abitbol@nowhere.lan", "nope")
	assert.Error(t, err)

	apierr, ok := err.(*libstash.APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusCode)
	assert.Equal(t, "Invalid email or password.", apierr.Error())
}

func TestClientFetchInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/inventory", r.URL.Path)
		assert.Equal(t, "Bearer jwt42", r.Header.Get("Authorization"))

		w.Write([]byte(`{"codes":["007","042"]}`))
	}))
	defer server.Close()

	client, err := libstash.NewDefaultClient(server.URL)
	assert.NoError(t, err)
	client.SetBearerToken("jwt42")

	codes, err := client.FetchInventory()
	assert.NoError(t, err)
	assert.Equal(t, []string{"007", "042"}, codes)
}

func TestClientUpsertAndDeleteCode(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := libstash.NewDefaultClient(server.URL)
	assert.NoError(t, err)
	client.SetBearerToken("jwt42")

	assert.NoError(t, client.UpsertCode("diva:rosy-red"))
	assert.NoError(t, client.DeleteCode("007"))
	assert.NoError(t, client.ClearInventory())
	// An empty batch performs no request.
	assert.NoError(t, client.UpsertCodes(nil))

	assert.Equal(t, []string{
		"PUT /inventory/diva:rosy-red",
		"DELETE /inventory/007",
		"DELETE /inventory",
	}, requests)
}

func TestClientReplaceCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inventory/replace", r.URL.Path)
		assert.Equal(t, "Bearer jwt42", r.Header.Get("Authorization"))

		var params map[string][]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		codes, ok := params["codes"]
		assert.True(t, ok)
		assert.NotNil(t, codes)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := libstash.NewDefaultClient(server.URL)
	assert.NoError(t, err)
	client.SetBearerToken("jwt42")

	assert.NoError(t, client.ReplaceCodes([]string{"007", "042"}))
	// Unlike UpsertCodes, an empty replacement still hits the server.
	assert.NoError(t, client.ReplaceCodes(nil))
}

func TestClientProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"business_name":"Nails by Nina"}`))
		case http.MethodPost:
			var params map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			assert.Equal(t, "Nina's Nails", params["business_name"])
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client, err := libstash.NewDefaultClient(server.URL)
	assert.NoError(t, err)
	client.SetBearerToken("jwt42")

	name, err := client.Profile()
	assert.NoError(t, err)
	assert.Equal(t, "Nails by Nina", name)

	assert.NoError(t, client.SaveProfile("Nina's Nails"))
}
