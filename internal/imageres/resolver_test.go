package imageres_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"polishstash/internal/imageres"
)

func TestResolveStorefrontJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products/rosy-red.json" {
			fmt.Fprint(w, `{"product":{"images":[{"src":"//cdn.example.com/rosy.jpg"}]}}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	image, err := r.Resolve(ts.URL + "/products/rosy-red?variant=42")

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/rosy.jpg", image)
}

func TestResolveFallsBackToMetaTag(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products/rosy-red.json" {
			// Storefront JSON endpoint is broken, tier 1 must be swallowed.
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `<html><head><meta property="og:image" content="//cdn.example.com/og.jpg"></head></html>`)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	image, err := r.Resolve(ts.URL + "/products/rosy-red")

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/og.jpg", image)
}

func TestResolveMarketplaceTier(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, marketplacePage)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	image, err := r.Resolve(ts.URL + "/dp/B08XYZ1234")

	assert.NoError(t, err)
	assert.Equal(t, "https://m.media.example.com/images/I/large.jpg", image)
}

func TestResolveNothingFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>nothing here</body></html>`)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	image, err := r.Resolve(ts.URL + "/some/page")

	assert.NoError(t, err)
	assert.Empty(t, image)
}

func TestResolvePageFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	_, err := r.Resolve(ts.URL + "/some/page")

	assert.Error(t, err)
	ferr, ok := err.(*imageres.FetchError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusGone, ferr.StatusCode)
}

func TestResolveInvalidURL(t *testing.T) {
	r := imageres.New(nil)

	_, err := r.Resolve("not a url")
	assert.Error(t, err)
}

func TestResolveCachesLookups(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, `<html><head><meta property="og:image" content="https://cdn.example.com/og.jpg"></head></html>`)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	for i := 0; i < 3; i++ {
		image, err := r.Resolve(ts.URL + "/page")
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/og.jpg", image)
	}

	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}

func TestResolveCachesFailures(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer ts.Close()

	r := imageres.New(ts.Client())
	for i := 0; i < 3; i++ {
		_, err := r.Resolve(ts.URL + "/page")
		assert.Error(t, err)
	}

	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}
