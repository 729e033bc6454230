package server_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/appleboy/gofight"
	"github.com/stretchr/testify/assert"
)

func TestRequestRedirect(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	dest := "https://www.dndgel.com/products/rosy-red"
	r.GET("/go?sku=007&dest="+url.QueryEscape(dest)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusFound, r.Code)
			assert.Equal(t, dest, r.HeaderMap.Get("Location"))
		})
}

func TestRequestRedirectAffiliateTag(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	dest := "https://www.amazon.com/dp/B08XYZ1234?th=1"
	r.GET("/go?sku=007&dest="+url.QueryEscape(dest)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusFound, r.Code)

			location, err := url.Parse(r.HeaderMap.Get("Location"))
			assert.NoError(t, err)
			assert.Equal(t, "www.amazon.com", location.Host)
			assert.Equal(t, "polishstash-20", location.Query().Get("tag"))
			assert.Equal(t, "1", location.Query().Get("th"))
		})
}

func TestRequestRedirectBadParams(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/go?sku=007").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"dest required"}}`, r.Body.String())
	})

	r.GET("/go?dest=not-a-url").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"invalid dest"}}`, r.Body.String())
	})
}
