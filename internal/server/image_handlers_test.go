package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/appleboy/gofight"
	"github.com/stretchr/testify/assert"
)

func TestRequestImageResolve(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/page":
			w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example.com/shade.jpg"></head></html>`))
		case "/blank":
			w.Write([]byte(`<html><head><title>nothing here</title></head></html>`))
		default:
			http.NotFound(w, req)
		}
	}))
	defer upstream.Close()

	r.GET("/image?dest="+url.QueryEscape(upstream.URL+"/page")).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.JSONEq(t, `{"image":"https://cdn.example.com/shade.jpg"}`, r.Body.String())
			assert.Equal(t, "public, max-age=86400", r.HeaderMap.Get("Cache-Control"))
		})

	r.GET("/image?dest="+url.QueryEscape(upstream.URL+"/blank")).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusNotFound, r.Code)
			assert.JSONEq(t, `{"image":""}`, r.Body.String())
			assert.Equal(t, "no-store", r.HeaderMap.Get("Cache-Control"))
		})
}

func TestRequestImageResolveUpstreamFailure(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer upstream.Close()

	r.GET("/image?dest="+url.QueryEscape(upstream.URL+"/page")).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadGateway, r.Code)
			assert.Equal(t, "no-store", r.HeaderMap.Get("Cache-Control"))
		})
}

func TestRequestImageResolveBadParams(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/image").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"dest required"}}`, r.Body.String())
	})

	r.GET("/image?dest=not-a-url").
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
		})
}
