// Package imageres resolves a product page URL to a product image URL.
// Extraction is best effort: structured storefront data first, then meta
// tags, then marketplace-specific attributes. A missing image is a valid
// empty result, not an error.
package imageres

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const userAgent = "Mozilla/5.0"

var storefrontHandleRE = regexp.MustCompile(`(?i)/products/([^/?#]+)`)

// A FetchError reports a failed product page fetch with the originating
// HTTP status. StatusCode is zero for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("could not fetch %s", e.URL)
	}
	return fmt.Sprintf("could not fetch %s: HTTP %d", e.URL, e.StatusCode)
}

type lookup struct {
	image string
	err   error
}

// A Resolver resolves product images, caching every lookup (found, not
// found and failed alike) by source URL for its whole lifetime.
type Resolver struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]lookup
}

// New returns a new Resolver performing requests with the given client.
func New(client *http.Client) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}

	return &Resolver{
		client: client,
		cache:  make(map[string]lookup),
	}
}

// Resolve returns the image URL for the given product page URL, or an
// empty string when no image can be found.
func (r *Resolver) Resolve(productURL string) (string, error) {
	r.mu.Lock()
	if l, ok := r.cache[productURL]; ok {
		r.mu.Unlock()
		return l.image, l.err
	}
	r.mu.Unlock()

	image, err := r.resolve(productURL)

	r.mu.Lock()
	r.cache[productURL] = lookup{image: image, err: err}
	r.mu.Unlock()

	return image, err
}

func (r *Resolver) resolve(productURL string) (string, error) {
	u, err := url.Parse(productURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid product URL: %s", productURL)
	}

	// Tier 1: structured storefront product JSON. Any failure here falls
	// through to page scraping.
	if image := r.storefrontImage(u); image != "" {
		return normalize(image), nil
	}

	// Tier 2: the product page itself.
	body, err := r.fetch(productURL)
	if err != nil {
		return "", err
	}

	image := ExtractMetaImage(body)

	// Tier 3: marketplace-specific attributes.
	if image == "" || marketplaceHost(u.Host) {
		if m := ExtractMarketplaceImage(body); m != "" {
			image = m
		}
	}

	return normalize(image), nil
}

func (r *Resolver) storefrontImage(u *url.URL) string {
	m := storefrontHandleRE.FindStringSubmatch(u.Path)
	if m == nil {
		return ""
	}

	jsonURL := fmt.Sprintf("%s://%s/products/%s.json", u.Scheme, u.Host, m[1])
	body, err := r.fetch(jsonURL)
	if err != nil {
		return ""
	}

	return ExtractStorefrontImage(body)
}

func (r *Resolver) fetch(rawurl string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawurl}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, &FetchError{URL: rawurl, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	return body, errors.Wrap(err, "could not read response")
}

func marketplaceHost(host string) bool {
	return strings.Contains(strings.ToLower(host), "amazon.")
}

func normalize(image string) string {
	if strings.HasPrefix(image, "//") {
		return "https:" + image
	}
	return image
}
