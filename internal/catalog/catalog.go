// Package catalog loads the read-only catalog feed and derives the stable
// identifier used to correlate a catalog entry with owned/cloud records.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// DefaultCollection is used when a catalog entry carries no collection key.
const DefaultCollection = "misc"

// An Item is one catalog entry. It is external input and never mutated.
type Item struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Collection string `json:"collection"`
	ProductURL string `json:"product_url"`
	Hex        string `json:"hex"`
	Image      string `json:"image"`
	Released   string `json:"released"`
}

// ReleasedAt parses the optional release date, leniently.
// A missing or unparseable date yields the zero time.
func (i Item) ReleasedAt() time.Time {
	if i.Released == "" {
		return time.Time{}
	}

	t, err := dateparse.ParseAny(i.Released)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Matches reports whether the item matches a free-text query and a
// collection filter ("all" or empty means no collection filter).
// Items without a collection belong to DefaultCollection.
func (i Item) Matches(query, collection string) bool {
	itemCollection := i.Collection
	if itemCollection == "" {
		itemCollection = DefaultCollection
	}

	if collection != "" && collection != "all" && itemCollection != collection {
		return false
	}
	if query == "" {
		return true
	}

	hay := strings.ToLower(fmt.Sprintf("%s %s %s", i.Code, i.Name, itemCollection))
	return strings.Contains(hay, strings.ToLower(query))
}

// Load parses a catalog feed.
func Load(r io.Reader) ([]Item, error) {
	var items []Item
	dec := json.NewDecoder(r)
	return items, errors.Wrap(dec.Decode(&items), "could not parse catalog")
}

// LoadFile loads a catalog feed from disk.
func LoadFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open catalog")
	}
	defer f.Close()

	return Load(f)
}

// Fetch loads a catalog feed from a statically hosted URL.
func Fetch(client *http.Client, url string) ([]Item, error) {
	res, err := client.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch catalog")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, errors.Errorf("could not fetch catalog: HTTP %d", res.StatusCode)
	}
	return Load(res.Body)
}
