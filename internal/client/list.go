package client

import (
	"fmt"
	"net/http"
	"strings"

	"polishstash/internal/catalog"
)

// ListOptions filters the rendered catalog.
type ListOptions struct {
	Catalog    string // path or URL of the catalog feed, optional
	Query      string
	Collection string
}

// List renders the local owned-set. With a catalog feed it renders the
// whole catalog with owned markers and the owned/not-owned tally.
func List(opts ListOptions) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	set, err := store.Load()
	if err != nil {
		return err
	}

	if opts.Catalog == "" {
		for _, code := range set.Codes() {
			fmt.Println(code)
		}
		fmt.Printf("Owned: %d\n", len(set))
		return nil
	}

	items, err := loadCatalog(opts.Catalog)
	if err != nil {
		return err
	}

	var total, owned int
	for _, item := range items {
		if !item.Matches(opts.Query, opts.Collection) {
			continue
		}
		total++

		marker := " "
		if set.Has(catalog.Identifier(item)) {
			marker = "x"
			owned++
		}

		collection := item.Collection
		if collection == "" {
			collection = catalog.DefaultCollection
		}
		fmt.Printf("[%s] %-24s %s (%s)\n", marker, catalog.Identifier(item), item.Name, strings.ToUpper(collection))
	}

	fmt.Printf("Showing %d shades - Owned: %d - Not owned: %d\n", total, owned, total-owned)
	return nil
}

func loadCatalog(source string) ([]catalog.Item, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return catalog.Fetch(http.DefaultClient, source)
	}
	return catalog.LoadFile(source)
}
