package catalog

import (
	"regexp"
	"strings"
)

// Coded catalogs predate namespacing, so an explicit code stays bare.
// Everything else is prefixed by its collection to avoid cross-collection
// collisions.

var (
	digitsRE      = regexp.MustCompile(`^[0-9]+$`)
	marketplaceRE = regexp.MustCompile(`(?i)/(?:dp|gp/product)/([a-z0-9]{10})(?:[/?#]|$)`)
	nonAlnumRE    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Identifier derives the stable identifier of a catalog entry.
// It is pure and total; every consumer (owned-set toggles, filtering,
// reconciliation) must use this single implementation.
func Identifier(item Item) string {
	if code := strings.TrimSpace(item.Code); code != "" {
		return NormalizeCode(code)
	}

	collection := item.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	if id := marketplaceID(item.ProductURL); id != "" {
		return collection + ":" + id
	}

	slug := Slugify(item.Name)
	if slug == "" {
		slug = "item"
	}
	return collection + ":" + slug
}

// NormalizeCode normalizes an explicit short code: all-digit codes shorter
// than 3 characters are left-padded with zeros to width 3, anything else is
// used as-is, trimmed.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if digitsRE.MatchString(code) {
		for len(code) < 3 {
			code = "0" + code
		}
	}
	return code
}

// Slugify lowercases the name, spells out ampersands and collapses any run
// of non-alphanumeric characters to a single hyphen.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnumRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// marketplaceID extracts the 10-character product token of marketplace
// URLs like /dp/B08XYZ1234 or /gp/product/B08XYZ1234.
func marketplaceID(productURL string) string {
	m := marketplaceRE.FindStringSubmatch(productURL)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}
