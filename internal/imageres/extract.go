package imageres

import (
	"bytes"

	"github.com/valyala/fastjson"
	"golang.org/x/net/html"
)

// Each extraction strategy is a pure bytes-in, URL-out function so it can
// be exercised against fixed fixtures. They all return an empty string for
// malformed or unexpected input.

// ExtractStorefrontImage takes the first image source of a storefront
// product JSON document.
func ExtractStorefrontImage(body []byte) string {
	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return ""
	}

	images := v.GetArray("product", "images")
	if len(images) == 0 {
		return ""
	}
	return string(images[0].GetStringBytes("src"))
}

// ExtractMetaImage scans an HTML document for an og:image (or
// twitter:image) meta tag.
func ExtractMetaImage(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if image := findMetaContent(doc, "property", "og:image"); image != "" {
		return image
	}
	return findMetaContent(doc, "name", "twitter:image")
}

// ExtractMarketplaceImage locates the primary product-image tag of a large
// marketplace page. It prefers the high-resolution hint attribute, then the
// largest candidate of the dynamic-image map, then the tag's plain source,
// then a secondary meta-tag variant.
func ExtractMarketplaceImage(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if attrs := findElementByID(doc, "img", "landingImage"); attrs != nil {
		if hires := attrs["data-old-hires"]; hires != "" {
			return hires
		}
		if image := largestDynamicImage(attrs["data-a-dynamic-image"]); image != "" {
			return image
		}
		if src := attrs["src"]; src != "" {
			return src
		}
	}

	return findMetaContent(doc, "name", "twitter:image:src")
}

// largestDynamicImage parses a JSON map of image URL to [width, height]
// pairs and returns the URL with the largest width.
func largestDynamicImage(attr string) string {
	if attr == "" {
		return ""
	}

	v, err := fastjson.Parse(attr)
	if err != nil {
		return ""
	}
	obj, err := v.Object()
	if err != nil {
		return ""
	}

	var best string
	var bestWidth int
	obj.Visit(func(key []byte, dims *fastjson.Value) {
		sizes := dims.GetArray()
		if len(sizes) == 0 {
			return
		}
		if width := sizes[0].GetInt(); width > bestWidth {
			bestWidth = width
			best = string(key)
		}
	})

	return best
}

func findMetaContent(n *html.Node, key, value string) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var matched bool
		var content string
		for _, attr := range n.Attr {
			if attr.Key == key && attr.Val == value {
				matched = true
			}
			if attr.Key == "content" {
				content = attr.Val
			}
		}
		if matched {
			return content
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if content := findMetaContent(c, key, value); content != "" {
			return content
		}
	}
	return ""
}

func findElementByID(n *html.Node, element, id string) map[string]string {
	if n.Type == html.ElementNode && n.Data == element {
		attrs := make(map[string]string, len(n.Attr))
		for _, attr := range n.Attr {
			attrs[attr.Key] = attr.Val
		}
		if attrs["id"] == id {
			return attrs
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if attrs := findElementByID(c, element, id); attrs != nil {
			return attrs
		}
	}
	return nil
}
