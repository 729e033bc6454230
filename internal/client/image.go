package client

import (
	"fmt"

	"github.com/pkg/errors"
	"polishstash/internal/imageres"
)

// Image resolves a product page URL to its product image URL.
func Image(productURL string) error {
	image, err := imageres.New(nil).Resolve(productURL)
	if err != nil {
		return errors.Wrap(err, "could not resolve image")
	}

	if image == "" {
		fmt.Println("No image found")
		return nil
	}

	fmt.Println(image)
	return nil
}
