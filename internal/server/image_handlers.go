package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"polishstash/internal/apierror"
	"polishstash/internal/imageres"
)

// image contains the product image resolution handler.
type image struct {
	resolver *imageres.Resolver
}

///// Resolve
////
//

// Resolve renders the product image URL for the given product page.
// A found image is cacheable for a day; a miss or a failure is not.
func (h *image) Resolve(c echo.Context) error {
	dest := c.QueryParam("dest")
	if dest == "" {
		return c.JSON(http.StatusBadRequest, apierror.New("dest required"))
	}

	url, err := h.resolver.Resolve(dest)
	if err != nil {
		c.Response().Header().Set("Cache-Control", "no-store")
		if _, ok := err.(*imageres.FetchError); ok {
			return c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		}
		return c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}

	if url == "" {
		c.Response().Header().Set("Cache-Control", "no-store")
		return c.JSON(http.StatusNotFound, echo.Map{
			"image": "",
		})
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.JSON(http.StatusOK, echo.Map{
		"image": url,
	})
}
