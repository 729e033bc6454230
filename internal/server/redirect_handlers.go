package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"polishstash/internal/apierror"
)

// redirect contains the affiliate redirect handler.
type redirect struct {
	affiliateTag string
}

///// Go
////
//

// Go redirects to the product page, appending the affiliate tag on
// marketplace destinations. The sku parameter is accepted for tracking
// purposes and otherwise ignored.
func (h *redirect) Go(c echo.Context) error {
	dest := c.QueryParam("dest")
	if dest == "" {
		return c.JSON(http.StatusBadRequest, apierror.New("dest required"))
	}

	u, err := url.Parse(dest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return c.JSON(http.StatusBadRequest, apierror.New("invalid dest"))
	}

	if h.affiliateTag != "" && strings.Contains(strings.ToLower(u.Host), "amazon.") {
		query := u.Query()
		query.Set("tag", h.affiliateTag)
		u.RawQuery = query.Encode()
	}

	return c.Redirect(http.StatusFound, u.String())
}
