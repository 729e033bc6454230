package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"polishstash/internal/apierror"
	"polishstash/internal/database"
	"polishstash/internal/model"
)

// profile contains all profile handlers.
type profile struct {
	db database.Client
}

///// Show
////
//

// Show renders the current user's profile. A missing profile renders with
// an empty business name, it is not an error.
func (h *profile) Show(c echo.Context) error {
	user := currentUser(c)

	p, err := h.db.FindProfileByUserID(user.ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusOK, echo.Map{
				"business_name": "",
			})
		}
		return errors.Wrap(err, "could not get profile")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"business_name": p.BusinessName,
	})
}

///// Save
////
//

// Save upserts the current user's profile.
func (h *profile) Save(c echo.Context) error {
	user := currentUser(c)

	// Filter params
	var params struct {
		BusinessName string `json:"business_name"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get profile."))
	}

	p, err := h.db.FindProfileByUserID(user.ID)
	if err != nil {
		if !h.db.IsNotFound(err) {
			return errors.Wrap(err, "could not get profile")
		}
		p = &model.Profile{UserID: user.ID}
	}
	p.BusinessName = params.BusinessName

	if err := h.db.Save(p); err != nil {
		return errors.Wrap(err, "could not persist profile")
	}

	return c.NoContent(http.StatusNoContent)
}
