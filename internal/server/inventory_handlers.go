package server

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"polishstash/internal/apierror"
	"polishstash/internal/database"
)

// inventory contains all inventory handlers.
type inventory struct {
	db database.Client
}

///// List
////
//

// List renders the distinct codes stored for the current user.
func (h *inventory) List(c echo.Context) error {
	user := currentUser(c)

	codes, err := h.db.FindInventoryCodes(user.ID)
	if err != nil {
		return errors.Wrap(err, "could not list inventory")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"codes": codes,
	})
}

///// Upsert
////
//

// Upsert stores the given codes for the current user.
func (h *inventory) Upsert(c echo.Context) error {
	user := currentUser(c)

	// Filter params
	var params struct {
		Codes []string `json:"codes"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get codes."))
	}

	if len(params.Codes) == 0 {
		return c.JSON(http.StatusBadRequest, apierror.New("No codes provided."))
	}
	for _, code := range params.Codes {
		if code == "" {
			return c.JSON(http.StatusBadRequest, apierror.New("Blank code provided."))
		}
	}

	if err := h.db.SaveInventoryCodes(user.ID, params.Codes); err != nil {
		return errors.Wrap(err, "could not save inventory")
	}

	return c.NoContent(http.StatusNoContent)
}

///// Replace
////
//

// Replace swaps the current user's whole inventory for the given codes in
// one transaction. An empty list empties the inventory.
func (h *inventory) Replace(c echo.Context) error {
	user := currentUser(c)

	// Filter params
	var params struct {
		Codes []string `json:"codes"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get codes."))
	}

	for _, code := range params.Codes {
		if code == "" {
			return c.JSON(http.StatusBadRequest, apierror.New("Blank code provided."))
		}
	}

	if err := h.db.ReplaceInventory(user.ID, params.Codes); err != nil {
		return errors.Wrap(err, "could not replace inventory")
	}

	return c.NoContent(http.StatusNoContent)
}

///// UpsertOne
////
//

// UpsertOne stores one code for the current user.
func (h *inventory) UpsertOne(c echo.Context) error {
	user := currentUser(c)

	code, err := pathCode(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Invalid code."))
	}

	if err := h.db.SaveInventoryCode(user.ID, code); err != nil {
		return errors.Wrap(err, "could not save inventory code")
	}

	return c.NoContent(http.StatusNoContent)
}

///// DeleteOne
////
//

// DeleteOne removes one code for the current user. Removing an absent code
// is not an error.
func (h *inventory) DeleteOne(c echo.Context) error {
	user := currentUser(c)

	code, err := pathCode(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Invalid code."))
	}

	if err := h.db.RemoveInventoryCode(user.ID, code); err != nil {
		return errors.Wrap(err, "could not delete inventory code")
	}

	return c.NoContent(http.StatusNoContent)
}

///// Clear
////
//

// Clear removes every code stored for the current user.
func (h *inventory) Clear(c echo.Context) error {
	user := currentUser(c)

	if err := h.db.RemoveInventoryByUserID(user.ID); err != nil {
		return errors.Wrap(err, "could not clear inventory")
	}

	return c.NoContent(http.StatusNoContent)
}

func pathCode(c echo.Context) (string, error) {
	code, err := url.PathUnescape(c.Param("code"))
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", errors.New("blank code")
	}
	return code, nil
}
