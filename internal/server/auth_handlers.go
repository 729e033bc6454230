package server

import (
	"net/http"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"polishstash/internal/apierror"
	"polishstash/internal/database"
	"polishstash/internal/model"
	"polishstash/internal/server/serializer"
)

// auth contains all authentication handlers.
type auth struct {
	db         database.Client
	signingKey []byte
}

type credentialsParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

///// Register
////
//

// Register handler is used to register the user.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params credentialsParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.New("Could not get user's params."))
	}

	if params.Email == "" {
		return c.JSON(http.StatusUnauthorized, apierror.New("No email provided."))
	}
	if params.Password == "" {
		return c.JSON(http.StatusUnauthorized, apierror.New("No password provided."))
	}

	if _, err := h.db.FindUserByMail(params.Email); err == nil {
		return c.JSON(http.StatusUnauthorized, apierror.New("This email is already registered."))
	} else if !h.db.IsNotFound(err) {
		return errors.Wrap(err, "could not get user")
	}

	user := model.NewUser()
	user.Email = params.Email

	// Crypt password
	password, err := argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.Password = password
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := h.db.Save(user); err != nil {
		return errors.Wrap(err, "could not persist user")
	}

	return h.success(c, user)
}

///// Login
////
//

// Login authenticates a user and returns a JWT.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params credentialsParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get credentials."))
	}

	if params.Email == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, apierror.New("No email or password provided."))
	}

	user, err := h.db.FindUserByMail(params.Email)
	if err != nil {
		if h.db.IsNotFound(err) {
			return apierror.NewWithTagCode(http.StatusUnauthorized, "", "Invalid email or password.")
		}
		return errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return apierror.NewWithTagCode(http.StatusUnauthorized, "", "Invalid email or password.")
		}
		return errors.Wrap(err, "could not validate password")
	}

	return h.success(c, user)
}

func (h *auth) success(c echo.Context, user *model.User) error {
	token, err := h.createJWT(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  serializer.User(user),
		"token": token,
	})
}

func (h *auth) createJWT(u *model.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_uuid"] = u.ID
	claims["iss"] = "polishstash"
	claims["iat"] = time.Now().Unix() // Unix Timestamp in seconds

	t, err := token.SignedString(h.signingKey)
	return t, errors.Wrap(err, "could not generate token")
}
