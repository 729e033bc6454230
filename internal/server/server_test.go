package server_test

import (
	"io/ioutil"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/appleboy/gofight"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/stretchr/testify/assert"
	"polishstash/internal/database"
	"polishstash/internal/imageres"
	"polishstash/internal/model"
	"polishstash/internal/server"
)

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := ioutil.TempFile("", "polishstash.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Version:        "test",
		Database:       db,
		NoRegistration: false,
		SigningKey:     []byte("secret"),
		Resolver:       imageres.New(nil),
		AffiliateTag:   "polishstash-20",
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func createUser(ctrl server.Controller) *model.User {
	var err error

	user := model.NewUser()
	user.Email = "george.abitbol@nowhere.lan"
	user.Password, err = argon2.GenerateFromPasswordString("password42", argon2.Default)
	user.PasswordUpdatedAt = time.Now().Add(-12 * time.Hour).Unix()
	if err != nil {
		panic(err)
	}
	err = ctrl.Database.Save(user)
	if err != nil {
		panic(err)
	}

	return user
}

func authToken(ctrl server.Controller, user *model.User) string {
	return authTokenAt(ctrl, user, time.Now())
}

func authTokenAt(ctrl server.Controller, user *model.User, iat time.Time) string {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_uuid"] = user.ID
	claims["iss"] = "polishstash"
	claims["iat"] = iat.Unix()

	t, err := token.SignedString(ctrl.SigningKey)
	if err != nil {
		panic(err)
	}
	return t
}

func bearer(token string) gofight.H {
	return gofight.H{"Authorization": "Bearer " + token}
}
