package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"polishstash/internal/database"
	"polishstash/internal/imageres"
	"polishstash/internal/model"
	"polishstash/internal/server/middlewares"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version        string
	Database       database.Client
	NoRegistration bool
	// JWT params
	SigningKey []byte
	// Image resolution params
	Resolver *imageres.Resolver
	// Affiliate params
	AffiliateTag string
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	////////////
	// Router //
	////////////

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middleware.JWT(ctrl.SigningKey))
	restricted.Use(middlewares.CurrentUser(ctrl.Database))

	//
	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		db:         ctrl.Database,
		signingKey: ctrl.SigningKey,
	}
	if !ctrl.NoRegistration {
		router.POST("/auth", auth.Register)
	}
	router.POST("/auth/sign_in", auth.Login)

	//
	// inventory handlers
	//
	inventory := &inventory{
		db: ctrl.Database,
	}
	restricted.GET("/inventory", inventory.List)
	restricted.POST("/inventory", inventory.Upsert)
	restricted.POST("/inventory/replace", inventory.Replace)
	restricted.DELETE("/inventory", inventory.Clear)
	restricted.PUT("/inventory/:code", inventory.UpsertOne)
	restricted.DELETE("/inventory/:code", inventory.DeleteOne)

	//
	// profile handlers
	//
	profile := &profile{
		db: ctrl.Database,
	}
	restricted.GET("/profile", profile.Show)
	restricted.POST("/profile", profile.Save)

	//
	// image & redirect handlers
	//
	image := &image{
		resolver: ctrl.Resolver,
	}
	router.GET("/image", image.Resolve)

	redirect := &redirect{
		affiliateTag: ctrl.AffiliateTag,
	}
	router.GET("/go", redirect.Go)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
