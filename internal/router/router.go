package router

import (
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/akumarujon/imf-gadget-api/internal/config"
	"github.com/akumarujon/imf-gadget-api/internal/handler"
	"github.com/akumarujon/imf-gadget-api/internal/response"
	"github.com/akumarujon/imf-gadget-api/internal/service"
)

// Register wires routes and middleware. accessLog receives the request log
// and request/response bodies.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	accessLog io.Writer,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	gadgetHandler *handler.GadgetHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Output: accessLog,
	}))
	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if len(reqBody) == 0 && len(resBody) == 0 {
				return
			}
			io.WriteString(accessLog, "request_id="+c.Response().Header().Get(echo.HeaderXRequestID)+
				" request="+string(reqBody)+" response="+string(resBody)+"\n")
		},
		Skipper: func(c echo.Context) bool {
			// never dump credentials
			return c.Path() == "/api/auth/register" || c.Path() == "/api/auth/login"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid, unrevoked bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Fail(c, http.StatusUnauthorized, "missing or invalid token")
		},
	}), requireUnrevoked(authService))

	secured.POST("/auth/logout", authHandler.Logout)

	// Gadget routes
	secured.GET("/gadgets", gadgetHandler.List)
	secured.GET("/gadgets/:id", gadgetHandler.Get)
	secured.POST("/gadgets", gadgetHandler.Create)
	secured.PATCH("/gadgets/:id", gadgetHandler.Update)
	secured.DELETE("/gadgets/:id", gadgetHandler.Decommission)
	secured.POST("/gadgets/:id/self-destruct", gadgetHandler.SelfDestruct)
}

// requireUnrevoked re-verifies the bearer token through the auth service so
// that tokens revoked by logout stop working before their expiry.
func requireUnrevoked(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if len(header) <= len(prefix) {
				return response.Fail(c, http.StatusUnauthorized, "missing or invalid token")
			}
			identity, err := authService.VerifyToken(c.Request().Context(), header[len(prefix):])
			if err != nil {
				return response.Fail(c, http.StatusUnauthorized, "missing or invalid token")
			}
			c.Set("identity", identity)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
