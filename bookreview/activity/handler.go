package activity

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/bookreview/internal/errs"
	md "github.com/Astemirdum/bookreview-service/pkg/middleware"
)

type Handler struct {
	feed *Feed
	log  *zap.Logger
}

func NewHandler(feed *Feed, log *zap.Logger) *Handler {
	return &Handler{feed: feed, log: log}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{StackSize: 4 << 10}))
	e.Use(md.CORS())

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	api := e.Group("/activity",
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.NewRateLimiter(apiRPS),
	)
	api.GET("", h.GetActivity)
	api.GET("/users/:userId", h.GetUserActivity)
	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetActivity(c echo.Context) error {
	return c.JSON(http.StatusOK, h.feed.Snapshot())
}

func (h *Handler) GetUserActivity(c echo.Context) error {
	ua, ok := h.feed.User(c.Param("userId"))
	if !ok {
		return c.JSON(http.StatusNotFound, errs.ErrorResponse{Error: "no activity for user"})
	}
	return c.JSON(http.StatusOK, ua)
}
