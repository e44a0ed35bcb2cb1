package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/bookreview/internal/errs"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/model"
	md "github.com/Astemirdum/bookreview-service/pkg/middleware"
	"github.com/Astemirdum/bookreview-service/pkg/validate"
	_ "github.com/Astemirdum/bookreview-service/swagger"
)

type Handler struct {
	svc BookReviewService
	log *zap.Logger
}

func New(svc BookReviewService, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HTTPErrorHandler = h.errorHandler
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(md.CORS())

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/", h.Index)
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)
	api.POST("/books", h.CreateBook)

	api.GET("/reviews/:bookId", h.ListReviews)
	api.POST("/reviews", h.CreateReview)

	api.GET("/users/:userId", h.GetUser)
	api.PUT("/users/:userId", h.UpsertUser)

	return e
}

func (h *Handler) Index(c echo.Context) error {
	return c.String(http.StatusOK, "Book review API")
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ListBooks godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        skip   query  int  false  "rows to skip"
// @Param        limit  query  int  false  "page size, max 100"
// @Success      200  {object}  model.BooksResponse
// @Failure      400  {object}  errs.ErrorResponse
// @Router       /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	paging := model.Paging{Limit: model.DefaultLimit}
	var err error
	if skipParam := c.QueryParam("skip"); skipParam != "" {
		if paging.Skip, err = strconv.Atoi(skipParam); err != nil || paging.Skip < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "skip is invalid")
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if paging.Limit, err = strconv.Atoi(limitParam); err != nil || paging.Limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
		}
	}
	switch {
	case paging.Limit == 0:
		paging.Limit = model.DefaultLimit
	case paging.Limit > model.MaxLimit:
		paging.Limit = model.MaxLimit
	}

	books, err := h.svc.ListBooks(c.Request().Context(), paging)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if books == nil {
		books = []model.Book{}
	}
	return c.JSON(http.StatusOK, model.BooksResponse{Data: books})
}

// GetBook godoc
// @Summary      Get a book, data is null when it does not exist
// @Tags         books
// @Produce      json
// @Param        id  path  string  true  "book id"
// @Success      200  {object}  model.BookResponse
// @Router       /books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.svc.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.JSON(http.StatusOK, model.BookResponse{})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.BookResponse{Data: &book})
}

// CreateBook godoc
// @Summary      Add a book (ADMIN only)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body  model.CreateBookRequest  true  "book"
// @Success      201  {object}  model.BookResponse
// @Failure      400  {object}  errs.ErrorResponse
// @Failure      401  {object}  errs.ErrorResponse
// @Router       /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	book, err := h.svc.CreateBook(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, model.BookResponse{Data: &book})
}

// ListReviews godoc
// @Summary      Reviews of a book
// @Tags         reviews
// @Produce      json
// @Param        bookId  path  string  true  "book id"
// @Success      200  {object}  model.ReviewsResponse
// @Router       /reviews/{bookId} [get]
func (h *Handler) ListReviews(c echo.Context) error {
	reviews, err := h.svc.ListReviews(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return c.JSON(http.StatusOK, model.ReviewsResponse{Data: reviews})
}

// CreateReview godoc
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        review  body  model.CreateReviewRequest  true  "review"
// @Success      201  {object}  model.ReviewCreatedResponse
// @Failure      400  {object}  errs.ErrorResponse
// @Router       /reviews [post]
func (h *Handler) CreateReview(c echo.Context) error {
	var req model.CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.svc.CreateReview(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, model.ReviewCreatedResponse{Review: review})
}

// GetUser godoc
// @Summary      Get a user, data is null when it does not exist
// @Tags         users
// @Produce      json
// @Param        userId  path  string  true  "user id"
// @Success      200  {object}  model.UserResponse
// @Router       /users/{userId} [get]
func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.JSON(http.StatusOK, model.UserResponse{})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.UserResponse{Data: &user})
}

// UpsertUser godoc
// @Summary      Create or overwrite a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path  string                   true  "user id"
// @Param        user    body  model.UpsertUserRequest  true  "profile"
// @Success      200  {object}  model.UserResponse
// @Failure      400  {object}  errs.ErrorResponse
// @Router       /users/{userId} [put]
func (h *Handler) UpsertUser(c echo.Context) error {
	var req model.UpsertUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpsertUser(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.UserResponse{Data: &user})
}
