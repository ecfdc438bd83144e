package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit/internal/domain"
	"shareit/internal/metrics"
	"shareit/internal/middleware"
	"shareit/internal/pkg/pagination"
	"shareit/internal/pkg/params"
	"shareit/internal/pkg/response"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	registerValidators()
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", bindAnd[userCreateRequest](h.forwardBody))
		users.GET("", h.forward)
		users.GET("/:id", withID(h.forward))
		users.PATCH("/:id", withID(bindAnd[userUpdateRequest](h.forwardBody)))
		users.DELETE("/:id", withID(h.forward))
	}

	items := rg.Group("/items")
	items.Use(middleware.SharerUser())
	{
		items.POST("", bindAnd[itemCreateRequest](h.forwardBody))
		items.GET("", withPage(h.forward))
		items.GET("/search", withPage(h.forward))
		items.GET("/:id", withID(h.forward))
		items.PATCH("/:id", withID(bindAnd[itemUpdateRequest](h.forwardBody)))
		items.POST("/:id/comment", withID(bindAnd[commentCreateRequest](h.forwardBody)))
	}

	bookings := rg.Group("/bookings")
	bookings.Use(middleware.SharerUser())
	{
		bookings.POST("", bindAnd[bookingCreateRequest](h.forwardBody))
		bookings.GET("", withState(withPage(h.forward)))
		bookings.GET("/owner", withState(withPage(h.forward)))
		bookings.GET("/:id", withID(h.forward))
		bookings.PATCH("/:id", withID(withApproved(h.forward)))
	}

	requests := rg.Group("/requests")
	requests.Use(middleware.SharerUser())
	{
		requests.POST("", bindAnd[requestCreateRequest](h.forwardBody))
		requests.GET("", h.forward)
		requests.GET("/all", withPage(h.forward))
		requests.GET("/:id", withID(h.forward))
	}
}

// forward relays the request without a body.
func (h *Handler) forward(c *gin.Context) {
	h.relay(c, nil)
}

func (h *Handler) forwardBody(c *gin.Context, body any) {
	h.relay(c, body)
}

func (h *Handler) relay(c *gin.Context, body any) {
	reply, err := h.client.Forward(c.Request.Context(), Call{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RawQuery:  c.Request.URL.RawQuery,
		UserID:    middleware.UserID(c),
		RequestID: middleware.RequestIDFrom(c),
		Body:      body,
	})
	if err != nil {
		metrics.IncUpstreamError()
		middleware.Logger(c).Error().Err(err).Msg("server tier unreachable")
		response.Error(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "ShareIt server is unavailable")
		return
	}

	if reply.Status == http.StatusNoContent || len(reply.Body) == 0 {
		c.Status(reply.Status)
		return
	}
	contentType := reply.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(reply.Status, contentType, reply.Body)
}

// bindAnd validates the JSON body into T before handing it to next.
func bindAnd[T any](next func(*gin.Context, any)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
			return
		}
		next(c, &req)
	}
}

func withID(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := params.ID(c, "id"); err != nil {
			response.FromError(c, err)
			return
		}
		next(c)
	}
}

func withPage(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := pagination.FromQuery(c); err != nil {
			response.FromError(c, err)
			return
		}
		next(c)
	}
}

func withState(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := domain.ParseState(c.Query("state")); err != nil {
			response.FromError(c, err)
			return
		}
		next(c)
	}
}

func withApproved(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := params.RequiredBool(c, "approved"); err != nil {
			response.FromError(c, err)
			return
		}
		next(c)
	}
}
