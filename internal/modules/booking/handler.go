package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit/internal/middleware"
	"shareit/internal/pkg/pagination"
	"shareit/internal/pkg/params"
	"shareit/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.SharerUser())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.DecideBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToResponse(b))
}

func (h *Handler) DecideBooking(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	approved, err := params.RequiredBool(c, "approved")
	if err != nil {
		response.FromError(c, err)
		return
	}

	b, err := h.service.Decide(c.Request.Context(), middleware.UserID(c), id, approved)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(b))
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(b))
}

func (h *Handler) ListForBooker(c *gin.Context) {
	page, err := pagination.FromQuery(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	bookings, err := h.service.ListForBooker(c.Request.Context(), middleware.UserID(c), c.Query("state"), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(bookings))
}

func (h *Handler) ListForOwner(c *gin.Context) {
	page, err := pagination.FromQuery(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	bookings, err := h.service.ListForOwner(c.Request.Context(), middleware.UserID(c), c.Query("state"), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(bookings))
}
