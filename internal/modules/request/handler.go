package request

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
	requests := rg.Group("/requests")
	requests.Use(middleware.SharerUser())
	{
		requests.POST("", h.Create)
		requests.GET("", h.ListMine)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:id", h.Get)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToResponse(created))
}

func (h *Handler) ListMine(c *gin.Context) {
	reqs, err := h.service.FindMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(reqs))
}

func (h *Handler) ListOthers(c *gin.Context) {
	page, err := pagination.FromQuery(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	reqs, err := h.service.FindOthers(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponses(reqs))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(r))
}
