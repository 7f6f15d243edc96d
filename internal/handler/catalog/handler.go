package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/bizmanager-api/internal/handler"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/model"
	catalogService "github.com/jwalitptl/bizmanager-api/internal/service/catalog"
)

type Handler struct {
	service catalogService.CatalogServicer
}

func NewHandler(service catalogService.CatalogServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the service endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.PATCH("/:id", h.UpdateService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

func (h *Handler) CreateService(c *gin.Context) {
	var in model.ServiceInput
	if !handler.BindJSON(c, &in) {
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), middleware.Principal(c).Account.ID, &in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *Handler) ListServices(c *gin.Context) {
	var filter model.ListFilter
	_ = c.ShouldBindQuery(&filter)

	services, err := h.service.ListServices(c.Request.Context(), middleware.Principal(c).Account.ID, filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), middleware.Principal(c).Account.ID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// UpdateService merges the supplied scalars for both PATCH and PUT. A
// "products" array, when sent, replaces the whole usage set.
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var in model.ServiceInput
	if !handler.BindJSON(c, &in) {
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), middleware.Principal(c).Account.ID, id, &in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), middleware.Principal(c).Account.ID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
