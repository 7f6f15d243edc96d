package client

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/bizmanager-api/internal/handler"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/model"
	clientService "github.com/jwalitptl/bizmanager-api/internal/service/client"
)

type Handler struct {
	service clientService.ClientServicer
}

func NewHandler(service clientService.ClientServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the client endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.PATCH("/:id", h.UpdateClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

func (h *Handler) CreateClient(c *gin.Context) {
	var in model.ClientInput
	if !handler.BindJSON(c, &in) {
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), middleware.Principal(c).Account.ID, &in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *Handler) ListClients(c *gin.Context) {
	var filter model.ListFilter
	_ = c.ShouldBindQuery(&filter)

	clients, err := h.service.ListClients(c.Request.Context(), middleware.Principal(c).Account.ID, filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *Handler) GetClient(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	client, err := h.service.GetClient(c.Request.Context(), middleware.Principal(c).Account.ID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient merges the supplied fields for both PATCH and PUT.
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var in model.ClientInput
	if !handler.BindJSON(c, &in) {
		return
	}

	client, err := h.service.UpdateClient(c.Request.Context(), middleware.Principal(c).Account.ID, id, &in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), middleware.Principal(c).Account.ID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
