package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/bizmanager-api/internal/handler"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/model"
	productService "github.com/jwalitptl/bizmanager-api/internal/service/product"
)

type Handler struct {
	service productService.ProductServicer
}

func NewHandler(service productService.ProductServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var in model.ProductInput
	if !handler.BindJSON(c, &in) {
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), middleware.Principal(c).Account.ID, &in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	var filter model.ListFilter
	_ = c.ShouldBindQuery(&filter)

	products, err := h.service.ListProducts(c.Request.Context(), middleware.Principal(c).Account.ID, filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), middleware.Principal(c).Account.ID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var in model.ProductInput
	if !handler.BindJSON(c, &in) {
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), middleware.Principal(c).Account.ID, id, &in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), middleware.Principal(c).Account.ID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
