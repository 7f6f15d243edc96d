package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/bizmanager-api/internal/handler"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/model"
	accountService "github.com/jwalitptl/bizmanager-api/internal/service/account"
)

type Handler struct {
	service accountService.AccountServicer
}

func NewHandler(service accountService.AccountServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the caller's business profile.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profile := r.Group("/auth/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	account, err := h.service.GetProfile(c.Request.Context(), middleware.Principal(c).User.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateAccountRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	account, err := h.service.UpdateProfile(c.Request.Context(), middleware.Principal(c).User.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
