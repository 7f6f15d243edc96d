package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/bizmanager-api/internal/handler"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/model"
	authService "github.com/jwalitptl/bizmanager-api/internal/service/auth"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
)

// CookieConfig describes the session cookie set at login.
type CookieConfig struct {
	Name   string
	Secure bool
	Path   string
}

type Handler struct {
	svc    authService.AuthServicer
	cookie CookieConfig
}

func NewHandler(svc authService.AuthServicer, cookie CookieConfig) *Handler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Handler{svc: svc, cookie: cookie}
}

// RegisterRoutes mounts register and login on public and logout on
// protected, which must run the authentication middleware.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
	protected.POST("/auth/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	user, sess, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	h.setCookie(c, user.Token, maxAge)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	principal := middleware.Principal(c)
	if principal == nil {
		handler.RespondError(c, errors.Unauthorized(nil))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), principal.SessionID); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{errors.DetailKey: model.MsgLogoutSuccessful})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, "", h.cookie.Secure, true)
}
