package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	accountHandler "github.com/jwalitptl/bizmanager-api/internal/handler/account"
	authHandler "github.com/jwalitptl/bizmanager-api/internal/handler/auth"
	clientHandler "github.com/jwalitptl/bizmanager-api/internal/handler/client"
	"github.com/jwalitptl/bizmanager-api/internal/handler/health"
	"github.com/jwalitptl/bizmanager-api/internal/handler/prometheus"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/internal/model"
	authService "github.com/jwalitptl/bizmanager-api/internal/service/auth"
	"github.com/jwalitptl/bizmanager-api/internal/service/mocks"
	"github.com/jwalitptl/bizmanager-api/pkg/metrics"
)

type fixture struct {
	engine  *gin.Engine
	auth    *mocks.AuthService
	clients *mocks.ClientService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prom.NewRegistry()
	m := metrics.NewMetrics("bizmanager", reg)

	authSvc := new(mocks.AuthService)
	clientSvc := new(mocks.ClientService)

	r := NewRouter(
		middleware.NewAuthMiddleware(authSvc, "session"),
		authHandler.NewHandler(authSvc, authHandler.CookieConfig{Name: "session"}),
		health.NewHandler(map[string]health.Check{
			"database": func(context.Context) error { return nil },
		}),
		prometheus.New(reg),
		m,
		RouterConfig{MetricsPath: "/metrics"},
		accountHandler.NewHandler(new(mocks.AccountService)),
		clientHandler.NewHandler(clientSvc),
	)
	r.Setup()

	return &fixture{engine: r.Engine(), auth: authSvc, clients: clientSvc}
}

func (f *fixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.get("/api/health/live", "").Code)
	assert.Equal(t, http.StatusOK, f.get("/api/health/ready", "").Code)
}

func TestResourcesRequireSession(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/clients", "/api/auth/profile"} {
		w := f.get(path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.NotEmpty(t, f.get("/api/clients", "").Header().Get(middleware.HeaderXRequestID))
}

func TestAuthenticatedListIsScopedToCaller(t *testing.T) {
	f := newFixture(t)
	accountID := uuid.New()
	f.auth.On("Authenticate", mock.Anything, "token").Return(&authService.Principal{
		User:      &model.User{ID: uuid.New()},
		Account:   &model.Account{ID: accountID},
		SessionID: "sid",
	}, nil)
	f.clients.On("ListClients", mock.Anything, accountID, model.ListFilter{}).Return([]*model.Client{}, nil)

	w := f.get("/api/clients", "token")

	assert.Equal(t, http.StatusOK, w.Code)
	f.clients.AssertExpectations(t)
}

func TestMetricsExposeRequestCounters(t *testing.T) {
	f := newFixture(t)
	f.get("/api/health/live", "")

	w := f.get("/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bizmanager_requests_total{method="GET",path="/api/health/live",status="200"} 1`)
}
