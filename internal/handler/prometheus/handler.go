package prometheus

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes a registry in the Prometheus text format.
type Handler struct {
	exposition http.Handler
}

func New(gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		exposition: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes, path string) {
	r.GET(path, h.Metrics)
}

func (h *Handler) Metrics(c *gin.Context) {
	h.exposition.ServeHTTP(c.Writer, c.Request)
}
