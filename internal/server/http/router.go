// Package http exposes the message API over HTTP using gin.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/toldya/internal/logging"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/dmitrijs2005/toldya/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MessageService is the core the handlers delegate to.
type MessageService interface {
	Create(ctx context.Context, in services.CreateMessageInput) (string, error)
	Get(ctx context.Context, id string) (*models.View, error)
}

type Handlers struct {
	svc    MessageService
	logger logging.Logger
}

func NewHandlers(svc MessageService, l logging.Logger) *Handlers {
	return &Handlers{svc: svc, logger: l}
}

// NewRouter wires the API, health and metrics routes. Every request gets a
// correlation id, an access log line and a deadline of requestTimeout.
func NewRouter(h *Handlers, l logging.Logger, requestTimeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(l), Timeout(requestTimeout))

	r.POST("/messages", h.CreateMessage)
	r.GET("/messages", h.GetMessage)
	r.GET("/ping", h.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
