package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations.
type Handler struct {
	store     Checker
	storeName string
	logger    *zap.Logger
}

// NewHandler creates a new health handler for the named store backend.
func NewHandler(store Checker, storeName string, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		storeName: storeName,
		logger:    logger,
	}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status  string `doc:"ok or degraded"          json:"status"`
		Backend string `doc:"Configured store"        json:"backend"`
		Store   string `doc:"healthy or unhealthy"    json:"store"`
	}
}

// Check performs a health check of the application and its store.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Backend = h.storeName

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("store ping failed", zap.String("store", h.storeName), zap.Error(err))

		resp.Body.Store = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Store = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      "GET",
		Path:        "/health",
		Summary:     "Report service and store health",
	}, h.Check)
}
