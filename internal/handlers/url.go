package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/middleware"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// Options controls how outcomes are rendered.
type Options struct {
	// BaseURL prefixes the resolution path in Location headers.
	BaseURL string
	// StrictStatus answers 400 instead of 404 for malformed URLs,
	// unreachable URLs and invalid codes.
	StrictStatus bool
	// WrapRedirect answers redirects with 200 and a redirect body instead of 302.
	WrapRedirect bool
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service *shortener.Service
	opts    Options
	logger  *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(service *shortener.Service, opts Options, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service: service,
		opts:    opts,
		logger:  logger,
	}
}

func (h *URLHandler) CreateURL(ctx context.Context, req *CreateURLRequest) (*CreateURLResponse, error) {
	short, err := h.service.Shorten(ctx, req.Body.URL)
	if err != nil {
		return nil, h.toHTTPError(ctx, err)
	}

	resp := &CreateURLResponse{}
	resp.Body = h.recordBody(&short.URLRecord, short.Code)
	resp.Location = resp.Body.ShortURL

	return resp, nil
}

func (h *URLHandler) GetLongURL(ctx context.Context, req *CodeRequest) (*LongURLResponse, error) {
	code := shortener.Code(req.Code)

	record, err := h.service.Resolve(ctx, code)
	if err != nil {
		return nil, h.toHTTPError(ctx, err)
	}

	return &LongURLResponse{Body: h.recordBody(record, code)}, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *CodeRequest) (*RedirectResponse, error) {
	record, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		return nil, h.toHTTPError(ctx, err)
	}

	resp := &RedirectResponse{
		Status:   http.StatusFound,
		Location: record.URL,
	}
	resp.Body.URL = record.URL

	if h.opts.WrapRedirect {
		resp.Status = http.StatusOK
	}

	return resp, nil
}

func (h *URLHandler) recordBody(record *shortener.URLRecord, code shortener.Code) URLRecordBody {
	return URLRecordBody{
		ID:       uint64(record.ID),
		URL:      record.URL,
		Code:     string(code),
		ShortURL: h.opts.BaseURL + "/long/" + string(code),
	}
}

func (h *URLHandler) toHTTPError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("short url not found")
	case errors.Is(err, shortener.ErrInvalidCode):
		return h.rejected("invalid short code")
	case errors.Is(err, shortener.ErrMalformedURL):
		return h.rejected("url must be an absolute http or https url")
	case errors.Is(err, shortener.ErrUnreachable):
		return h.rejected("url is not reachable")
	}

	h.logger.Error("request failed",
		zap.String("request_id", middleware.RequestMetaFromContext(ctx).RequestID),
		zap.Error(err),
	)

	return huma.Error500InternalServerError("internal server error")
}

// rejected renders client-side failures as 404 unless strict statuses are enabled.
func (h *URLHandler) rejected(msg string) error {
	if h.opts.StrictStatus {
		return huma.Error400BadRequest(msg)
	}

	return huma.Error404NotFound(msg)
}
