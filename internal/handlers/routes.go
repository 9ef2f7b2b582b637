package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-url",
		Method:        http.MethodPost,
		Path:          "/urls",
		Summary:       "Shorten a URL",
		Description:   "Validates and stores a URL, returning its fixed-width short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateURL)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/redirect/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "get-long-url",
		Method:      http.MethodGet,
		Path:        "/long/{code}",
		Summary:     "Get original URL",
		Description: "Returns the stored record associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.GetLongURL)
}
