package container_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/container"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() *container.Options {
	return &container.Options{
		Port:         8888,
		Store:        container.StoreMemory,
		LogFormat:    "console",
		CodeLength:   shortener.DefaultWidth,
		Alphabet:     shortener.DefaultAlphabet,
		Pad:          string(shortener.DefaultPad),
		ProbeTimeout: 1000,
	}
}

func newInjector(opts *container.Options) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.TelemetryPackage(injector)
	container.StorePackage(injector)
	container.ServicePackage(injector)
	container.HTTPPackage(injector)

	return injector
}

func TestOptions_PublicBaseURL(t *testing.T) {
	t.Run("defaults to localhost and port", func(t *testing.T) {
		opts := testOptions()

		assert.Equal(t, "http://localhost:8888", opts.PublicBaseURL())
	})

	t.Run("uses configured base url", func(t *testing.T) {
		opts := testOptions()
		opts.BaseURL = "https://sho.rt"

		assert.Equal(t, "https://sho.rt", opts.PublicBaseURL())
	})
}

func TestServicePackage(t *testing.T) {
	t.Run("builds codec from options", func(t *testing.T) {
		opts := testOptions()
		opts.CodeLength = 6
		opts.LegacyDecode = true

		injector := newInjector(opts)

		codec := do.MustInvoke[*shortener.Codec](injector)

		assert.Equal(t, 6, codec.Width())
		assert.Equal(t, shortener.DecodeLegacy, codec.Mode())
	})

	t.Run("rejects multi character pad", func(t *testing.T) {
		opts := testOptions()
		opts.Pad = "ZZ"

		_, err := do.Invoke[*shortener.Codec](newInjector(opts))

		assert.Error(t, err)
	})

	t.Run("rejects pad inside alphabet", func(t *testing.T) {
		opts := testOptions()
		opts.Pad = "a"

		_, err := do.Invoke[*shortener.Codec](newInjector(opts))

		assert.Error(t, err)
	})
}

func TestStorePackage(t *testing.T) {
	t.Run("rejects unknown backend", func(t *testing.T) {
		opts := testOptions()
		opts.Store = "cassandra"

		_, err := do.Invoke[container.Store](newInjector(opts))

		assert.Error(t, err)
	})
}

func TestHTTPPackage(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	injector := newInjector(testOptions())
	defer func() { _ = injector.Shutdown() }()

	_ = do.MustInvoke[huma.API](injector)
	router := do.MustInvoke[*chi.Mux](injector)

	t.Run("shortens a reachable url", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/urls", strings.NewReader(`{"url":"`+target.URL+`"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "http://localhost:8888/long/ZZZZZZZb", w.Header().Get("Location"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("serves health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"backend":"memory"`)
	})

	t.Run("serves metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
		assert.Contains(t, w.Body.String(), `url_probes_total{result="reachable"} 1`)
	})
}
