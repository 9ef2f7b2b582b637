package shortener_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/serroba/url-shortener/internal/shortener"
)

var errMock = errors.New("mock error")

// countingDoer answers every request with 200 unless err is set.
type countingDoer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (d *countingDoer) Do(_ *http.Request) (*http.Response, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()

	if d.err != nil {
		return nil, d.err
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("ok")),
	}, nil
}

// stubValidator returns err for every candidate.
type stubValidator struct {
	err error
}

func (v stubValidator) Validate(_ context.Context, _ string) error {
	return v.err
}

// mockRepository is a Repository double that can be configured to fail.
type mockRepository struct {
	insertErr  error
	findErr    error
	insertedID shortener.ID
	record     *shortener.URLRecord
	inserted   []string
}

func (m *mockRepository) Insert(_ context.Context, url string) (*shortener.URLRecord, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}

	m.inserted = append(m.inserted, url)

	return &shortener.URLRecord{ID: m.insertedID, URL: url}, nil
}

func (m *mockRepository) FindByID(_ context.Context, _ shortener.ID) (*shortener.URLRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}

	if m.record == nil {
		return nil, shortener.ErrNotFound
	}

	return m.record, nil
}
