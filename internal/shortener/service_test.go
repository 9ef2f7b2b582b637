package shortener_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURL = "https://example.com"

func newTestService(repo shortener.Repository, validator shortener.URLValidator) *shortener.Service {
	return shortener.NewService(repo, shortener.DefaultCodec(), validator, zap.NewNop())
}

func TestService_Shorten(t *testing.T) {
	t.Run("stores url and returns its code", func(t *testing.T) {
		svc := newTestService(store.NewMemoryStore(), stubValidator{})

		short, err := svc.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, shortener.ID(1), short.ID)
		assert.Equal(t, shortener.Code("ZZZZZZZb"), short.Code)
		assert.Equal(t, testURL, short.URL)
		assert.False(t, short.CreatedAt.IsZero())
	})

	t.Run("same url twice yields two records", func(t *testing.T) {
		svc := newTestService(store.NewMemoryStore(), stubValidator{})

		first, err := svc.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		second, err := svc.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.NotEqual(t, first.Code, second.Code)
	})

	t.Run("validation failure stores nothing", func(t *testing.T) {
		repo := &mockRepository{}
		svc := newTestService(repo, stubValidator{err: shortener.ErrMalformedURL})

		short, err := svc.Shorten(context.Background(), "abc")

		assert.Nil(t, short)
		assert.ErrorIs(t, err, shortener.ErrMalformedURL)
		assert.Empty(t, repo.inserted)
	})

	t.Run("unreachable url stores nothing", func(t *testing.T) {
		repo := &mockRepository{}
		validator := shortener.NewValidator(&countingDoer{err: errMock}, time.Second)
		svc := newTestService(repo, validator)

		short, err := svc.Shorten(context.Background(), testURL)

		assert.Nil(t, short)
		assert.ErrorIs(t, err, shortener.ErrUnreachable)
		assert.Empty(t, repo.inserted)
	})

	t.Run("store failure is a persistence error", func(t *testing.T) {
		svc := newTestService(&mockRepository{insertErr: errMock}, stubValidator{})

		short, err := svc.Shorten(context.Background(), testURL)

		assert.Nil(t, short)
		assert.ErrorIs(t, err, shortener.ErrPersistence)
		assert.ErrorIs(t, err, errMock)
	})

	t.Run("identifier beyond codec range fails", func(t *testing.T) {
		codec := shortener.DefaultCodec()
		repo := &mockRepository{insertedID: codec.MaxID() + 1}
		svc := newTestService(repo, stubValidator{})

		short, err := svc.Shorten(context.Background(), testURL)

		assert.Nil(t, short)
		assert.ErrorIs(t, err, shortener.ErrIDOutOfRange)
	})
}

func TestService_Resolve(t *testing.T) {
	t.Run("resolves an issued code", func(t *testing.T) {
		svc := newTestService(store.NewMemoryStore(), stubValidator{})

		short, err := svc.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		record, err := svc.Resolve(context.Background(), short.Code)

		require.NoError(t, err)
		assert.Equal(t, short.ID, record.ID)
		assert.Equal(t, testURL, record.URL)
	})

	t.Run("too short code is invalid", func(t *testing.T) {
		svc := newTestService(store.NewMemoryStore(), stubValidator{})

		record, err := svc.Resolve(context.Background(), "34")

		assert.Nil(t, record)
		assert.ErrorIs(t, err, shortener.ErrInvalidCode)
	})

	t.Run("unissued code is not found", func(t *testing.T) {
		svc := newTestService(store.NewMemoryStore(), stubValidator{})

		record, err := svc.Resolve(context.Background(), "ZZcShnwQ")

		assert.Nil(t, record)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("all padding code is not found", func(t *testing.T) {
		svc := newTestService(store.NewMemoryStore(), stubValidator{})

		_, err := svc.Resolve(context.Background(), "ZZZZZZZZ")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("store failure is a persistence error", func(t *testing.T) {
		svc := newTestService(&mockRepository{findErr: errMock}, stubValidator{})

		_, err := svc.Resolve(context.Background(), "ZZZZZZZb")

		assert.ErrorIs(t, err, shortener.ErrPersistence)
		assert.NotErrorIs(t, err, shortener.ErrNotFound)
	})
}
