package shortener

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// URLValidator decides whether a candidate URL may be stored.
type URLValidator interface {
	Validate(ctx context.Context, candidate string) error
}

// Service shortens URLs and resolves codes back to them.
type Service struct {
	store     Repository
	codec     *Codec
	validator URLValidator
	logger    *zap.Logger
}

// NewService creates a service over the given store, codec and validator.
func NewService(store Repository, codec *Codec, validator URLValidator, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		codec:     codec,
		validator: validator,
		logger:    logger,
	}
}

// Codec returns the codec used to render identifiers.
func (s *Service) Codec() *Codec {
	return s.codec
}

// Shorten validates candidate, stores it under a new ID and returns its code.
// Every call creates a new record; identical URLs are not deduplicated.
func (s *Service) Shorten(ctx context.Context, candidate string) (*ShortURL, error) {
	if err := s.validator.Validate(ctx, candidate); err != nil {
		s.logger.Info("url rejected",
			zap.String("url", candidate),
			zap.Error(err),
		)

		return nil, err
	}

	record, err := s.store.Insert(ctx, candidate)
	if err != nil {
		s.logger.Error("failed to store url",
			zap.String("url", candidate),
			zap.Error(err),
		)

		return nil, &PersistenceError{Op: "insert", Err: err}
	}

	code, err := s.codec.Encode(record.ID)
	if err != nil {
		s.logger.Error("stored id cannot be encoded",
			zap.Uint64("id", uint64(record.ID)),
			zap.Error(err),
		)

		return nil, err
	}

	s.logger.Debug("url shortened",
		zap.Uint64("id", uint64(record.ID)),
		zap.String("code", string(code)),
	)

	return &ShortURL{URLRecord: *record, Code: code}, nil
}

// Resolve returns the record a code points to. It fails with ErrInvalidCode
// for codes the codec rejects and ErrNotFound for unissued identifiers.
func (s *Service) Resolve(ctx context.Context, code Code) (*URLRecord, error) {
	id, err := s.codec.Decode(code)
	if err != nil {
		s.logger.Debug("invalid code", zap.String("code", string(code)), zap.Error(err))

		return nil, err
	}

	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		s.logger.Error("failed to look up url",
			zap.String("code", string(code)),
			zap.Uint64("id", uint64(id)),
			zap.Error(err),
		)

		return nil, &PersistenceError{Op: "find", Err: err}
	}

	return record, nil
}
