package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

// SessionRepository stores the single mock session object.
type SessionRepository interface {
	Get(ctx context.Context) (models.SessionUser, error)
	Save(ctx context.Context, user models.SessionUser) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewSessionRepository constructs the session repository.
func NewSessionRepository(store storage.Store, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		store:  store,
		logger: logger.With().Str("component", "session_repository").Logger(),
	}
}

func (r *sessionRepository) Get(ctx context.Context) (models.SessionUser, error) {
	raw, err := r.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return models.SessionUser{}, ErrNotFound
		}
		return models.SessionUser{}, fmt.Errorf("load %s: %w", KeyCurrentUser, err)
	}

	var user models.SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		r.logger.Warn().Err(err).Msg("discarding unreadable session")
		return models.SessionUser{}, ErrNotFound
	}

	return user, nil
}

func (r *sessionRepository) Save(ctx context.Context, user models.SessionUser) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCurrentUser, err)
	}
	if err := r.store.Set(ctx, KeyCurrentUser, payload); err != nil {
		return fmt.Errorf("save %s: %w", KeyCurrentUser, err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear %s: %w", KeyCurrentUser, err)
	}
	return nil
}
