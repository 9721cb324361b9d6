package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
)

const maxKeys = 50

// Preferences is the per-user key/value map, e.g. {"dark_mode": "true"}.
type Preferences map[string]string

// Service stores user preferences in the shared key-value store.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (Preferences, error)
	Put(ctx context.Context, userID uuid.UUID, prefs Preferences) (Preferences, error)
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PrefsKey(userID string) string
}

// ServiceParams groups dependencies for the preferences service.
type ServiceParams struct {
	KV kvStore
}

type service struct {
	kv kvStore
}

// NewService builds a preferences service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.KV == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	return &service{kv: params.KV}, nil
}

// Get returns the stored preferences; a user with none gets an empty map.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	raw, err := s.kv.Get(ctx, s.kv.PrefsKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Preferences{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preferences")
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode preferences")
	}
	if prefs == nil {
		prefs = Preferences{}
	}
	return prefs, nil
}

// Put replaces the stored preferences wholesale with the supplied map.
func (s *service) Put(ctx context.Context, userID uuid.UUID, prefs Preferences) (Preferences, error) {
	if prefs == nil {
		prefs = Preferences{}
	}
	if len(prefs) > maxKeys {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d preference keys allowed", maxKeys))
	}
	for key := range prefs {
		if strings.TrimSpace(key) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "preference keys must not be blank")
		}
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode preferences")
	}
	if err := s.kv.Set(ctx, s.kv.PrefsKey(userID.String()), string(raw), 0); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store preferences")
	}
	return prefs, nil
}
