package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"registration-service/internal/wizard"
	"registration-service/utils"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("registration session not found")
	ErrSessionExists   = errors.New("registration session already exists")
	ErrSessionConflict = errors.New("registration session changed concurrently")
)

const (
	sessionKeyPrefix = "registration:session:"
	maxUpdateRetries = 3
)

// WizardSessionRepository keeps one wizard per session id in Redis.
type WizardSessionRepository interface {
	Create(ctx context.Context, state wizard.State) error
	Get(ctx context.Context, sessionID string) (wizard.State, error)
	Delete(ctx context.Context, sessionID string) error

	// Update loads the wizard, runs fn and writes the result back atomically.
	// Nothing is written when fn returns an error. fn may run more than once
	// when another writer touches the session in between.
	Update(ctx context.Context, sessionID string, fn func(w *wizard.Wizard) error) (wizard.State, error)
}

type wizardSessionRepository struct {
	client       *redis.Client
	expiration   time.Duration
	submittedTTL time.Duration
	wizardOpts   []wizard.Option
}

func NewWizardSessionRepository(client *redis.Client, expiration, submittedTTL time.Duration, opts ...wizard.Option) WizardSessionRepository {
	return &wizardSessionRepository{
		client:       client,
		expiration:   expiration,
		submittedTTL: submittedTTL,
		wizardOpts:   opts,
	}
}

func (r *wizardSessionRepository) Create(ctx context.Context, state wizard.State) error {
	if state.SessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	data, err := utils.SerializeModel(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.getSessionKey(state.SessionID), data, r.ttlFor(state)).Result()
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

func (r *wizardSessionRepository) Get(ctx context.Context, sessionID string) (wizard.State, error) {
	if sessionID == "" {
		return wizard.State{}, fmt.Errorf("session ID cannot be empty")
	}

	data, err := r.client.Get(ctx, r.getSessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return wizard.State{}, ErrSessionNotFound
		}
		return wizard.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	return decodeState(data)
}

func (r *wizardSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if err := r.client.Del(ctx, r.getSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *wizardSessionRepository) Update(ctx context.Context, sessionID string, fn func(w *wizard.Wizard) error) (wizard.State, error) {
	if sessionID == "" {
		return wizard.State{}, fmt.Errorf("session ID cannot be empty")
	}

	key := r.getSessionKey(sessionID)
	var next wizard.State

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		current, err := decodeState(data)
		if err != nil {
			return err
		}

		w := wizard.FromState(current, r.wizardOpts...)
		if err := fn(w); err != nil {
			return err
		}
		next = w.State()

		out, err := utils.SerializeModel(next)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttlFor(next))
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return wizard.State{}, err
	}

	return wizard.State{}, ErrSessionConflict
}

// ttlFor refreshes the full expiration on every write while the wizard is in
// progress; a submitted session only lingers long enough to be read back.
func (r *wizardSessionRepository) ttlFor(state wizard.State) time.Duration {
	if state.Status == wizard.StatusSubmitted {
		return r.submittedTTL
	}
	return r.expiration
}

func (r *wizardSessionRepository) getSessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func decodeState(data []byte) (wizard.State, error) {
	var state wizard.State
	if err := utils.DeserializeModel(data, &state); err != nil {
		return wizard.State{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return state, nil
}
