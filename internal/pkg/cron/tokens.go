package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TokenStore deletes refresh tokens past their expiry.
type TokenStore interface {
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// RevocationList forgets revoked access tokens that have expired anyway.
type RevocationList interface {
	PruneRevoked(now time.Time) int
}

type TokenJobs struct {
	store   TokenStore
	revoked RevocationList
	logger  *slog.Logger
	now     func() time.Time
}

func NewTokenJobs(store TokenStore, revoked RevocationList, logger *slog.Logger) *TokenJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenJobs{store: store, revoked: revoked, logger: logger, now: time.Now}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("cleanup_expired_tokens", interval, j.CleanupExpiredTokens)
}

func (j *TokenJobs) CleanupExpiredTokens(ctx context.Context) error {
	pruned := j.revoked.PruneRevoked(j.now())

	deleted, err := j.store.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		return fmt.Errorf("delete expired refresh tokens: %w", err)
	}

	if deleted > 0 || pruned > 0 {
		j.logger.Info("expired tokens removed", "refresh_tokens", deleted, "revoked_access_tokens", pruned)
	}
	return nil
}
