// Package worker hosts background jobs that run alongside the HTTP server.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiredDeleter is the slice of the story repository the reaper needs.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Reaper periodically hard-deletes story rows past their expiry. It is an
// independent consumer of the story store; the read path filters by expiry
// on its own and never depends on the reaper having run.
type Reaper struct {
	stories  ExpiredDeleter
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReaper builds a reaper. A nil now function defaults to time.Now.
func NewReaper(stories ExpiredDeleter, interval time.Duration, logger *zap.Logger, now func() time.Time) *Reaper {
	if now == nil {
		now = time.Now
	}
	return &Reaper{stories: stories, interval: interval, logger: logger, now: now}
}

// Run blocks, sweeping on every tick until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("expiry reaper started", zap.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("expiry reaper stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	deleted, err := r.stories.DeleteExpired(ctx, r.now())
	if err != nil {
		r.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		r.logger.Info("expired stories deleted", zap.Int64("count", deleted))
	}
}
