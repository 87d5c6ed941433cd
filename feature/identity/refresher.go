package identity

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartRefresher reloads stale manifests every interval until ctx is cancelled.
// A non-positive interval returns immediately.
func (s *Service) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.logger.Info("Refresher started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Refresher stopped")
			return
		case <-ticker.C:
			s.refreshOnce(ctx)
		}
	}
}

func (s *Service) refreshOnce(ctx context.Context) {
	start := time.Now()
	n, err := s.root.Refresh(ctx)
	if err != nil {
		s.logger.Warn("Refresh finished with errors", zap.Int("manifests", n), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Refreshed stale manifests",
			zap.Int("manifests", n),
			zap.Duration("duration", time.Since(start)))
	}
}
