package biz

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CapabilityCheck probes one auxiliary capability
type CapabilityCheck func(ctx context.Context) error

// CheckCapabilities probes auxiliary capabilities once at startup, purely for
// informational logging. Results never influence reconciliation and failures
// are swallowed.
func CheckCapabilities(ctx context.Context, checks map[string]CapabilityCheck, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for name, check := range checks {
		if err := check(ctx); err != nil {
			logger.Warn("capability unavailable",
				zap.String("capability", name),
				zap.Error(err))
			continue
		}
		logger.Info("capability available", zap.String("capability", name))
	}
}
