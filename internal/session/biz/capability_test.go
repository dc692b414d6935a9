package biz

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestCheckCapabilitiesSwallowsFailures(t *testing.T) {
	var dbChecked, redisChecked bool

	CheckCapabilities(context.Background(), map[string]CapabilityCheck{
		"database": func(ctx context.Context) error {
			dbChecked = true
			return nil
		},
		"redis": func(ctx context.Context) error {
			redisChecked = true
			return errors.New("connection refused")
		},
	}, zap.NewNop())

	if !dbChecked || !redisChecked {
		t.Error("all capability checks should run even when some fail")
	}
}
