package services

import (
	"context"
	"fmt"

	"github.com/postboard/api/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Housekeeper periodically purges expired refresh tokens and aged audit
// rows. Expired tokens are already rejected on signature expiry; this only
// keeps the tables small.
type Housekeeper struct {
	tokens        *TokenService
	audit         *AuditService
	schedule      string
	retentionDays int
	cron          *cron.Cron
}

func NewHousekeeper(tokens *TokenService, audit *AuditService, schedule string, retentionDays int) *Housekeeper {
	return &Housekeeper{
		tokens:        tokens,
		audit:         audit,
		schedule:      schedule,
		retentionDays: retentionDays,
	}
}

// Start registers the job and starts the scheduler. An empty schedule
// leaves housekeeping disabled.
func (h *Housekeeper) Start() error {
	if h.schedule == "" {
		logger.Info().Msg("[Housekeeping] disabled")
		return nil
	}

	h.cron = cron.New()
	if _, err := h.cron.AddFunc(h.schedule, func() { h.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid housekeeping schedule %q: %w", h.schedule, err)
	}
	h.cron.Start()
	logger.Info().Str("schedule", h.schedule).Msg("[Housekeeping] scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job, or for ctx.
func (h *Housekeeper) Stop(ctx context.Context) error {
	if h.cron == nil {
		return nil
	}

	select {
	case <-h.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs a single purge pass.
func (h *Housekeeper) RunOnce(ctx context.Context) {
	tokens, err := h.tokens.PurgeExpired(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("[Housekeeping] failed to purge refresh tokens")
	}

	audits, err := h.audit.PurgeOlderThan(ctx, h.retentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("[Housekeeping] failed to purge audit logs")
	}

	if tokens > 0 || audits > 0 {
		logger.Info().
			Int64("refresh_tokens", tokens).
			Int64("audit_logs", audits).
			Msg("[Housekeeping] purged")
	}
}
