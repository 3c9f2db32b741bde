package worker

// sweep.go
// Daily expiry sweep: revokes Wi-Fi entitlement for tenants past their expiry
// date and enqueues reminder emails for everyone approaching it. Each tenant
// is handled independently so one bad record never aborts the run.

import (
	"context"
	"time"

	"kgwahlawifi/internal/model"
	"kgwahlawifi/internal/notify"
	"kgwahlawifi/internal/repository"

	"github.com/rs/zerolog/log"
)

// reminderHorizon is how far ahead of expiry tenants start receiving reminders.
const reminderHorizon = 3 * 24 * time.Hour

// SweepConfig holds the dependencies of the expiry sweep.
type SweepConfig struct {
	Tenants    repository.TenantRepository
	Dispatcher *Dispatcher
	// Hour is the local hour (0-23) at which the sweep fires each day.
	Hour int
}

// StartExpirySweep launches a background goroutine that runs the sweep once a
// day at the configured local hour. It respects the context for graceful
// shutdown.
func StartExpirySweep(ctx context.Context, cfg SweepConfig) {
	go func() {
		log.Info().Int("hour", cfg.Hour).Msg("expiry_sweep: scheduled daily")
		for {
			timer := time.NewTimer(untilNextRun(time.Now(), cfg.Hour))
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Info().Msg("expiry_sweep: shutting down")
				return
			case <-timer.C:
				expired, notified := RunExpirySweep(ctx, cfg, time.Now())
				log.Info().
					Int("expired", expired).
					Int("reminders", notified).
					Msg("expiry_sweep: run complete")
			}
		}
	}()
}

// untilNextRun computes the duration until the next occurrence of hour:00
// local time, strictly in the future.
func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// RunExpirySweep executes a single sweep pass at the given instant and
// returns how many tenants were expired and how many reminders were enqueued.
// Blocked tenants are excluded at the query level and are never touched.
func RunExpirySweep(ctx context.Context, cfg SweepConfig, now time.Time) (expired, notified int) {
	horizon := now.Add(reminderHorizon)

	tenants, err := cfg.Tenants.ListExpiring(ctx, horizon)
	if err != nil {
		log.Error().Err(err).Msg("expiry_sweep: failed to list expiring tenants")
		return 0, 0
	}
	if len(tenants) == 0 {
		return 0, 0
	}
	log.Info().Int("count", len(tenants)).Msg("expiry_sweep: tenants at or near expiry")

	for i := range tenants {
		t := &tenants[i]

		if !t.ExpiryDate.After(now) {
			// Entitlement is revoked and persisted first; reminder delivery
			// failing must not leave an expired tenant online.
			t.WifiAccess = false
			t.Status = model.TenantInactive
			if err := cfg.Tenants.Update(ctx, t); err != nil {
				log.Error().Err(err).Str("tenant", t.Email).Msg("expiry_sweep: failed to disable tenant")
				continue
			}
			expired++
			log.Info().Str("tenant", t.Email).Msg("expiry_sweep: access disabled for expired tenant")
		}

		if cfg.Dispatcher == nil {
			continue
		}
		subject, body := notify.ExpiryReminder(t, now)
		if err := cfg.Dispatcher.EnqueueEmail(ctx, EmailJobPayload{To: t.Email, Subject: subject, HTML: body}); err != nil {
			log.Error().Err(err).Str("tenant", t.Email).Msg("expiry_sweep: failed to enqueue reminder")
			continue
		}
		notified++
	}
	return expired, notified
}
