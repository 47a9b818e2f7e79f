package services

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SessionPurger is implemented by store.SessionStore.
type SessionPurger interface {
	PurgeExpired() (int, error)
}

// StartScheduler runs housekeeping in the background: expired sessions are
// purged hourly and the public content cache is refreshed every ten minutes.
// Stop the returned cron to end it.
func StartScheduler(ctx context.Context, sessions SessionPurger, content *PublicContent) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() { PurgeSessions(sessions) }); err != nil {
		return nil, err
	}
	if content != nil {
		if _, err := c.AddFunc("@every 10m", func() { content.Warm(ctx) }); err != nil {
			return nil, err
		}
	}

	c.Start()
	slog.Info("Scheduler started", "jobs", len(c.Entries()))
	return c, nil
}

func PurgeSessions(sessions SessionPurger) {
	n, err := sessions.PurgeExpired()
	if err != nil {
		slog.Error("Failed to purge expired sessions", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Purged expired sessions", "count", n)
	}
}
