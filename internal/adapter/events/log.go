// Package events delivers committed ledger events to the outside world.
package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

// LogPublisher writes every event to a structured logger.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish implements port.EventPublisher. It never fails.
func (p *LogPublisher) Publish(ctx context.Context, events ...domain.Event) error {
	for _, e := range events {
		p.log.InfoContext(ctx, "ledger event",
			slog.Uint64("seq", e.Seq),
			slog.String("kind", string(e.Kind)),
			slog.Uint64("campaign_id", e.CampaignID),
			slog.String("account", e.Account.String()),
			slog.Uint64("amount", e.Amount),
		)
	}
	return nil
}

// Fanout publishes to several publishers. Every publisher receives the events
// even when an earlier one fails; the failures are joined.
type Fanout []port.EventPublisher

// Publish implements port.EventPublisher.
func (f Fanout) Publish(ctx context.Context, events ...domain.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
