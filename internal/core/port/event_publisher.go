package port

import (
	"context"
	"time"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// EventPublisher delivers committed ledger events to subscribers. It is only
// called after the transaction that produced the events has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// Clock supplies the ledger's notion of the current time.
type Clock interface {
	Now() time.Time
}
