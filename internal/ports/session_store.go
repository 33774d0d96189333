package ports

import (
	"context"

	"github.com/felora-io/felora-cli/internal/domain"
)

// SessionStore persists the portal session context between invocations. Load
// returns a zero session (not an error) when none has been saved yet.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
