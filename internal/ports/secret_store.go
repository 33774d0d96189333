package ports

import "context"

// SecretStore holds values that never belong in the session file: the portal
// auth token and any API-key secrets the user chose to save at creation time.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
