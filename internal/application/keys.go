package application

import (
	"context"
	"fmt"
	"time"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

// KeyService wraps the API-key lifecycle. Revocation goes through the
// Confirmer; the one-time secret can optionally be stashed in the secret
// store before it becomes unrecoverable.
type KeyService struct {
	client  ports.BillingClient
	store   ports.SecretStore
	notify  ports.Notifier
	confirm ports.Confirmer
	session domain.Session
}

func NewKeyService(client ports.BillingClient, store ports.SecretStore, notify ports.Notifier, confirm ports.Confirmer, session domain.Session) *KeyService {
	return &KeyService{
		client:  client,
		store:   store,
		notify:  notify,
		confirm: confirm,
		session: session,
	}
}

func secretRefForKey(org domain.OrgID, keyID string) string {
	return fmt.Sprintf("felora://%s/keys/%s", org, keyID)
}

func (s *KeyService) Create(ctx context.Context, name string, scopes []string, expiresAt *time.Time, saveSecret bool) (domain.APIKey, error) {
	if name == "" {
		return domain.APIKey{}, fmt.Errorf("key name is required")
	}
	if len(scopes) == 0 {
		scopes = []string{"artifacts:read"}
	}

	key, err := s.client.CreateAPIKey(ctx, domain.CreateAPIKeyParams{
		Name:      name,
		OrgID:     s.session.Org,
		Scopes:    scopes,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.notify.Push(ports.NotifyError, "Failed to create API key")
		return domain.APIKey{}, fmt.Errorf("create api key: %w", err)
	}

	if saveSecret && key.Secret != "" {
		ref := secretRefForKey(s.session.Org, key.KeyID)
		if err := s.store.Put(ctx, ref, key.Secret); err != nil {
			// The key exists either way; the caller still sees the secret once.
			s.notify.Push(ports.NotifyError, "API key created but saving the secret failed")
			return key, fmt.Errorf("save key secret: %w", err)
		}
	}

	s.notify.Push(ports.NotifySuccess, "API key created")
	return key, nil
}

func (s *KeyService) List(ctx context.Context) ([]domain.APIKey, error) {
	keys, err := s.client.ListAPIKeys(ctx, s.session.Org)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}

	return keys, nil
}

func (s *KeyService) Verify(ctx context.Context, apiKey string) (domain.APIKeyVerification, error) {
	result, err := s.client.VerifyAPIKey(ctx, apiKey)
	if err != nil {
		return domain.APIKeyVerification{}, fmt.Errorf("verify api key: %w", err)
	}

	return result, nil
}

func (s *KeyService) Revoke(ctx context.Context, keyID string) error {
	ok, err := s.confirm.Confirm(fmt.Sprintf("Revoke API key %s? This cannot be undone.", keyID))
	if err != nil {
		return fmt.Errorf("confirm revocation: %w", err)
	}
	if !ok {
		return ErrAborted
	}

	if err := s.client.RevokeAPIKey(ctx, keyID); err != nil {
		s.notify.Push(ports.NotifyError, "Failed to revoke API key")
		return fmt.Errorf("revoke api key: %w", err)
	}

	// Drop a saved secret for the revoked key if one exists.
	_ = s.store.Delete(ctx, secretRefForKey(s.session.Org, keyID))

	s.notify.Push(ports.NotifySuccess, "API key revoked")
	return nil
}
