package domain

import "time"

type KeyState string

const (
	KeyStateActive  KeyState = "active"
	KeyStateRevoked KeyState = "revoked"
)

// APIKey mirrors the backend's key resource. Secret is populated only in the
// creation response and never retrievable afterwards.
type APIKey struct {
	ID        string     `json:"id"`
	KeyID     string     `json:"keyId"`
	Secret    string     `json:"key,omitempty"`
	Name      string     `json:"name"`
	Scopes    []string   `json:"scopes"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	State     KeyState   `json:"state"`
}

type CreateAPIKeyParams struct {
	Name      string     `json:"name"`
	OrgID     OrgID      `json:"orgId"`
	Scopes    []string   `json:"scopes"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type APIKeyVerification struct {
	OK     bool     `json:"ok"`
	OrgID  OrgID    `json:"orgId,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
}

func (s KeyState) Label() string {
	switch s {
	case KeyStateActive:
		return "Active"
	case KeyStateRevoked:
		return "Revoked"
	default:
		return string(s)
	}
}
