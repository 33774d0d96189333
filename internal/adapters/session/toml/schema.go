package toml

import (
	"fmt"

	"github.com/felora-io/felora-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	OrgID    string `toml:"org_id"`
	Email    string `toml:"email,omitempty"`
	APIBase  string `toml:"api_base,omitempty"`
	TokenRef string `toml:"token_ref,omitempty"`
	Demo     bool   `toml:"demo,omitempty"`
}

func toSchema(session domain.Session) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Session: sessionSchema{
			OrgID:    string(session.Org),
			Email:    session.Email,
			APIBase:  session.APIBase,
			TokenRef: session.TokenRef,
			Demo:     session.Demo,
		},
	}
}

func fromSchema(file fileSchema) domain.Session {
	return domain.Session{
		Org:      domain.OrgID(file.Session.OrgID),
		Email:    file.Session.Email,
		APIBase:  file.Session.APIBase,
		TokenRef: file.Session.TokenRef,
		Demo:     file.Session.Demo,
	}
}
