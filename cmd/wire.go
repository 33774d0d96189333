package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/felora-io/felora-cli/internal/adapters/api"
	filestore "github.com/felora-io/felora-cli/internal/adapters/secrets/file"
	tomlsession "github.com/felora-io/felora-cli/internal/adapters/session/toml"
	stripetokenizer "github.com/felora-io/felora-cli/internal/adapters/tokenizer/stripe"
	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

const defaultAPIBase = "https://api.felora.io"

type app struct {
	sessions   ports.SessionStore
	secrets    ports.SecretStore
	notifier   *application.NotificationQueue
	logger     *zap.Logger
	httpClient *http.Client
	stripeKey  string
	now        func() time.Time
}

func wireApp() (*app, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	sessions, err := tomlsession.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	logger := zap.NewNop()
	if os.Getenv("FLR_DEBUG") != "" {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("wire debug logger: %w", err)
		}
	}

	return &app{
		sessions:   sessions,
		secrets:    filestore.NewStore(filepath.Join(homeDir, ".felora", "secrets")),
		notifier:   application.NewNotificationQueue(ports.SystemClock{}),
		logger:     logger,
		httpClient: http.DefaultClient,
		stripeKey:  envOrDefault("FELORA_STRIPE_KEY", ""),
		now:        time.Now,
	}, nil
}

// loadSession reads the saved session and applies environment overrides.
// Overrides are per-invocation and never written back to the session file.
func (a *app) loadSession(ctx context.Context) (domain.Session, error) {
	session, err := a.sessions.Load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	if v := os.Getenv("FELORA_API_BASE"); v != "" {
		session.APIBase = v
	}
	if v := os.Getenv("FELORA_ORG_ID"); v != "" {
		session.Org = domain.OrgID(v)
	}
	if v := os.Getenv("FELORA_DEMO"); v != "" {
		session.Demo = v == "1" || strings.EqualFold(v, "true")
	}

	if session.Demo && session.Org == "" {
		session.Org = "org_demo"
	}

	return session, nil
}

// billingClient resolves the backend for this invocation: the canned demo
// dataset when the session carries the explicit demo flag, otherwise the real
// API client authenticated with the stored portal token.
func (a *app) billingClient(ctx context.Context) (ports.BillingClient, domain.Session, error) {
	session, err := a.loadSession(ctx)
	if err != nil {
		return nil, domain.Session{}, err
	}

	if session.Demo {
		return api.NewDemoClient(ports.SystemClock{}), session, nil
	}

	if !session.LoggedIn() {
		return nil, domain.Session{}, fmt.Errorf("%w: run \"flr login\" first", domain.ErrNotLoggedIn)
	}

	token, err := a.secrets.Get(ctx, session.TokenRef)
	if err != nil {
		return nil, domain.Session{}, fmt.Errorf("load portal token: %w", err)
	}

	base := session.APIBase
	if base == "" {
		base = defaultAPIBase
	}

	return api.NewClient(base, a.httpClient, token, a.logger), session, nil
}

func (a *app) cardTokenizer(session domain.Session) ports.CardTokenizer {
	if session.Demo {
		return api.NewDemoTokenizer()
	}

	return stripetokenizer.New(a.stripeKey)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
