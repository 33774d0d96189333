package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

// DemoClient serves a canned dataset entirely in memory. It exists behind an
// explicit demo flag; real fetch failures are never silently substituted
// with this data.
type DemoClient struct {
	clock ports.Clock

	mu       sync.Mutex
	keys     []domain.APIKey
	methods  []domain.PaymentMethod
	sub      *domain.Subscription
	invoices []domain.Invoice
	usage    domain.UsageMetrics
	nextID   int
}

var _ ports.BillingClient = (*DemoClient)(nil)

func NewDemoClient(clock ports.Clock) *DemoClient {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	now := clock.Now()
	starter, _ := domain.PlanByID("starter")

	day := 24 * time.Hour

	return &DemoClient{
		clock: clock,
		keys: []domain.APIKey{
			{
				ID:        "1",
				KeyID:     "flr_live_a1b2c3d4",
				Name:      "Production API Key",
				Scopes:    []string{"artifacts:read"},
				CreatedAt: now.Add(-45 * day),
				State:     domain.KeyStateActive,
			},
			{
				ID:        "2",
				KeyID:     "flr_live_e5f6g7h8",
				Name:      "Development Key",
				Scopes:    []string{"artifacts:read", "artifacts:write"},
				CreatedAt: now.Add(-50 * day),
				State:     domain.KeyStateActive,
			},
		},
		methods: []domain.PaymentMethod{
			{
				ID:        "pm_1",
				Type:      domain.PaymentMethodCard,
				Card:      &domain.Card{Brand: domain.BrandVisa, Last4: "4242", ExpMonth: 12, ExpYear: 2025},
				IsDefault: true,
			},
			{
				ID:   "pm_2",
				Type: domain.PaymentMethodCard,
				Card: &domain.Card{Brand: domain.BrandMastercard, Last4: "5555", ExpMonth: 8, ExpYear: 2026},
			},
		},
		sub: &domain.Subscription{
			ID:                 "sub_demo",
			Status:             domain.SubscriptionActive,
			Plan:               starter,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.Add(30 * day),
		},
		invoices: []domain.Invoice{
			{
				ID: "in_1", Number: "FLR-0001", Status: domain.InvoicePaid,
				AmountPaid: 2900, Currency: "usd",
				Created: now.Add(-30 * day), DueDate: now.Add(-23 * day),
			},
			{
				ID: "in_2", Number: "FLR-0002", Status: domain.InvoicePaid,
				AmountPaid: 2900, Currency: "usd",
				Created: now.Add(-60 * day), DueDate: now.Add(-53 * day),
			},
			{
				ID: "in_3", Number: "FLR-0003", Status: domain.InvoiceOpen,
				AmountDue: 2900, Currency: "usd",
				Created: now, DueDate: now.Add(7 * day),
			},
		},
		usage: domain.UsageMetrics{
			APIRequests: domain.Metric{Current: 7250, Limit: 10000},
			StorageGB:   domain.Metric{Current: 4, Limit: 10},
			BandwidthGB: domain.Metric{Current: 45, Limit: 100},
		},
		nextID: 3,
	}
}

func (d *DemoClient) CreateAPIKey(_ context.Context, params domain.CreateAPIKeyParams) (domain.APIKey, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++

	key := domain.APIKey{
		ID:        fmt.Sprintf("%d", id),
		KeyID:     fmt.Sprintf("flr_live_demo%04d", id),
		Secret:    fmt.Sprintf("flr_secret_demo%04d", id),
		Name:      params.Name,
		Scopes:    params.Scopes,
		CreatedAt: d.clock.Now(),
		ExpiresAt: params.ExpiresAt,
		State:     domain.KeyStateActive,
	}

	stored := key
	stored.Secret = ""
	d.keys = append([]domain.APIKey{stored}, d.keys...)

	return key, nil
}

func (d *DemoClient) VerifyAPIKey(_ context.Context, apiKey string) (domain.APIKeyVerification, error) {
	if apiKey == "" {
		return domain.APIKeyVerification{}, nil
	}

	return domain.APIKeyVerification{OK: true, OrgID: "demo-org", Scopes: []string{"artifacts:read"}}, nil
}

func (d *DemoClient) ListAPIKeys(_ context.Context, _ domain.OrgID) ([]domain.APIKey, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]domain.APIKey, len(d.keys))
	copy(keys, d.keys)
	return keys, nil
}

func (d *DemoClient) RevokeAPIKey(_ context.Context, keyID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.keys {
		if d.keys[i].KeyID == keyID || d.keys[i].ID == keyID {
			d.keys[i].State = domain.KeyStateRevoked
			return nil
		}
	}

	return &ports.RemoteError{Op: "revoke api key", Status: http.StatusNotFound, Message: "key not found"}
}

func (d *DemoClient) GetBillingInfo(_ context.Context, _ domain.OrgID) (domain.BillingInfo, error) {
	return domain.BillingInfo{
		Name:         "Demo Org",
		BillingEmail: "demo@felora.io",
		Country:      "US",
	}, nil
}

func (d *DemoClient) UpdateBillingInfo(_ context.Context, _ domain.OrgID, info domain.BillingInfo) (domain.BillingInfo, error) {
	return info, nil
}

func (d *DemoClient) ListPaymentMethods(_ context.Context, _ domain.OrgID) ([]domain.PaymentMethod, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	methods := make([]domain.PaymentMethod, len(d.methods))
	copy(methods, d.methods)
	return methods, nil
}

func (d *DemoClient) AddPaymentMethod(_ context.Context, _ domain.OrgID, paymentMethodID string) (domain.PaymentMethod, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	method := domain.PaymentMethod{
		ID:   paymentMethodID,
		Type: domain.PaymentMethodCard,
		Card: &domain.Card{Brand: domain.BrandVisa, Last4: "4242", ExpMonth: 12, ExpYear: 2030},
	}
	d.methods = append(d.methods, method)

	return method, nil
}

func (d *DemoClient) RemovePaymentMethod(_ context.Context, _ domain.OrgID, paymentMethodID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.methods {
		if d.methods[i].ID == paymentMethodID {
			d.methods = append(d.methods[:i], d.methods[i+1:]...)
			return nil
		}
	}

	return &ports.RemoteError{Op: "remove payment method", Status: http.StatusNotFound, Message: "payment method not found"}
}

func (d *DemoClient) SetDefaultPaymentMethod(_ context.Context, _ domain.OrgID, paymentMethodID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := false
	for i := range d.methods {
		if d.methods[i].ID == paymentMethodID {
			found = true
			break
		}
	}
	if !found {
		return &ports.RemoteError{Op: "set default payment method", Status: http.StatusNotFound, Message: "payment method not found"}
	}

	for i := range d.methods {
		d.methods[i].IsDefault = d.methods[i].ID == paymentMethodID
	}

	return nil
}

func (d *DemoClient) GetSubscription(_ context.Context, _ domain.OrgID) (domain.Subscription, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sub == nil {
		return domain.Subscription{}, &ports.RemoteError{Op: "get subscription", Status: http.StatusNotFound, Message: "no subscription"}
	}

	return *d.sub, nil
}

func (d *DemoClient) UpdateSubscription(_ context.Context, _ domain.OrgID, planID string) (domain.Subscription, error) {
	plan, ok := domain.PlanByID(planID)
	if !ok {
		return domain.Subscription{}, &ports.RemoteError{Op: "update subscription", Status: http.StatusUnprocessableEntity, Message: "unknown plan"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	if d.sub == nil {
		d.sub = &domain.Subscription{ID: "sub_demo", Status: domain.SubscriptionActive}
	}
	d.sub.Plan = plan
	d.sub.CurrentPeriodStart = now
	d.sub.CurrentPeriodEnd = now.Add(30 * 24 * time.Hour)
	d.sub.CancelAtPeriodEnd = false

	return *d.sub, nil
}

func (d *DemoClient) CancelSubscription(_ context.Context, _ domain.OrgID, atPeriodEnd bool) (domain.Subscription, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sub == nil {
		return domain.Subscription{}, &ports.RemoteError{Op: "cancel subscription", Status: http.StatusNotFound, Message: "no subscription"}
	}

	d.sub.CancelAtPeriodEnd = atPeriodEnd
	return *d.sub, nil
}

func (d *DemoClient) ListInvoices(_ context.Context, _ domain.OrgID) ([]domain.Invoice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	invoices := make([]domain.Invoice, len(d.invoices))
	copy(invoices, d.invoices)
	return invoices, nil
}

func (d *DemoClient) GetUsage(_ context.Context, _ domain.OrgID) (domain.UsageMetrics, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.usage, nil
}

func (d *DemoClient) CreateSetupIntent(_ context.Context, _ domain.OrgID) (domain.SetupIntent, error) {
	return domain.SetupIntent{ClientSecret: "seti_demo_secret_demo"}, nil
}

// DemoTokenizer stands in for the real card tokenizer in demo mode. Cards
// ending in 0002 are declined so the failure path can be exercised offline.
type DemoTokenizer struct{}

var _ ports.CardTokenizer = (*DemoTokenizer)(nil)

func NewDemoTokenizer() *DemoTokenizer {
	return &DemoTokenizer{}
}

func (t *DemoTokenizer) Confirm(_ context.Context, clientSecret string, card domain.CardDetails, _ domain.BillingContact) (string, error) {
	if clientSecret == "" {
		return "", &ports.ProviderError{Code: "setup_intent_invalid", Message: "setup intent has no client secret"}
	}

	if strings.HasSuffix(card.Number, "0002") {
		return "", &ports.ProviderError{Code: "card_declined", Message: "card declined"}
	}

	last4 := card.Number
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}

	return "pm_demo_" + last4, nil
}
