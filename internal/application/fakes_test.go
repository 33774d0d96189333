package application

import (
	"context"
	"sync"
	"time"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

// fakeBillingClient lets each test override only the calls it cares about.
// Unset calls succeed with zero values; every call is counted.
type fakeBillingClient struct {
	mu    sync.Mutex
	calls map[string]int

	createAPIKeyFn      func(domain.CreateAPIKeyParams) (domain.APIKey, error)
	verifyAPIKeyFn      func(string) (domain.APIKeyVerification, error)
	listAPIKeysFn       func() ([]domain.APIKey, error)
	revokeAPIKeyFn      func(string) error
	getBillingInfoFn    func() (domain.BillingInfo, error)
	updateBillingInfoFn func(domain.BillingInfo) (domain.BillingInfo, error)
	listMethodsFn       func() ([]domain.PaymentMethod, error)
	addMethodFn         func(string) (domain.PaymentMethod, error)
	removeMethodFn      func(string) error
	setDefaultFn        func(string) error
	getSubscriptionFn   func() (domain.Subscription, error)
	updateSubFn         func(string) (domain.Subscription, error)
	cancelSubFn         func(bool) (domain.Subscription, error)
	listInvoicesFn      func() ([]domain.Invoice, error)
	getUsageFn          func() (domain.UsageMetrics, error)
	createSetupFn       func() (domain.SetupIntent, error)
}

var _ ports.BillingClient = (*fakeBillingClient)(nil)

func (f *fakeBillingClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeBillingClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBillingClient) CreateAPIKey(_ context.Context, params domain.CreateAPIKeyParams) (domain.APIKey, error) {
	f.record("CreateAPIKey")
	if f.createAPIKeyFn != nil {
		return f.createAPIKeyFn(params)
	}
	return domain.APIKey{}, nil
}

func (f *fakeBillingClient) VerifyAPIKey(_ context.Context, apiKey string) (domain.APIKeyVerification, error) {
	f.record("VerifyAPIKey")
	if f.verifyAPIKeyFn != nil {
		return f.verifyAPIKeyFn(apiKey)
	}
	return domain.APIKeyVerification{}, nil
}

func (f *fakeBillingClient) ListAPIKeys(_ context.Context, _ domain.OrgID) ([]domain.APIKey, error) {
	f.record("ListAPIKeys")
	if f.listAPIKeysFn != nil {
		return f.listAPIKeysFn()
	}
	return nil, nil
}

func (f *fakeBillingClient) RevokeAPIKey(_ context.Context, keyID string) error {
	f.record("RevokeAPIKey")
	if f.revokeAPIKeyFn != nil {
		return f.revokeAPIKeyFn(keyID)
	}
	return nil
}

func (f *fakeBillingClient) GetBillingInfo(_ context.Context, _ domain.OrgID) (domain.BillingInfo, error) {
	f.record("GetBillingInfo")
	if f.getBillingInfoFn != nil {
		return f.getBillingInfoFn()
	}
	return domain.BillingInfo{}, nil
}

func (f *fakeBillingClient) UpdateBillingInfo(_ context.Context, _ domain.OrgID, info domain.BillingInfo) (domain.BillingInfo, error) {
	f.record("UpdateBillingInfo")
	if f.updateBillingInfoFn != nil {
		return f.updateBillingInfoFn(info)
	}
	return info, nil
}

func (f *fakeBillingClient) ListPaymentMethods(_ context.Context, _ domain.OrgID) ([]domain.PaymentMethod, error) {
	f.record("ListPaymentMethods")
	if f.listMethodsFn != nil {
		return f.listMethodsFn()
	}
	return nil, nil
}

func (f *fakeBillingClient) AddPaymentMethod(_ context.Context, _ domain.OrgID, paymentMethodID string) (domain.PaymentMethod, error) {
	f.record("AddPaymentMethod")
	if f.addMethodFn != nil {
		return f.addMethodFn(paymentMethodID)
	}
	return domain.PaymentMethod{ID: paymentMethodID}, nil
}

func (f *fakeBillingClient) RemovePaymentMethod(_ context.Context, _ domain.OrgID, paymentMethodID string) error {
	f.record("RemovePaymentMethod")
	if f.removeMethodFn != nil {
		return f.removeMethodFn(paymentMethodID)
	}
	return nil
}

func (f *fakeBillingClient) SetDefaultPaymentMethod(_ context.Context, _ domain.OrgID, paymentMethodID string) error {
	f.record("SetDefaultPaymentMethod")
	if f.setDefaultFn != nil {
		return f.setDefaultFn(paymentMethodID)
	}
	return nil
}

func (f *fakeBillingClient) GetSubscription(_ context.Context, _ domain.OrgID) (domain.Subscription, error) {
	f.record("GetSubscription")
	if f.getSubscriptionFn != nil {
		return f.getSubscriptionFn()
	}
	return domain.Subscription{}, nil
}

func (f *fakeBillingClient) UpdateSubscription(_ context.Context, _ domain.OrgID, planID string) (domain.Subscription, error) {
	f.record("UpdateSubscription")
	if f.updateSubFn != nil {
		return f.updateSubFn(planID)
	}
	plan, _ := domain.PlanByID(planID)
	return domain.Subscription{Plan: plan, Status: domain.SubscriptionActive}, nil
}

func (f *fakeBillingClient) CancelSubscription(_ context.Context, _ domain.OrgID, atPeriodEnd bool) (domain.Subscription, error) {
	f.record("CancelSubscription")
	if f.cancelSubFn != nil {
		return f.cancelSubFn(atPeriodEnd)
	}
	return domain.Subscription{CancelAtPeriodEnd: atPeriodEnd}, nil
}

func (f *fakeBillingClient) ListInvoices(_ context.Context, _ domain.OrgID) ([]domain.Invoice, error) {
	f.record("ListInvoices")
	if f.listInvoicesFn != nil {
		return f.listInvoicesFn()
	}
	return nil, nil
}

func (f *fakeBillingClient) GetUsage(_ context.Context, _ domain.OrgID) (domain.UsageMetrics, error) {
	f.record("GetUsage")
	if f.getUsageFn != nil {
		return f.getUsageFn()
	}
	return domain.UsageMetrics{}, nil
}

func (f *fakeBillingClient) CreateSetupIntent(_ context.Context, _ domain.OrgID) (domain.SetupIntent, error) {
	f.record("CreateSetupIntent")
	if f.createSetupFn != nil {
		return f.createSetupFn()
	}
	return domain.SetupIntent{ClientSecret: "seti_test_secret_abc"}, nil
}

type fakeTokenizer struct {
	confirmFn func(clientSecret string, card domain.CardDetails, contact domain.BillingContact) (string, error)
	calls     int
}

func (f *fakeTokenizer) Confirm(_ context.Context, clientSecret string, card domain.CardDetails, contact domain.BillingContact) (string, error) {
	f.calls++
	if f.confirmFn != nil {
		return f.confirmFn(clientSecret, card, contact)
	}
	return "pm_test_123", nil
}

type recordedNotification struct {
	level   ports.NotificationLevel
	message string
}

type recordingNotifier struct {
	entries []recordedNotification
}

func (r *recordingNotifier) Push(level ports.NotificationLevel, message string) {
	r.entries = append(r.entries, recordedNotification{level: level, message: message})
}

func (r *recordingNotifier) last() recordedNotification {
	if len(r.entries) == 0 {
		return recordedNotification{}
	}
	return r.entries[len(r.entries)-1]
}

type fakeConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (f *fakeConfirmer) Confirm(prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testSession() domain.Session {
	return domain.Session{
		Org:      "org_test",
		Email:    "dev@example.com",
		TokenRef: "felora://org_test/portal-token",
	}
}

func validContact() domain.BillingContact {
	return domain.BillingContact{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Line1:      "1 Analytical Way",
		City:       "London",
		State:      "LDN",
		PostalCode: "EC1A",
		Country:    "GB",
	}
}

func validCard() domain.CardDetails {
	return domain.CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}
}
