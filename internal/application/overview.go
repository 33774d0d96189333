package application

import (
	"context"
	"errors"
	"sync"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

// Overview is one snapshot of the billing dashboard. Each section carries its
// own error so a failure in one fetch never blocks the others from
// rendering. A nil Subscription with a nil error means the org has none yet.
type Overview struct {
	Subscription    *domain.Subscription
	SubscriptionErr error

	PaymentMethods    []domain.PaymentMethod
	PaymentMethodsErr error

	Invoices    []domain.Invoice
	InvoicesErr error

	Usage    *domain.UsageMetrics
	UsageErr error
}

// OverviewService aggregates the four billing fetches. The refresh trigger is
// just a counter another workflow bumps to request a reload; it carries no
// payload.
type OverviewService struct {
	client  ports.BillingClient
	session domain.Session

	mu      sync.Mutex
	refresh int
}

func NewOverviewService(client ports.BillingClient, session domain.Session) *OverviewService {
	return &OverviewService{client: client, session: session}
}

// RequestRefresh bumps the trigger. Passed as the completion callback into
// the enrollment and plan-selection workflows.
func (s *OverviewService) RequestRefresh() {
	s.mu.Lock()
	s.refresh++
	s.mu.Unlock()
}

func (s *OverviewService) RefreshTrigger() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// Load runs the four fetches concurrently and waits for all of them. No
// ordering is guaranteed; partial results are the normal case on error.
func (s *OverviewService) Load(ctx context.Context) Overview {
	var (
		wg sync.WaitGroup
		ov Overview
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		sub, err := s.client.GetSubscription(ctx, s.session.Org)
		if err != nil {
			var remoteErr *ports.RemoteError
			if errors.As(err, &remoteErr) && remoteErr.NotFound() {
				return
			}
			ov.SubscriptionErr = err
			return
		}
		ov.Subscription = &sub
	}()

	go func() {
		defer wg.Done()
		methods, err := s.client.ListPaymentMethods(ctx, s.session.Org)
		if err != nil {
			ov.PaymentMethodsErr = err
			return
		}
		ov.PaymentMethods = methods
	}()

	go func() {
		defer wg.Done()
		invoices, err := s.client.ListInvoices(ctx, s.session.Org)
		if err != nil {
			ov.InvoicesErr = err
			return
		}
		ov.Invoices = invoices
	}()

	go func() {
		defer wg.Done()
		usage, err := s.client.GetUsage(ctx, s.session.Org)
		if err != nil {
			ov.UsageErr = err
			return
		}
		ov.Usage = &usage
	}()

	wg.Wait()

	return ov
}
