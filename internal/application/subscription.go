package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

var ErrAborted = errors.New("aborted")

// SubscriptionService covers the subscription operations outside plan
// selection: fetching the summary and the separate cancellation flow.
type SubscriptionService struct {
	client   ports.BillingClient
	notifier ports.Notifier
	confirm  ports.Confirmer
	session  domain.Session
}

func NewSubscriptionService(client ports.BillingClient, notifier ports.Notifier, confirm ports.Confirmer, session domain.Session) *SubscriptionService {
	return &SubscriptionService{
		client:   client,
		notifier: notifier,
		confirm:  confirm,
		session:  session,
	}
}

func (s *SubscriptionService) Get(ctx context.Context) (domain.Subscription, error) {
	sub, err := s.client.GetSubscription(ctx, s.session.Org)
	if err != nil {
		var remoteErr *ports.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.NotFound() {
			return domain.Subscription{}, domain.ErrNoSubscription
		}
		return domain.Subscription{}, fmt.Errorf("get subscription: %w", err)
	}

	return sub, nil
}

// Cancel flips cancel_at_period_end after confirmation. The backend owns the
// status transition; the returned subscription reflects it.
func (s *SubscriptionService) Cancel(ctx context.Context) (domain.Subscription, error) {
	ok, err := s.confirm.Confirm("Cancel subscription at the end of the current period?")
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("confirm cancellation: %w", err)
	}
	if !ok {
		return domain.Subscription{}, ErrAborted
	}

	sub, err := s.client.CancelSubscription(ctx, s.session.Org, true)
	if err != nil {
		s.notifier.Push(ports.NotifyError, "Failed to cancel subscription")
		return domain.Subscription{}, fmt.Errorf("cancel subscription: %w", err)
	}

	s.notifier.Push(ports.NotifySuccess, "Subscription will be canceled at the end of the current period")
	return sub, nil
}
