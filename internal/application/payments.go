package application

import (
	"context"
	"fmt"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

// PaymentMethodService manages the stored payment methods outside the
// enrollment workflow: listing, removal, default reassignment.
type PaymentMethodService struct {
	client   ports.BillingClient
	notifier ports.Notifier
	confirm  ports.Confirmer
	session  domain.Session
}

func NewPaymentMethodService(client ports.BillingClient, notifier ports.Notifier, confirm ports.Confirmer, session domain.Session) *PaymentMethodService {
	return &PaymentMethodService{
		client:   client,
		notifier: notifier,
		confirm:  confirm,
		session:  session,
	}
}

func (s *PaymentMethodService) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.client.ListPaymentMethods(ctx, s.session.Org)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}

	return methods, nil
}

func (s *PaymentMethodService) Remove(ctx context.Context, paymentMethodID string) error {
	ok, err := s.confirm.Confirm(fmt.Sprintf("Remove payment method %s?", paymentMethodID))
	if err != nil {
		return fmt.Errorf("confirm removal: %w", err)
	}
	if !ok {
		return ErrAborted
	}

	if err := s.client.RemovePaymentMethod(ctx, s.session.Org, paymentMethodID); err != nil {
		s.notifier.Push(ports.NotifyError, "Failed to remove payment method")
		return fmt.Errorf("remove payment method: %w", err)
	}

	s.notifier.Push(ports.NotifySuccess, "Payment method removed successfully")
	return nil
}

// SetDefault reassigns the single default method and returns the refreshed
// list, in which exactly one entry carries is_default.
func (s *PaymentMethodService) SetDefault(ctx context.Context, paymentMethodID string) ([]domain.PaymentMethod, error) {
	if err := s.client.SetDefaultPaymentMethod(ctx, s.session.Org, paymentMethodID); err != nil {
		s.notifier.Push(ports.NotifyError, "Failed to update default payment method")
		return nil, fmt.Errorf("set default payment method: %w", err)
	}

	s.notifier.Push(ports.NotifySuccess, "Default payment method updated")

	methods, err := s.client.ListPaymentMethods(ctx, s.session.Org)
	if err != nil {
		return nil, fmt.Errorf("refresh payment methods: %w", err)
	}

	return methods, nil
}
