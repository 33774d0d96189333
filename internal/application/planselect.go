package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

var ErrSamePlan = errors.New("selected plan is already the current plan")

// PlanSelectionWorkflow tracks a locally selected candidate plan distinct
// from the currently active one. Selecting is a pure local state change; only
// Submit talks to the backend.
type PlanSelectionWorkflow struct {
	client   ports.BillingClient
	notifier ports.Notifier
	session  domain.Session

	currentPlanID  string
	selectedPlanID string
	closed         bool
	onRefresh      func()
}

func NewPlanSelectionWorkflow(client ports.BillingClient, notifier ports.Notifier, session domain.Session, currentPlanID string, onRefresh func()) *PlanSelectionWorkflow {
	selected := currentPlanID
	if _, ok := domain.PlanByID(selected); !ok {
		selected = domain.CheapestPlan().ID
	}

	return &PlanSelectionWorkflow{
		client:         client,
		notifier:       notifier,
		session:        session,
		currentPlanID:  currentPlanID,
		selectedPlanID: selected,
		onRefresh:      onRefresh,
	}
}

func (w *PlanSelectionWorkflow) SelectedPlanID() string {
	return w.selectedPlanID
}

func (w *PlanSelectionWorkflow) Closed() bool {
	return w.closed
}

func (w *PlanSelectionWorkflow) Select(planID string) error {
	if _, ok := domain.PlanByID(planID); !ok {
		return fmt.Errorf("%w: %q", domain.ErrPlanNotFound, planID)
	}

	w.selectedPlanID = planID
	return nil
}

// CanSubmit is false exactly when the selection equals the current plan.
func (w *PlanSelectionWorkflow) CanSubmit() bool {
	return w.selectedPlanID != w.currentPlanID
}

// ChangeSummary describes the pending switch. Proration text is descriptive
// only; the backend owns the actual amounts.
func (w *PlanSelectionWorkflow) ChangeSummary() (string, bool) {
	if !w.CanSubmit() {
		return "", false
	}

	selected, ok := domain.PlanByID(w.selectedPlanID)
	if !ok {
		return "", false
	}

	from := "your current plan"
	if current, ok := domain.PlanByID(w.currentPlanID); ok {
		from = fmt.Sprintf("%s (%s)", current.Name, current.FormatPrice())
	}

	summary := fmt.Sprintf(
		"You're switching from %s to %s (%s). The change takes effect immediately and you'll be prorated for the difference.",
		from, selected.Name, selected.FormatPrice(),
	)

	return summary, true
}

// Submit switches the subscription to the selected plan. On failure the
// workflow stays open with the selection intact.
func (w *PlanSelectionWorkflow) Submit(ctx context.Context) (domain.Subscription, error) {
	if !w.CanSubmit() {
		return domain.Subscription{}, ErrSamePlan
	}

	sub, err := w.client.UpdateSubscription(ctx, w.session.Org, w.selectedPlanID)
	if err != nil {
		w.notifier.Push(ports.NotifyError, "Failed to update subscription")
		return domain.Subscription{}, fmt.Errorf("update subscription: %w", err)
	}

	w.notifier.Push(ports.NotifySuccess, "Subscription updated successfully!")
	w.currentPlanID = w.selectedPlanID
	w.closed = true
	if w.onRefresh != nil {
		w.onRefresh()
	}

	return sub, nil
}
