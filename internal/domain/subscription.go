package domain

import (
	"strings"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionTrialing   SubscriptionStatus = "trialing"
)

// Label capitalizes the status for badges: "past_due" -> "Past due".
func (s SubscriptionStatus) Label() string {
	text := strings.ReplaceAll(string(s), "_", " ")
	if text == "" {
		return ""
	}

	return strings.ToUpper(text[:1]) + text[1:]
}

type Subscription struct {
	ID                 string             `json:"id"`
	Status             SubscriptionStatus `json:"status"`
	Plan               Plan               `json:"plan"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
}

// EndingSoon reports whether renewal is no longer scheduled and the ending
// notice should be shown.
func (s Subscription) EndingSoon() bool {
	return s.CancelAtPeriodEnd
}

func (s Subscription) NextBilling() (time.Time, bool) {
	if s.CancelAtPeriodEnd {
		return time.Time{}, false
	}

	return s.CurrentPeriodEnd, true
}
