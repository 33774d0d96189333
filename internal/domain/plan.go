package domain

import "fmt"

type PlanInterval string

const (
	IntervalMonth PlanInterval = "month"
	IntervalYear  PlanInterval = "year"
)

type PlanLimits struct {
	APIRequests int64 `json:"api_requests"`
	StorageGB   int64 `json:"storage_gb"`
	BandwidthGB int64 `json:"bandwidth_gb"`
}

// Plan is a catalog entity: defined once below, never mutated at runtime and
// never persisted client-side.
type Plan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       int64        `json:"price"`
	Currency    string       `json:"currency"`
	Interval    PlanInterval `json:"interval"`
	Description string       `json:"description,omitempty"`
	Features    []string     `json:"features"`
	Limits      PlanLimits   `json:"limits"`
	Popular     bool         `json:"popular,omitempty"`
}

func (p Plan) FormatPrice() string {
	return fmt.Sprintf("$%d/%s", p.Price, p.Interval)
}

var catalog = []Plan{
	{
		ID:          "starter",
		Name:        "Starter",
		Price:       29,
		Currency:    "usd",
		Interval:    IntervalMonth,
		Description: "Perfect for small teams and projects",
		Features: []string{
			"10,000 API requests/month",
			"10GB storage",
			"100GB bandwidth",
			"Basic support",
			"Standard uptime (99.5%)",
		},
		Limits: PlanLimits{APIRequests: 10000, StorageGB: 10, BandwidthGB: 100},
	},
	{
		ID:          "professional",
		Name:        "Professional",
		Price:       99,
		Currency:    "usd",
		Interval:    IntervalMonth,
		Description: "For growing businesses with higher demands",
		Features: []string{
			"100,000 API requests/month",
			"50GB storage",
			"500GB bandwidth",
			"Priority support",
			"Enhanced uptime (99.9%)",
			"Advanced analytics",
			"Custom CDN rules",
		},
		Limits:  PlanLimits{APIRequests: 100000, StorageGB: 50, BandwidthGB: 500},
		Popular: true,
	},
	{
		ID:          "enterprise",
		Name:        "Enterprise",
		Price:       299,
		Currency:    "usd",
		Interval:    IntervalMonth,
		Description: "For enterprise-scale applications",
		Features: []string{
			"1,000,000 API requests/month",
			"500GB storage",
			"5TB bandwidth",
			"24/7 dedicated support",
			"Premium uptime (99.99%)",
			"Advanced analytics",
			"Custom CDN rules",
			"White-label options",
			"SLA guarantee",
		},
		Limits: PlanLimits{APIRequests: 1000000, StorageGB: 500, BandwidthGB: 5000},
	},
}

// Catalog returns a copy so callers cannot reorder or mutate the tiers.
func Catalog() []Plan {
	plans := make([]Plan, len(catalog))
	copy(plans, catalog)
	return plans
}

func PlanByID(id string) (Plan, bool) {
	for _, plan := range catalog {
		if plan.ID == id {
			return plan, true
		}
	}

	return Plan{}, false
}

// CheapestPlan is the default selection when no current plan is supplied.
func CheapestPlan() Plan {
	cheapest := catalog[0]
	for _, plan := range catalog[1:] {
		if plan.Price < cheapest.Price {
			cheapest = plan
		}
	}

	return cheapest
}

// CompactCount renders plan limits the way the portal does: 10000 -> "10K",
// 1500 -> "1.5K", 1000000 -> "1M".
func CompactCount(v int64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%gM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%gK", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d", v)
	}
}
