package domain

import "math"

type Severity int

const (
	SeverityNominal Severity = iota
	SeverityWarning
	SeverityCritical
)

const (
	warningRatio  = 0.75
	criticalRatio = 0.90
	alertRatio    = 0.80
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	default:
		return "nominal"
	}
}

// Metric is a single usage counter against its plan limit. Current may exceed
// Limit; over-usage is representable and never blocked client-side.
type Metric struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}

// Ratio is uncapped: 1.2 means 120% of the limit.
func (m Metric) Ratio() float64 {
	if m.Limit <= 0 {
		return 0
	}

	return float64(m.Current) / float64(m.Limit)
}

// Percent is the displayed text value and may exceed 100.
func (m Metric) Percent() int {
	return int(math.Round(m.Ratio() * 100))
}

// BarPercent caps the visual progress-bar width at 100.
func (m Metric) BarPercent() int {
	if p := m.Percent(); p < 100 {
		return p
	}

	return 100
}

func (m Metric) Severity() Severity {
	switch r := m.Ratio(); {
	case r >= criticalRatio:
		return SeverityCritical
	case r >= warningRatio:
		return SeverityWarning
	default:
		return SeverityNominal
	}
}

type UsageMetrics struct {
	APIRequests Metric `json:"api_requests"`
	StorageGB   Metric `json:"storage_gb"`
	BandwidthGB Metric `json:"bandwidth_gb"`
}

// ShowAlert reports whether the aggregate banner is visible: any metric's
// uncapped ratio at or above 0.8.
func (u UsageMetrics) ShowAlert() bool {
	for _, m := range []Metric{u.APIRequests, u.StorageGB, u.BandwidthGB} {
		if m.Ratio() >= alertRatio {
			return true
		}
	}

	return false
}
