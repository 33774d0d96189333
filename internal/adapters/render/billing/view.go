package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
	Org domain.OrgID
}

const barWidth = 24

func renderOverview(ov application.Overview, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Felora Billing Overview"),
		s.header.Render(fmt.Sprintf("org: %s", opts.Org)),
	}

	lines = append(lines, s.section.Render(renderSubscription(ov, s)))
	lines = append(lines, s.section.Render(renderUsageSection(ov, s)))
	lines = append(lines, s.section.Render(renderPaymentMethods(ov, s)))
	lines = append(lines, s.section.Render(renderInvoices(ov, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSubscription(ov application.Overview, s styles) string {
	parts := []string{s.title.Render("Current Plan")}

	switch {
	case ov.SubscriptionErr != nil:
		parts = append(parts, s.warning.Render("failed to load subscription: "+ov.SubscriptionErr.Error()))
	case ov.Subscription == nil:
		parts = append(parts, s.empty.Render("No active subscription. Run `flr plan select` to choose one."))
	default:
		sub := *ov.Subscription
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.detail.Render(sub.Plan.Name),
			" ",
			s.badge.Render("["+sub.Status.Label()+"]"),
			" ",
			s.faint.Render(sub.Plan.FormatPrice()),
		))
		parts = append(parts, s.faint.Render(fmt.Sprintf(
			"period: %s – %s",
			sub.CurrentPeriodStart.Format("Jan 2, 2006"),
			sub.CurrentPeriodEnd.Format("Jan 2, 2006"),
		)))

		if next, ok := sub.NextBilling(); ok {
			parts = append(parts, s.faint.Render("next billing: "+next.Format("Jan 2, 2006")))
		} else {
			parts = append(parts, s.faint.Render("next billing: not scheduled"))
		}

		if sub.EndingSoon() {
			parts = append(parts, s.warning.Render(fmt.Sprintf(
				"Subscription ending: your subscription will end on %s",
				sub.CurrentPeriodEnd.Format("Jan 2, 2006"),
			)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderUsageSection(ov application.Overview, s styles) string {
	parts := []string{s.title.Render("Usage")}

	switch {
	case ov.UsageErr != nil:
		parts = append(parts, s.warning.Render("failed to load usage: "+ov.UsageErr.Error()))
	case ov.Usage == nil:
		parts = append(parts, s.empty.Render("No usage data available."))
	default:
		parts = append(parts, usageLines(*ov.Usage, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// UsageView renders the usage section on its own, for the standalone usage
// command.
func UsageView(usage domain.UsageMetrics) string {
	return lipgloss.JoinVertical(lipgloss.Left, usageLines(usage, newStyles())...)
}

// usageLines is shared between the overview and the standalone usage
// command. The banner line comes first when any uncapped ratio crosses 0.8.
func usageLines(usage domain.UsageMetrics, s styles) []string {
	var lines []string

	if usage.ShowAlert() {
		lines = append(lines, s.banner.Render("⚠ Approaching plan limits — consider upgrading your plan"))
	}

	for _, entry := range []struct {
		label  string
		metric domain.Metric
	}{
		{"API requests", usage.APIRequests},
		{"Storage (GB)", usage.StorageGB},
		{"Bandwidth (GB)", usage.BandwidthGB},
	} {
		lines = append(lines, metricLine(entry.label, entry.metric, s))
	}

	return lines
}

func metricLine(label string, metric domain.Metric, s styles) string {
	tier := severityStyle(metric.Severity(), s)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.metricKey.Render(fmt.Sprintf("%-15s", label+":")),
		" ",
		renderBar(metric, s),
		" ",
		tier.Render(fmt.Sprintf("%d%%", metric.Percent())),
		" ",
		s.faint.Render(fmt.Sprintf("(%s of %s)", domain.CompactCount(metric.Current), domain.CompactCount(metric.Limit))),
	)
}

// renderBar fills min(percent, 100) of the width; the uncapped number only
// ever shows up in the text.
func renderBar(metric domain.Metric, s styles) string {
	filled := metric.BarPercent() * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	tier := severityStyle(metric.Severity(), s)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		tier.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func severityStyle(severity domain.Severity, s styles) lipgloss.Style {
	switch severity {
	case domain.SeverityCritical:
		return s.critical
	case domain.SeverityWarning:
		return s.warnTier
	default:
		return s.nominal
	}
}

// PlansView renders the static catalog for plan selection, marking the
// popular tier and the org's current plan.
func PlansView(currentPlanID string) string {
	s := newStyles()
	var lines []string

	for _, plan := range domain.Catalog() {
		header := []string{
			s.title.Render(plan.Name),
			" ",
			s.detail.Render(plan.FormatPrice()),
		}
		if plan.Popular {
			header = append(header, " ", s.banner.Render("★ Most Popular"))
		}
		if plan.ID == currentPlanID {
			header = append(header, " ", s.defaultTag.Render("(current plan)"))
		}

		block := []string{
			lipgloss.JoinHorizontal(lipgloss.Top, header...),
			s.faint.Render(plan.Description),
			s.faint.Render(fmt.Sprintf(
				"%s requests · %dGB storage · %s bandwidth",
				domain.CompactCount(plan.Limits.APIRequests),
				plan.Limits.StorageGB,
				domain.CompactCount(plan.Limits.BandwidthGB)+"GB",
			)),
		}
		for _, feature := range plan.Features {
			block = append(block, s.detail.Render("  • "+feature))
		}

		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, block...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPaymentMethods(ov application.Overview, s styles) string {
	parts := []string{s.title.Render("Payment Methods")}

	switch {
	case ov.PaymentMethodsErr != nil:
		parts = append(parts, s.warning.Render("failed to load payment methods: "+ov.PaymentMethodsErr.Error()))
	case len(ov.PaymentMethods) == 0:
		parts = append(parts, s.empty.Render("No payment methods added yet."))
	default:
		for _, method := range ov.PaymentMethods {
			parts = append(parts, paymentMethodLine(method, s))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func paymentMethodLine(method domain.PaymentMethod, s styles) string {
	segments := []string{s.detail.Render(method.Label())}

	if method.Card != nil {
		segments = append(segments, " ", s.faint.Render("expires "+method.Card.Expiry()))
	}
	if method.IsDefault {
		segments = append(segments, " ", s.defaultTag.Render("✓ Default"))
	}
	segments = append(segments, " ", s.faint.Render("("+method.ID+")"))

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func renderInvoices(ov application.Overview, s styles) string {
	parts := []string{s.title.Render("Billing History")}

	switch {
	case ov.InvoicesErr != nil:
		parts = append(parts, s.warning.Render("failed to load invoices: "+ov.InvoicesErr.Error()))
	case len(ov.Invoices) == 0:
		parts = append(parts, s.empty.Render("No invoices yet."))
	default:
		for _, invoice := range ov.Invoices {
			parts = append(parts, invoiceLine(invoice, s))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func invoiceLine(invoice domain.Invoice, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render(fmt.Sprintf("%-10s", invoice.Number)),
		" ",
		s.faint.Render(invoice.Created.Format("Jan 2, 2006")),
		" ",
		s.detail.Render(domain.FormatAmount(invoice.DisplayAmount(), invoice.Currency)),
		" ",
		s.badge.Render("["+invoice.Status.Label()+"]"),
		" ",
		s.faint.Render("due "+invoice.DueDate.Format("Jan 2, 2006")),
	)
}
