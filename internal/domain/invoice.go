package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOpen          InvoiceStatus = "open"
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceUncollectible InvoiceStatus = "uncollectible"
	InvoiceVoid          InvoiceStatus = "void"
)

func (s InvoiceStatus) Label() string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(string(s)[:1]) + string(s)[1:]
}

// Invoice amounts are integer cents, as the backend reports them.
type Invoice struct {
	ID               string        `json:"id"`
	Number           string        `json:"number"`
	Status           InvoiceStatus `json:"status"`
	AmountPaid       int64         `json:"amount_paid"`
	AmountDue        int64         `json:"amount_due"`
	Currency         string        `json:"currency"`
	Created          time.Time     `json:"created"`
	DueDate          time.Time     `json:"due_date"`
	HostedInvoiceURL string        `json:"hosted_invoice_url,omitempty"`
	InvoicePDF       string        `json:"invoice_pdf,omitempty"`
}

// DisplayAmount picks whichever of paid/due is meaningful for the status.
func (i Invoice) DisplayAmount() int64 {
	if i.AmountPaid > 0 {
		return i.AmountPaid
	}

	return i.AmountDue
}

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

// FormatAmount renders integer cents as a currency string: 2900, "usd" ->
// "$29.00".
func FormatAmount(cents int64, currency string) string {
	amount := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	if symbol, ok := currencySymbols[strings.ToLower(currency)]; ok {
		return symbol + amount.StringFixed(2)
	}

	return fmt.Sprintf("%s %s", strings.ToUpper(currency), amount.StringFixed(2))
}
