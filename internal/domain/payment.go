package domain

import "fmt"

type PaymentMethodType string

const (
	PaymentMethodCard PaymentMethodType = "card"
	PaymentMethodBank PaymentMethodType = "bank_account"
)

// CardBrand is a closed enumeration of the brands the backend reports.
// Unknown brands decode fine and render through the fallback label.
type CardBrand string

const (
	BrandVisa       CardBrand = "visa"
	BrandMastercard CardBrand = "mastercard"
	BrandAmex       CardBrand = "amex"
	BrandDiscover   CardBrand = "discover"
	BrandDiners     CardBrand = "diners"
	BrandJCB        CardBrand = "jcb"
	BrandUnionPay   CardBrand = "unionpay"
)

var cardBrandLabels = map[CardBrand]string{
	BrandVisa:       "Visa",
	BrandMastercard: "Mastercard",
	BrandAmex:       "American Express",
	BrandDiscover:   "Discover",
	BrandDiners:     "Diners Club",
	BrandJCB:        "JCB",
	BrandUnionPay:   "UnionPay",
}

func (b CardBrand) Label() string {
	if label, ok := cardBrandLabels[b]; ok {
		return label
	}

	return "Card"
}

type Card struct {
	Brand    CardBrand `json:"brand"`
	Last4    string    `json:"last4"`
	ExpMonth int       `json:"exp_month"`
	ExpYear  int       `json:"exp_year"`
}

func (c Card) Expiry() string {
	return fmt.Sprintf("%02d/%d", c.ExpMonth, c.ExpYear)
}

type BankAccount struct {
	BankName string `json:"bank_name"`
	Last4    string `json:"last4"`
}

// PaymentMethod carries exactly one of Card or BankAccount depending on Type.
type PaymentMethod struct {
	ID          string            `json:"id"`
	Type        PaymentMethodType `json:"type"`
	Card        *Card             `json:"card,omitempty"`
	BankAccount *BankAccount      `json:"bank_account,omitempty"`
	IsDefault   bool              `json:"is_default"`
}

func (m PaymentMethod) Label() string {
	switch {
	case m.Card != nil:
		return fmt.Sprintf("%s •••• %s", m.Card.Brand.Label(), m.Card.Last4)
	case m.BankAccount != nil:
		return fmt.Sprintf("%s •••• %s", m.BankAccount.BankName, m.BankAccount.Last4)
	default:
		return string(m.Type)
	}
}

// BillingContact is the enrollment form state. Line2 is the only optional
// field.
type BillingContact struct {
	Name       string
	Email      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (c BillingContact) MissingFields() []string {
	var missing []string

	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"address line 1", c.Line1},
		{"city", c.City},
		{"state", c.State},
		{"postal code", c.PostalCode},
		{"country", c.Country},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}

	return missing
}

// CardDetails is raw card entry destined for the tokenization provider. It is
// never sent to the Felora backend.
type CardDetails struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}

func (c CardDetails) MissingFields() []string {
	var missing []string
	if c.Number == "" {
		missing = append(missing, "card number")
	}
	if c.ExpMonth == 0 {
		missing = append(missing, "expiry month")
	}
	if c.ExpYear == 0 {
		missing = append(missing, "expiry year")
	}
	if c.CVC == "" {
		missing = append(missing, "cvc")
	}

	return missing
}

type SetupIntent struct {
	ClientSecret string `json:"client_secret"`
}
