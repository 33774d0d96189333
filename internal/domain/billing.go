package domain

// BillingInfo is the org's billing contact record. PUT accepts a partial
// update; zero-valued fields are omitted from the request body.
type BillingInfo struct {
	Name         string `json:"name,omitempty"`
	BillingEmail string `json:"billing_email,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}
