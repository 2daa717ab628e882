package config

import "os"

// Organization is the legal issuer data embedded into tax receipts and emails.
type Organization struct {
	Name               string
	LegalName          string
	Street             string
	PostalCode         string
	City               string
	Country            string
	IBAN               string
	TaxID              string
	RegistrationNumber string
	Representative     string
	ContactEmail       string
}

var org *Organization

func GetOrganization() *Organization {
	if org != nil {
		return org
	}
	org = &Organization{
		Name:               envOr("ORG_NAME", "Sri Venkateshwara Tempel Stuttgart"),
		LegalName:          envOr("ORG_LEGAL_NAME", "Sri Venkateshwara Tempel Stuttgart e.V."),
		Street:             envOr("ORG_STREET", "Tempelstraße 12"),
		PostalCode:         envOr("ORG_POSTAL_CODE", "70173"),
		City:               envOr("ORG_CITY", "Stuttgart"),
		Country:            envOr("ORG_COUNTRY", "Deutschland"),
		IBAN:               envOr("ORG_IBAN", "DE89 6005 0101 0000 1234 56"),
		TaxID:              envOr("ORG_TAX_ID", "99/999/99999"),
		RegistrationNumber: envOr("ORG_REGISTRATION_NUMBER", "VR 12345"),
		Representative:     envOr("ORG_REPRESENTATIVE", "Ramesh Iyer"),
		ContactEmail:       envOr("ORG_CONTACT_EMAIL", "info@sv-tempel-stuttgart.de"),
	}
	return org
}

// NewOrganization Replace issuer data with a custom instance
func NewOrganization(o *Organization) *Organization {
	org = o
	return org
}

// Address renders the single-line postal address used on receipts.
func (o *Organization) Address() string {
	return o.Street + ", " + o.PostalCode + " " + o.City + ", " + o.Country
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
