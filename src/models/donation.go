package models

import (
	"time"

	"spenden/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donation mirrors the historical donations table layout. Column names must
// stay stable so existing records remain readable.
type Donation struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`

	PayPalOrderID       string  `gorm:"column:paypal_order_id;uniqueIndex;not null" json:"paypal_order_id"`
	PayPalTransactionID *string `gorm:"column:paypal_transaction_id" json:"paypal_transaction_id,omitempty"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	TierName string  `json:"tier_name"`

	DonorName    string  `json:"donor_name"`
	DonorEmail   string  `json:"donor_email"`
	DonorGotram  *string `json:"donor_gotram,omitempty"`
	DonorMessage *string `json:"donor_message,omitempty"`

	DonorStreet     *string `json:"donor_street,omitempty"`
	DonorPostalCode *string `json:"donor_postal_code,omitempty"`
	DonorCity       *string `json:"donor_city,omitempty"`
	DonorCountry    *string `json:"donor_country,omitempty"`

	Status     types.DonationStatus `gorm:"default:pending" json:"status"`
	CapturedAt *time.Time           `json:"captured_at,omitempty"`

	TaxReceiptEligible bool       `json:"tax_receipt_eligible"`
	TaxReceiptSent     bool       `gorm:"default:false" json:"tax_receipt_sent"`
	TaxReceiptSentAt   *time.Time `json:"tax_receipt_sent_at,omitempty"`
	AdminNotes         string     `json:"admin_notes,omitempty"`

	types.Timestamps
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// HasAddress reports whether the donor address is complete enough for a
// legally valid receipt. Street and city are the hard requirement.
func (d *Donation) HasAddress() bool {
	return d.DonorStreet != nil && *d.DonorStreet != "" &&
		d.DonorCity != nil && *d.DonorCity != ""
}
