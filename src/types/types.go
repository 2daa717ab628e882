package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type DonationStatus string

const (
	DONATION_PENDING   DonationStatus = "pending"
	DONATION_COMPLETED DonationStatus = "completed"
	DONATION_FAILED    DonationStatus = "failed"
	DONATION_REFUNDED  DonationStatus = "refunded"
)

type ReceiptFilter string

const (
	RECEIPT_FILTER_ALL      ReceiptFilter = "all"
	RECEIPT_FILTER_ELIGIBLE ReceiptFilter = "eligible"
	RECEIPT_FILTER_SENT     ReceiptFilter = "sent"
	RECEIPT_FILTER_PENDING  ReceiptFilter = "pending"
)

type DonorInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Gotram  string `json:"gotram,omitempty"`
	Message string `json:"message,omitempty"`
}

type CreateOrderRequestBody struct {
	Amount    float64   `json:"amount" binding:"required,gt=0"`
	TierName  string    `json:"tierName" binding:"required,donationtier"`
	DonorInfo DonorInfo `json:"donorInfo" binding:"required"`
}

type CaptureOrderRequestBody struct {
	OrderID string `json:"orderId" binding:"required"`
}

// CaptureResult separates the primary payment outcome from any secondary
// bookkeeping or notification effects, which never influence it.
type CaptureResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Error         string `json:"error,omitempty"`
}

type AdminLoginRequestBody struct {
	Email string `json:"email" binding:"required"`
}

// UpdateDonationRequestBody covers the only admin-editable fields. Amount,
// status and payment identifiers have no edit path.
type UpdateDonationRequestBody struct {
	DonorStreet     *string `json:"donor_street,omitempty"`
	DonorPostalCode *string `json:"donor_postal_code,omitempty"`
	DonorCity       *string `json:"donor_city,omitempty"`
	DonorCountry    *string `json:"donor_country,omitempty"`
	AdminNotes      *string `json:"admin_notes,omitempty"`
}

type TaxReceiptRequestBody struct {
	DonationID string `json:"donationId" binding:"required"`
	SendEmail  bool   `json:"sendEmail,omitempty"`
}

type DonationQueryFilters struct {
	Search  string `form:"q"`
	Status  string `form:"status"`
	Receipt string `form:"receipt"`
	Page    int    `form:"page"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type TierBreakdown struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type AnalyticsResponse struct {
	TotalFunds      float64                  `json:"totalFunds"`
	DonationCount   int                      `json:"donationCount"`
	ByTier          map[string]TierBreakdown `json:"byTier"`
	RecentDonations []RecentDonation         `json:"recentDonations"`
}

type RecentDonation struct {
	DonorName string    `json:"donor_name"`
	Amount    float64   `json:"amount"`
	TierName  string    `json:"tier_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
