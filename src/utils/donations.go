package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spenden/src/config"
	"spenden/src/db"
	"spenden/src/lib"
	"spenden/src/lib/mailer"
	"spenden/src/models"
	"spenden/src/types"

	log "github.com/sirupsen/logrus"
)

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// CreateDonationOrder validates the request, registers the order with the
// payment gateway and records a pending donation. The gateway order is the
// primary outcome: if the local insert fails the order id is still returned
// and the miss is logged for reconciliation.
func CreateDonationOrder(ctx context.Context, body *types.CreateOrderRequestBody) (string, DonorFieldErrors, error) {
	tier := config.TierByName(body.TierName)
	if tier == nil {
		return "", DonorFieldErrors{"tierName": "Unknown donation tier"}, nil
	}
	if errs := ValidateDonorInput(tier, body.Amount, &body.DonorInfo); len(errs) > 0 {
		return "", errs, nil
	}

	donorName := strings.TrimSpace(body.DonorInfo.Name)
	description := fmt.Sprintf("Donation - %s | %s", tier.Name, donorName)
	orderID, err := lib.GetPayPalClient().CreateOrder(ctx, body.Amount, description)
	if err != nil {
		return "", nil, err
	}

	donation := models.Donation{
		PayPalOrderID:      orderID,
		Amount:             body.Amount,
		Currency:           config.CURRENCY,
		TierName:           tier.Name,
		DonorName:          donorName,
		DonorEmail:         strings.TrimSpace(body.DonorInfo.Email),
		DonorGotram:        optional(body.DonorInfo.Gotram),
		DonorMessage:       optional(body.DonorInfo.Message),
		Status:             types.DONATION_PENDING,
		TaxReceiptEligible: IsTaxReceiptEligible(body.Amount),
	}
	conn := db.GetDb()
	if err := conn.Create(&donation).Error; err != nil {
		log.WithError(err).WithField("order_id", orderID).
			Error("Could not record pending donation, needs reconciliation")
	}
	return orderID, nil, nil
}

// CaptureDonationOrder asks the gateway to capture the order and, on success,
// completes the local record. Bookkeeping and notification failures never
// turn a captured payment into an error response.
func CaptureDonationOrder(ctx context.Context, orderID string) (*types.CaptureResult, error) {
	result, err := lib.GetPayPalClient().CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		// The row stays pending. Failed/refunded are manual corrections only.
		return result, nil
	}
	conn := db.GetDb()

	if result.TransactionID == "" {
		// A completed row must carry its transaction id. Leave this one
		// pending for manual reconciliation instead.
		log.WithField("order_id", orderID).
			Error("Capture completed without a transaction id, needs reconciliation")
		return result, nil
	}

	now := time.Now()
	updates := map[string]any{
		"status":                types.DONATION_COMPLETED,
		"captured_at":           now,
		"paypal_transaction_id": result.TransactionID,
	}
	tx := conn.Model(&models.Donation{}).
		Where("paypal_order_id = ?", orderID).
		Updates(updates)
	if tx.Error != nil {
		log.WithError(tx.Error).WithField("order_id", orderID).
			Error("Captured payment could not be recorded, needs reconciliation")
		return result, nil
	}
	if tx.RowsAffected == 0 {
		log.WithField("order_id", orderID).
			Error("Captured payment has no local donation record, needs reconciliation")
		return result, nil
	}

	var donation models.Donation
	if err := conn.Where("paypal_order_id = ?", orderID).First(&donation).Error; err != nil {
		log.WithError(err).WithField("order_id", orderID).Error("Could not load donation for confirmation email")
		return result, nil
	}
	go mailer.SendDonationConfirmation(&donation, FormatEuro(donation.Amount))

	return result, nil
}
