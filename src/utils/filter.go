package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"spenden/src/models"
	"spenden/src/types"
)

const DonationsPageSize = 10

func matchesSearch(d *models.Donation, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(d.DonorName), q) ||
		strings.Contains(strings.ToLower(d.DonorEmail), q) ||
		strings.Contains(strings.ToLower(d.PayPalOrderID), q) {
		return true
	}
	return d.PayPalTransactionID != nil && strings.Contains(strings.ToLower(*d.PayPalTransactionID), q)
}

func matchesReceipt(d *models.Donation, filter types.ReceiptFilter) bool {
	switch filter {
	case types.RECEIPT_FILTER_ELIGIBLE:
		return d.TaxReceiptEligible
	case types.RECEIPT_FILTER_SENT:
		return d.TaxReceiptSent
	case types.RECEIPT_FILTER_PENDING:
		return d.TaxReceiptEligible && !d.TaxReceiptSent
	default:
		return true
	}
}

// FilterDonations applies the dashboard filters in memory. The search term
// covers donor name, email and both payment identifiers.
func FilterDonations(donations []models.Donation, f *types.DonationQueryFilters) []models.Donation {
	out := make([]models.Donation, 0, len(donations))
	for i := range donations {
		d := &donations[i]
		if !matchesSearch(d, strings.TrimSpace(f.Search)) {
			continue
		}
		if f.Status != "" && d.Status != types.DonationStatus(f.Status) {
			continue
		}
		if f.Receipt != "" && !matchesReceipt(d, types.ReceiptFilter(f.Receipt)) {
			continue
		}
		out = append(out, *d)
	}
	return out
}

// PaginateDonations slices one dashboard page. Pages are 1-based; an
// out-of-range page yields an empty slice, not an error.
func PaginateDonations(donations []models.Donation, page int) []models.Donation {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * DonationsPageSize
	if start >= len(donations) {
		return []models.Donation{}
	}
	end := start + DonationsPageSize
	if end > len(donations) {
		end = len(donations)
	}
	return donations[start:end]
}

var csvHeader = []string{
	"ID", "Donor Name", "Email", "Amount", "Tier", "Status",
	"Tax Receipt Eligible", "Tax Receipt Sent", "Date",
	"Street", "Postal Code", "City", "Country",
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// DonationsCSV renders the export the bookkeeper imports into their
// accounting tool. Column order is part of that contract.
func DonationsCSV(donations []models.Donation) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for i := range donations {
		d := &donations[i]
		record := []string{
			d.ID.String(),
			d.DonorName,
			d.DonorEmail,
			fmt.Sprintf("%.2f", d.Amount),
			d.TierName,
			string(d.Status),
			yesNo(d.TaxReceiptEligible),
			yesNo(d.TaxReceiptSent),
			d.CreatedAt.Format("2006-01-02"),
			deref(d.DonorStreet),
			deref(d.DonorPostalCode),
			deref(d.DonorCity),
			deref(d.DonorCountry),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
