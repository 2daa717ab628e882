package utils

import (
	"testing"
	"time"

	"spenden/src/config"
	"spenden/src/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGermanAmountWords(t *testing.T) {
	cases := map[float64]string{
		0:       "null Euro",
		1:       "ein Euro",
		11:      "elf Euro",
		21:      "einundzwanzig Euro",
		100:     "einhundert Euro",
		101:     "einhundertein Euro",
		300:     "dreihundert Euro",
		500:     "fünfhundert Euro",
		521.50:  "fünfhunderteinundzwanzig Euro und fünfzig Cent",
		1000:    "eintausend Euro",
		1250:    "eintausendzweihundertfünfzig Euro",
		2500.01: "zweitausendfünfhundert Euro und ein Cent",
		999999:  "neunhundertneunundneunzigtausendneunhundertneunundneunzig Euro",
		1000000: "eine Million Euro",
		1000001: "eine Million ein Euro",
		2500000: "zwei Millionen fünfhunderttausend Euro",
	}
	for amount, want := range cases {
		assert.Equal(t, want, GermanAmountWords(amount), "amount %v", amount)
	}
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "500,00 €", FormatEuro(500))
	assert.Equal(t, "1.250,50 €", FormatEuro(1250.5))
	assert.Equal(t, "0,99 €", FormatEuro(0.99))
	assert.Equal(t, "1.000.000,00 €", FormatEuro(1000000))
}

func TestFormatGermanDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "07.03.2025", FormatGermanDate(d))
}

func receiptDonation() *models.Donation {
	street := "Hauptstraße 5"
	city := "Stuttgart"
	postal := "70173"
	captured := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	return &models.Donation{
		ID:                 uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002"),
		PayPalOrderID:      "ORDER-1",
		Amount:             500,
		Currency:           "EUR",
		TierName:           "Tier 3",
		DonorName:          "Karthik Iyer",
		DonorEmail:         "karthik@example.com",
		DonorStreet:        &street,
		DonorPostalCode:    &postal,
		DonorCity:          &city,
		Status:             "completed",
		CapturedAt:         &captured,
		TaxReceiptEligible: true,
	}
}

func TestReceiptNumber(t *testing.T) {
	d := receiptDonation()
	got := receiptNumberForYear(d, 2025)
	assert.Equal(t, "SPB-2025-A3BB189E", got)
	assert.Equal(t, got, receiptNumberForYear(d, 2025), "regeneration must be stable within a year")
	assert.NotEqual(t, got, receiptNumberForYear(d, 2026))

	other := receiptDonation()
	other.ID = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	assert.NotEqual(t, got, receiptNumberForYear(other, 2025))
}

func TestReceiptPreconditions(t *testing.T) {
	d := receiptDonation()
	assert.NoError(t, ReceiptPreconditions(d))

	d.TaxReceiptEligible = false
	assert.ErrorIs(t, ReceiptPreconditions(d), ErrNotEligible)

	d = receiptDonation()
	d.DonorStreet = nil
	assert.ErrorIs(t, ReceiptPreconditions(d), ErrIncompleteAddress)
}

func TestGenerateReceipt(t *testing.T) {
	d := receiptDonation()
	org := config.GetOrganization()
	issued := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)

	html, err := GenerateReceipt(d, org, issued)
	require.NoError(t, err)

	assert.Contains(t, html, "SPB-2025-A3BB189E")
	assert.Contains(t, html, "Karthik Iyer")
	assert.Contains(t, html, "Hauptstraße 5")
	assert.Contains(t, html, "500,00 €")
	assert.Contains(t, html, "fünfhundert Euro")
	assert.Contains(t, html, "Spende - Tier 3")
	assert.Contains(t, html, "15.06.2025")
	assert.Contains(t, html, "01.07.2025")
	assert.Contains(t, html, "§ 10b")
	assert.Contains(t, html, org.LegalName)

	d.DonorCity = nil
	_, err = GenerateReceipt(d, org, issued)
	assert.ErrorIs(t, err, ErrIncompleteAddress)
}
