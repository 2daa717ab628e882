package utils

import (
	"fmt"
	"regexp"
	"strings"

	"spenden/src/config"
	"spenden/src/types"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DonorFieldErrors maps a request field name to a human-readable problem.
type DonorFieldErrors map[string]string

// ValidateDonorInput checks amount bounds against the tier and the donor
// fields the tier demands. An empty map means the input is acceptable.
func ValidateDonorInput(tier *config.DonationTier, amount float64, info *types.DonorInfo) DonorFieldErrors {
	errs := DonorFieldErrors{}

	if amount < tier.MinAmount {
		errs["amount"] = fmt.Sprintf("Amount must be at least %.2f EUR for %s", tier.MinAmount, tier.Name)
	} else if tier.MaxAmount > 0 && amount > tier.MaxAmount {
		errs["amount"] = fmt.Sprintf("Amount must not exceed %.2f EUR for %s", tier.MaxAmount, tier.Name)
	}

	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !emailRegex.MatchString(strings.TrimSpace(info.Email)) {
		errs["email"] = "A valid email address is required"
	}
	if tier.MinAmount >= config.GOTRAM_REQUIRED_TIER_MIN && strings.TrimSpace(info.Gotram) == "" {
		errs["gotram"] = "Gotram is required for this tier"
	}
	return errs
}

// IsTaxReceiptEligible is decided once at creation time from the amount and
// never re-derived later.
func IsTaxReceiptEligible(amount float64) bool {
	return amount >= config.TAX_RECEIPT_MIN_AMOUNT
}
