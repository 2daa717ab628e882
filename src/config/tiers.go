package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

// DonationTier is static content consumed by the donation flow. The lifecycle
// logic never hard-codes tier thresholds; it always goes through this table.
type DonationTier struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	MinAmount        float64   `json:"minAmount"`
	MaxAmount        float64   `json:"maxAmount,omitempty"` // 0 means the tier has no upper bound
	Flexible         bool      `json:"flexible,omitempty"`
	SuggestedAmounts []float64 `json:"suggestedAmounts,omitempty"`
	Benefits         []string  `json:"benefits,omitempty"`
}

var defaultTiers = []DonationTier{
	{
		ID:               "tier-1",
		Name:             "Tier 1",
		MinAmount:        1,
		MaxAmount:        250,
		Flexible:         true,
		SuggestedAmounts: []float64{11, 51, 101},
		Benefits:         []string{"Name in the donor book"},
	},
	{
		ID:        "tier-2",
		Name:      "Tier 2",
		MinAmount: 251,
		MaxAmount: 499,
		Benefits:  []string{"Name in the donor book", "Archana in the donor's name"},
	},
	{
		ID:        "tier-3",
		Name:      "Tier 3",
		MinAmount: 500,
		Benefits:  []string{"Name in the donor book", "Archana in the donor's name", "Invitation to the Kumbhabhishekam"},
	},
}

var tiers []DonationTier

// DonationTiers returns the tier table, loading it once from TIERS_FILE when
// set and falling back to the built-in defaults otherwise.
func DonationTiers() []DonationTier {
	if tiers != nil {
		return tiers
	}
	path := os.Getenv("TIERS_FILE")
	if path == "" {
		tiers = defaultTiers
		return tiers
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Could not read tiers file, using defaults")
		tiers = defaultTiers
		return tiers
	}
	var loaded []DonationTier
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.WithError(err).WithField("path", path).Warn("Could not parse tiers file, using defaults")
		tiers = defaultTiers
		return tiers
	}
	tiers = loaded
	return tiers
}

// NewDonationTiers Replace the tier table, e.g. from tests
func NewDonationTiers(t []DonationTier) []DonationTier {
	tiers = t
	return tiers
}

func TierByName(name string) *DonationTier {
	ts := DonationTiers()
	for i := range ts {
		if ts[i].Name == name {
			return &ts[i]
		}
	}
	return nil
}
