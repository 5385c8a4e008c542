package rate

import (
	"strings"

	"github.com/shopspring/decimal"

	"zipshipping/internal/errors"
)

// Setting keys as persisted by the host.
const (
	KeyEnabled     = "enabled"
	KeyTitle       = "title"
	KeyCost        = "cost"
	KeyAllowedZips = "allowed_zips"
)

// Settings is the host's string key/value blob for one method instance.
type Settings map[string]string

// FormField describes one admin setting. Rendering is left to the host.
type FormField struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default"`
	Placeholder string `json:"placeholder,omitempty"`
}

// FormFields returns the admin fields in display order.
func FormFields() []FormField {
	return []FormField{
		{Key: KeyEnabled, Type: "checkbox", Title: "Enable", Default: "yes"},
		{Key: KeyTitle, Type: "text", Title: "Title", Description: "Name shown to the customer at checkout.", Default: "Local delivery"},
		{Key: KeyCost, Type: "text", Title: "Cost", Description: "Flat cost of this shipping method.", Default: "0", Placeholder: "0"},
		{
			Key:         KeyAllowedZips,
			Type:        "textarea",
			Title:       "Allowed postcodes",
			Description: `Postcodes separated by a comma or a new line. Spaces inside a postcode are ignored, so "2* 350*" is read as one prefix "2350". A trailing * matches any postcode starting with the prefix, e.g. "1*".`,
			Default:     "",
			Placeholder: "110 00\n2*\n350*",
		},
	}
}

// DefaultSettings returns the default value of every field.
func DefaultSettings() Settings {
	s := Settings{}
	for _, f := range FormFields() {
		s[f.Key] = f.Default
	}
	return s
}

// FromSettings converts host settings into a MethodConfig. Missing keys take
// their defaults. The cost is validated here so that Evaluate never has to.
func FromSettings(s Settings) (MethodConfig, error) {
	merged := DefaultSettings()
	for k, v := range s {
		merged[k] = v
	}
	cfg := MethodConfig{
		Enabled:        merged[KeyEnabled] == "yes",
		Title:          merged[KeyTitle],
		Cost:           strings.TrimSpace(merged[KeyCost]),
		AllowedZipsRaw: merged[KeyAllowedZips],
	}
	if err := ValidateCost(cfg.Cost); err != nil {
		return MethodConfig{}, err
	}
	return cfg, nil
}

// Settings converts cfg back into the host's string form.
func (cfg MethodConfig) Settings() Settings {
	enabled := "no"
	if cfg.Enabled {
		enabled = "yes"
	}
	return Settings{
		KeyEnabled:     enabled,
		KeyTitle:       cfg.Title,
		KeyCost:        cfg.Cost,
		KeyAllowedZips: cfg.AllowedZipsRaw,
	}
}

// ValidateCost reports an INVALID_COST_FORMAT error unless cost is a non-negative decimal.
func ValidateCost(cost string) error {
	cost = strings.TrimSpace(cost)
	d, err := decimal.NewFromString(cost)
	if err != nil {
		return errors.Wrap(errors.TypeInvalidCostFormat, "cost must be a decimal number", err).
			WithContext(KeyCost, cost)
	}
	if d.IsNegative() {
		return errors.New(errors.TypeInvalidCostFormat, "cost must not be negative").
			WithContext(KeyCost, cost)
	}
	return nil
}
