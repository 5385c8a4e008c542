package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zipshipping/internal/errors"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, Settings{
		KeyEnabled:     "yes",
		KeyTitle:       "Local delivery",
		KeyCost:        "0",
		KeyAllowedZips: "",
	}, s)
}

func TestFromSettings_Defaults(t *testing.T) {
	cfg, err := FromSettings(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "0", cfg.Cost)
	assert.Equal(t, "Local delivery", cfg.Title)

	_, ok := NewEvaluator(MethodID).Evaluate("11000", cfg)
	assert.False(t, ok, "empty default allow list must not match")
}

func TestFromSettings_EnabledFlag(t *testing.T) {
	for val, want := range map[string]bool{"yes": true, "no": false, "": false, "true": false} {
		cfg, err := FromSettings(Settings{KeyEnabled: val})
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Enabled, "enabled=%q", val)
	}
}

func TestFromSettings_RoundTrip(t *testing.T) {
	in := MethodConfig{Enabled: false, Title: "Brno", Cost: "79", AllowedZipsRaw: "6*"}
	out, err := FromSettings(in.Settings())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFromSettings_InvalidCost(t *testing.T) {
	_, err := FromSettings(Settings{KeyCost: "twelve"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidCostFormat))
}

func TestValidateCost(t *testing.T) {
	for _, ok := range []string{"0", "49.90", " 12 ", "100.000"} {
		assert.NoError(t, ValidateCost(ok), "cost=%q", ok)
	}
	for _, bad := range []string{"", "-1", "12,50", "abc", "1.2.3"} {
		err := ValidateCost(bad)
		assert.True(t, errors.IsType(err, errors.TypeInvalidCostFormat), "cost=%q err=%v", bad, err)
	}
}

func TestFormFields(t *testing.T) {
	fields := FormFields()
	require.Len(t, fields, 4)
	assert.Equal(t, KeyAllowedZips, fields[3].Key)
	assert.Equal(t, "110 00\n2*\n350*", fields[3].Placeholder)
}

func TestAllowedZipsDescriptionMatchesParsing(t *testing.T) {
	f := FormFields()[3]
	assert.Contains(t, f.Description, "comma or a new line")

	cfg, err := FromSettings(Settings{KeyAllowedZips: "2*, 350*"})
	require.NoError(t, err)
	_, ok := NewEvaluator(MethodID).Evaluate("35000", cfg)
	assert.True(t, ok)

	cfg, err = FromSettings(Settings{KeyAllowedZips: "2* 350*"})
	require.NoError(t, err)
	_, ok = NewEvaluator(MethodID).Evaluate("35000", cfg)
	assert.False(t, ok, "space separated codes on one line form a single token")
}
