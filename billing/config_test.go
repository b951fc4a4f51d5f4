package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPayoutConfig(t *testing.T) {
	cfg := DefaultPayoutConfig()

	assert.True(t, cfg.ServiceSplitPercentage.Equal(dec("70")))
	assert.True(t, cfg.PartsSplitPercentage.Equal(dec("10")))
	assert.True(t, cfg.ServiceGSTPercentage.Equal(dec("18")))
	assert.True(t, cfg.PartsGSTPercentage.Equal(dec("18")))
}

func TestConfigFromSettingsFallsBackPerField(t *testing.T) {
	// Only the service split is set; every other field takes its default.
	cfg := ConfigFromSettings(dec("60"), decimal.Zero, decimal.Zero, decimal.Zero)

	assert.True(t, cfg.ServiceSplitPercentage.Equal(dec("60")))
	assert.True(t, cfg.PartsSplitPercentage.Equal(dec("10")))
	assert.True(t, cfg.ServiceGSTPercentage.Equal(dec("18")))
	assert.True(t, cfg.PartsGSTPercentage.Equal(dec("18")))
}

func TestConfigFromSettingsClampsToValidRange(t *testing.T) {
	cfg := ConfigFromSettings(dec("150"), dec("-5"), dec("18"), dec("18"))

	assert.True(t, cfg.ServiceSplitPercentage.Equal(dec("100")))
	// Negative clamps to zero, but zero means unset, so the default applies
	// on the way in; clamping happens before that distinction.
	assert.True(t, cfg.PartsSplitPercentage.Equal(decimal.Zero))
}
