package ipn

import (
	"testing"

	"github.com/caffeinepress/ipn-processing/money"
	"github.com/caffeinepress/ipn-processing/settings/testutil"
)

func TestConfigFromSettings(t *testing.T) {
	settingsMock := &testutil.SettingsMock{Data: map[string]interface{}{
		"jvzoo.secret_key":              "sekrit-key",
		"jvzoo.amount_unit":             "whole",
		"jvzoo.create_user_on_purchase": true,
		"jvzoo.log_raw_notification":    true,
	}}

	config := ConfigFromSettings(settingsMock)

	if got, want := config.SecretKey, "sekrit-key"; got != want {
		t.Errorf("Expected secret key %q, got %q", want, got)
	}
	if got, want := config.AmountUnit, money.WholeUnits; got != want {
		t.Errorf("Expected amount unit %s, got %s", want, got)
	}
	if !config.CreateUserOnPurchase {
		t.Error("Expected create-user-on-purchase to be enabled")
	}
	if !config.LogRawNotification {
		t.Error("Expected raw notification logging to be enabled")
	}
}

func TestConfigFromSettingsDefaults(t *testing.T) {
	settingsMock := &testutil.SettingsMock{Data: map[string]interface{}{}}

	config := ConfigFromSettings(settingsMock)

	if got, want := config.SecretKey, ""; got != want {
		t.Errorf("Expected empty secret key, got %q", got)
	}
	if got, want := config.AmountUnit, money.Cents; got != want {
		t.Errorf("Expected default amount unit %s, got %s", want, got)
	}
	if config.CreateUserOnPurchase || config.LogRawNotification {
		t.Error("Expected optional behaviors to default to off")
	}
}
