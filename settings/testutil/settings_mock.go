package testutil

import (
	"github.com/caffeinepress/ipn-processing/money"
	"github.com/caffeinepress/ipn-processing/settings"
)

type SettingsMock struct {
	settings.Settings

	Data map[string]interface{}
}

func (s *SettingsMock) GetString(key string) string {
	val, ok := s.Data[key]

	if !ok {
		return ""
	}
	st, ok := val.(string)

	if !ok {
		return ""
	}
	return st
}

func (s *SettingsMock) GetStringMandatory(key string) string {
	return s.GetString(key)
}

func (s *SettingsMock) GetURL(key string) string {
	return s.GetString(key)
}

func (s *SettingsMock) GetInt(key string) int {
	val, ok := s.Data[key]

	if !ok {
		return 0
	}
	i, ok := val.(int)

	if !ok {
		return 0
	}
	return i
}

func (s *SettingsMock) GetBool(key string) bool {
	val, ok := s.Data[key]

	if !ok {
		return false
	}
	b, ok := val.(bool)

	if !ok {
		return false
	}
	return b
}

func (s *SettingsMock) GetAmountUnit(key string) money.AmountUnit {
	unit, err := money.AmountUnitFromString(s.GetString(key))
	if err != nil {
		return money.Cents
	}
	return unit
}
