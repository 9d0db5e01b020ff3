package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Amount is ipn processing app's own type for representing an amount of money
// in the shop's display currency. Internally it is a decimal number so that
// precision is not lost due to floating point number representation. It
// supports conversion to float64 (to interact with APIs that accept amounts
// as floats) and to string. It is also JSON-able and resulting JSON value is
// a stringed decimal because by API convention all amounts of money are
// transfered to clients as stringed decimals.
// Library "github.com/shopspring/decimal" is used for the internal
// representation and all arithmetic
type Amount struct {
	value decimal.Decimal
}

// AmountUnit tells how to interpret the transaction amount field of an
// incoming payment notification: JVZoo historically sent amounts in cents,
// newer accounts are configured to send whole currency units
type AmountUnit int

const (
	// Cents means the wire amount is an integer number of cents and must be
	// divided by 100 to get the amount in currency units
	Cents AmountUnit = iota

	// WholeUnits means the wire amount is already in currency units and is
	// used as-is
	WholeUnits

	// InvalidAmountUnit is a value generated when converting unit from string
	// and value of source string is invalid
	InvalidAmountUnit
)

var amountUnitToStringMap = map[AmountUnit]string{
	Cents:      "cents",
	WholeUnits: "whole",
}

var stringToAmountUnitMap = make(map[string]AmountUnit)

var oneHundred = decimal.New(100, 0)

func init() {
	for unit, unitStr := range amountUnitToStringMap {
		stringToAmountUnitMap[unitStr] = unit
	}
}

func (u AmountUnit) String() string {
	unitStr, ok := amountUnitToStringMap[u]
	if !ok {
		return "invalid"
	}
	return unitStr
}

// AmountUnitFromString converts string representation of amount unit to
// AmountUnit
func AmountUnitFromString(unitStr string) (AmountUnit, error) {
	unit, ok := stringToAmountUnitMap[unitStr]
	if !ok {
		return InvalidAmountUnit, errors.New(
			"Failed to convert string '" + unitStr + "' to amount unit",
		)
	}
	return unit, nil
}

// AmountFromString creates Amount from a stringed decimal value and is used
// to read values from API requests and DB rows
func AmountFromString(amountStr string) (Amount, error) {
	value, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: value}, nil
}

// AmountFromWire creates Amount from the transaction amount field of a
// payment notification, resolving it with given unit: for Cents the wire
// value is divided by 100, for WholeUnits it is taken as-is
func AmountFromWire(amountStr string, unit AmountUnit) (Amount, error) {
	value, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Amount{}, err
	}
	if unit == Cents {
		value = value.Div(oneHundred)
	}
	return Amount{value: value}, nil
}

// MustAmountFromString is a version of AmountFromString that panics in case
// of error. It is meant for tests and constants
func MustAmountFromString(amountStr string) Amount {
	amount, err := AmountFromString(amountStr)
	if err != nil {
		panic(err)
	}
	return amount
}

func (amount Amount) String() string {
	return amount.value.String()
}

// Float64 converts Amount to float64. It is used to pass amount to an API
// that accepts float64
func (amount Amount) Float64() float64 {
	amountFloat, _ := amount.value.Float64()
	return amountFloat
}

// Equal tells whether two amounts represent the same value. 10 and 10.00
// compare equal
func (amount Amount) Equal(other Amount) bool {
	return amount.value.Equal(other.value)
}

// MarshalJSON is used to serialize Amount to JSON. Resulting JSON value
// is a stringed decimal
func (amount Amount) MarshalJSON() ([]byte, error) {
	return []byte("\"" + amount.value.String() + "\""), nil
}

// UnmarshalJSON deserializes Amount from JSON accepting both stringed and
// bare numeric values
func (amount *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	value, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	amount.value = value
	return nil
}
