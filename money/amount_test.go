package money

import (
	"encoding/json"
	"testing"
)

func TestAmountFromWireCents(t *testing.T) {
	amount, err := AmountFromWire("1000", Cents)
	if err != nil {
		t.Fatalf("AmountFromWire returned error %s", err)
	}
	if got, want := amount.String(), "10"; got != want {
		t.Errorf("Expected cents amount to resolve to %s, got %s", want, got)
	}
	if !amount.Equal(MustAmountFromString("10.00")) {
		t.Errorf("Expected resolved amount to equal 10.00, got %s", amount)
	}
}

func TestAmountFromWireWholeUnits(t *testing.T) {
	amount, err := AmountFromWire("1000", WholeUnits)
	if err != nil {
		t.Fatalf("AmountFromWire returned error %s", err)
	}
	if !amount.Equal(MustAmountFromString("1000")) {
		t.Errorf("Expected whole-unit amount to stay 1000, got %s", amount)
	}
}

func TestAmountFromWireFractionalCents(t *testing.T) {
	amount, err := AmountFromWire("1999", Cents)
	if err != nil {
		t.Fatalf("AmountFromWire returned error %s", err)
	}
	if !amount.Equal(MustAmountFromString("19.99")) {
		t.Errorf("Expected 1999 cents to resolve to 19.99, got %s", amount)
	}
}

func TestAmountFromWireGarbage(t *testing.T) {
	_, err := AmountFromWire("not-a-number", Cents)
	if err == nil {
		t.Error("AmountFromWire did not return error for garbage input")
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	amount := MustAmountFromString("19.99")
	marshaled, err := json.Marshal(amount)
	if err != nil {
		t.Fatalf("Failed to marshal amount: %s", err)
	}
	if got, want := string(marshaled), `"19.99"`; got != want {
		t.Errorf("Expected marshaled amount %s, got %s", want, got)
	}
	var restored Amount
	if err := json.Unmarshal(marshaled, &restored); err != nil {
		t.Fatalf("Failed to unmarshal amount: %s", err)
	}
	if !restored.Equal(amount) {
		t.Errorf("Amount changed in JSON round trip: %s", restored)
	}
}

func TestAmountUnitFromString(t *testing.T) {
	unit, err := AmountUnitFromString("cents")
	if err != nil || unit != Cents {
		t.Errorf("Expected 'cents' to map to Cents, got %v %v", unit, err)
	}
	unit, err = AmountUnitFromString("whole")
	if err != nil || unit != WholeUnits {
		t.Errorf("Expected 'whole' to map to WholeUnits, got %v %v", unit, err)
	}
	if _, err = AmountUnitFromString("furlongs"); err == nil {
		t.Error("Expected error converting unknown amount unit")
	}
}
