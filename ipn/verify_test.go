package ipn

import (
	"testing"
)

const testSecret = "sekrit-key"

// Pinned SHA-1 signature of "1|2|s" (first 8 hex chars, upper-cased).
const goldenSimpleSignature = "9A4CB5FA"

// Pinned signature of the full sale field set below with testSecret.
const goldenSaleSignature = "35FD4645"

func testSaleFields() map[string]string {
	return map[string]string{
		"ccustname":     "Jane Buyer",
		"ccustemail":    "jane@example.com",
		"ctransaction":  "SALE",
		"ctransamount":  "1999",
		"ctransreceipt": "AB12345678",
	}
}

func TestComputeSignatureGoldenVector(t *testing.T) {
	fields := map[string]string{"a": "1", "b": "2"}
	if got, want := ComputeSignature(fields, "s"), goldenSimpleSignature; got != want {
		t.Errorf("Expected signature %s, got %s", want, got)
	}
}

func TestComputeSignatureSaleVector(t *testing.T) {
	if got, want := ComputeSignature(testSaleFields(), testSecret), goldenSaleSignature; got != want {
		t.Errorf("Expected signature %s, got %s", want, got)
	}
}

func TestComputeSignatureIsDeterministic(t *testing.T) {
	fields := testSaleFields()
	first := ComputeSignature(fields, testSecret)
	for i := 0; i < 10; i++ {
		if got := ComputeSignature(fields, testSecret); got != first {
			t.Fatalf("Signature changed between calls: %s then %s", first, got)
		}
	}
}

func TestComputeSignatureChangesWithFieldValue(t *testing.T) {
	fields := testSaleFields()
	fields["ctransamount"] = "2000"
	if got := ComputeSignature(fields, testSecret); got == goldenSaleSignature {
		t.Error("Signature did not change when a field value changed")
	}
}

func TestComputeSignatureChangesWithSecret(t *testing.T) {
	if got := ComputeSignature(testSaleFields(), "other-key"); got == goldenSaleSignature {
		t.Error("Signature did not change when secret changed")
	}
}

func TestComputeSignatureIgnoresVerificationField(t *testing.T) {
	fields := testSaleFields()
	fields["cverify"] = "AAAAAAAA"
	if got, want := ComputeSignature(fields, testSecret), goldenSaleSignature; got != want {
		t.Errorf("cverify field leaked into signature: expected %s, got %s",
			want, got)
	}
}

func TestComputeSignatureTrimsSecret(t *testing.T) {
	if got, want := ComputeSignature(testSaleFields(), "  "+testSecret+"  "), goldenSaleSignature; got != want {
		t.Errorf("Secret was not trimmed: expected %s, got %s", want, got)
	}
}

func TestComputeSignatureEmptySecret(t *testing.T) {
	// Verification with an unset secret proceeds with an empty suffix rather
	// than failing early. Pinned value of sha1 over the sale fields with no
	// secret appended.
	if got, want := ComputeSignature(testSaleFields(), ""), "D4CCF059"; got != want {
		t.Errorf("Expected empty-secret signature %s, got %s", want, got)
	}
}

func TestVerifySignature(t *testing.T) {
	fields := testSaleFields()
	if !VerifySignature(fields, goldenSaleSignature, testSecret) {
		t.Error("Valid signature did not verify")
	}
	if VerifySignature(fields, "00000000", testSecret) {
		t.Error("Wrong signature verified")
	}
	if VerifySignature(fields, "35fd4645", testSecret) {
		t.Error("Signature comparison is not case-sensitive")
	}
}
