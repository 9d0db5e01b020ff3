package ipn

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/caffeinepress/ipn-processing/ipn/types"
)

// ComputeSignature recomputes the verification code JVZoo attaches to an IPN
// callback. The algorithm must match the sender byte-for-byte: the cverify
// field is dropped, remaining field names are sorted byte-wise, their values
// are concatenated each followed by a literal '|', the shared secret (trimmed
// of surrounding whitespace) is appended with no separator, and the result is
// the first 8 hex characters of the SHA-1 digest, upper-cased.
func ComputeSignature(fields map[string]string, secret string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if name == types.FieldVerification {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var pop strings.Builder
	for _, name := range names {
		pop.WriteString(fields[name])
		pop.WriteString("|")
	}
	pop.WriteString(strings.TrimSpace(secret))

	digest := sha1.Sum([]byte(pop.String()))
	return strings.ToUpper(hex.EncodeToString(digest[:])[:8])
}

// VerifySignature checks the claimed verification code of an IPN callback
// against the one recomputed from its fields and the shared secret. The
// comparison is exact and case-sensitive.
// Note that an empty secret does not fail verification early: the signature
// is then computed over the bare field concatenation, which makes forgery
// trivial. This matches the sender-side behavior for accounts configured
// without a secret key, so callers are expected to warn about it rather than
// reject such requests here.
func VerifySignature(fields map[string]string, claimedSignature, secret string) bool {
	return ComputeSignature(fields, secret) == claimedSignature
}
