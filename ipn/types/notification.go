package types

// Wire field names of a JVZoo IPN request. They must be preserved exactly for
// compatibility with the sender: body fields arrive form-encoded, routing
// fields arrive in the query string.
const (
	FieldCustomerName    = "ccustname"
	FieldCustomerEmail   = "ccustemail"
	FieldTransactionType = "ctransaction"
	FieldAmount          = "ctransamount"
	FieldReceipt         = "ctransreceipt"
	FieldVerification    = "cverify"

	QueryParamIPN           = "jvzooipn"
	QueryParamProductID     = "eddid"
	QueryParamPackageNumber = "edd_pn"
	QueryParamRawLog        = "jvzoolog"

	// IPNSentinelValue is the value QueryParamIPN must carry for a request to
	// be treated as an IPN callback
	IPNSentinelValue = "ipn"
)

// Notification is a value object holding a parsed IPN callback. It is built
// once per request by the dispatcher and passed through verification and
// reconciliation unchanged.
type Notification struct {
	// Fields holds every body field as received (including the claimed
	// signature itself). Signature verification runs over this full set
	Fields map[string]string

	// ClaimedSignature is the sender-supplied verification code, extracted
	// from the cverify field
	ClaimedSignature string

	TransactionType TransactionType

	// TransactionID is JVZoo's receipt id for the transaction. It is the
	// dedup key for orders and may be empty
	TransactionID string

	// Amount is the raw wire amount string. Its unit (cents or whole
	// currency units) is resolved by the engine from configuration
	Amount string

	CustomerName  string
	CustomerEmail string

	// ProductID identifies the purchased item. It comes from the request's
	// routing context (eddid query param), not from the notification body
	ProductID string

	// PackageNumber is the optional 1-based variable-pricing package number
	// from the edd_pn query param, 0 when absent
	PackageNumber int

	// LogRaw is set when the request asked for the full raw field dump to be
	// attached to the created order's audit notes (jvzoolog=1)
	LogRaw bool
}
