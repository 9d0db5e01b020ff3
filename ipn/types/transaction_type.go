package types

// TransactionType is a enum describing what kind of transaction a JVZoo
// notification reports.
type TransactionType int

const (
	// SaleTransaction is a completed purchase. It is the only type that
	// creates a new order
	SaleTransaction TransactionType = iota

	// RefundTransaction is a refund issued by the vendor or by JVZoo support
	RefundTransaction

	// ChargebackTransaction is a chargeback initiated by the buyer's bank.
	// Processed exactly like a refund
	ChargebackTransaction

	// InsufficientFundsTransaction is sent when a recurring payment fails
	// because the buyer's account had insufficient funds. Processed exactly
	// like a refund
	InsufficientFundsTransaction

	// UnknownTransaction is a type for notifications that carry a transaction
	// code this app does not recognize. Such notifications are acknowledged
	// and dropped without touching the ledger
	UnknownTransaction
)

var transactionTypeToStringMap = map[TransactionType]string{
	SaleTransaction:              "SALE",
	RefundTransaction:            "RFND",
	ChargebackTransaction:        "CGBK",
	InsufficientFundsTransaction: "INSF",
}

var stringToTransactionTypeMap = make(map[string]TransactionType)

func init() {
	for txType, txTypeStr := range transactionTypeToStringMap {
		stringToTransactionTypeMap[txTypeStr] = txType
	}
}

func (tt TransactionType) String() string {
	txTypeStr, ok := transactionTypeToStringMap[tt]
	if !ok {
		return "unknown"
	}
	return txTypeStr
}

// TransactionTypeFromString converts the wire transaction code to
// TransactionType. Codes this app does not recognize map to
// UnknownTransaction: per JVZoo semantics an unrecognized notification must
// still be acknowledged, so this is not an error
func TransactionTypeFromString(txTypeStr string) TransactionType {
	txType, ok := stringToTransactionTypeMap[txTypeStr]
	if !ok {
		return UnknownTransaction
	}
	return txType
}

// IsRefund tells whether this transaction type reverses a sale. Refunds,
// chargebacks and insufficient-funds notifications all mark matching orders
// refunded
func (tt TransactionType) IsRefund() bool {
	return tt == RefundTransaction || tt == ChargebackTransaction ||
		tt == InsufficientFundsTransaction
}
