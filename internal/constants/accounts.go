package constants

const (
	MaxNameLen  = 100
	AmountScale = 2
)

// ShortIDLen is how many id characters tables print.
const ShortIDLen = 8

const (
	KindDebit   = "debit"
	KindDeposit = "deposit"
	KindCredit  = "credit"
)

