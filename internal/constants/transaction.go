package constants

const (
	// Scenario step operations
	OpOpen          = "open"
	OpTopUp         = "topup"
	OpWithdraw      = "withdraw"
	OpSend          = "send"
	OpBlacklist     = "blacklist"
	OpUpdateClient  = "update_client"
	OpTick          = "tick"
	OpExpectBalance = "expect_balance"
	OpClose         = "close"
	OpConfigureBank = "configure_bank"
	OpRemoveClient  = "remove_client"

	// Date Layout
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)
