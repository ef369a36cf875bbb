package ledger

// ==================== Error Messages ====================

const (
	ErrMsgNegativeDebitFmt       = "debit amount %d is negative: %w"
	ErrMsgNonPositiveCreditFmt   = "credit amount %d must be positive: %w"
	ErrMsgZeroDeltaFmt           = "inventory delta must not be zero: %w"
	ErrMsgDecrementExceedsFmt    = "cannot remove %d of item %d, holding %d: %w"
	ErrMsgAccountNotFoundFmt     = "%w: %s"
	ErrMsgBeginTransactionFailed = "failed to begin transaction: %w"
	ErrMsgCommitFailed           = "failed to commit ledger transaction: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgDebitApplied       = "Balance debited"
	LogMsgDebitRejected      = "Debit rejected"
	LogMsgCreditApplied      = "Balance credited"
	LogMsgInventoryUpserted  = "Inventory upserted"
	LogMsgLedgerOpFailed     = "Ledger operation failed"
	LogMsgInventoryRowDelete = "Inventory entry emptied"
)
