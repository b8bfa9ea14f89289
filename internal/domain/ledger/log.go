package ledger

import (
	"time"

	"github.com/duebook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of a due-ledger transaction
type TransactionType string

const (
	// TransactionTypeDue represents new debt (goods given without payment)
	TransactionTypeDue TransactionType = "DUE"
	// TransactionTypeAdd represents a payment received (debt reduced)
	TransactionTypeAdd TransactionType = "ADD"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDue, TransactionTypeAdd:
		return true
	}
	return false
}

// TransactionLog is one immutable entry in a customer's due ledger.
// Once created a log is never modified; a correction is a delete followed
// by a new entry with a fresh id.
type TransactionLog struct {
	ID         uuid.UUID
	Date       time.Time // business date, may be back-dated by the user
	RecordedAt time.Time // wall-clock creation time, display only
	Type       TransactionType
	Amount     decimal.Decimal // always positive, direction determined by type
}

// NewTransactionLog creates a new transaction log entry
func NewTransactionLog(date time.Time, txType TransactionType, amount decimal.Decimal) (TransactionLog, error) {
	if !txType.IsValid() {
		return TransactionLog{}, shared.NewDomainError("INVALID_TYPE", "Transaction type must be 'DUE' or 'ADD'")
	}
	if err := validateAmount(amount); err != nil {
		return TransactionLog{}, err
	}
	if date.IsZero() {
		return TransactionLog{}, shared.NewDomainError("INVALID_DATE", "Transaction date cannot be empty")
	}

	return TransactionLog{
		ID:         uuid.New(),
		Date:       date,
		RecordedAt: time.Now(),
		Type:       txType,
		Amount:     amount,
	}, nil
}

// SignedAmount returns the amount with sign based on transaction type:
// positive for DUE (debt grows), negative for ADD (debt shrinks).
func (l TransactionLog) SignedAmount() decimal.Decimal {
	if l.Type == TransactionTypeAdd {
		return l.Amount.Neg()
	}
	return l.Amount
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return nil
}
