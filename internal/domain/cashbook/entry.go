package cashbook

import (
	"strings"
	"time"

	"github.com/duebook/backend/internal/domain/ledger"
	"github.com/duebook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryDirection marks which way money moved through the drawer
type EntryDirection string

const (
	// DirectionDeposit represents cash coming into the drawer
	DirectionDeposit EntryDirection = "DEPOSIT"
	// DirectionWithdraw represents cash leaving the drawer
	DirectionWithdraw EntryDirection = "WITHDRAW"
)

// String returns the string representation of EntryDirection
func (d EntryDirection) String() string {
	return string(d)
}

// IsValid returns true if the direction is valid
func (d EntryDirection) IsValid() bool {
	switch d {
	case DirectionDeposit, DirectionWithdraw:
		return true
	}
	return false
}

// DirectionFor maps a due-ledger transaction type to its cash drawer
// direction. A DUE entry means value left the shop without payment, so
// the drawer position is written down as a withdrawal; an ADD entry is
// payment received, a deposit.
func DirectionFor(txType ledger.TransactionType) EntryDirection {
	if txType == ledger.TransactionTypeAdd {
		return DirectionDeposit
	}
	return DirectionWithdraw
}

// CashEntry is one line in the shop's cash book. Entries paired with a
// due ledger carry a reference tag in the note; standalone entries have
// free-form notes.
type CashEntry struct {
	shared.BaseAggregateRoot
	Date      time.Time
	Direction EntryDirection
	Amount    decimal.Decimal
	Note      string
}

// NewCashEntry creates a standalone cash book entry
func NewCashEntry(date time.Time, direction EntryDirection, amount decimal.Decimal, note string) (*CashEntry, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Entry direction must be 'DEPOSIT' or 'WITHDRAW'")
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date cannot be empty")
	}

	return &CashEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Direction:         direction,
		Amount:            amount,
		Note:              strings.TrimSpace(note),
	}, nil
}

// NewPairedEntry creates the cash book side of a due ledger
// transaction. The note carries the reference tag so the pair can be
// found and removed when the log entry is deleted.
func NewPairedEntry(log ledger.TransactionLog, ref Reference, customerName string) (*CashEntry, error) {
	note := pairedNote(log.Type, customerName) + " " + ref.Format()
	return NewCashEntry(log.Date, DirectionFor(log.Type), log.Amount, note)
}

// Reference parses the reference tag out of the entry note, if any.
func (e *CashEntry) Reference() (Reference, bool) {
	return ParseReference(e.Note)
}

// IsPaired reports whether the entry carries a due ledger reference.
func (e *CashEntry) IsPaired() bool {
	_, ok := ParseReference(e.Note)
	return ok
}

// SignedAmount returns the amount with sign based on direction:
// positive for deposits, negative for withdrawals.
func (e *CashEntry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionWithdraw {
		return e.Amount.Neg()
	}
	return e.Amount
}

func pairedNote(txType ledger.TransactionType, customerName string) string {
	if txType == ledger.TransactionTypeAdd {
		return "Due payment from " + customerName
	}
	return "Due given to " + customerName
}
