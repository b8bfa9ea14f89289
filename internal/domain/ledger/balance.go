package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// LogBalance pairs a transaction log with the running balance
// of the ledger after that log is applied.
type LogBalance struct {
	Log     TransactionLog
	Balance decimal.Decimal
}

// SortChronological orders logs oldest first. Ties on the business date
// break on the string form of the id, so the order is total and stable
// across replays regardless of input order.
func SortChronological(logs []TransactionLog) []TransactionLog {
	sorted := make([]TransactionLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return strings.Compare(sorted[i].ID.String(), sorted[j].ID.String()) < 0
	})
	return sorted
}

// Replay computes the running balance after each log, oldest first.
// DUE entries raise the balance, ADD entries lower it. The balance may
// go negative when a customer overpays; that is preserved, not clamped.
func Replay(logs []TransactionLog) []LogBalance {
	sorted := SortChronological(logs)
	result := make([]LogBalance, 0, len(sorted))
	running := decimal.Zero
	for _, log := range sorted {
		running = running.Add(log.SignedAmount())
		result = append(result, LogBalance{Log: log, Balance: running})
	}
	return result
}

// DisplayOrder returns the replayed statement newest first, the order
// the ledger is shown to the shopkeeper.
func DisplayOrder(statement []LogBalance) []LogBalance {
	reversed := make([]LogBalance, len(statement))
	for i, entry := range statement {
		reversed[len(statement)-1-i] = entry
	}
	return reversed
}

// RecomputeTotals derives the cached amount/paid pair from the full log
// set. Amount is the sum of all DUE entries, paid the sum of all ADD
// entries; the outstanding balance is their difference.
func RecomputeTotals(logs []TransactionLog) (amount, paid decimal.Decimal) {
	amount = decimal.Zero
	paid = decimal.Zero
	for _, log := range logs {
		switch log.Type {
		case TransactionTypeDue:
			amount = amount.Add(log.Amount)
		case TransactionTypeAdd:
			paid = paid.Add(log.Amount)
		}
	}
	return amount, paid
}
