package cashbook

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Reference links a cash book entry back to the due ledger transaction
// that produced it. Both ids are embedded as tags in the entry note,
// which is the only join between the two books.
type Reference struct {
	LedgerID uuid.UUID
	LogID    uuid.UUID
}

var (
	ledgerTagPattern = regexp.MustCompile(`\[ref:due:([0-9a-fA-F-]{36})\]`)
	logTagPattern    = regexp.MustCompile(`\[ref:log_id:([0-9a-fA-F-]{36})\]`)
)

// NewReference creates a reference for the given ledger and log ids
func NewReference(ledgerID, logID uuid.UUID) Reference {
	return Reference{LedgerID: ledgerID, LogID: logID}
}

// Format renders the reference as note tags:
// "[ref:due:<ledgerId>] [ref:log_id:<logId>]"
func (r Reference) Format() string {
	return fmt.Sprintf("[ref:due:%s] [ref:log_id:%s]", r.LedgerID, r.LogID)
}

// LedgerTag renders only the ledger tag, used to match every entry
// belonging to one customer regardless of log id.
func LedgerTag(ledgerID uuid.UUID) string {
	return fmt.Sprintf("[ref:due:%s]", ledgerID)
}

// LogTag renders only the log tag, used to match the single entry
// paired with one transaction.
func LogTag(logID uuid.UUID) string {
	return fmt.Sprintf("[ref:log_id:%s]", logID)
}

// ParseReference extracts a reference from free-form note text. Both
// tags must be present and carry well-formed uuids; surrounding prose
// is ignored.
func ParseReference(note string) (Reference, bool) {
	ledgerMatch := ledgerTagPattern.FindStringSubmatch(note)
	logMatch := logTagPattern.FindStringSubmatch(note)
	if ledgerMatch == nil || logMatch == nil {
		return Reference{}, false
	}

	ledgerID, err := uuid.Parse(ledgerMatch[1])
	if err != nil {
		return Reference{}, false
	}
	logID, err := uuid.Parse(logMatch[1])
	if err != nil {
		return Reference{}, false
	}

	return Reference{LedgerID: ledgerID, LogID: logID}, true
}
