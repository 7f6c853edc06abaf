// Package report turns ledger values into the human readable form shown by
// the wallet tooling and the web api.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// Mode selects how much of a balance statement is shown.
type Mode int

// Set of display modes for a balance statement.
const (
	PerTransaction Mode = iota + 1 // Each transaction followed by the total.
	TotalOnly                      // Just the total.
)

// ParseMode converts a menu choice or name into a display mode. The menu
// choices are 1 for each transaction and the total, 2 for the total only.
func ParseMode(choice string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "1", "tx", "transactions":
		return PerTransaction, nil
	case "2", "total":
		return TotalOnly, nil
	}

	return 0, fmt.Errorf("invalid display mode %q, enter 1 (tx) or 2 (total)", choice)
}

// String implements the fmt.Stringer interface.
func (m Mode) String() string {
	switch m {
	case PerTransaction:
		return "tx"
	case TotalOnly:
		return "total"
	}
	return "unknown"
}

// =============================================================================

// Field is a labelled value in a report.
type Field struct {
	Label string
	Value string
}

// Header returns the fields describing a block header.
func Header(h database.BlockHeader) []Field {
	return []Field{
		{"Previous block", fmt.Sprintf("%d", h.PrevBlock)},
		{"Difficulty", fmt.Sprintf("%X", h.Difficulty)},
		{"Nonce", fmt.Sprintf("%d", h.Nonce)},
		{"Timestamp", TimeStamp(h.TimeStamp)},
		{"Transactions", fmt.Sprintf("%d", h.TransCount)},
	}
}

// Transaction returns the fields describing a transaction. Key and
// signature bytes are shown as hex.
func Transaction(tx database.Tx) []Field {
	return []Field{
		{"Timestamp", TimeStamp(tx.TimeStamp)},
		{"Amount", Amount(tx.Amount)},
		{"Hash", fmt.Sprintf("%d", tx.Hash)},
		{"Signature", tx.Signature.String()},
		{"Recipient key", tx.RecipientKey.String()},
		{"Sender key", tx.SenderKey.String()},
	}
}

// Amount formats an amount with two decimals.
func Amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// TimeStamp formats a point in time for display.
func TimeStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateTime)
}
