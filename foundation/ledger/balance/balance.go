// Package balance derives wallet balances from the transaction history.
package balance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// ErrNoWallet is returned when a balance is asked for without a loaded key.
var ErrNoWallet = errors.New("wallet key not loaded")

// Policy decides what happens to transactions that fail verification.
type Policy int

// Set of policies for unverified transactions.
const (
	IncludeAll        Policy = iota // Every transaction counts, nothing is verified.
	ExcludeUnverified               // Unverified transactions contribute nothing.
	FlagUnverified                  // Every transaction counts, unverified ones are flagged.
)

var policyNames = map[Policy]string{
	IncludeAll:        "all",
	ExcludeUnverified: "verified",
	FlagUnverified:    "flag",
}

// ParsePolicy converts the name of a policy into its value.
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if strings.EqualFold(name, n) {
			return p, nil
		}
	}

	return IncludeAll, fmt.Errorf("unknown policy %q, use all, verified or flag", name)
}

// String implements the fmt.Stringer interface.
func (p Policy) String() string {
	if n, exists := policyNames[p]; exists {
		return n
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Verifier decides if a transaction is authentic.
type Verifier func(tx database.Tx) bool

// Options configures how a balance is computed. The zero value starts at
// zero and counts every transaction.
type Options struct {
	Start    float64
	Policy   Policy
	Verifier Verifier // Defaults to verifying with the recorded sender key.
}

// =============================================================================

// Direction describes how a transaction relates to a wallet.
type Direction int

// Set of directions a transaction can have for a wallet.
const (
	Unrelated Direction = iota
	Sent
	Received
)

// String implements the fmt.Stringer interface.
func (d Direction) String() string {
	switch d {
	case Sent:
		return "sent"
	case Received:
		return "received"
	}
	return "unrelated"
}

// DirectionOf returns the direction of the transaction for the wallet. The
// sender field is checked first so a transfer to yourself counts as sent.
func DirectionOf(key wallet.Key, tx database.Tx) Direction {
	switch {
	case wallet.Matches(key, tx.SenderKey):
		return Sent
	case wallet.Matches(key, tx.RecipientKey):
		return Received
	}
	return Unrelated
}

// Entry is the effect of one transaction on the balance.
type Entry struct {
	Index     int
	Tx        database.Tx
	Direction Direction
	Delta     float64
	Running   float64
	Checked   bool // False under IncludeAll since nothing is verified.
	Verified  bool // Only meaningful when Checked is set.
	Excluded  bool
}

// Statement is the result of folding a transaction list for a wallet.
type Statement struct {
	Address string
	Start   float64
	Balance float64
	Policy  Policy
	Entries []Entry
	Flagged []int // Indexes of related transactions that failed verification.
}

// =============================================================================

// Total returns the balance for the wallet counting every transaction
// without verifying any of them.
func Total(key wallet.Key, trans []database.Tx, start float64) float64 {
	bal := start
	for _, tx := range trans {
		bal += delta(DirectionOf(key, tx), tx.Amount)
	}

	return bal
}

// Compute folds the transactions in sequence order into a statement for the
// wallet. Only transactions related to the wallet are verified.
func Compute(key wallet.Key, trans []database.Tx, opts Options) (Statement, error) {
	if key.IsZero() {
		return Statement{}, ErrNoWallet
	}

	if _, exists := policyNames[opts.Policy]; !exists {
		return Statement{}, fmt.Errorf("unknown policy %d", opts.Policy)
	}

	verify := opts.Verifier
	if verify == nil {
		verify = signature.VerifySender
	}

	st := Statement{
		Address: key.Address(),
		Start:   opts.Start,
		Balance: opts.Start,
		Policy:  opts.Policy,
		Entries: make([]Entry, 0, len(trans)),
	}

	for i, tx := range trans {
		dir := DirectionOf(key, tx)
		if dir == Unrelated {
			continue
		}

		e := Entry{
			Index:     i,
			Tx:        tx,
			Direction: dir,
		}

		if opts.Policy != IncludeAll {
			e.Checked = true
			e.Verified = verify(tx)
		}

		switch {
		case e.Checked && !e.Verified && opts.Policy == ExcludeUnverified:
			e.Excluded = true
		case e.Checked && !e.Verified && opts.Policy == FlagUnverified:
			st.Flagged = append(st.Flagged, i)
			e.Delta = delta(dir, tx.Amount)
		default:
			e.Delta = delta(dir, tx.Amount)
		}

		st.Balance += e.Delta
		e.Running = st.Balance
		st.Entries = append(st.Entries, e)
	}

	return st, nil
}

// delta returns the signed change a transaction amount makes for the
// specified direction.
func delta(dir Direction, amount float64) float64 {
	switch dir {
	case Sent:
		return -amount
	case Received:
		return amount
	}
	return 0
}
