package balance

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// Sheet maintains the balances of every wallet seen in the transaction
// history, keyed by wallet address.
type Sheet struct {
	sheet map[string]float64
	mu    sync.RWMutex
}

// NewSheet constructs a new balance sheet for use, expects a starting
// balance sheet usually from a genesis file.
func NewSheet(sheet map[string]float64) *Sheet {
	bs := Sheet{
		sheet: make(map[string]float64),
	}

	for address, value := range sheet {
		bs.sheet[address] = value
	}

	return &bs
}

// Copy makes a copy of the current balance sheet but returns the raw data.
func (bs *Sheet) Copy() map[string]float64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	sheet := make(map[string]float64, len(bs.sheet))
	for address, value := range bs.sheet {
		sheet[address] = value
	}
	return sheet
}

// Balance returns the balance for the specified address.
func (bs *Sheet) Balance(address string) float64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	return bs.sheet[address]
}

// ApplyTransaction debits the sender and credits the recipient. When both
// sides are the same wallet only the debit is applied, the same way a
// single wallet balance treats a transfer to itself.
func (bs *Sheet) ApplyTransaction(tx database.Tx) {
	from := wallet.AddressOf(tx.SenderKey)
	to := wallet.AddressOf(tx.RecipientKey)

	bs.mu.Lock()
	defer bs.mu.Unlock()

	bs.sheet[from] -= tx.Amount
	if !tx.SenderKey.Equal(tx.RecipientKey) {
		bs.sheet[to] += tx.Amount
	}
}

// ApplyTransactions applies the transactions in sequence order. A verifier
// can be provided to skip transactions that fail verification.
func (bs *Sheet) ApplyTransactions(trans []database.Tx, verify Verifier) (skipped int) {
	for _, tx := range trans {
		if verify != nil && !verify(tx) {
			skipped++
			continue
		}
		bs.ApplyTransaction(tx)
	}

	return skipped
}
