// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time          `json:"date"`
	ChainID       uint16             `json:"chain_id"`       // The chain id represents an unique id for this ledger.
	StartBalances map[string]float64 `json:"start_balances"` // Balance each wallet index holds before the first block.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	for index := range genesis.StartBalances {
		if _, err := strconv.Atoi(index); err != nil {
			return Genesis{}, fmt.Errorf("genesis balance key %q is not a wallet index", index)
		}
	}

	return genesis, nil
}

// StartBalance returns the starting balance for the wallet at the
// specified index. Wallets not listed start at zero.
func (g Genesis) StartBalance(index int) float64 {
	return g.StartBalances[strconv.Itoa(index)]
}
