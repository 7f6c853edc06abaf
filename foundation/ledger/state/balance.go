package state

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
)

// Balance loads the wallet at the specified index and folds the whole
// ledger into a statement using the genesis starting balance.
func (s *State) Balance(index int, policy balance.Policy) (balance.Statement, error) {
	key, err := s.LoadWallet(index)
	if err != nil {
		return balance.Statement{}, err
	}

	trans, err := s.db.Transactions()
	if err != nil {
		return balance.Statement{}, err
	}

	opts := balance.Options{
		Start:  s.genesis.StartBalance(index),
		Policy: policy,
	}

	st, err := balance.Compute(key, trans, opts)
	if err != nil {
		return balance.Statement{}, err
	}

	s.evHandler("state: Balance: wallet[%d]: policy[%s]: entries[%d]: flagged[%d]: balance[%.2f]", index, policy, len(st.Entries), len(st.Flagged), st.Balance)

	return st, nil
}

// Balances returns the balance of every wallet seen in the ledger keyed
// by wallet address. Wallets with a genesis balance are resolved through
// the keys folder. When verified is set, transactions failing verification
// with their recorded sender key are skipped.
func (s *State) Balances(verified bool) (map[string]float64, error) {
	start := make(map[string]float64)
	for index := range s.genesis.StartBalances {
		idx, err := parseIndex(index)
		if err != nil {
			return nil, err
		}

		key, err := s.LoadWallet(idx)
		if err != nil {
			return nil, err
		}
		start[key.Address()] = s.genesis.StartBalance(idx)
	}

	trans, err := s.db.Transactions()
	if err != nil {
		return nil, err
	}

	var verify balance.Verifier
	if verified {
		verify = signature.VerifySender
	}

	sheet := balance.NewSheet(start)
	skipped := sheet.ApplyTransactions(trans, verify)

	s.evHandler("state: Balances: trans[%d]: skipped[%d]", len(trans), skipped)

	return sheet.Copy(), nil
}

// parseIndex converts a genesis balance key into a wallet index.
func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid wallet index %q: %w", s, err)
	}
	return index, nil
}
