package state

import (
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// QueryLatestBlock returns the number of the last block in the ledger.
func (s *State) QueryLatestBlock() uint64 {
	return s.db.LatestBlock()
}

// QueryBlock returns the block with the specified number.
func (s *State) QueryBlock(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// QueryTransactions returns every transaction in the ledger in block order.
func (s *State) QueryTransactions() ([]database.Tx, error) {
	return s.db.Transactions()
}
