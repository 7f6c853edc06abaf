// Package state is the core API for the ledger and ties together the key
// provider, the block database, signature verification and balances.
package state

import (
	"runtime"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// EventHandler defines a function that is called when events
// occur in the processing of a ledger session.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to open the ledger.
type Config struct {
	KeysRoot  string           // Folder holding a sub folder per wallet index.
	Storage   database.Storage // Where the blocks are read from.
	Genesis   genesis.Genesis  // Starting balances per wallet index.
	Workers   int              // Goroutines used to verify large transaction lists.
	EvHandler EventHandler
}

// State manages access to the ledger.
type State struct {
	keysRoot  string
	workers   int
	evHandler EventHandler

	genesis genesis.Genesis
	db      *database.Database
}

// New constructs the ledger state, reading through the blocks in storage
// once to make sure they can be used.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	db, err := database.New(cfg.Storage, ev)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	s := State{
		keysRoot:  cfg.KeysRoot,
		workers:   workers,
		evHandler: ev,
		genesis:   cfg.Genesis,
		db:        db,
	}

	ev("state: New: blocks[%d]", db.LatestBlock())

	return &s, nil
}

// Shutdown releases the storage.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	return s.db.Close()
}

// Reset clears every block from the ledger.
func (s *State) Reset() error {
	if err := s.db.Reset(); err != nil {
		return err
	}

	s.evHandler("state: Reset: blocks cleared")

	return nil
}

// LoadWallet loads the public key for the wallet at the specified index.
// Any error here ends the session asking for the key.
func (s *State) LoadWallet(index int) (wallet.Key, error) {
	path := wallet.KeyPath(s.keysRoot, index)

	key, err := wallet.LoadPublicKey(path)
	if err != nil {
		s.evHandler("state: LoadWallet: wallet[%d]: ERROR: %s", index, err)
		return wallet.Key{}, err
	}

	s.evHandler("state: LoadWallet: wallet[%d]: address[%s]", index, key.Address())

	return key, nil
}

// WriteBlock appends the block to the ledger. Blocks are produced outside
// the ledger, this only records them.
func (s *State) WriteBlock(block database.Block) (uint64, error) {
	num, err := s.db.Write(block)
	if err != nil {
		return 0, err
	}

	s.evHandler("state: WriteBlock: blk[%d]: trans[%d]", num, len(block.Trans))

	return num, nil
}
