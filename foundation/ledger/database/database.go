// Package database handles the block and transaction data structures for the
// ledger and the lower level access to blocks held in storage.
package database

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by storage when a block does not exist.
var ErrNotFound = errors.New("block not found")

// Storage interface represents the behavior required to be implemented by any
// package providing support for storing and reading the blockchain.
type Storage interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// DatabaseIterator walks the blocks in storage converting each one into
// a validated Block.
type DatabaseIterator struct {
	iterator Iterator
}

// Next retrieves the next block from storage.
func (di *DatabaseIterator) Next() (Block, error) {
	blockData, err := di.iterator.Next()
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData)
}

// Done returns the end of chain value.
func (di *DatabaseIterator) Done() bool {
	return di.iterator.Done()
}

// =============================================================================

// Database provides access to the blocks of the ledger held in storage.
type Database struct {
	mu          sync.RWMutex
	storage     Storage
	latestBlock uint64
}

// New constructs a database over the specified storage. The blocks are read
// once to make sure every block in storage is well formed.
func New(storage Storage, evHandler func(v string, args ...any)) (*Database, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	db := Database{
		storage: storage,
	}

	iter := db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, fmt.Errorf("reading block %d: %w", db.latestBlock+1, err)
		}

		db.latestBlock++
		ev("database: New: loaded: blk[%d]: trans[%d]", db.latestBlock, len(block.Trans))
	}

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() error {
	return db.storage.Close()
}

// Reset clears out the blocks held in storage.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return err
	}
	db.latestBlock = 0

	return nil
}

// LatestBlock returns the number of the last block in storage. Zero means
// the storage holds no blocks.
func (db *Database) LatestBlock() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Write appends a new block to the end of the chain and returns the number
// it was stored under.
func (db *Database) Write(block Block) (uint64, error) {
	if err := block.Validate(); err != nil {
		return 0, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	num := db.latestBlock + 1
	if err := db.storage.Write(NewBlockData(num, block)); err != nil {
		return 0, err
	}
	db.latestBlock = num

	return num, nil
}

// GetBlock searches the blockchain in storage to locate and return the
// contents of the specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	if num == 0 {
		return Block{}, errors.New("block numbers start at 1")
	}

	blockData, err := db.storage.GetBlock(num)
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData)
}

// ForEach returns an iterator to walk through all the blocks
// starting with block number 1.
func (db *Database) ForEach() DatabaseIterator {
	return DatabaseIterator{iterator: db.storage.ForEach()}
}

// Transactions returns every transaction in the chain in block order.
func (db *Database) Transactions() ([]Tx, error) {
	var trans []Tx

	iter := db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		trans = append(trans, block.Trans...)
	}

	return trans, nil
}
