package state

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// Verification is the outcome of checking one transaction.
type Verification struct {
	Index     int
	Tx        database.Tx
	Direction balance.Direction
	Verified  bool
}

// VerifyBlock checks every transaction in the specified block with the
// wallet key.
func (s *State) VerifyBlock(num uint64, key wallet.Key) ([]Verification, error) {
	block, err := s.db.GetBlock(num)
	if err != nil {
		return nil, err
	}

	s.evHandler("state: VerifyBlock: blk[%d]: trans[%d]: address[%s]", num, len(block.Trans), key.Address())

	return s.VerifyAll(key, block.Trans)
}

// VerifyAll checks the transactions with the wallet key. The work is spread
// over the configured number of goroutines and the results come back in
// sequence order. Only an unusable key returns an error.
func (s *State) VerifyAll(key wallet.Key, trans []database.Tx) ([]Verification, error) {
	if key.IsZero() {
		return nil, signature.ErrInvalidKey
	}

	results := make([]Verification, len(trans))
	errs := make([]error, len(trans))

	workers := min(s.workers, len(trans))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			for i := range indexes {
				tx := trans[i]

				verified, err := signature.Verify(tx, key)
				errs[i] = err

				results[i] = Verification{
					Index:     i,
					Tx:        tx,
					Direction: balance.DirectionOf(key, tx),
					Verified:  verified,
				}
			}
		}()
	}

	for i := range trans {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	// Only an unusable key comes back as an error and it ends the session.
	for _, err := range errs {
		if err != nil {
			s.evHandler("state: VerifyAll: address[%s]: ERROR: %s", key.Address(), err)
			return nil, err
		}
	}

	for _, v := range results {
		if !v.Verified {
			s.evHandler("state: VerifyAll: tx[%d]: hash[%d]: NOT VERIFIED", v.Index, v.Tx.Hash)
		}
	}

	return results, nil
}
