package database

import (
	"errors"
	"fmt"
	"time"
)

// ErrTransCount is returned when a block holds a different number of
// transactions than its header declares.
var ErrTransCount = errors.New("transaction count does not match header")

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	PrevBlock  uint64    `json:"prev_block"`  // Id of the previous block in the chain.
	Difficulty uint64    `json:"difficulty"`  // Numeric target the block was produced against.
	Nonce      uint64    `json:"nonce"`       // Value identified by the block producer.
	TimeStamp  time.Time `json:"timestamp"`   // Time the block was produced.
	TransCount uint64    `json:"trans_count"` // Number of transactions in the block.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header BlockHeader
	Trans  []Tx
}

// NewBlock constructs a block, making sure the header describes the
// transactions provided.
func NewBlock(header BlockHeader, trans []Tx) (Block, error) {
	b := Block{
		Header: header,
		Trans:  trans,
	}

	if err := b.Validate(); err != nil {
		return Block{}, err
	}

	return b, nil
}

// Validate checks the block is internally consistent.
func (b Block) Validate() error {
	if uint64(len(b.Trans)) != b.Header.TransCount {
		return fmt.Errorf("%w: header %d, block %d", ErrTransCount, b.Header.TransCount, len(b.Trans))
	}

	return nil
}

// =============================================================================

// BlockData represents what is written to storage.
type BlockData struct {
	Number uint64      `json:"number"`
	Header BlockHeader `json:"header"`
	Trans  []Tx        `json:"trans"`
}

// NewBlockData constructs the value to serialize to storage.
func NewBlockData(num uint64, block Block) BlockData {
	return BlockData{
		Number: num,
		Header: block.Header,
		Trans:  block.Trans,
	}
}

// ToBlock converts a storage value into a Block.
func ToBlock(blockData BlockData) (Block, error) {
	return NewBlock(blockData.Header, blockData.Trans)
}
