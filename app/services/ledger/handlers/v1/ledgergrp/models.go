package ledgergrp

import (
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

type entry struct {
	Index        int       `json:"index"`
	TimeStamp    time.Time `json:"timestamp"`
	Direction    string    `json:"direction"`
	Counterparty string    `json:"counterparty"`
	Amount       float64   `json:"amount"`
	Delta        float64   `json:"delta"`
	Running      float64   `json:"running"`
	Verified     *bool     `json:"verified,omitempty"` // Left out when the policy verifies nothing.
	Excluded     bool      `json:"excluded,omitempty"`
}

type statement struct {
	Wallet  int     `json:"wallet"`
	Address string  `json:"address"`
	Policy  string  `json:"policy"`
	Mode    string  `json:"mode"`
	Start   float64 `json:"start"`
	Balance float64 `json:"balance"`
	Flagged []int   `json:"flagged,omitempty"`
	Entries []entry `json:"entries,omitempty"`
}

type balanceInfo struct {
	Address string  `json:"address"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type balances struct {
	LatestBlock uint64        `json:"latest_block"`
	Verified    bool          `json:"verified"`
	Balances    []balanceInfo `json:"balances"`
}

type verification struct {
	Index     int    `json:"index"`
	Hash      uint64 `json:"hash"`
	Direction string `json:"direction"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Verified  bool   `json:"verified"`
}

type block struct {
	Number uint64               `json:"number"`
	Header database.BlockHeader `json:"header"`
	Trans  []database.Tx        `json:"trans"`
}

// verifyTx is the payload for checking a single transaction against the key
// of a wallet in the keys folder.
type verifyTx struct {
	Wallet *int         `json:"wallet" validate:"required,gte=0"`
	Tx     *database.Tx `json:"tx" validate:"required"`
}
