package database

import (
	"fmt"
	"time"
)

// Tx is a signed transfer of value between two wallets as it is recorded
// inside a block.
type Tx struct {
	TimeStamp    time.Time `json:"timestamp"`     // Time the transaction was created.
	Amount       float64   `json:"amount"`        // Value moved from the sender to the recipient.
	Hash         uint64    `json:"hash"`          // Hash the sender signed, recovered from the signature on verification.
	Signature    Signature `json:"signature"`     // Sender's signature over the hash bytes.
	RecipientKey KeyBytes  `json:"recipient_key"` // Encoded public key of the wallet receiving the amount.
	SenderKey    KeyBytes  `json:"sender_key"`    // Encoded public key of the wallet sending the amount.
}

// NewTx constructs a transaction that still needs to be signed. The hash
// is left at zero until Signed is called.
func NewTx(timeStamp time.Time, amount float64, sender KeyBytes, recipient KeyBytes) (Tx, error) {
	sender, err := NewKeyBytes(sender)
	if err != nil {
		return Tx{}, fmt.Errorf("sender %w", err)
	}

	recipient, err = NewKeyBytes(recipient)
	if err != nil {
		return Tx{}, fmt.Errorf("recipient %w", err)
	}

	tx := Tx{
		TimeStamp:    timeStamp.UTC(),
		Amount:       amount,
		RecipientKey: recipient,
		SenderKey:    sender,
	}

	return tx, nil
}

// Signed returns a copy of the transaction carrying the hash and the
// signature produced over it.
func (tx Tx) Signed(hash uint64, sig Signature) (Tx, error) {
	sig, err := NewSignature(sig)
	if err != nil {
		return Tx{}, err
	}

	tx.Hash = hash
	tx.Signature = sig

	return tx, nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%d:%.2f", tx.Hash, tx.Amount)
}
