package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
	"github.com/spf13/cobra"
)

var (
	toIndex     int
	amount      float64
	pendingPath string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transfer from the wallet index and add it to the pending block",
	Run:   signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().IntVarP(&toIndex, "to", "t", 0, "Index of the wallet receiving the amount.")
	signCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	signCmd.Flags().StringVarP(&pendingPath, "pending", "p", "zblock/pending.json", "Path to the pending block file.")
	signCmd.MarkFlagRequired("to")
	signCmd.MarkFlagRequired("amount")
}

func signRun(cmd *cobra.Command, args []string) {
	privateKey, err := wallet.LoadPrivateKey(wallet.PrivateKeyPath(keysRoot, walletIndex))
	if err != nil {
		log.Fatal(err)
	}

	sender, err := wallet.NewKey(&privateKey.PublicKey)
	if err != nil {
		log.Fatal(err)
	}

	recipient, err := wallet.LoadPublicKey(wallet.KeyPath(keysRoot, toIndex))
	if err != nil {
		log.Fatal(err)
	}

	tx, err := database.NewTx(time.Now(), amount, sender.Bytes(), recipient.Bytes())
	if err != nil {
		log.Fatal(err)
	}

	hash, err := signature.Hash(tx)
	if err != nil {
		log.Fatal(err)
	}

	sig, err := signature.Sign(privateKey, hash)
	if err != nil {
		log.Fatal(err)
	}

	if tx, err = tx.Signed(hash, sig); err != nil {
		log.Fatal(err)
	}

	pending, err := readPending(pendingPath)
	if err != nil {
		log.Fatal(err)
	}

	pending.Trans = append(pending.Trans, tx)
	pending.Header.TransCount = uint64(len(pending.Trans))

	if err := writePending(pendingPath, pending); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("signed: hash[%d]: pending trans[%d]\n", hash, len(pending.Trans))
}

// =============================================================================

// readPending reads the block waiting to be recorded. A missing file is an
// empty block.
func readPending(path string) (database.BlockData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return database.BlockData{}, nil
		}
		return database.BlockData{}, err
	}

	var pending database.BlockData
	if err := json.Unmarshal(data, &pending); err != nil {
		return database.BlockData{}, fmt.Errorf("decoding pending block: %w", err)
	}

	return pending, nil
}

func writePending(path string, pending database.BlockData) error {
	data, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
