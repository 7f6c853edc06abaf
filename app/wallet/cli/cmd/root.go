// Package cmd contains the wallet app commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ardanlabs/ledger/foundation/ledger/database/storage/disk"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/spf13/cobra"
)

var (
	keysRoot    string
	dbPath      string
	genesisPath string
	verbose     bool
	walletIndex int
)

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet tooling for the ledger",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&keysRoot, "keys", "k", "keys", "Path to the folder holding a folder per wallet index.")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "zblock/blocks", "Path to the folder holding the block files.")
	rootCmd.PersistentFlags().StringVarP(&genesisPath, "genesis", "g", "zblock/genesis.json", "Path to the genesis file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log the ledger events.")
	rootCmd.PersistentFlags().IntVarP(&walletIndex, "index", "i", 0, "Index of the wallet to use.")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openState opens the ledger described by the persistent flags. A missing
// genesis file means every wallet starts at zero.
func openState() (*state.State, error) {
	gen, err := genesis.Load(genesisPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	strg, err := disk.New(dbPath)
	if err != nil {
		return nil, err
	}

	cfg := state.Config{
		KeysRoot: keysRoot,
		Storage:  strg,
		Genesis:  gen,
	}

	if verbose {
		log, err := logger.New("WALLET", "stderr")
		if err != nil {
			return nil, err
		}
		cfg.EvHandler = func(v string, args ...any) {
			log.Infow(fmt.Sprintf(v, args...))
		}
	}

	return state.New(cfg)
}
