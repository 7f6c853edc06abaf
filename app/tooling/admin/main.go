// This program performs administrative tasks for the ledger.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/app/tooling/admin/commands"
	"github.com/ardanlabs/ledger/foundation/ledger/database/storage/disk"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN", "stderr")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args   conf.Args
		Ledger struct {
			DBPath      string `conf:"default:zblock/blocks"`
			KeysRoot    string `conf:"default:keys"`
			GenesisPath string `conf:"default:zblock/genesis.json"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "ledger administration: bals [verified] | trans [index] | reset",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	gen, err := genesis.Load(cfg.Ledger.GenesisPath)
	if err != nil {
		return fmt.Errorf("loading genesis: %w", err)
	}

	strg, err := disk.New(cfg.Ledger.DBPath)
	if err != nil {
		return err
	}

	st, err := state.New(state.Config{
		KeysRoot: cfg.Ledger.KeysRoot,
		Storage:  strg,
		Genesis:  gen,
		EvHandler: func(v string, args ...any) {
			log.Infow(fmt.Sprintf(v, args...))
		},
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	ns, err := nameservice.New(cfg.Ledger.KeysRoot)
	if err != nil {
		return err
	}

	return processCommands(cfg.Args, st, ns)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, st *state.State, ns *nameservice.NameService) error {
	switch args.Num(0) {
	case "bals":
		if err := commands.Balances(args, st, ns); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}
	case "trans":
		if err := commands.Transactions(args, st, ns); err != nil {
			return fmt.Errorf("getting transactions: %w", err)
		}
	case "reset":
		if err := st.Reset(); err != nil {
			return fmt.Errorf("resetting ledger: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q", args.Num(0))
	}

	return nil
}
