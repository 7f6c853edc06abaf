// Package nameservice reads the wallet keys folder and creates a name
// service lookup for the wallets found there.
package nameservice

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// NameService maintains a map of wallet addresses for name lookup.
type NameService struct {
	names   map[string]string
	indexes map[string]int
}

// New constructs a name service with the wallets from the keys folder. Each
// wallet lives in a folder named by its index holding a public key file.
func New(root string) (*NameService, error) {
	ns := NameService{
		names:   make(map[string]string),
		indexes: make(map[string]int),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || d.Name() != wallet.PublicKeyFile {
			return nil
		}

		index, err := strconv.Atoi(filepath.Base(filepath.Dir(fileName)))
		if err != nil {
			return nil
		}

		key, err := wallet.LoadPublicKey(fileName)
		if err != nil {
			return fmt.Errorf("wallet %d: %w", index, err)
		}

		ns.names[key.Address()] = fmt.Sprintf("wallet-%d", index)
		ns.indexes[key.Address()] = index

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the wallet that owns the stored key bytes.
// Unknown wallets are named by their address.
func (ns *NameService) Lookup(stored database.KeyBytes) string {
	if len(stored) == 0 {
		return "unknown"
	}

	address := wallet.AddressOf(stored)
	name, exists := ns.names[address]
	if !exists {
		return address
	}
	return name
}

// Index returns the wallet index for the specified address.
func (ns *NameService) Index(address string) (int, bool) {
	index, exists := ns.indexes[address]
	return index, exists
}

// Copy returns a copy of the map of addresses and names.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.names))
	for address, name := range ns.names {
		cpy[address] = name
	}
	return cpy
}
