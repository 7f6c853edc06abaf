package wallet

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultKeyBits is the modulus size used when generating wallet keys.
const DefaultKeyBits = 2048

// GenerateKey constructs a new RSA key pair for a wallet.
func GenerateKey(bits int) (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, bits)
}

// Save writes both halves of the key pair into the wallet folder for the
// specified index, creating the folder if needed.
func Save(root string, index int, privateKey *rsa.PrivateKey) error {
	if err := os.MkdirAll(filepath.Dir(KeyPath(root, index)), 0755); err != nil {
		return err
	}

	if err := SavePrivateKey(PrivateKeyPath(root, index), privateKey); err != nil {
		return err
	}

	return SavePublicKey(KeyPath(root, index), &privateKey.PublicKey)
}

// SavePublicKey writes the public key in the PKIX PEM form.
func SavePublicKey(path string, pub *rsa.PublicKey) error {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return err
	}

	data := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return os.WriteFile(path, data, 0644)
}

// SavePrivateKey writes the private key in the PKCS1 PEM form.
func SavePrivateKey(path string, privateKey *rsa.PrivateKey) error {
	data := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	return os.WriteFile(path, data, 0600)
}

// LoadPrivateKey opens and decodes the PEM encoded private key at the
// specified path.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM data found", ErrKeyParse)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrKeyParse, err)
		}
		return privateKey, nil

	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrKeyParse, err)
		}

		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA private key", ErrKeyParse)
		}
		return privateKey, nil
	}

	return nil, fmt.Errorf("%w: unexpected PEM type %q", ErrKeyParse, block.Type)
}
