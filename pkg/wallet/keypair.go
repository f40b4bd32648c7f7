package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
)

const (
	seedLength   = 32
	secretLength = 64
)

var (
	ErrWalletNotFound  = errors.New("wallet file not found")
	ErrMalformedSecret = errors.New("malformed wallet secret")
)

type Keypair struct {
	privateKey hedera.PrivateKey
}

// LoadKeypair reads and parses the secret file at path.
func LoadKeypair(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, path)
		}
		return nil, fmt.Errorf("failed to read wallet file %s: %w", path, err)
	}

	keypair, err := ParseKeypair(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet %s: %w", path, err)
	}
	return keypair, nil
}

// ParseKeypair parses secret file contents.
func ParseKeypair(data []byte) (*Keypair, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedSecret)
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
		}
		privateKey, err := shared.ParsePrivateKey(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
		}
		return &Keypair{privateKey: privateKey}, nil
	}

	var values []int
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of bytes: %v", ErrMalformedSecret, err)
	}
	if len(values) != secretLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSecret, secretLength, len(values))
	}

	secret := make([]byte, secretLength)
	for index, value := range values {
		if value < 0 || value > 255 {
			return nil, fmt.Errorf("%w: value %d at index %d is not a byte", ErrMalformedSecret, value, index)
		}
		secret[index] = byte(value)
	}

	privateKey, err := hedera.PrivateKeyFromBytesEd25519(secret[:seedLength])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}
	if !bytes.Equal(privateKey.PublicKey().BytesRaw(), secret[seedLength:]) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrMalformedSecret)
	}

	return &Keypair{privateKey: privateKey}, nil
}

func (k *Keypair) PrivateKey() hedera.PrivateKey {
	return k.privateKey
}

func (k *Keypair) PublicKey() hedera.PublicKey {
	return k.privateKey.PublicKey()
}

// PublicKeyHex returns the raw public key as lowercase hex, the form the
// mirror node accepts in account.publickey filters.
func (k *Keypair) PublicKeyHex() string {
	return strings.ToLower(k.privateKey.PublicKey().StringRaw())
}

func (k *Keypair) Sign(message []byte) []byte {
	return k.privateKey.Sign(message)
}
