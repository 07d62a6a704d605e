// Package signer produces ed25519 signatures over transaction
// messages. Key material is parsed once at construction; signing never
// touches the filesystem or the network.
package signer

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/gagliardetto/solana-go"

	"github.com/solsuite/solstake/errors"
)

// EnvPrivateKey holds the wallet key when no keypair reference is
// configured.
const EnvPrivateKey = "SOLSTAKE_PRIVATE_KEY"

func ReadPrivateKeyEnv() string {
	return os.Getenv(EnvPrivateKey)
}

type Signer struct {
	privateKey ed25519.PrivateKey
}

// New parses key material in any of the formats wallets commonly hold:
// a solana-keygen JSON array (64 bytes), a base58 encoded 64-byte
// keypair, or a hex encoded 32-byte seed or 64-byte keypair.
func New(secret string) (*Signer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.SigningErrorf("no key material provided")
	}

	var raw []byte
	if strings.HasPrefix(secret, "[") {
		// solana-keygen writes the keypair as a JSON array of bytes
		var jsonKey []int
		if err := json.Unmarshal([]byte(secret), &jsonKey); err != nil {
			return nil, errors.SigningErrorf("invalid JSON keypair: %v", err)
		}
		for _, b := range jsonKey {
			if b < 0 || b > 255 {
				return nil, errors.SigningErrorf("invalid JSON keypair: byte value %d out of range", b)
			}
			raw = append(raw, byte(b))
		}
	} else if decoded, err := hex.DecodeString(secret); err == nil {
		raw = decoded
	} else {
		raw = base58.Decode(secret)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		return &Signer{privateKey: ed25519.NewKeyFromSeed(raw)}, nil
	case ed25519.PrivateKeySize:
		return &Signer{privateKey: ed25519.PrivateKey(raw)}, nil
	}
	return nil, errors.SigningErrorf("expected an ed25519 key of 32 or 64 bytes, got %d", len(raw))
}

func (signer *Signer) Sign(payload []byte) ([]byte, error) {
	if len(signer.privateKey) != ed25519.PrivateKeySize {
		return nil, errors.SigningErrorf("signer holds no key material")
	}
	return ed25519.Sign(signer.privateKey, payload), nil
}

func (signer *Signer) SignAll(payloads [][]byte) ([][]byte, error) {
	signatures := make([][]byte, len(payloads))
	for i, payload := range payloads {
		signature, err := signer.Sign(payload)
		if err != nil {
			return nil, err
		}
		signatures[i] = signature
	}
	return signatures, nil
}

func (signer *Signer) MustSignAll(payloads [][]byte) [][]byte {
	signatures, err := signer.SignAll(payloads)
	if err != nil {
		panic(err)
	}
	return signatures
}

// PublicKey is the wallet address this signer controls.
func (signer *Signer) PublicKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(signer.privateKey.Public().(ed25519.PublicKey))
}
