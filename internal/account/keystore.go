package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/wetee-dao/guildgate/internal/model"
)

var (
	// ErrAccountNotFound indicates no signing key is held for the address.
	ErrAccountNotFound = errors.New("no signing key for account")

	// ErrInvalidSecret indicates a secret that is not a mnemonic, hex seed or derivation URI.
	ErrInvalidSecret = errors.New("invalid account secret")

	// ErrKeystoreLocked indicates imports are disabled because no passphrase is configured.
	ErrKeystoreLocked = errors.New("keystore has no passphrase")
)

// KeyRepository persists sealed keys. GetByAddress returns nil, nil when the
// address has no record.
type KeyRepository interface {
	GetByAddress(ctx context.Context, address string) (*model.SealedKey, error)
	Upsert(ctx context.Context, key *model.SealedKey) error
}

// KeystoreConfig holds the keystore dependencies
type KeystoreConfig struct {
	Repo       KeyRepository
	Passphrase string
	SS58Prefix uint16
	// DevURIs are derivation URIs such as //Alice held in memory only.
	DevURIs []string
}

// Keystore resolves an account address to its signing keypair.
type Keystore struct {
	repo       KeyRepository
	passphrase []byte
	prefix     uint16
	dev        map[string]signature.KeyringPair
}

// NewKeystore creates a keystore and derives the configured dev accounts.
func NewKeystore(cfg KeystoreConfig) (*Keystore, error) {
	ks := &Keystore{
		repo:       cfg.Repo,
		passphrase: []byte(cfg.Passphrase),
		prefix:     cfg.SS58Prefix,
		dev:        make(map[string]signature.KeyringPair, len(cfg.DevURIs)),
	}

	for _, uri := range cfg.DevURIs {
		pair, err := signature.KeyringPairFromSecret(uri, cfg.SS58Prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: dev account %q: %v", ErrInvalidSecret, uri, err)
		}
		ks.dev[codec.HexEncodeToString(pair.PublicKey)] = pair
	}

	return ks, nil
}

// Resolve returns the keypair for address. Dev accounts are checked first,
// then the sealed store.
func (k *Keystore) Resolve(ctx context.Context, address string) (signature.KeyringPair, error) {
	id, err := ParseAddress(address)
	if err != nil {
		return signature.KeyringPair{}, err
	}

	if pair, ok := k.dev[codec.HexEncodeToString(id[:])]; ok {
		return pair, nil
	}
	if k.repo == nil {
		return signature.KeyringPair{}, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}

	sealed, err := k.repo.GetByAddress(ctx, FormatAddress(id, k.prefix))
	if err != nil {
		return signature.KeyringPair{}, err
	}
	if sealed == nil {
		return signature.KeyringPair{}, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}

	secret, err := Open(sealed, k.passphrase)
	if err != nil {
		return signature.KeyringPair{}, err
	}

	pair, err := signature.KeyringPairFromSecret(string(secret), k.prefix)
	if err != nil {
		return signature.KeyringPair{}, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return pair, nil
}

// Import derives the keypair for secret, seals it and stores it under the
// account's address.
func (k *Keystore) Import(ctx context.Context, secret string) (*model.Account, error) {
	if len(k.passphrase) == 0 || k.repo == nil {
		return nil, ErrKeystoreLocked
	}

	pair, err := signature.KeyringPairFromSecret(secret, k.prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	sealed, err := Seal(pair.Address, []byte(secret), k.passphrase)
	if err != nil {
		return nil, err
	}
	if err := k.repo.Upsert(ctx, sealed); err != nil {
		return nil, err
	}

	return &model.Account{
		Address:   pair.Address,
		PublicKey: codec.HexEncodeToString(pair.PublicKey),
	}, nil
}
