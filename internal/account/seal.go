package account

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/wetee-dao/guildgate/internal/model"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters for deriving the sealing key from the passphrase.
const (
	saltLen      = 16
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrDecrypt indicates a sealed key that could not be opened with the passphrase.
var ErrDecrypt = errors.New("unable to decrypt sealed key")

// Seal encrypts secret under passphrase. The address is bound as associated
// data, so a record copied to another address will not open.
func Seal(address string, secret, passphrase []byte) (*model.SealedKey, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return &model.SealedKey{
		Address:    address,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, secret, []byte(address))),
		CreatedOn:  time.Now().UTC(),
	}, nil
}

// Open decrypts a sealed key
func Open(key *model.SealedKey, passphrase []byte) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(key.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrDecrypt, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(key.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrDecrypt, err)
	}
	ct, err := base64.StdEncoding.DecodeString(key.CipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher text: %v", ErrDecrypt, err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrDecrypt, len(nonce))
	}

	secret, err := aead.Open(nil, nonce, ct, []byte(key.Address))
	if err != nil {
		return nil, ErrDecrypt
	}
	return secret, nil
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}
