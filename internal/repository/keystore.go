package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wetee-dao/guildgate/internal/database"
	"github.com/wetee-dao/guildgate/internal/model"
)

// KeystoreRepository stores sealed signing keys, one record per address
type KeystoreRepository struct {
	db database.Database
}

// NewKeystoreRepository creates a new keystore repository
func NewKeystoreRepository(db database.Database) *KeystoreRepository {
	return &KeystoreRepository{db: db}
}

// Upsert creates or replaces the sealed key for key.Address
func (r *KeystoreRepository) Upsert(ctx context.Context, key *model.SealedKey) error {
	query := `
		UPSERT type::thing('keystore', $address) CONTENT {
			address: $address,
			salt: $salt,
			nonce: $nonce,
			cipher_text: $cipher_text,
			created_on: <datetime>$created_on
		}
	`
	vars := map[string]interface{}{
		"address":     key.Address,
		"salt":        key.Salt,
		"nonce":       key.Nonce,
		"cipher_text": key.CipherText,
		"created_on":  key.CreatedOn.UTC().Format(time.RFC3339Nano),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: key for %s", database.ErrDuplicate, key.Address)
		}
		return err
	}
	return nil
}

// GetByAddress returns the sealed key for address, or nil if there is none
func (r *KeystoreRepository) GetByAddress(ctx context.Context, address string) (*model.SealedKey, error) {
	query := `SELECT * FROM keystore WHERE address = $address LIMIT 1`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"address": address})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected keystore record %T", result)
	}

	return &model.SealedKey{
		Address:    getString(data, "address"),
		Salt:       getString(data, "salt"),
		Nonce:      getString(data, "nonce"),
		CipherText: getString(data, "cipher_text"),
		CreatedOn:  parseTime(data["created_on"]),
	}, nil
}
