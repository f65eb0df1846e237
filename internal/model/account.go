package model

import "time"

// SealedKey is a signing seed encrypted at rest, stored per SS58 address
type SealedKey struct {
	Address    string    `json:"address"`
	Salt       string    `json:"salt"`
	Nonce      string    `json:"nonce"`
	CipherText string    `json:"cipher_text"`
	CreatedOn  time.Time `json:"created_on"`
}

// ImportAccountRequest imports a seed phrase, hex seed, or dev URI
type ImportAccountRequest struct {
	Secret string `json:"secret"`
}

// Validate validates the import request
func (r *ImportAccountRequest) Validate() []FieldError {
	if r.Secret == "" {
		return []FieldError{{Field: "secret", Message: "secret is required"}}
	}
	return nil
}

// Account is returned after an import
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}
