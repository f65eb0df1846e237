// Package account maps SS58 addresses to signing keys.
//
// Keys imported at runtime are sealed with XChaCha20-Poly1305 under an
// Argon2id key derived from the configured passphrase, then persisted through
// a KeyRepository. Development URIs like //Alice are derived once at startup
// and never persisted.
package account
