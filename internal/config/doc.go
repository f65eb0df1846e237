// Package config loads guildgate configuration from environment variables.
//
// Settings are grouped by concern:
//
//   - ServerConfig: HTTP port, timeouts, CORS origins
//   - DatabaseConfig: SurrealDB connection for the keystore and submission ledger
//   - ChainConfig: node endpoints, pool slot, SS58 prefix, inclusion timeout
//   - KeystoreConfig: at-rest passphrase and development signer URIs
//   - RateLimitConfig: per-client request limits
//
// Load applies defaults suited to a local dev node; Validate reports every
// problem at once:
//
//	cfg, err := config.Load()
//	if err == nil {
//	    err = cfg.Validate()
//	}
//
// In development the //Alice and //Bob dev accounts are resolvable without a
// database entry. Production refuses to start with dev accounts or without
// KEYSTORE_PASSPHRASE.
package config
