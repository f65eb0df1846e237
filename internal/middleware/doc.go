// Package middleware provides the HTTP middleware chain for guildgate.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request logging with slog
//   - Recovery: turns panics into a 500 problem response
//   - CORS: origin allow-list and preflight handling
//   - RateLimit: per-client token buckets (golang.org/x/time/rate)
//   - Idempotency: replays the first response to a POST carrying the same
//     Idempotency-Key, signer, path and body
//
// The server applies them in that order:
//
//	wrapped := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(origins),
//	    middleware.RateLimit(limiter),
//	    middleware.Idempotency(store),
//	)
//
// Guild writes are extrinsics, so a client that times out and retries
// should send an Idempotency-Key to avoid a second submission.
package middleware
