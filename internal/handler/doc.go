// Package handler provides the HTTP handlers for guildgate.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) takes the service it fronts
//   - Methods handle one route each, parsing path values with r.PathValue
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details by MapServiceError
//
// # Response Format
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources with a count
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// Guild writes block until the extrinsic is in a block and answer with the
// submission ledger entry. Creator and member accounts are rendered as SS58
// under the configured network prefix.
//
// # Example Usage
//
//	guilds := NewGuildHandler(guildService, cfg.Chain.SS58Prefix)
//	mux.HandleFunc("GET /v1/daos/{daoId}/guilds", guilds.List)
//	mux.HandleFunc("POST /v1/daos/{daoId}/guilds", guilds.Create)
package handler
