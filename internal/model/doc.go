// Package model defines the request, response and ledger types of the
// guildgate API.
//
// Chain records (GuildInfo, AccountId) are decoded in package chain; the
// types here are their JSON views plus the write payloads:
//
//   - CreateGuildRequest / GuildJoinRequest: write payloads, optionally
//     carrying a WithGov context that routes the call through sudo or a
//     governance proposal
//   - Submission: ledger entry recorded for every write
//   - SealedKey: a signing seed encrypted at rest
//
// Errors returned to HTTP clients use RFC 9457 Problem Details:
//
//	model.NewNotFoundError("guild").WriteJSON(w)
package model
