package model

import "time"

// Submission kinds
const (
	KindCreateGuild      = "create_guild"
	KindGuildJoinRequest = "guild_join_request"
)

// Submission routes
const (
	RouteDirect = "direct"
	RouteSudo   = "sudo"
	RouteGov    = "gov"
)

// SubmissionStatus is the outcome of a write
type SubmissionStatus string

const (
	SubmissionIncluded SubmissionStatus = "included"
	SubmissionFailed   SubmissionStatus = "failed"

	// SubmissionUnverified means the extrinsic reached a block but its
	// dispatch result could not be read back. Error holds the reason.
	SubmissionUnverified SubmissionStatus = "included_unverified"
)

// Submission is the ledger entry written for every guild write
type Submission struct {
	ID            string           `json:"id"`
	Kind          string           `json:"kind"`
	DaoID         uint64           `json:"dao_id"`
	GuildID       *uint64          `json:"guild_id,omitempty"`
	From          string           `json:"from"`
	Route         string           `json:"route"`
	Status        SubmissionStatus `json:"status"`
	BlockHash     string           `json:"block_hash,omitempty"`
	ExtrinsicHash string           `json:"extrinsic_hash,omitempty"`
	Error         string           `json:"error,omitempty"`
	CreatedOn     time.Time        `json:"created_on"`
}

// Max page size for submission listings
const MaxSubmissionPageSize = 100
