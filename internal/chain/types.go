package chain

import (
	"context"
	"log/slog"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Storage items read by the guild handler.
const (
	PalletDAO           = "WeteeDAO"
	StorageGuilds       = "Guilds"
	StorageGuildMembers = "GuildMembers"
)

// GuildInfo mirrors wetee_dao::GuildInfo<AccountId, BlockNumber> in SCALE
// field order.
type GuildInfo struct {
	ID         types.U64
	Creator    types.AccountID
	StartBlock types.U64
	Name       types.Bytes
	Desc       types.Bytes
	Status     types.U8
	MetaData   types.Bytes
}

// Receipt identifies where a submitted extrinsic landed.
type Receipt struct {
	BlockHash     string
	ExtrinsicHash string

	// Unverified holds why the dispatch outcome could not be read back.
	// Empty when the outcome was confirmed from block events.
	Unverified string
}

func (r *Receipt) unverified(reason string) *Receipt {
	slog.Warn("extrinsic included, outcome unverified",
		slog.String("extrinsic_hash", r.ExtrinsicHash),
		slog.String("block_hash", r.BlockHash),
		slog.String("reason", reason))
	r.Unverified = reason
	return r
}

// Client is one chain connection as seen by callers holding the pool lock.
type Client interface {
	// QueryStorage decodes pallet.item at the latest block into target.
	// keys are SCALE-encoded and hashed per the item's metadata. It reports
	// false when the entry is absent.
	QueryStorage(pallet, item string, target interface{}, keys ...interface{}) (bool, error)

	// Submit signs call with signer's next nonce, submits it and blocks
	// until it is included in a block, rejected, or ctx is done.
	Submit(ctx context.Context, signer signature.KeyringPair, call Call) (*Receipt, error)
}

// NodeStatus reports the health of one pool slot. Busy means the pool was
// held by another call for the whole check, so Healthy is unknown.
type NodeStatus struct {
	Index    int    `json:"index"`
	Endpoint string `json:"endpoint"`
	Healthy  bool   `json:"healthy"`
	Busy     bool   `json:"busy,omitempty"`
	Error    string `json:"error,omitempty"`
}
