package chain

import (
	"context"
	"fmt"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/retriever"
	regstate "github.com/centrifuge/go-substrate-rpc-client/v4/registry/state"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"golang.org/x/crypto/blake2b"
)

const (
	eventExtrinsicSuccess = "System.ExtrinsicSuccess"
	eventExtrinsicFailed  = "System.ExtrinsicFailed"
)

// Conn is a single node connection with the runtime state needed to build
// and sign extrinsics. It is not safe for concurrent use; Pool serializes it.
type Conn struct {
	endpoint    string
	api         *gsrpc.SubstrateAPI
	meta        *types.Metadata
	genesisHash types.Hash
	runtime     *types.RuntimeVersion
	events      retriever.EventRetriever
}

// Dial connects to endpoint (ws:// or http://) and loads runtime metadata.
func Dial(endpoint string) (*Conn, error) {
	api, err := gsrpc.NewSubstrateAPI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnection, endpoint, err)
	}

	c := &Conn{endpoint: endpoint, api: api}
	if err := c.load(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) load() error {
	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return fmt.Errorf("%w: %s: metadata: %v", ErrConnection, c.endpoint, err)
	}
	genesis, err := c.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return fmt.Errorf("%w: %s: genesis hash: %v", ErrConnection, c.endpoint, err)
	}
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return fmt.Errorf("%w: %s: runtime version: %v", ErrConnection, c.endpoint, err)
	}
	events, err := retriever.NewDefaultEventRetriever(regstate.NewEventProvider(c.api.RPC.State), c.api.RPC.State)
	if err != nil {
		return fmt.Errorf("%w: %s: event retriever: %v", ErrConnection, c.endpoint, err)
	}

	c.meta = meta
	c.genesisHash = genesis
	c.runtime = rv
	c.events = events
	return nil
}

// Endpoint returns the node URL
func (c *Conn) Endpoint() string {
	return c.endpoint
}

// Close closes the underlying RPC client
func (c *Conn) Close() {
	if c.api != nil && c.api.Client != nil {
		c.api.Client.Close()
	}
}

// Health pings the node and reloads metadata after a runtime upgrade.
func (c *Conn) Health(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.api.RPC.System.Health(); err != nil {
		return fmt.Errorf("%w: %s: health: %v", ErrRPC, c.endpoint, err)
	}
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return fmt.Errorf("%w: %s: runtime version: %v", ErrRPC, c.endpoint, err)
	}
	if c.runtime == nil || rv.SpecVersion != c.runtime.SpecVersion {
		return c.load()
	}
	return nil
}

// QueryStorage implements Client.
func (c *Conn) QueryStorage(pallet, item string, target interface{}, keys ...interface{}) (bool, error) {
	args := make([][]byte, 0, len(keys))
	for _, k := range keys {
		enc, err := codec.Encode(k)
		if err != nil {
			return false, fmt.Errorf("encode %s.%s key: %w", pallet, item, err)
		}
		args = append(args, enc)
	}

	key, err := types.CreateStorageKey(c.meta, pallet, item, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s.%s: %v", ErrMetadata, pallet, item, err)
	}

	ok, err := c.api.RPC.State.GetStorageLatest(key, target)
	if err != nil {
		return false, fmt.Errorf("%w: query %s.%s: %v", ErrRPC, pallet, item, err)
	}
	return ok, nil
}

// Submit implements Client.
func (c *Conn) Submit(ctx context.Context, signer signature.KeyringPair, call Call) (*Receipt, error) {
	rc, err := resolve(c.meta, call)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMetadata, call.Method, err)
	}

	nonce, err := c.nonce(signer.PublicKey)
	if err != nil {
		return nil, err
	}

	ext := types.NewExtrinsic(rc)
	opts := types.SignatureOptions{
		BlockHash:          c.genesisHash,
		Era:                types.ExtrinsicEra{IsMortalEra: false},
		GenesisHash:        c.genesisHash,
		Nonce:              types.NewUCompactFromUInt(uint64(nonce)),
		SpecVersion:        c.runtime.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: c.runtime.TransactionVersion,
	}
	if err := ext.Sign(signer, opts); err != nil {
		return nil, fmt.Errorf("sign %s: %w", call.Method, err)
	}

	xtHash, err := extrinsicHash(ext)
	if err != nil {
		return nil, err
	}

	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: submit %s: %v", ErrRPC, call.Method, err)
	}
	defer sub.Unsubscribe()

	blockHash, err := awaitInclusion(ctx, sub.Chan(), sub.Err(), xtHash)
	if err != nil {
		return nil, err
	}
	return c.confirm(blockHash, xtHash)
}

// awaitInclusion follows the status stream of xtHash until it lands in a
// block, the transaction pool gives up on it, or ctx is done.
func awaitInclusion(ctx context.Context, statuses <-chan types.ExtrinsicStatus, errs <-chan error, xtHash types.Hash) (types.Hash, error) {
	for {
		select {
		case <-ctx.Done():
			return types.Hash{}, fmt.Errorf("wait for %s: %w", xtHash.Hex(), ctx.Err())
		case err := <-errs:
			return types.Hash{}, fmt.Errorf("%w: watch %s: %v", ErrRPC, xtHash.Hex(), err)
		case status, ok := <-statuses:
			if !ok {
				return types.Hash{}, fmt.Errorf("%w: watch %s: subscription closed", ErrRPC, xtHash.Hex())
			}
			blockHash, done, err := inclusion(status, xtHash)
			if done {
				return blockHash, err
			}
		}
	}
}

// inclusion classifies one pool status. done is false while the extrinsic is
// still pending (future, ready, broadcast, retracted).
func inclusion(status types.ExtrinsicStatus, xtHash types.Hash) (blockHash types.Hash, done bool, err error) {
	switch {
	case status.IsInBlock:
		return status.AsInBlock, true, nil
	case status.IsFinalized:
		return status.AsFinalized, true, nil
	case status.IsDropped:
		return types.Hash{}, true, fmt.Errorf("%w: %s dropped", ErrExtrinsicRejected, xtHash.Hex())
	case status.IsInvalid:
		return types.Hash{}, true, fmt.Errorf("%w: %s invalid", ErrExtrinsicRejected, xtHash.Hex())
	case status.IsUsurped:
		return types.Hash{}, true, fmt.Errorf("%w: %s usurped", ErrExtrinsicRejected, xtHash.Hex())
	}
	return types.Hash{}, false, nil
}

// confirm looks up the dispatch outcome of xtHash in blockHash. The receipt
// is returned alongside ErrExtrinsicFailed so callers can record where the
// failure landed. The extrinsic is on chain by now, so a lookup that cannot
// be completed marks the receipt unverified instead of failing it.
func (c *Conn) confirm(blockHash, xtHash types.Hash) (*Receipt, error) {
	receipt := &Receipt{BlockHash: blockHash.Hex(), ExtrinsicHash: xtHash.Hex()}

	block, err := c.api.RPC.Chain.GetBlock(blockHash)
	if err != nil {
		return receipt.unverified(fmt.Sprintf("get block: %v", err)), nil
	}

	index := extrinsicIndex(block.Block.Extrinsics, xtHash)
	if index < 0 {
		return receipt.unverified("extrinsic not found in block"), nil
	}

	events, err := c.events.GetEvents(blockHash)
	if err != nil {
		return receipt.unverified(fmt.Sprintf("get events: %v", err)), nil
	}

	found, err := dispatchOutcome(events, uint32(index))
	if err != nil {
		return receipt, fmt.Errorf("%w: %s in block %s", err, xtHash.Hex(), receipt.BlockHash)
	}
	if !found {
		return receipt.unverified("no dispatch event"), nil
	}
	return receipt, nil
}

// extrinsicIndex returns the position of xtHash in a block body, or -1.
func extrinsicIndex(xts []types.Extrinsic, xtHash types.Hash) int {
	for i, xt := range xts {
		h, err := extrinsicHash(xt)
		if err == nil && h == xtHash {
			return i
		}
	}
	return -1
}

// dispatchOutcome scans a block's events for the System outcome of the
// extrinsic applied at index. found is false when neither
// System.ExtrinsicSuccess nor System.ExtrinsicFailed is present.
func dispatchOutcome(events []*parser.Event, index uint32) (found bool, err error) {
	for _, e := range events {
		if e == nil || e.Phase == nil || !e.Phase.IsApplyExtrinsic || e.Phase.AsApplyExtrinsic != index {
			continue
		}
		switch e.Name {
		case eventExtrinsicFailed:
			return true, ErrExtrinsicFailed
		case eventExtrinsicSuccess:
			return true, nil
		}
	}
	return false, nil
}

func (c *Conn) nonce(publicKey []byte) (uint32, error) {
	key, err := types.CreateStorageKey(c.meta, "System", "Account", publicKey)
	if err != nil {
		return 0, fmt.Errorf("%w: System.Account: %v", ErrMetadata, err)
	}

	var info types.AccountInfo
	ok, err := c.api.RPC.State.GetStorageLatest(key, &info)
	if err != nil {
		return 0, fmt.Errorf("%w: nonce: %v", ErrRPC, err)
	}
	if !ok {
		return 0, nil
	}
	return uint32(info.Nonce), nil
}

// extrinsicHash is blake2b-256 over the length-prefixed encoding, the same
// hash the node reports for pool and block entries.
func extrinsicHash(xt types.Extrinsic) (types.Hash, error) {
	enc, err := codec.Encode(xt)
	if err != nil {
		return types.Hash{}, fmt.Errorf("encode extrinsic: %w", err)
	}
	sum := blake2b.Sum256(enc)
	return types.NewHash(sum[:]), nil
}
