package governance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/wetee-dao/guildgate/internal/chain"
	"github.com/wetee-dao/guildgate/internal/model"
)

var (
	// ErrInvalidGovRunType indicates a run_type other than sudo or gov.
	ErrInvalidGovRunType = errors.New("invalid governance run type")

	// ErrInvalidMemberScope indicates a voting body that is not global, guild or project.
	ErrInvalidMemberScope = errors.New("invalid governance member scope")
)

// Router executes DAO calls through the sudo origin or as a governance
// proposal.
type Router struct{}

// NewRouter creates a router
func NewRouter() *Router {
	return &Router{}
}

// Wrap returns call wrapped for the route selected by ext.
func (r *Router) Wrap(daoID uint64, call chain.Call, ext model.WithGov) (chain.Call, error) {
	switch ext.RunType {
	case model.GovRunSudo:
		return chain.Sudo(daoID, call), nil
	case model.GovRunGov:
		member, err := NewMemberData(ext.Member)
		if err != nil {
			return chain.Call{}, err
		}
		return chain.CreatePropose(daoID, member, call, ext.Amount.BigInt()), nil
	default:
		return chain.Call{}, fmt.Errorf("%w: %d", ErrInvalidGovRunType, ext.RunType)
	}
}

// RunSudoOrGov wraps call and submits it signed by signer. The caller must
// hold the pool lock for client.
func (r *Router) RunSudoOrGov(ctx context.Context, client chain.Client, signer signature.KeyringPair, daoID uint64, call chain.Call, ext model.WithGov) (*chain.Receipt, error) {
	wrapped, err := r.Wrap(daoID, call, ext)
	if err != nil {
		return nil, err
	}

	slog.Debug("routing call through dao",
		slog.String("call", call.Method),
		slog.String("route", ext.RunType.String()),
		slog.Uint64("dao_id", daoID))

	return client.Submit(ctx, signer, wrapped)
}
