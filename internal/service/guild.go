package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/google/uuid"
	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/chain"
	"github.com/wetee-dao/guildgate/internal/model"
)

// ChainPool gives exclusive access to one pooled chain client
type ChainPool interface {
	With(ctx context.Context, index int, fn func(chain.Client) error) error
}

// AccountResolver maps an address to its signing keypair
type AccountResolver interface {
	Resolve(ctx context.Context, address string) (signature.KeyringPair, error)
}

// GovRouter submits a call through the DAO's sudo or governance path
type GovRouter interface {
	RunSudoOrGov(ctx context.Context, client chain.Client, signer signature.KeyringPair, daoID uint64, call chain.Call, ext model.WithGov) (*chain.Receipt, error)
}

// SubmissionRepository defines the interface for the submission ledger
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	ListByAccount(ctx context.Context, address string, limit int) ([]*model.Submission, error)
}

// GuildService handles DAO guild reads and writes against the chain
type GuildService struct {
	pool          ChainPool
	keys          AccountResolver
	router        GovRouter
	submissions   SubmissionRepository
	clientIndex   int
	ss58Prefix    uint16
	submitTimeout time.Duration
}

// GuildServiceConfig holds configuration for the guild service
type GuildServiceConfig struct {
	Pool        ChainPool
	Keys        AccountResolver
	Router      GovRouter
	Submissions SubmissionRepository // Optional, writes are not recorded if nil
	ClientIndex int
	SS58Prefix  uint16 // ledger addresses are stored in this format
	// SubmitTimeout bounds the inclusion wait when the caller's context has no deadline.
	SubmitTimeout time.Duration
}

// NewGuildService creates a new guild service
func NewGuildService(cfg GuildServiceConfig) *GuildService {
	return &GuildService{
		pool:          cfg.Pool,
		keys:          cfg.Keys,
		router:        cfg.Router,
		submissions:   cfg.Submissions,
		clientIndex:   cfg.ClientIndex,
		ss58Prefix:    cfg.SS58Prefix,
		submitTimeout: cfg.SubmitTimeout,
	}
}

// ForClient returns a copy of the service bound to another pool slot
func (s *GuildService) ForClient(index int) *GuildService {
	c := *s
	c.clientIndex = index
	return &c
}

// GuildList returns every guild of a DAO in chain order. A DAO with no
// guilds yields an empty slice.
func (s *GuildService) GuildList(ctx context.Context, daoID uint64) ([]chain.GuildInfo, error) {
	var guilds []chain.GuildInfo
	err := s.pool.With(ctx, s.clientIndex, func(c chain.Client) error {
		_, err := c.QueryStorage(chain.PalletDAO, chain.StorageGuilds, &guilds, types.NewU64(daoID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list guilds of dao %d: %w", daoID, err)
	}

	if guilds == nil {
		guilds = []chain.GuildInfo{}
	}
	return guilds, nil
}

// GuildInfo returns the guild at position index of the DAO's guild list
func (s *GuildService) GuildInfo(ctx context.Context, daoID uint64, index uint32) (*chain.GuildInfo, error) {
	guilds, err := s.GuildList(ctx, daoID)
	if err != nil {
		return nil, err
	}

	if int(index) >= len(guilds) {
		return nil, fmt.Errorf("%w: dao %d has %d guilds, index %d", ErrGuildNotFound, daoID, len(guilds), index)
	}
	return &guilds[index], nil
}

// GuildView renders the guild at position index for API and CLI output
func GuildView(index int, g *chain.GuildInfo, ss58Prefix uint16) model.Guild {
	return model.Guild{
		Index:      index,
		ID:         uint64(g.ID),
		Creator:    account.FormatAddress(g.Creator, ss58Prefix),
		StartBlock: uint64(g.StartBlock),
		Name:       string(g.Name),
		Desc:       string(g.Desc),
		Status:     uint8(g.Status),
		MetaData:   string(g.MetaData),
	}
}

// MemberList returns the accounts of a guild
func (s *GuildService) MemberList(ctx context.Context, daoID, guildID uint64) ([]types.AccountID, error) {
	var members []types.AccountID
	err := s.pool.With(ctx, s.clientIndex, func(c chain.Client) error {
		_, err := c.QueryStorage(chain.PalletDAO, chain.StorageGuildMembers, &members, types.NewU64(daoID), types.NewU64(guildID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list members of guild %d/%d: %w", daoID, guildID, err)
	}

	if members == nil {
		members = []types.AccountID{}
	}
	return members, nil
}

// CreateGuild submits WeteeGuild.create_guild with from as creator. With a
// non-nil ext the call goes through the DAO's sudo or governance path.
func (s *GuildService) CreateGuild(ctx context.Context, from string, daoID uint64, name, desc, metaData string, ext *model.WithGov) (*model.Submission, error) {
	creator, err := account.ParseAddress(from)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		Kind:  model.KindCreateGuild,
		DaoID: daoID,
		From:  account.FormatAddress(creator, s.ss58Prefix),
	}
	return s.submit(ctx, from, daoID, chain.CreateGuild(daoID, name, desc, metaData, creator), ext, sub)
}

// GuildJoinRequest submits WeteeGuild.guild_join_request for from
func (s *GuildService) GuildJoinRequest(ctx context.Context, from string, daoID, guildID uint64, ext *model.WithGov) (*model.Submission, error) {
	who, err := account.ParseAddress(from)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		Kind:    model.KindGuildJoinRequest,
		DaoID:   daoID,
		GuildID: &guildID,
		From:    account.FormatAddress(who, s.ss58Prefix),
	}
	return s.submit(ctx, from, daoID, chain.GuildJoinRequest(daoID, guildID, who), ext, sub)
}

// submit signs call as from and either submits it directly or hands it to
// the router, all under the pool lock.
func (s *GuildService) submit(ctx context.Context, from string, daoID uint64, call chain.Call, ext *model.WithGov, sub *model.Submission) (*model.Submission, error) {
	signer, err := s.keys.Resolve(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("resolve signer %s: %w", from, err)
	}

	if _, ok := ctx.Deadline(); !ok && s.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.submitTimeout)
		defer cancel()
	}

	sub.Route = model.RouteDirect
	if ext != nil {
		sub.Route = ext.RunType.String()
	}

	var receipt *chain.Receipt
	err = s.pool.With(ctx, s.clientIndex, func(c chain.Client) error {
		var err error
		if ext != nil {
			receipt, err = s.router.RunSudoOrGov(ctx, c, signer, daoID, call, *ext)
		} else {
			receipt, err = c.Submit(ctx, signer, call)
		}
		return err
	})

	if receipt != nil {
		sub.BlockHash = receipt.BlockHash
		sub.ExtrinsicHash = receipt.ExtrinsicHash
	}

	if err != nil {
		sub.Status = model.SubmissionFailed
		sub.Error = err.Error()
		slog.Error("extrinsic failed",
			slog.String("call", call.Method),
			slog.String("route", sub.Route),
			slog.String("from", from),
			slog.String("error", err.Error()))
		s.record(ctx, sub)
		return nil, fmt.Errorf("%s: %w", call.Method, err)
	}

	sub.Status = model.SubmissionIncluded
	if receipt != nil && receipt.Unverified != "" {
		sub.Status = model.SubmissionUnverified
		sub.Error = receipt.Unverified
	}
	slog.Info("extrinsic included",
		slog.String("call", call.Method),
		slog.String("route", sub.Route),
		slog.String("status", string(sub.Status)),
		slog.String("block_hash", sub.BlockHash))
	s.record(ctx, sub)
	return sub, nil
}

// record writes sub to the ledger. Failures are logged only.
func (s *GuildService) record(ctx context.Context, sub *model.Submission) {
	sub.ID = uuid.New().String()
	sub.CreatedOn = time.Now().UTC()

	if s.submissions == nil {
		return
	}
	if err := s.submissions.Create(context.WithoutCancel(ctx), sub); err != nil {
		slog.Warn("failed to record submission",
			slog.String("id", sub.ID),
			slog.String("error", err.Error()))
	}
}

// GetSubmission returns one ledger entry
func (s *GuildService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	if s.submissions == nil {
		return nil, ErrSubmissionNotFound
	}

	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// ListSubmissions returns the newest ledger entries sent from address, in
// any SS58 prefix or as hex.
func (s *GuildService) ListSubmissions(ctx context.Context, address string, limit int) ([]*model.Submission, error) {
	id, err := account.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > model.MaxSubmissionPageSize {
		limit = model.MaxSubmissionPageSize
	}
	if s.submissions == nil {
		return []*model.Submission{}, nil
	}

	subs, err := s.submissions.ListByAccount(ctx, account.FormatAddress(id, s.ss58Prefix), limit)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []*model.Submission{}
	}
	return subs, nil
}
