package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/model"
	"github.com/wetee-dao/guildgate/internal/testing/testdb"
)

const (
	aliceAddr = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bobAddr   = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
)

// ============================================================================
// SurrealDB integration (skipped without TEST_DB_HOST)
// ============================================================================

func TestIntegration_Keystore_ImportResolve(t *testing.T) {
	tdb := testdb.New(t)
	ctx := tdb.Ctx()

	ks, err := account.NewKeystore(account.KeystoreConfig{
		Repo:       NewKeystoreRepository(tdb.DB),
		Passphrase: "integration",
		SS58Prefix: 42,
	})
	require.NoError(t, err)

	acct, err := ks.Import(ctx, "//Alice")
	require.NoError(t, err)
	assert.Equal(t, aliceAddr, acct.Address)

	// Upsert is idempotent per address.
	_, err = ks.Import(ctx, "//Alice")
	require.NoError(t, err)

	pair, err := ks.Resolve(ctx, aliceAddr)
	require.NoError(t, err)
	assert.Equal(t, aliceAddr, pair.Address)

	_, err = ks.Resolve(ctx, bobAddr)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestIntegration_Submissions(t *testing.T) {
	tdb := testdb.New(t)
	ctx := tdb.Ctx()
	repo := NewSubmissionRepository(tdb.DB)

	guildID := uint64(2)
	base := time.Now().UTC().Truncate(time.Millisecond)
	subs := []*model.Submission{
		{ID: "a1", Kind: model.KindCreateGuild, DaoID: 1, From: aliceAddr, Route: model.RouteDirect, Status: model.SubmissionIncluded, BlockHash: "0x01", CreatedOn: base},
		{ID: "a2", Kind: model.KindGuildJoinRequest, DaoID: 1, GuildID: &guildID, From: aliceAddr, Route: model.RouteGov, Status: model.SubmissionFailed, Error: "dispatch", CreatedOn: base.Add(time.Second)},
		{ID: "b1", Kind: model.KindCreateGuild, DaoID: 1, From: bobAddr, Route: model.RouteSudo, Status: model.SubmissionIncluded, CreatedOn: base},
	}
	for _, s := range subs {
		require.NoError(t, repo.Create(ctx, s))
	}

	got, err := repo.GetByID(ctx, "a2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.SubmissionFailed, got.Status)
	require.NotNil(t, got.GuildID)
	assert.Equal(t, guildID, *got.GuildID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.ListByAccount(ctx, aliceAddr, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID, "newest first")

	list, err = repo.ListByAccount(context.Background(), aliceAddr, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
