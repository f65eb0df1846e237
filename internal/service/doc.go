// Package service implements the guild operations on top of the chain pool.
//
// GuildService follows the usual pattern: a constructor taking a config
// struct, dependencies declared as small interfaces in this package, and
// sentinel errors wrapped with context.
//
// Reads (GuildList, GuildInfo, MemberList) query WeteeDAO storage on the
// configured pool slot. Writes (CreateGuild, GuildJoinRequest) resolve the
// signer, then either submit the call directly or hand it to the GovRouter
// when a WithGov context is given. The whole write runs under the pool slot's
// lock, so a slot never has two extrinsics in flight. Every write outcome is
// recorded in the submission ledger when one is configured.
//
//	svc := NewGuildService(GuildServiceConfig{
//	    Pool:          pool,
//	    Keys:          keystore,
//	    Router:        governance.NewRouter(),
//	    Submissions:   submissionRepo,
//	    SubmitTimeout: 2 * time.Minute,
//	})
//	sub, err := svc.GuildJoinRequest(ctx, from, daoID, guildID, nil)
package service
