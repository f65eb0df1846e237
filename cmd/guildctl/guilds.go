package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/model"
	"github.com/wetee-dao/guildgate/internal/service"
)

// write flags shared by create and join
var (
	from        string
	useSudo     bool
	useGov      bool
	deposit     string
	memberScope string
	memberID    uint64
)

var (
	guildName string
	guildDesc string
	guildMeta string
)

var guildsCmd = &cobra.Command{
	Use:   "guilds",
	Short: "Read and write DAO guilds",
}

var guildsListCmd = &cobra.Command{
	Use:   "list <dao-id>",
	Short: "List every guild of a DAO",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		daoID, err := parseUint(args[0], "dao-id", 64)
		if err != nil {
			return err
		}
		return run(cmd, false, true, func(ctx context.Context, e *env) error {
			guilds, err := e.guilds.GuildList(ctx, daoID)
			if err != nil {
				return err
			}
			views := make([]model.Guild, len(guilds))
			for i := range guilds {
				views[i] = service.GuildView(i, &guilds[i], cfg.Chain.SS58Prefix)
			}
			return printJSON(views)
		})
	},
}

var guildsInfoCmd = &cobra.Command{
	Use:   "info <dao-id> <index>",
	Short: "Show the guild at a position in the DAO's guild list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		daoID, err := parseUint(args[0], "dao-id", 64)
		if err != nil {
			return err
		}
		index, err := parseUint(args[1], "index", 32)
		if err != nil {
			return err
		}
		return run(cmd, false, true, func(ctx context.Context, e *env) error {
			guild, err := e.guilds.GuildInfo(ctx, daoID, uint32(index))
			if err != nil {
				return err
			}
			return printJSON(service.GuildView(int(index), guild, cfg.Chain.SS58Prefix))
		})
	},
}

var guildsMembersCmd = &cobra.Command{
	Use:   "members <dao-id> <guild-id>",
	Short: "List the members of a guild",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		daoID, err := parseUint(args[0], "dao-id", 64)
		if err != nil {
			return err
		}
		guildID, err := parseUint(args[1], "guild-id", 64)
		if err != nil {
			return err
		}
		return run(cmd, false, true, func(ctx context.Context, e *env) error {
			members, err := e.guilds.MemberList(ctx, daoID, guildID)
			if err != nil {
				return err
			}
			out := model.GuildMembers{DaoID: daoID, GuildID: guildID, Members: make([]string, len(members))}
			for i, m := range members {
				out.Members[i] = account.FormatAddress(m, cfg.Chain.SS58Prefix)
			}
			return printJSON(out)
		})
	},
}

var guildsCreateCmd = &cobra.Command{
	Use:   "create <dao-id>",
	Short: "Create a guild with --from as creator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		daoID, err := parseUint(args[0], "dao-id", 64)
		if err != nil {
			return err
		}
		ext, err := withGov()
		if err != nil {
			return err
		}

		req := model.CreateGuildRequest{From: from, Name: guildName, Desc: guildDesc, MetaData: guildMeta, WithGov: ext}
		if err := validation(req.Validate()); err != nil {
			return err
		}

		return run(cmd, true, true, func(ctx context.Context, e *env) error {
			sub, err := e.guilds.CreateGuild(ctx, req.From, daoID, req.Name, req.Desc, req.MetaData, req.WithGov)
			if err != nil {
				return err
			}
			return printJSON(sub)
		})
	},
}

var guildsJoinCmd = &cobra.Command{
	Use:   "join <dao-id> <guild-id>",
	Short: "Request to join a guild as --from",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		daoID, err := parseUint(args[0], "dao-id", 64)
		if err != nil {
			return err
		}
		guildID, err := parseUint(args[1], "guild-id", 64)
		if err != nil {
			return err
		}
		ext, err := withGov()
		if err != nil {
			return err
		}

		req := model.GuildJoinRequest{From: from, WithGov: ext}
		if err := validation(req.Validate()); err != nil {
			return err
		}

		return run(cmd, true, true, func(ctx context.Context, e *env) error {
			sub, err := e.guilds.GuildJoinRequest(ctx, req.From, daoID, guildID, req.WithGov)
			if err != nil {
				return err
			}
			return printJSON(sub)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{guildsCreateCmd, guildsJoinCmd} {
		c.Flags().StringVar(&from, "from", "", "Signing account (SS58 or 0x hex)")
		c.Flags().BoolVar(&useSudo, "sudo", false, "Route through the DAO sudo account")
		c.Flags().BoolVar(&useGov, "gov", false, "Route through a governance proposal")
		c.Flags().StringVar(&deposit, "deposit", "", "Proposal deposit in base units, up to 2^128-1 (with --gov)")
		c.Flags().StringVar(&memberScope, "member-scope", string(model.MemberScopeGlobal), "Voting body: global, guild, or project (with --gov)")
		c.Flags().Uint64Var(&memberID, "member-id", 0, "Guild or project id of the voting body (with --gov)")
		c.MarkFlagsMutuallyExclusive("sudo", "gov")
		_ = c.MarkFlagRequired("from")
	}

	guildsCreateCmd.Flags().StringVar(&guildName, "name", "", "Guild name")
	guildsCreateCmd.Flags().StringVar(&guildDesc, "desc", "", "Guild description")
	guildsCreateCmd.Flags().StringVar(&guildMeta, "meta", "", "Guild metadata")
	_ = guildsCreateCmd.MarkFlagRequired("name")

	guildsCmd.AddCommand(guildsListCmd, guildsInfoCmd, guildsMembersCmd, guildsCreateCmd, guildsJoinCmd)
}

// withGov builds the routing context from flags. Nil means direct submission.
func withGov() (*model.WithGov, error) {
	switch {
	case useSudo:
		return &model.WithGov{RunType: model.GovRunSudo}, nil
	case useGov:
		amount := model.NewBalance(0)
		if deposit != "" {
			var err error
			if amount, err = model.ParseBalance(deposit); err != nil {
				return nil, fmt.Errorf("--deposit: %w", err)
			}
		}
		return &model.WithGov{
			RunType: model.GovRunGov,
			Amount:  amount,
			Member:  model.MemberData{Scope: model.MemberScope(memberScope), ID: memberID},
		}, nil
	case deposit != "" || memberID != 0:
		return nil, fmt.Errorf("--deposit and --member-id require --gov")
	default:
		return nil, nil
	}
}

func validation(errs []model.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return model.NewValidationError(errs)
}

func parseUint(s, name string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer: %q", name, s)
	}
	return v, nil
}
