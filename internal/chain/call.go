package chain

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Runtime calls this service submits.
const (
	MethodCreateGuild      = "WeteeGuild.create_guild"
	MethodGuildJoinRequest = "WeteeGuild.guild_join_request"
	MethodSudo             = "WeteeSudo.sudo"
	MethodCreatePropose    = "WeteeGov.create_propose"
)

// Call is a runtime call waiting to be resolved against metadata. Args are
// SCALE-encodable values in pallet parameter order; an Arg that is itself a
// Call is resolved first and encoded as a boxed RuntimeCall.
type Call struct {
	Method string
	Args   []interface{}
}

// CreateGuild builds WeteeGuild.create_guild.
func CreateGuild(daoID uint64, name, desc, metaData string, creator types.AccountID) Call {
	return Call{
		Method: MethodCreateGuild,
		Args: []interface{}{
			types.NewBytes([]byte(name)),
			types.NewBytes([]byte(desc)),
			types.NewBytes([]byte(metaData)),
			types.NewU64(daoID),
			creator,
		},
	}
}

// GuildJoinRequest builds WeteeGuild.guild_join_request.
func GuildJoinRequest(daoID, guildID uint64, who types.AccountID) Call {
	return Call{
		Method: MethodGuildJoinRequest,
		Args: []interface{}{
			types.NewU64(daoID),
			types.NewU64(guildID),
			who,
		},
	}
}

// Sudo wraps inner so the DAO's sudo origin dispatches it.
func Sudo(daoID uint64, inner Call) Call {
	return Call{
		Method: MethodSudo,
		Args:   []interface{}{types.NewU64(daoID), inner},
	}
}

// CreatePropose wraps inner in a governance proposal voted on by member,
// locking deposit as the proposal bond. A nil deposit is 0.
func CreatePropose(daoID uint64, member interface{}, inner Call, deposit *big.Int) Call {
	if deposit == nil {
		deposit = new(big.Int)
	}
	return Call{
		Method: MethodCreatePropose,
		Args: []interface{}{
			types.NewU64(daoID),
			member,
			inner,
			types.NewU128(*deposit),
		},
	}
}

// resolve turns c into a metadata-indexed types.Call.
func resolve(meta *types.Metadata, c Call) (types.Call, error) {
	args := make([]interface{}, len(c.Args))
	for i, arg := range c.Args {
		inner, ok := arg.(Call)
		if !ok {
			args[i] = arg
			continue
		}
		resolved, err := resolve(meta, inner)
		if err != nil {
			return types.Call{}, err
		}
		args[i] = resolved
	}
	return types.NewCall(meta, c.Method, args...)
}
