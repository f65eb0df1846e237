package model

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// Guild is the JSON view of an on-chain GuildInfo record.
type Guild struct {
	Index      int    `json:"index"`
	ID         uint64 `json:"id"`
	Creator    string `json:"creator"`
	StartBlock uint64 `json:"start_block"`
	Name       string `json:"name"`
	Desc       string `json:"desc"`
	Status     uint8  `json:"status"`
	MetaData   string `json:"meta_data"`
}

// GuildMembers lists the accounts of a guild
type GuildMembers struct {
	DaoID   uint64   `json:"dao_id"`
	GuildID uint64   `json:"guild_id"`
	Members []string `json:"members"`
}

// GovRunType selects how a governance-routed call is executed
type GovRunType uint8

const (
	GovRunSudo GovRunType = 1 // DAO sudo account executes the call directly
	GovRunGov  GovRunType = 2 // call is wrapped in a governance proposal
)

// IsValid returns true if the run type is sudo or gov
func (t GovRunType) IsValid() bool {
	return t == GovRunSudo || t == GovRunGov
}

// String returns the route name recorded in the submission ledger
func (t GovRunType) String() string {
	switch t {
	case GovRunSudo:
		return RouteSudo
	case GovRunGov:
		return RouteGov
	default:
		return "unknown"
	}
}

// MemberScope is the governance scope a proposal is voted in
type MemberScope string

const (
	MemberScopeGlobal  MemberScope = "global"
	MemberScopeGuild   MemberScope = "guild"
	MemberScopeProject MemberScope = "project"
)

// MemberData identifies the voting body of a proposal. ID is ignored for
// the global scope.
type MemberData struct {
	Scope MemberScope `json:"scope"`
	ID    uint64      `json:"id,omitempty"`
}

// maxBalance is the largest u128.
var maxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Balance is an on-chain u128 amount. It marshals as a decimal string and
// unmarshals from a decimal string or a JSON integer.
type Balance struct {
	v *big.Int
}

// NewBalance returns a Balance of v
func NewBalance(v uint64) Balance {
	return Balance{v: new(big.Int).SetUint64(v)}
}

// ParseBalance parses a base-10 amount in the u128 range
func ParseBalance(s string) (Balance, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 || v.Cmp(maxBalance) > 0 {
		return Balance{}, fmt.Errorf("amount must be a decimal integer between 0 and 2^128-1: %q", s)
	}
	return Balance{v: v}, nil
}

// BigInt returns a copy of the amount. The zero Balance is 0.
func (b Balance) BigInt() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.v)
}

// IsZero reports whether the amount is 0
func (b Balance) IsZero() bool {
	return b.v == nil || b.v.Sign() == 0
}

func (b Balance) String() string {
	return b.BigInt().String()
}

// MarshalJSON implements json.Marshaler
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (b *Balance) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*b = Balance{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	v, err := ParseBalance(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// WithGov routes a write through the DAO's sudo or governance path instead
// of direct signed submission.
type WithGov struct {
	RunType GovRunType `json:"run_type"`
	Amount  Balance    `json:"amount"`
	Member  MemberData `json:"member"`
}

// Validate validates the governance context
func (g *WithGov) Validate() []FieldError {
	var errors []FieldError
	if !g.RunType.IsValid() {
		errors = append(errors, FieldError{Field: "with_gov.run_type", Message: "run_type must be 1 (sudo) or 2 (gov)"})
	}
	if g.RunType == GovRunGov {
		switch g.Member.Scope {
		case MemberScopeGlobal, MemberScopeGuild, MemberScopeProject:
		default:
			errors = append(errors, FieldError{Field: "with_gov.member.scope", Message: "scope must be global, guild, or project"})
		}
	}
	return errors
}

// CreateGuildRequest is the payload for WeteeGuild.create_guild
type CreateGuildRequest struct {
	From     string   `json:"from"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	MetaData string   `json:"meta_data"`
	WithGov  *WithGov `json:"with_gov,omitempty"`
}

// Validate validates the create guild request
func (r *CreateGuildRequest) Validate() []FieldError {
	var errors []FieldError
	if r.From == "" {
		errors = append(errors, FieldError{Field: "from", Message: "from is required"})
	}
	if r.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if r.WithGov != nil {
		errors = append(errors, r.WithGov.Validate()...)
	}
	return errors
}

// GuildJoinRequest is the payload for WeteeGuild.guild_join_request
type GuildJoinRequest struct {
	From    string   `json:"from"`
	WithGov *WithGov `json:"with_gov,omitempty"`
}

// Validate validates the join request
func (r *GuildJoinRequest) Validate() []FieldError {
	var errors []FieldError
	if r.From == "" {
		errors = append(errors, FieldError{Field: "from", Message: "from is required"})
	}
	if r.WithGov != nil {
		errors = append(errors, r.WithGov.Validate()...)
	}
	return errors
}
