package governance

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/wetee-dao/guildgate/internal/model"
)

// MemberData is the SCALE form of wetee_gov::MemberData, the body that votes
// on a proposal.
type MemberData struct {
	IsGlobal bool

	IsGuild bool
	AsGuild types.U64

	IsProject bool
	AsProject types.U64
}

// NewMemberData converts the request form of a voting body.
func NewMemberData(m model.MemberData) (MemberData, error) {
	switch m.Scope {
	case model.MemberScopeGlobal:
		return MemberData{IsGlobal: true}, nil
	case model.MemberScopeGuild:
		return MemberData{IsGuild: true, AsGuild: types.NewU64(m.ID)}, nil
	case model.MemberScopeProject:
		return MemberData{IsProject: true, AsProject: types.NewU64(m.ID)}, nil
	default:
		return MemberData{}, fmt.Errorf("%w: %q", ErrInvalidMemberScope, m.Scope)
	}
}

func (m MemberData) Encode(encoder scale.Encoder) error {
	switch {
	case m.IsGlobal:
		return encoder.PushByte(0)
	case m.IsGuild:
		if err := encoder.PushByte(1); err != nil {
			return err
		}
		return encoder.Encode(m.AsGuild)
	case m.IsProject:
		if err := encoder.PushByte(2); err != nil {
			return err
		}
		return encoder.Encode(m.AsProject)
	}
	return ErrInvalidMemberScope
}

func (m *MemberData) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	switch b {
	case 0:
		m.IsGlobal = true
		return nil
	case 1:
		m.IsGuild = true
		return decoder.Decode(&m.AsGuild)
	case 2:
		m.IsProject = true
		return decoder.Decode(&m.AsProject)
	}
	return fmt.Errorf("%w: variant %d", ErrInvalidMemberScope, b)
}
