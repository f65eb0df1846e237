package chain

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

func testAccount(b byte) types.AccountID {
	var id types.AccountID
	for i := range id {
		id[i] = b
	}
	return id
}

func TestCreateGuild(t *testing.T) {
	t.Parallel()

	creator := testAccount(0xaa)
	c := CreateGuild(3, "builders", "core devs", "{}", creator)

	if c.Method != MethodCreateGuild {
		t.Errorf("Method = %q, want %q", c.Method, MethodCreateGuild)
	}
	if len(c.Args) != 5 {
		t.Fatalf("len(Args) = %d, want 5", len(c.Args))
	}
	if name, ok := c.Args[0].(types.Bytes); !ok || string(name) != "builders" {
		t.Errorf("Args[0] = %v, want name bytes", c.Args[0])
	}
	if dao, ok := c.Args[3].(types.U64); !ok || dao != 3 {
		t.Errorf("Args[3] = %v, want dao id 3", c.Args[3])
	}
	if got, ok := c.Args[4].(types.AccountID); !ok || got != creator {
		t.Errorf("Args[4] = %v, want creator", c.Args[4])
	}
}

func TestGuildJoinRequest(t *testing.T) {
	t.Parallel()

	who := testAccount(0x01)
	c := GuildJoinRequest(5, 2, who)

	if c.Method != MethodGuildJoinRequest {
		t.Errorf("Method = %q, want %q", c.Method, MethodGuildJoinRequest)
	}
	if len(c.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(c.Args))
	}
	if dao, _ := c.Args[0].(types.U64); dao != 5 {
		t.Errorf("dao id = %v, want 5", c.Args[0])
	}
	if guild, _ := c.Args[1].(types.U64); guild != 2 {
		t.Errorf("guild id = %v, want 2", c.Args[1])
	}
}

func TestSudo_WrapsInnerCall(t *testing.T) {
	t.Parallel()

	inner := GuildJoinRequest(5, 2, testAccount(0x01))
	c := Sudo(5, inner)

	if c.Method != MethodSudo {
		t.Errorf("Method = %q, want %q", c.Method, MethodSudo)
	}
	got, ok := c.Args[1].(Call)
	if !ok {
		t.Fatalf("Args[1] is %T, want Call", c.Args[1])
	}
	if got.Method != MethodGuildJoinRequest {
		t.Errorf("inner Method = %q, want %q", got.Method, MethodGuildJoinRequest)
	}
}

func TestCreatePropose_Deposit(t *testing.T) {
	t.Parallel()

	inner := CreateGuild(1, "g", "", "", testAccount(0x02))
	c := CreatePropose(1, "member", inner, big.NewInt(1000))

	if c.Method != MethodCreatePropose {
		t.Errorf("Method = %q, want %q", c.Method, MethodCreatePropose)
	}
	if len(c.Args) != 4 {
		t.Fatalf("len(Args) = %d, want 4", len(c.Args))
	}
	deposit, ok := c.Args[3].(types.U128)
	if !ok {
		t.Fatalf("Args[3] is %T, want U128", c.Args[3])
	}
	if deposit.Uint64() != 1000 {
		t.Errorf("deposit = %s, want 1000", deposit.String())
	}
}

func TestCreatePropose_DepositAboveUint64(t *testing.T) {
	t.Parallel()

	want, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	c := CreatePropose(1, "member", CreateGuild(1, "g", "", "", testAccount(0x02)), want)

	deposit := c.Args[3].(types.U128)
	if deposit.Cmp(want) != 0 {
		t.Errorf("deposit = %s, want %s", deposit.String(), want.String())
	}

	enc, err := codec.Encode(deposit)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(enc, bytes.Repeat([]byte{0xff}, 16)) {
		t.Errorf("encoded = %x, want 16 bytes of ff", enc)
	}
}

func TestCreatePropose_NilDeposit(t *testing.T) {
	t.Parallel()

	c := CreatePropose(1, "member", CreateGuild(1, "g", "", "", testAccount(0x02)), nil)
	if deposit := c.Args[3].(types.U128); deposit.Sign() != 0 {
		t.Errorf("deposit = %s, want 0", deposit.String())
	}
}

func TestGuildInfo_DecodeFieldOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.WriteByte(0x04)                         // vec len 1
	buf.Write([]byte{7, 0, 0, 0, 0, 0, 0, 0})   // id
	buf.Write(bytes.Repeat([]byte{0xcd}, 32))   // creator
	buf.Write([]byte{100, 0, 0, 0, 0, 0, 0, 0}) // start_block
	buf.Write([]byte{0x0c, 'd', 'e', 'v'})      // name
	buf.Write([]byte{0x08, 'h', 'i'})           // desc
	buf.WriteByte(1)                            // status
	buf.Write([]byte{0x08, '{', '}'})           // meta_data

	var guilds []GuildInfo
	if err := codec.Decode(buf.Bytes(), &guilds); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(guilds) != 1 {
		t.Fatalf("len = %d, want 1", len(guilds))
	}

	g := guilds[0]
	if g.ID != 7 {
		t.Errorf("ID = %d, want 7", g.ID)
	}
	if g.Creator != testAccount(0xcd) {
		t.Errorf("Creator = %x", g.Creator[:])
	}
	if g.StartBlock != 100 {
		t.Errorf("StartBlock = %d, want 100", g.StartBlock)
	}
	if string(g.Name) != "dev" || string(g.Desc) != "hi" || string(g.MetaData) != "{}" {
		t.Errorf("text fields = %q %q %q", g.Name, g.Desc, g.MetaData)
	}
	if g.Status != 1 {
		t.Errorf("Status = %d, want 1", g.Status)
	}
}
