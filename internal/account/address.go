package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	subkey "github.com/vedhavyas/go-subkey/v2"
)

// ErrInvalidAddress indicates a string that is neither SS58 nor a 32-byte hex account id.
var ErrInvalidAddress = errors.New("invalid account address")

// ParseAddress decodes an SS58 address (any network prefix) or a 0x-prefixed
// hex public key into an AccountID.
func ParseAddress(s string) (types.AccountID, error) {
	var id types.AccountID

	s = strings.TrimSpace(s)
	if s == "" {
		return id, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}

	var pub []byte
	if strings.HasPrefix(s, "0x") {
		b, err := codec.HexDecodeString(s)
		if err != nil {
			return id, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		pub = b
	} else {
		_, b, err := subkey.SS58Decode(s)
		if err != nil {
			return id, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		pub = b
	}

	if len(pub) != len(id) {
		return id, fmt.Errorf("%w: public key is %d bytes, want %d", ErrInvalidAddress, len(pub), len(id))
	}
	copy(id[:], pub)
	return id, nil
}

// FormatAddress encodes id as SS58 under the given network prefix
func FormatAddress(id types.AccountID, prefix uint16) string {
	return subkey.SS58Encode(id[:], prefix)
}
