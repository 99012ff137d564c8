package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Salt is the 32 byte input to deterministic proxy address derivation.
//
// Salts built by SaltFromEntropy follow the CreateX permissioned layout:
// bytes 0..19 hold the deployer address, byte 20 is 0x00 (no cross-chain
// redeploy protection) and bytes 21..31 carry entropy.
type Salt [32]byte

// SaltFromEntropy derives a permissioned salt for sender from a human readable entropy string
func SaltFromEntropy(sender common.Address, entropy string) Salt {
	var s Salt
	copy(s[:20], sender.Bytes())
	s[20] = 0x00
	hash := crypto.Keccak256([]byte(entropy))
	copy(s[21:], hash[:11])
	return s
}

// ParseSalt parses a 0x prefixed, 32 byte hex salt
func ParseSalt(raw string) (Salt, error) {
	var s Salt
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "0x") {
		raw = "0x" + raw
	}
	b, err := hexutil.Decode(raw)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	if len(b) != len(s) {
		return s, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidSalt, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// Sender returns the address encoded in the first 20 bytes
func (s Salt) Sender() common.Address {
	return common.BytesToAddress(s[:20])
}

// IsPermissioned reports whether the salt is bound to sender
func (s Salt) IsPermissioned(sender common.Address) bool {
	return s.Sender() == sender && s[20] == 0x00
}

func (s Salt) IsZero() bool {
	return s == Salt{}
}

func (s Salt) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Salt) String() string {
	return s.Hex()
}

func (s Salt) MarshalText() ([]byte, error) {
	return []byte(s.Hex()), nil
}

func (s *Salt) UnmarshalText(text []byte) error {
	parsed, err := ParseSalt(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
