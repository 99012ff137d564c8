package createx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stakewise/proxy-deployer/internal/domain"
)

// create3ProxyBytecode is the init code of the intermediate CREATE3 proxy CreateX deploys
var create3ProxyBytecode = common.FromHex("0x67363d3d37363d34f03d5260086018f3")

var create3ProxyCodeHash = crypto.Keccak256(create3ProxyBytecode)

// GuardedSalt applies the CreateX salt guard for a transaction sent by sender on chainID.
//
// Byte 20 of the salt selects cross-chain redeploy protection (0x01 on, 0x00 off).
// Salts whose first 20 bytes are the sender are bound to it; salts starting
// with the zero address are shared; anything else is hashed as is.
func GuardedSalt(sender common.Address, chainID uint64, salt domain.Salt) (common.Hash, error) {
	prefix := common.BytesToAddress(salt[:20])
	flag := salt[20]

	switch {
	case prefix == sender && flag == 0x01:
		return crypto.Keccak256Hash(
			common.LeftPadBytes(sender.Bytes(), 32),
			math.U256Bytes(new(big.Int).SetUint64(chainID)),
			salt[:],
		), nil
	case prefix == sender && flag == 0x00:
		return crypto.Keccak256Hash(common.LeftPadBytes(sender.Bytes(), 32), salt[:]), nil
	case prefix == sender:
		return common.Hash{}, fmt.Errorf("%w: redeploy protection byte must be 0x00 or 0x01, got 0x%02x", domain.ErrInvalidSalt, flag)
	case prefix == (common.Address{}) && flag == 0x01:
		return crypto.Keccak256Hash(math.U256Bytes(new(big.Int).SetUint64(chainID)), salt[:]), nil
	case prefix == (common.Address{}) && flag != 0x00:
		return common.Hash{}, fmt.Errorf("%w: redeploy protection byte must be 0x00 or 0x01, got 0x%02x", domain.ErrInvalidSalt, flag)
	default:
		return crypto.Keccak256Hash(salt[:]), nil
	}
}

// ComputeCreate3Address returns the address CreateX deploys to for a guarded salt
func ComputeCreate3Address(guardedSalt common.Hash, factory common.Address) common.Address {
	proxy := crypto.CreateAddress2(factory, guardedSalt, create3ProxyCodeHash)
	return crypto.CreateAddress(proxy, 1)
}

// PredictAddress combines the salt guard and the CREATE3 derivation
func PredictAddress(factory, sender common.Address, chainID uint64, salt domain.Salt) (common.Address, error) {
	guarded, err := GuardedSalt(sender, chainID, salt)
	if err != nil {
		return common.Address{}, err
	}
	return ComputeCreate3Address(guarded, factory), nil
}
