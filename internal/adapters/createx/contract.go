package createx

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Values is the ICreateX.Values struct passed to the *AndInit deploy functions
type Values struct {
	ConstructorAmount *big.Int
	InitCallAmount    *big.Int
}

// ZeroValues sends no ether to either the constructor or the initializer
func ZeroValues() Values {
	return Values{ConstructorAmount: big.NewInt(0), InitCallAmount: big.NewInt(0)}
}

// metaData holds the subset of the CreateX ABI the deployer calls
var metaData = bind.MetaData{
	ABI: `[
	{"type":"function","name":"computeCreate3Address","stateMutability":"pure",
	 "inputs":[{"name":"salt","type":"bytes32"},{"name":"deployer","type":"address"}],
	 "outputs":[{"name":"computedAddress","type":"address"}]},
	{"type":"function","name":"deployCreate3AndInit","stateMutability":"payable",
	 "inputs":[{"name":"salt","type":"bytes32"},{"name":"initCode","type":"bytes"},{"name":"data","type":"bytes"},
	  {"name":"values","type":"tuple","internalType":"struct ICreateX.Values","components":[
	   {"name":"constructorAmount","type":"uint256"},{"name":"initCallAmount","type":"uint256"}]}],
	 "outputs":[{"name":"newContract","type":"address"}]},
	{"type":"event","name":"ContractCreation","anonymous":false,
	 "inputs":[{"name":"newContract","type":"address","indexed":true},{"name":"salt","type":"bytes32","indexed":true}]},
	{"type":"event","name":"Create3ProxyContractCreation","anonymous":false,
	 "inputs":[{"name":"newContract","type":"address","indexed":true},{"name":"salt","type":"bytes32","indexed":true}]},
	{"type":"error","name":"FailedContractCreation","inputs":[{"name":"emitter","type":"address"}]},
	{"type":"error","name":"FailedContractInitialisation","inputs":[{"name":"emitter","type":"address"},{"name":"revertData","type":"bytes"}]},
	{"type":"error","name":"InvalidSalt","inputs":[{"name":"emitter","type":"address"}]}
]`,
	ID: "CreateX",
}

// Contract packs CreateX calls and decodes its events and errors
type Contract struct {
	abi abi.ABI
}

// NewContract parses the CreateX ABI
func NewContract() *Contract {
	parsed, err := metaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Contract{abi: *parsed}
}

// PackDeployCreate3AndInit packs deployCreate3AndInit(bytes32,bytes,bytes,(uint256,uint256))
func (c *Contract) PackDeployCreate3AndInit(salt [32]byte, initCode, data []byte, values Values) ([]byte, error) {
	return c.abi.Pack("deployCreate3AndInit", salt, initCode, data, values)
}

// PackComputeCreate3Address packs computeCreate3Address(bytes32,address)
func (c *Contract) PackComputeCreate3Address(salt [32]byte, deployer common.Address) ([]byte, error) {
	return c.abi.Pack("computeCreate3Address", salt, deployer)
}

// UnpackComputeCreate3Address decodes the computeCreate3Address result
func (c *Contract) UnpackComputeCreate3Address(data []byte) (common.Address, error) {
	out, err := c.abi.Unpack("computeCreate3Address", data)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// CreatedContract extracts the proxy address from a deployCreate3AndInit
// receipt. Create3ProxyContractCreation is emitted for the CREATE2 proxy,
// ContractCreation(address,bytes32) for the final contract.
func (c *Contract) CreatedContract(factory common.Address, logs []*types.Log) (common.Address, bool) {
	created := c.abi.Events["ContractCreation"].ID
	for _, log := range logs {
		if log.Address != factory || len(log.Topics) < 2 {
			continue
		}
		if log.Topics[0] == created {
			return common.BytesToAddress(log.Topics[1].Bytes()), true
		}
	}
	return common.Address{}, false
}

// DecodeError renders CreateX custom error revert data
func (c *Contract) DecodeError(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}
	for name, e := range c.abi.Errors {
		if !bytes.Equal(e.ID.Bytes()[:4], data[:4]) {
			continue
		}
		values, err := e.Inputs.Unpack(data[4:])
		if err != nil {
			return name, true
		}
		if name == "FailedContractInitialisation" && len(values) == 2 {
			if revert, ok := values[1].([]byte); ok && len(revert) > 0 {
				if reason, err := abi.UnpackRevert(revert); err == nil {
					return fmt.Sprintf("%s: %s", name, reason), true
				}
			}
		}
		return name, true
	}
	return "", false
}
