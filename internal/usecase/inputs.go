package usecase

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// AddressOverrides are addresses given on the command line. Empty values
// fall back to the network section of deployer.toml.
type AddressOverrides struct {
	Deposits           string
	Settings           string
	Operators          string
	VRC                string
	ValidatorsRegistry string
	Pools              string
	Privates           string
}

// ResolveStackInputs merges overrides over the configured network inputs
func ResolveStackInputs(cfg *config.RuntimeConfig, overrides AddressOverrides) (domain.StackInputs, error) {
	configured := cfg.Inputs()

	var in domain.StackInputs
	var err error
	if in.Deposits, err = pickAddress("deposits", overrides.Deposits, configured.Deposits); err != nil {
		return in, err
	}
	if in.Settings, err = pickAddress("settings", overrides.Settings, configured.Settings); err != nil {
		return in, err
	}
	if in.Operators, err = pickAddress("operators", overrides.Operators, configured.Operators); err != nil {
		return in, err
	}
	if in.VRC, err = pickAddress("vrc", overrides.VRC, configured.VRC); err != nil {
		return in, err
	}
	if in.ValidatorsRegistry, err = pickAddress("validators registry", overrides.ValidatorsRegistry, configured.ValidatorsRegistry); err != nil {
		return in, err
	}
	return in, nil
}

// ParseOptionalAddress parses an address flag, returning the zero address when empty
func ParseOptionalAddress(name, value string) (common.Address, error) {
	return pickAddress(name, value, "")
}

func pickAddress(name, override, configured string) (common.Address, error) {
	value := override
	if value == "" {
		value = configured
	}
	if value == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %s %q", domain.ErrInvalidAddress, name, value)
	}
	return common.HexToAddress(value), nil
}
