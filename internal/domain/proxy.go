package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// ProxyKind identifies one of the upgradeable proxies this tool deploys
type ProxyKind string

const (
	ProxyKindPools              ProxyKind = "pools"
	ProxyKindPrivates           ProxyKind = "privates"
	ProxyKindValidatorsRegistry ProxyKind = "validators-registry"
)

// DefaultInitializer is the initializer every proxy kind is created with
const DefaultInitializer = "initialize"

// AllProxyKinds returns the kinds in dependency order
func AllProxyKinds() []ProxyKind {
	return []ProxyKind{ProxyKindPools, ProxyKindPrivates, ProxyKindValidatorsRegistry}
}

// ParseProxyKind parses a kind from its CLI name or contract alias
func ParseProxyKind(s string) (ProxyKind, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(s)))
	switch normalized {
	case "pools":
		return ProxyKindPools, nil
	case "privates":
		return ProxyKindPrivates, nil
	case "validators-registry", "validatorsregistry", "registry":
		return ProxyKindValidatorsRegistry, nil
	}
	return "", fmt.Errorf("unknown proxy kind %q (expected pools, privates or validators-registry)", s)
}

// Alias returns the compiled contract name the proxy delegates to
func (k ProxyKind) Alias() string {
	switch k {
	case ProxyKindPools:
		return "Pools"
	case ProxyKindPrivates:
		return "Privates"
	case ProxyKindValidatorsRegistry:
		return "ValidatorsRegistry"
	}
	return ""
}

// LogicalName is the operator facing name used in deployment reports
func (k ProxyKind) LogicalName() string {
	switch k {
	case ProxyKindValidatorsRegistry:
		return "Validators Registry"
	default:
		return k.Alias()
	}
}

// Initializer returns the initializer method name for the kind
func (k ProxyKind) Initializer() string {
	return DefaultInitializer
}

func (k ProxyKind) String() string {
	return string(k)
}

// InitializerArgs is a strongly typed initializer argument set for one proxy kind
type InitializerArgs interface {
	Kind() ProxyKind
	// Values returns the arguments in the exact order of the initializer signature
	Values() []any
	Validate() error
}

// CollectorArgs are the initializer arguments shared by Pools and Privates:
// initialize(deposits, settings, operators, vrc, validatorsRegistry)
type CollectorArgs struct {
	Deposits           common.Address `json:"deposits" yaml:"deposits"`
	Settings           common.Address `json:"settings" yaml:"settings"`
	Operators          common.Address `json:"operators" yaml:"operators"`
	VRC                common.Address `json:"vrc" yaml:"vrc"`
	ValidatorsRegistry common.Address `json:"validatorsRegistry" yaml:"validatorsRegistry"`
}

func (a CollectorArgs) Values() []any {
	return []any{a.Deposits, a.Settings, a.Operators, a.VRC, a.ValidatorsRegistry}
}

func (a CollectorArgs) Validate() error {
	return requireAddresses(map[string]common.Address{
		"deposits":            a.Deposits,
		"settings":            a.Settings,
		"operators":           a.Operators,
		"vrc":                 a.VRC,
		"validators registry": a.ValidatorsRegistry,
	})
}

// PoolsArgs initializes the Pools proxy
type PoolsArgs struct {
	CollectorArgs
}

func (PoolsArgs) Kind() ProxyKind {
	return ProxyKindPools
}

// PrivatesArgs initializes the Privates proxy
type PrivatesArgs struct {
	CollectorArgs
}

func (PrivatesArgs) Kind() ProxyKind {
	return ProxyKindPrivates
}

// ValidatorsRegistryArgs are the ValidatorsRegistry initializer arguments:
// initialize(pools, privates, settings). Settings comes last here, unlike
// the collectors.
type ValidatorsRegistryArgs struct {
	Pools    common.Address `json:"pools" yaml:"pools"`
	Privates common.Address `json:"privates" yaml:"privates"`
	Settings common.Address `json:"settings" yaml:"settings"`
}

func (a ValidatorsRegistryArgs) Kind() ProxyKind {
	return ProxyKindValidatorsRegistry
}

func (a ValidatorsRegistryArgs) Values() []any {
	return []any{a.Pools, a.Privates, a.Settings}
}

func (a ValidatorsRegistryArgs) Validate() error {
	return requireAddresses(map[string]common.Address{
		"pools":    a.Pools,
		"privates": a.Privates,
		"settings": a.Settings,
	})
}

func requireAddresses(addrs map[string]common.Address) error {
	var missing []string
	for name, addr := range addrs {
		if addr == (common.Address{}) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing %s address", ErrInvalidAddress, strings.Join(missing, ", "))
}

// ProxyDeploymentRequest describes a single proxy deployment. It is built
// right before use and never mutated.
type ProxyDeploymentRequest struct {
	Kind        ProxyKind
	Alias       string
	Initializer string
	Args        []any
	Salt        Salt
	Network     *config.Network
}

// NewProxyDeploymentRequest builds a request from typed initializer args
func NewProxyDeploymentRequest(args InitializerArgs, salt Salt, network *config.Network) (ProxyDeploymentRequest, error) {
	if err := args.Validate(); err != nil {
		return ProxyDeploymentRequest{}, err
	}
	kind := args.Kind()
	return ProxyDeploymentRequest{
		Kind:        kind,
		Alias:       kind.Alias(),
		Initializer: kind.Initializer(),
		Args:        args.Values(),
		Salt:        salt,
		Network:     network,
	}, nil
}

// Validate checks the request is complete enough to hand to a creation service
func (r ProxyDeploymentRequest) Validate() error {
	if r.Alias == "" {
		return fmt.Errorf("%w: empty contract alias", ErrAliasNotFound)
	}
	if r.Initializer == "" {
		return fmt.Errorf("%w: empty initializer for %s", ErrInitializerNotFound, r.Alias)
	}
	if r.Network == nil || r.Network.RPCURL == "" {
		return fmt.Errorf("no network configured for %s deployment", r.Alias)
	}
	return nil
}

// DeployedProxy is the observed result of a successful deployment
type DeployedProxy struct {
	Kind           ProxyKind      `json:"kind" yaml:"kind"`
	Alias          string         `json:"alias" yaml:"alias"`
	Address        common.Address `json:"address" yaml:"address"`
	Implementation common.Address `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	Salt           Salt           `json:"salt" yaml:"salt"`
	ChainID        uint64         `json:"chainId" yaml:"chainId"`
	Namespace      string         `json:"namespace" yaml:"namespace"`
	TxHash         common.Hash    `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	InitArgs       []string       `json:"initArgs" yaml:"initArgs"`
	CreatedAt      time.Time      `json:"createdAt" yaml:"createdAt"`
}

// CreationReceipt is what a proxy creation service observed on-chain
type CreationReceipt struct {
	Address        common.Address
	Implementation common.Address
	TxHash         common.Hash
	ChainID        uint64
}

// ProxyFilter selects recorded proxies
type ProxyFilter struct {
	ChainID   uint64
	Namespace string
	Kind      ProxyKind
}

// Matches reports whether p satisfies the filter
func (f ProxyFilter) Matches(p *DeployedProxy) bool {
	if f.ChainID != 0 && p.ChainID != f.ChainID {
		return false
	}
	if f.Namespace != "" && p.Namespace != f.Namespace {
		return false
	}
	if f.Kind != "" && p.Kind != f.Kind {
		return false
	}
	return true
}

// StackInputs are the infrastructure addresses the proxies are initialized with.
// ValidatorsRegistry may be zero, in which case it is predicted from its salt.
type StackInputs struct {
	Deposits           common.Address `json:"deposits" yaml:"deposits"`
	Settings           common.Address `json:"settings" yaml:"settings"`
	Operators          common.Address `json:"operators" yaml:"operators"`
	VRC                common.Address `json:"vrc" yaml:"vrc"`
	ValidatorsRegistry common.Address `json:"validatorsRegistry,omitempty" yaml:"validatorsRegistry,omitempty"`
}

// Collector returns the collector initializer args for the given registry address
func (in StackInputs) Collector(validatorsRegistry common.Address) CollectorArgs {
	return CollectorArgs{
		Deposits:           in.Deposits,
		Settings:           in.Settings,
		Operators:          in.Operators,
		VRC:                in.VRC,
		ValidatorsRegistry: validatorsRegistry,
	}
}
