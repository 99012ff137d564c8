package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// SaltSpec is the operator supplied salt source for one proxy
type SaltSpec struct {
	Salt    string // 32 byte hex salt, used as is
	Entropy string // entropy for a permissioned salt
}

// SaltResolver turns salt specs into concrete salts.
//
// Precedence: explicit salt, explicit entropy, the network's configured salt
// for the kind, then the default entropy "<namespace>/<Alias>".
type SaltResolver struct {
	config  *config.RuntimeConfig
	senders SenderResolver
}

// NewSaltResolver creates a new SaltResolver
func NewSaltResolver(cfg *config.RuntimeConfig, senders SenderResolver) *SaltResolver {
	return &SaltResolver{config: cfg, senders: senders}
}

// Resolve returns the salt for kind
func (r *SaltResolver) Resolve(ctx context.Context, kind domain.ProxyKind, spec SaltSpec) (domain.Salt, error) {
	if spec.Salt != "" {
		return domain.ParseSalt(spec.Salt)
	}

	entropy := spec.Entropy
	if entropy == "" {
		configured := configuredSalt(r.config.Inputs().Salts, kind)
		if isHexSalt(configured) {
			return domain.ParseSalt(configured)
		}
		entropy = configured
	}
	if entropy == "" {
		entropy = DefaultEntropy(r.config.Namespace, kind)
	}

	sender, err := r.senders.SenderAddress(ctx)
	if err != nil {
		return domain.Salt{}, fmt.Errorf("failed to resolve sender for salt: %w", err)
	}
	return domain.SaltFromEntropy(sender, entropy), nil
}

// DefaultEntropy is the entropy used when no salt is configured
func DefaultEntropy(namespace string, kind domain.ProxyKind) string {
	return namespace + "/" + kind.Alias()
}

func configuredSalt(salts config.SaltsConfig, kind domain.ProxyKind) string {
	switch kind {
	case domain.ProxyKindPools:
		return salts.Pools
	case domain.ProxyKindPrivates:
		return salts.Privates
	case domain.ProxyKindValidatorsRegistry:
		return salts.ValidatorsRegistry
	}
	return ""
}

func isHexSalt(s string) bool {
	return strings.HasPrefix(s, "0x") && len(s) == 66
}
