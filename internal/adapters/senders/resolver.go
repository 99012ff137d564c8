package senders

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// Selector picks one of several options
type Selector interface {
	Select(label string, options []string) (int, error)
}

// Resolver resolves the signing account of the active namespace
type Resolver struct {
	config   *config.RuntimeConfig
	selector Selector

	mu   sync.Mutex
	name string
	key  *ecdsa.PrivateKey
}

// NewResolver creates a new sender resolver
func NewResolver(cfg *config.RuntimeConfig, selector Selector) *Resolver {
	return &Resolver{config: cfg, selector: selector}
}

// SenderAddress returns the address of the namespace sender
func (r *Resolver) SenderAddress(ctx context.Context) (common.Address, error) {
	key, err := r.PrivateKey(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// SenderName returns the account name the sender was resolved from
func (r *Resolver) SenderName(ctx context.Context) (string, error) {
	if _, err := r.PrivateKey(ctx); err != nil {
		return "", err
	}
	return r.name, nil
}

// PrivateKey loads the namespace sender key. The result is cached.
func (r *Resolver) PrivateKey(ctx context.Context) (*ecdsa.PrivateKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.key != nil {
		return r.key, nil
	}

	name, account, err := r.account()
	if err != nil {
		return nil, err
	}

	key, err := loadKey(name, account)
	if err != nil {
		return nil, err
	}

	r.name, r.key = name, key
	return key, nil
}

func (r *Resolver) account() (string, config.AccountConfig, error) {
	accounts := map[string]config.AccountConfig{}
	if dc := r.config.DeployerConfig; dc != nil {
		accounts = dc.Accounts
		if ns, ok := dc.Namespace[r.config.Namespace]; ok && ns.Sender != "" {
			return lookup(accounts, ns.Sender)
		}
	}

	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	switch {
	case len(names) == 0:
		return "", config.AccountConfig{}, fmt.Errorf("%w: no [accounts] configured in deployer.toml", domain.ErrSenderNotFound)
	case len(names) == 1:
		return names[0], accounts[names[0]], nil
	}

	if _, ok := accounts["default"]; ok {
		return "default", accounts["default"], nil
	}

	if r.config.NonInteractive || r.selector == nil {
		return "", config.AccountConfig{}, fmt.Errorf("%w: namespace %s has no sender and several accounts are configured (%s)",
			domain.ErrSenderNotFound, r.config.Namespace, strings.Join(names, ", "))
	}

	idx, err := r.selector.Select(fmt.Sprintf("Select sender for namespace %s", r.config.Namespace), names)
	if err != nil {
		return "", config.AccountConfig{}, err
	}
	return names[idx], accounts[names[idx]], nil
}

func lookup(accounts map[string]config.AccountConfig, name string) (string, config.AccountConfig, error) {
	if account, ok := accounts[name]; ok {
		return name, account, nil
	}
	for key, account := range accounts {
		if strings.EqualFold(key, name) {
			return key, account, nil
		}
	}
	return "", config.AccountConfig{}, fmt.Errorf("%w: account %q", domain.ErrSenderNotFound, name)
}

func loadKey(name string, account config.AccountConfig) (*ecdsa.PrivateKey, error) {
	switch account.Type {
	case config.SenderTypePrivateKey, "":
	default:
		return nil, fmt.Errorf("account %s: unsupported sender type %q", name, account.Type)
	}

	raw := strings.TrimPrefix(strings.TrimSpace(account.PrivateKey), "0x")
	if raw == "" {
		return nil, fmt.Errorf("%w: account %s has no private_key", domain.ErrSenderNotFound, name)
	}

	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("account %s: invalid private key: %w", name, err)
	}

	if account.Address != "" {
		derived := crypto.PubkeyToAddress(key.PublicKey)
		if !common.IsHexAddress(account.Address) || common.HexToAddress(account.Address) != derived {
			return nil, fmt.Errorf("account %s: private key belongs to %s, not %s", name, derived.Hex(), account.Address)
		}
	}
	return key, nil
}

var _ usecase.SenderResolver = (*Resolver)(nil)
