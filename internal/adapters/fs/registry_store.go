package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// DeploymentsFile is the registry file inside the data dir
const DeploymentsFile = "deployments.json"

// deploymentsIndex is chainID -> namespace -> kind -> proxy
type deploymentsIndex map[uint64]map[string]map[domain.ProxyKind]*domain.DeployedProxy

// RegistryStore keeps deployed proxies in .deployer/deployments.json
type RegistryStore struct {
	path   string
	mu     sync.RWMutex
	index  deploymentsIndex
	loaded bool
}

// NewRegistryStore creates a registry store rooted at the runtime data dir
func NewRegistryStore(cfg *config.RuntimeConfig) *RegistryStore {
	return &RegistryStore{path: filepath.Join(cfg.DataDir, DeploymentsFile)}
}

// Path returns the registry file location
func (s *RegistryStore) Path() string {
	return s.path
}

// SaveProxy records proxy, replacing any earlier entry for the same chain, namespace and kind
func (s *RegistryStore) SaveProxy(ctx context.Context, proxy *domain.DeployedProxy) error {
	if proxy == nil {
		return fmt.Errorf("cannot save nil proxy")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	byNamespace, ok := s.index[proxy.ChainID]
	if !ok {
		byNamespace = make(map[string]map[domain.ProxyKind]*domain.DeployedProxy)
		s.index[proxy.ChainID] = byNamespace
	}
	byKind, ok := byNamespace[proxy.Namespace]
	if !ok {
		byKind = make(map[domain.ProxyKind]*domain.DeployedProxy)
		byNamespace[proxy.Namespace] = byKind
	}

	stored := *proxy
	byKind[proxy.Kind] = &stored

	return s.save()
}

// GetProxy returns the proxy recorded for chainID, namespace and kind
func (s *RegistryStore) GetProxy(ctx context.Context, chainID uint64, namespace string, kind domain.ProxyKind) (*domain.DeployedProxy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	proxy, ok := s.index[chainID][namespace][kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s in namespace %s on chain %d", domain.ErrNotFound, kind, namespace, chainID)
	}
	found := *proxy
	return &found, nil
}

// ListProxies returns every recorded proxy matching filter
func (s *RegistryStore) ListProxies(ctx context.Context, filter domain.ProxyFilter) ([]*domain.DeployedProxy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	var result []*domain.DeployedProxy
	for _, byNamespace := range s.index {
		for _, byKind := range byNamespace {
			for _, proxy := range byKind {
				if !filter.Matches(proxy) {
					continue
				}
				found := *proxy
				result = append(result, &found)
			}
		}
	}
	return result, nil
}

// load reads the registry file once. A missing file is an empty registry.
func (s *RegistryStore) load() error {
	if s.loaded {
		return nil
	}

	s.index = make(deploymentsIndex)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.index); err != nil {
			return fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	}

	s.loaded = true
	return nil
}

// save writes the registry through a temp file so a crash never leaves it truncated
func (s *RegistryStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployments: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write deployments: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace deployments: %w", err)
	}
	return nil
}

var _ usecase.DeploymentRegistry = (*RegistryStore)(nil)
