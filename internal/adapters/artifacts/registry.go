package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// Artifact is a compiled Foundry contract
type Artifact struct {
	Name         string
	SourcePath   string
	ArtifactPath string
	ABI          abi.ABI
	Bytecode     []byte
}

// Registry resolves contract aliases to compiled artifacts under the Foundry out directory
type Registry struct {
	outDir  string
	mu      sync.RWMutex
	indexed bool
	byName  map[string][]*Artifact
}

// NewRegistry creates a registry for the artifacts of the active namespace profile
func NewRegistry(cfg *config.RuntimeConfig) *Registry {
	profile := "default"
	if cfg.DeployerConfig != nil {
		if ns, ok := cfg.DeployerConfig.Namespace[cfg.Namespace]; ok && ns.Profile != "" {
			profile = ns.Profile
		}
	}
	return NewRegistryAt(filepath.Join(cfg.ProjectRoot, cfg.FoundryConfig.ArtifactsDir(profile)))
}

// NewRegistryAt creates a registry reading artifacts from outDir
func NewRegistryAt(outDir string) *Registry {
	return &Registry{
		outDir: outDir,
		byName: make(map[string][]*Artifact),
	}
}

// Index walks the out directory. It is called lazily by Resolve.
func (r *Registry) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index()
}

func (r *Registry) index() error {
	if _, err := os.Stat(r.outDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found, run forge build", r.outDir)
	}

	byName := make(map[string][]*Artifact)
	err := filepath.Walk(r.outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}

		artifact, err := parseArtifact(path)
		if err != nil {
			return fmt.Errorf("failed to parse artifact %s: %w", path, err)
		}
		if artifact != nil {
			byName[artifact.Name] = append(byName[artifact.Name], artifact)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.byName = byName
	r.indexed = true
	return nil
}

// foundryArtifact is the subset of a Foundry artifact file this registry reads
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
	Metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// parseArtifact returns nil for artifacts without creation bytecode (interfaces, abstracts)
func parseArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw foundryArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Bytecode.Object == "" || raw.Bytecode.Object == "0x" {
		return nil, nil
	}

	name := strings.TrimSuffix(filepath.Base(path), ".json")
	source := filepath.Base(filepath.Dir(path))
	for src, contract := range raw.Metadata.Settings.CompilationTarget {
		source, name = src, contract
	}

	bytecode, err := hexutil.Decode(ensureHexPrefix(raw.Bytecode.Object))
	if err != nil {
		// unlinked library placeholders are not valid hex
		return nil, fmt.Errorf("invalid bytecode for %s: %w", name, err)
	}

	parsed, err := abi.JSON(strings.NewReader(string(raw.ABI)))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI for %s: %w", name, err)
	}

	return &Artifact{
		Name:         name,
		SourcePath:   source,
		ArtifactPath: path,
		ABI:          parsed,
		Bytecode:     bytecode,
	}, nil
}

// Resolve finds the artifact for alias. The alias is a contract name or
// "<source path>:<contract name>" when the name is ambiguous.
func (r *Registry) Resolve(alias string) (*Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.indexed {
		if err := r.index(); err != nil {
			return nil, err
		}
	}

	name, source := alias, ""
	if idx := strings.LastIndex(alias, ":"); idx != -1 {
		source, name = alias[:idx], alias[idx+1:]
	}

	candidates := r.byName[name]
	if source != "" {
		var filtered []*Artifact
		for _, a := range candidates {
			if a.SourcePath == source || strings.HasSuffix(a.SourcePath, "/"+source) {
				filtered = append(filtered, a)
			}
		}
		candidates = filtered
	}

	switch len(candidates) {
	case 0:
		return nil, r.notFound(alias, name)
	case 1:
		return candidates[0], nil
	}

	paths := make([]string, len(candidates))
	for i, a := range candidates {
		paths[i] = a.SourcePath + ":" + a.Name
	}
	sort.Strings(paths)
	return nil, fmt.Errorf("%w: %s is ambiguous, use one of %s", domain.ErrAliasNotFound, alias, strings.Join(paths, ", "))
}

// Names returns all indexed contract names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) notFound(alias, name string) error {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAliasNotFound, alias)
	}

	suggestions := make([]string, 0, 3)
	for i, m := range matches {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return fmt.Errorf("%w: %s (did you mean %s?)", domain.ErrAliasNotFound, alias, strings.Join(suggestions, ", "))
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") {
		return s
	}
	return "0x" + s
}
