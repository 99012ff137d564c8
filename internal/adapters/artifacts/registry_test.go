package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initializeABI = `[{"type":"function","name":"initialize","stateMutability":"nonpayable","inputs":[
	{"name":"_deposits","type":"address"},{"name":"_settings","type":"address"},
	{"name":"_operators","type":"address"},{"name":"_vrc","type":"address"},
	{"name":"_validatorsRegistry","type":"address"}],"outputs":[]}]`

func writeArtifact(t *testing.T, outDir, rel, source, name, abiJSON, bytecode string) {
	t.Helper()
	path := filepath.Join(outDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	metadata := ""
	if source != "" {
		metadata = fmt.Sprintf(`,"metadata":{"settings":{"compilationTarget":{%q:%q}}}`, source, name)
	}
	content := fmt.Sprintf(`{"abi":%s,"bytecode":{"object":%q}%s}`, abiJSON, bytecode, metadata)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func fixture(t *testing.T) string {
	outDir := filepath.Join(t.TempDir(), "out")
	writeArtifact(t, outDir, "Pools.sol/Pools.json", "src/Pools.sol", "Pools", initializeABI, "0x6080604052")
	writeArtifact(t, outDir, "Privates.sol/Privates.json", "src/Privates.sol", "Privates", initializeABI, "6080604052")
	writeArtifact(t, outDir, "IPools.sol/IPools.json", "src/IPools.sol", "IPools", initializeABI, "0x")
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "build-info"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "build-info", "abc.json"), []byte("not an artifact"), 0644))
	return outDir
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistryAt(fixture(t))

	pools, err := reg.Resolve("Pools")
	require.NoError(t, err)
	assert.Equal(t, "Pools", pools.Name)
	assert.Equal(t, "src/Pools.sol", pools.SourcePath)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, pools.Bytecode)
	method, ok := pools.ABI.Methods["initialize"]
	require.True(t, ok)
	assert.Len(t, method.Inputs, 5)

	privates, err := reg.Resolve("src/Privates.sol:Privates")
	require.NoError(t, err)
	assert.Equal(t, "Privates", privates.Name)

	assert.Equal(t, []string{"Pools", "Privates"}, reg.Names())
}

func TestRegistryNotFound(t *testing.T) {
	reg := NewRegistryAt(fixture(t))

	t.Run("interfaces are not deployable", func(t *testing.T) {
		_, err := reg.Resolve("IPools")
		assert.ErrorIs(t, err, domain.ErrAliasNotFound)
	})

	t.Run("suggestions", func(t *testing.T) {
		_, err := reg.Resolve("Pool")
		assert.ErrorIs(t, err, domain.ErrAliasNotFound)
		assert.Contains(t, err.Error(), "did you mean Pools")
	})

	t.Run("no suggestions", func(t *testing.T) {
		_, err := reg.Resolve("ValidatorsRegistry")
		assert.ErrorIs(t, err, domain.ErrAliasNotFound)
		assert.NotContains(t, err.Error(), "did you mean")
	})

	t.Run("missing out dir", func(t *testing.T) {
		_, err := NewRegistryAt(filepath.Join(t.TempDir(), "missing")).Resolve("Pools")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "forge build")
	})
}

func TestRegistryAmbiguous(t *testing.T) {
	outDir := fixture(t)
	writeArtifact(t, outDir, "legacy/Pools.sol/Pools.json", "src/legacy/Pools.sol", "Pools", initializeABI, "0x60")
	reg := NewRegistryAt(outDir)

	_, err := reg.Resolve("Pools")
	assert.ErrorIs(t, err, domain.ErrAliasNotFound)
	assert.Contains(t, err.Error(), "ambiguous")

	legacy, err := reg.Resolve("src/legacy/Pools.sol:Pools")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60}, legacy.Bytecode)
}

func TestNewRegistryProfile(t *testing.T) {
	cfg := &config.RuntimeConfig{
		ProjectRoot: "/project",
		Namespace:   "production",
		FoundryConfig: &config.FoundryConfig{Profile: map[string]config.ProfileConfig{
			"default":   {OutPath: "out"},
			"optimized": {OutPath: "out-optimized"},
		}},
		DeployerConfig: &config.DeployerConfig{Namespace: map[string]config.NamespaceConfig{
			"production": {Profile: "optimized"},
		}},
	}
	assert.Equal(t, filepath.Join("/project", "out-optimized"), NewRegistry(cfg).outDir)

	cfg.Namespace = "default"
	assert.Equal(t, filepath.Join("/project", "out"), NewRegistry(cfg).outDir)
}
