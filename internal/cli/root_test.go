package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stakewise/proxy-deployer/internal/adapters/progress"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCmd(t *testing.T, root *cobra.Command, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := root.Find(args)
	require.NoError(t, err)
	return cmd
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	tests := []struct {
		args  []string
		flags []string
	}{
		{[]string{"deploy", "pools"}, []string{"deposits", "settings", "operators", "vrc", "validators-registry", "salt", "entropy", "registry-salt", "registry-entropy"}},
		{[]string{"deploy", "privates"}, []string{"deposits", "settings", "operators", "vrc", "validators-registry", "salt", "entropy"}},
		{[]string{"deploy", "validators-registry"}, []string{"pools", "privates", "settings", "salt", "entropy"}},
		{[]string{"deploy", "all"}, []string{"skip-existing", "out", "pools-salt", "privates-entropy", "registry-salt", "vrc"}},
		{[]string{"predict"}, []string{"pools-salt", "registry-entropy"}},
		{[]string{"list"}, []string{"kind", "all-namespaces"}},
		{[]string{"networks"}, nil},
		{[]string{"config"}, nil},
		{[]string{"config", "set"}, nil},
		{[]string{"config", "remove"}, nil},
		{[]string{"version"}, nil},
	}

	for _, tt := range tests {
		cmd := findCmd(t, root, tt.args...)
		assert.Equal(t, tt.args[len(tt.args)-1], cmd.Name())
		for _, name := range tt.flags {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%v missing --%s", tt.args, name)
		}
	}
}

func TestRootGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	for name, short := range map[string]string{
		"network":         "n",
		"namespace":       "s",
		"debug":           "",
		"non-interactive": "",
		"yes":             "",
	} {
		flag := root.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, short, flag.Shorthand, name)
	}
}

func TestSkipsApp(t *testing.T) {
	root := NewRootCmd()

	assert.True(t, skipsApp(findCmd(t, root, "version")))
	assert.True(t, skipsApp(findCmd(t, root, "deploy")))
	assert.False(t, skipsApp(findCmd(t, root, "deploy", "all")))
	assert.False(t, skipsApp(findCmd(t, root, "list")))
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "proxy-deployer version dev\n", out.String())
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{"pools", "validators-registry", "pools"})
	require.NoError(t, err)
	assert.Equal(t, []domain.ProxyKind{domain.ProxyKindPools, domain.ProxyKindValidatorsRegistry}, kinds)

	kinds, err = parseKinds(nil)
	require.NoError(t, err)
	assert.Empty(t, kinds)

	_, err = parseKinds([]string{"vaults"})
	assert.Error(t, err)
}

func TestSaltSpecs(t *testing.T) {
	specs := saltSpecs(map[domain.ProxyKind]*usecase.SaltSpec{
		domain.ProxyKindPools:              {Entropy: "v2/Pools"},
		domain.ProxyKindPrivates:           {},
		domain.ProxyKindValidatorsRegistry: {Salt: "0x01"},
	})

	assert.Equal(t, map[domain.ProxyKind]usecase.SaltSpec{
		domain.ProxyKindPools:              {Entropy: "v2/Pools"},
		domain.ProxyKindValidatorsRegistry: {Salt: "0x01"},
	}, specs)
}

func TestNewProgressSink(t *testing.T) {
	assert.IsType(t, &progress.NopSink{}, newProgressSink(true))
	assert.IsType(t, &progress.SpinnerSink{}, newProgressSink(false))
}

func TestExecuteCancelsContextOnFailure(t *testing.T) {
	var runCtx context.Context
	cmd := &cobra.Command{
		Use:           "failing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Hour)
			cmd.PostRun = func(*cobra.Command, []string) { cancel() }
			runCtx = ctx
			return errors.New("deploy failed")
		},
	}
	cmd.SetArgs([]string{})

	err := Execute(context.Background(), cmd)
	require.EqualError(t, err, "deploy failed")
	require.NotNil(t, runCtx)
	assert.ErrorIs(t, runCtx.Err(), context.Canceled)
}
