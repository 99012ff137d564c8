package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stackFixture struct {
	cfg       *config.RuntimeConfig
	creator   *stubCreator
	reporter  *recordingReporter
	registry  *MockRegistry
	confirmer *MockConfirmer
	progress  *progressRecorder
}

func newStackFixture() *stackFixture {
	return &stackFixture{
		cfg:       testConfig(),
		creator:   &stubCreator{},
		reporter:  &recordingReporter{},
		registry:  &MockRegistry{},
		confirmer: &MockConfirmer{},
		progress:  &progressRecorder{},
	}
}

func (f *stackFixture) useCase() *usecase.DeployStack {
	senders := fixedSender(deployerAddr)
	return usecase.NewDeployStack(
		f.cfg,
		usecase.NewDeployProxy(f.cfg, f.creator, f.reporter, discardLogger()),
		usecase.NewSaltResolver(f.cfg, senders),
		saltPredictor{},
		f.registry,
		f.confirmer,
		senders,
		f.progress,
		discardLogger(),
	)
}

func saltOf(kind domain.ProxyKind) domain.Salt {
	return domain.SaltFromEntropy(deployerAddr, usecase.DefaultEntropy("default", kind))
}

func TestDeployStack_Order(t *testing.T) {
	f := newStackFixture()
	f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
	require.NoError(t, err)

	require.Len(t, f.creator.calls, 3)
	assert.Equal(t, "Pools", f.creator.calls[0].Alias)
	assert.Equal(t, "Privates", f.creator.calls[1].Alias)
	assert.Equal(t, "ValidatorsRegistry", f.creator.calls[2].Alias)

	predictedRegistry := addressFor(saltOf(domain.ProxyKindValidatorsRegistry))
	collector := []any{deposits, settings, operators, vrc, predictedRegistry}
	assert.Equal(t, collector, f.creator.argsFor("Pools"))
	assert.Equal(t, collector, f.creator.argsFor("Privates"))
	assert.Equal(t, []any{result.Pools.Address, result.Privates.Address, settings}, f.creator.argsFor("ValidatorsRegistry"))

	assert.Equal(t, predictedRegistry, result.ValidatorsRegistry.Address)
	assert.Len(t, result.Proxies(), 3)
	assert.Empty(t, result.Reused)

	assert.Equal(t, []string{
		"Pools contract: " + result.Pools.Address.Hex(),
		"Privates contract: " + result.Privates.Address.Hex(),
		"Validators Registry contract: " + result.ValidatorsRegistry.Address.Hex(),
	}, f.reporter.lines)

	f.registry.AssertNumberOfCalls(t, "SaveProxy", 3)
	assert.Equal(t, []string{"pools", "privates", "validators-registry", "complete"}, f.progress.stages)
	f.confirmer.AssertNotCalled(t, "ConfirmBroadcast", mock.Anything, mock.Anything)
}

func TestDeployStack_PredictionMismatch(t *testing.T) {
	f := newStackFixture()
	f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)
	f.creator.address = func(alias string, salt domain.Salt) common.Address {
		if alias == "ValidatorsRegistry" {
			return common.HexToAddress("0xBAD")
		}
		return addressFor(salt)
	}

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
	assert.ErrorIs(t, err, domain.ErrPredictionMismatch)
	require.NotNil(t, result)
	assert.NotNil(t, result.ValidatorsRegistry)
}

func TestDeployStack_StopsOnFailure(t *testing.T) {
	f := newStackFixture()
	f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)
	cause := &domain.DeploymentError{Alias: "Pools", Stage: domain.StageConnect, Err: errors.New("connection refused")}
	f.creator.err = cause

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
	assert.True(t, err == error(cause))
	require.NotNil(t, result)
	assert.Nil(t, result.Pools)
	assert.Len(t, f.creator.calls, 1)
	assert.Empty(t, f.reporter.lines)
	assert.Equal(t, []string{"Pools deployment failed"}, f.progress.errors)
	f.registry.AssertNotCalled(t, "SaveProxy", mock.Anything, mock.Anything)
}

func TestDeployStack_SkipExisting(t *testing.T) {
	f := newStackFixture()
	poolsRecord := &domain.DeployedProxy{
		Kind:    domain.ProxyKindPools,
		Alias:   "Pools",
		Address: common.HexToAddress("0xF001"),
	}
	f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", domain.ProxyKindPools).Return(poolsRecord, nil)
	f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", mock.Anything).Return(nil, domain.ErrNotFound)
	f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{SkipExisting: true})
	require.NoError(t, err)

	assert.Equal(t, []domain.ProxyKind{domain.ProxyKindPools}, result.Reused)
	assert.Same(t, poolsRecord, result.Pools)
	require.Len(t, f.creator.calls, 2)
	assert.Equal(t, "Privates", f.creator.calls[0].Alias)
	assert.Equal(t, []any{poolsRecord.Address, result.Privates.Address, settings}, f.creator.argsFor("ValidatorsRegistry"))
	f.registry.AssertNumberOfCalls(t, "SaveProxy", 2)
}

func TestDeployStack_Confirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newStackFixture()
		f.cfg.AssumeYes = false
		f.confirmer.On("ConfirmBroadcast", mock.Anything, mock.MatchedBy(func(plan usecase.BroadcastPlan) bool {
			return len(plan.Steps) == 3 && plan.Sender == deployerAddr
		})).Return(false, nil)

		result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Empty(t, f.creator.calls)
		f.confirmer.AssertExpectations(t)
	})

	t.Run("non-interactive skips the prompt", func(t *testing.T) {
		f := newStackFixture()
		f.cfg.AssumeYes = false
		f.cfg.NonInteractive = true
		f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)

		_, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
		require.NoError(t, err)
		assert.Len(t, f.creator.calls, 3)
		f.confirmer.AssertNotCalled(t, "ConfirmBroadcast", mock.Anything, mock.Anything)
	})
}

func TestDeployStack_ConfiguredRegistry(t *testing.T) {
	f := newStackFixture()
	f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)
	expected := addressFor(saltOf(domain.ProxyKindValidatorsRegistry))

	_, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{
		Addresses: usecase.AddressOverrides{ValidatorsRegistry: expected.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, expected, f.creator.argsFor("Pools")[4])
}

func TestDeployStack_NoNetwork(t *testing.T) {
	f := newStackFixture()
	f.cfg.Network = nil

	_, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
	assert.Error(t, err)
	assert.Empty(t, f.creator.calls)
}

func TestDeployStack_ConfiguredRegistryMismatch(t *testing.T) {
	f := newStackFixture()
	inputs := f.cfg.DeployerConfig.Networks["local"]
	inputs.ValidatorsRegistry = common.HexToAddress("0xE1").Hex()
	f.cfg.DeployerConfig.Networks["local"] = inputs

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{})
	assert.ErrorIs(t, err, domain.ErrPredictionMismatch)
	assert.Nil(t, result)
	assert.Empty(t, f.creator.calls)
	assert.Empty(t, f.reporter.lines)
	f.registry.AssertNotCalled(t, "SaveProxy", mock.Anything, mock.Anything)
}

func TestDeployStack_RecordedRegistryWithoutCollectors(t *testing.T) {
	f := newStackFixture()
	registryRecord := &domain.DeployedProxy{
		Kind:    domain.ProxyKindValidatorsRegistry,
		Alias:   "ValidatorsRegistry",
		Address: common.HexToAddress("0xAAA"),
	}
	f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", domain.ProxyKindValidatorsRegistry).Return(registryRecord, nil)
	f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", mock.Anything).Return(nil, domain.ErrNotFound)

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{SkipExisting: true})
	assert.ErrorIs(t, err, domain.ErrInconsistentStack)
	assert.Nil(t, result)
	assert.Empty(t, f.creator.calls)
	f.registry.AssertNotCalled(t, "SaveProxy", mock.Anything, mock.Anything)
}

func TestDeployStack_RecordedStackReused(t *testing.T) {
	f := newStackFixture()
	records := map[domain.ProxyKind]*domain.DeployedProxy{
		domain.ProxyKindPools:              {Kind: domain.ProxyKindPools, Address: common.HexToAddress("0xF001")},
		domain.ProxyKindPrivates:           {Kind: domain.ProxyKindPrivates, Address: common.HexToAddress("0xF002")},
		domain.ProxyKindValidatorsRegistry: {Kind: domain.ProxyKindValidatorsRegistry, Address: common.HexToAddress("0xAAA")},
	}
	for kind, record := range records {
		f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", kind).Return(record, nil)
	}

	result, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{SkipExisting: true})
	require.NoError(t, err)
	assert.Empty(t, f.creator.calls)
	assert.Len(t, result.Reused, 3)
	assert.Same(t, records[domain.ProxyKindValidatorsRegistry], result.ValidatorsRegistry)
}

func TestDeployStack_RecordedPoolsWithOtherRegistry(t *testing.T) {
	f := newStackFixture()
	poolsRecord := &domain.DeployedProxy{
		Kind:     domain.ProxyKindPools,
		Address:  common.HexToAddress("0xF001"),
		InitArgs: []string{deposits.Hex(), settings.Hex(), operators.Hex(), vrc.Hex(), common.HexToAddress("0xAAA").Hex()},
	}
	f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", domain.ProxyKindPools).Return(poolsRecord, nil)
	f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := f.useCase().Run(context.Background(), usecase.DeployStackParams{SkipExisting: true})
	assert.ErrorIs(t, err, domain.ErrInconsistentStack)
	assert.Empty(t, f.creator.calls)
}
