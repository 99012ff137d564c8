package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (f *stackFixture) singleUseCase() *usecase.DeploySingle {
	senders := fixedSender(deployerAddr)
	return usecase.NewDeploySingle(
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

func TestDeploySingle_Pools(t *testing.T) {
	f := newStackFixture()
	f.registry.On("SaveProxy", mock.Anything, mock.MatchedBy(func(p *domain.DeployedProxy) bool {
		return p.Kind == domain.ProxyKindPools
	})).Return(nil)

	deployed, err := f.singleUseCase().Run(context.Background(), usecase.DeploySingleParams{
		Kind: domain.ProxyKindPools,
		Salt: usecase.SaltSpec{Entropy: "pools-v1"},
	})
	require.NoError(t, err)

	salt := domain.SaltFromEntropy(deployerAddr, "pools-v1")
	assert.Equal(t, salt, deployed.Salt)
	predictedRegistry := addressFor(saltOf(domain.ProxyKindValidatorsRegistry))
	assert.Equal(t, []any{deposits, settings, operators, vrc, predictedRegistry}, f.creator.argsFor("Pools"))
	assert.Equal(t, []string{"Pools contract: " + addressFor(salt).Hex()}, f.reporter.lines)
	f.registry.AssertExpectations(t)
}

func TestDeploySingle_ValidatorsRegistry(t *testing.T) {
	pools := common.HexToAddress("0xF001")
	privates := common.HexToAddress("0xF002")

	t.Run("dependencies from the registry", func(t *testing.T) {
		f := newStackFixture()
		f.registry.On("GetProxy", mock.Anything, uint64(31337), "default", domain.ProxyKindPools).
			Return(&domain.DeployedProxy{Address: pools}, nil)
		f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(nil)

		_, err := f.singleUseCase().Run(context.Background(), usecase.DeploySingleParams{
			Kind:      domain.ProxyKindValidatorsRegistry,
			Addresses: usecase.AddressOverrides{Privates: privates.Hex()},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{pools, privates, settings}, f.creator.argsFor("ValidatorsRegistry"))
	})

	t.Run("missing dependency", func(t *testing.T) {
		f := newStackFixture()
		f.registry.On("GetProxy", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := f.singleUseCase().Run(context.Background(), usecase.DeploySingleParams{
			Kind: domain.ProxyKindValidatorsRegistry,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
		assert.Contains(t, err.Error(), "--pools")
		assert.Empty(t, f.creator.calls)
	})
}

func TestDeploySingle_Failure(t *testing.T) {
	f := newStackFixture()
	cause := &domain.DeploymentError{Alias: "Privates", Stage: domain.StageProxy, Err: domain.ErrAddressCollision}
	f.creator.err = cause

	_, err := f.singleUseCase().Run(context.Background(), usecase.DeploySingleParams{
		Kind:      domain.ProxyKindPrivates,
		Addresses: usecase.AddressOverrides{ValidatorsRegistry: registry.Hex()},
	})
	assert.True(t, err == error(cause))
	assert.True(t, errors.Is(err, domain.ErrAddressCollision))
	assert.Empty(t, f.reporter.lines)
	f.registry.AssertNotCalled(t, "SaveProxy", mock.Anything, mock.Anything)
}

func TestDeploySingle_RecordFailure(t *testing.T) {
	f := newStackFixture()
	f.registry.On("SaveProxy", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	deployed, err := f.singleUseCase().Run(context.Background(), usecase.DeploySingleParams{
		Kind:      domain.ProxyKindPools,
		Addresses: usecase.AddressOverrides{ValidatorsRegistry: registry.Hex()},
	})
	require.Error(t, err)
	assert.NotNil(t, deployed)
	assert.Contains(t, err.Error(), "failed to record")
}
