package createx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stakewise/proxy-deployer/internal/adapters/artifacts"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// Backend is a connected, signing chain client
type Backend interface {
	ChainID() uint64
	From() common.Address
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
	// Deploy sends a contract creation transaction and waits for it to be mined
	Deploy(ctx context.Context, bytecode []byte) (common.Address, *types.Receipt, error)
	// Transact sends a call transaction and waits for it to be mined
	Transact(ctx context.Context, to common.Address, data []byte) (*types.Receipt, error)
	Close()
}

// Dialer connects a Backend to a network
type Dialer func(ctx context.Context, network *config.Network) (Backend, error)

// ArtifactResolver resolves contract aliases to compiled artifacts
type ArtifactResolver interface {
	Resolve(alias string) (*artifacts.Artifact, error)
}

// Service creates initialized ERC1967 proxies through the CreateX factory with CREATE3
type Service struct {
	artifacts     ArtifactResolver
	dial          Dialer
	senders       usecase.SenderResolver
	factory       common.Address
	proxyArtifact string
	contract      *Contract
	log           *slog.Logger
}

// NewService creates a CreateX proxy creation service
func NewService(cfg *config.RuntimeConfig, resolver ArtifactResolver, dial Dialer, senders usecase.SenderResolver, log *slog.Logger) (*Service, error) {
	factory := cfg.DeployerConfig.CreateXAddress()
	if !common.IsHexAddress(factory) {
		return nil, fmt.Errorf("%w: createx factory %q", domain.ErrInvalidAddress, factory)
	}
	return &Service{
		artifacts:     resolver,
		dial:          dial,
		senders:       senders,
		factory:       common.HexToAddress(factory),
		proxyArtifact: cfg.DeployerConfig.ProxyArtifact(),
		contract:      NewContract(),
		log:           log,
	}, nil
}

// PredictAddress returns the address a proxy with salt will be created at
func (s *Service) PredictAddress(ctx context.Context, salt domain.Salt, network *config.Network) (common.Address, error) {
	sender, err := s.senders.SenderAddress(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return PredictAddress(s.factory, sender, network.ChainID, salt)
}

// Create deploys the alias implementation, then a proxy to it initialized
// with initializer(args...). Every failure is a *domain.DeploymentError.
func (s *Service) Create(
	ctx context.Context,
	alias, initializer string,
	args []any,
	salt domain.Salt,
	network *config.Network,
) (*domain.CreationReceipt, error) {
	fail := func(stage domain.DeploymentStage, err error) (*domain.CreationReceipt, error) {
		return nil, domain.NewDeploymentError(alias, stage, err)
	}

	impl, err := s.artifacts.Resolve(alias)
	if err != nil {
		return fail(domain.StageResolve, err)
	}
	proxy, err := s.artifacts.Resolve(s.proxyArtifact)
	if err != nil {
		return fail(domain.StageResolve, fmt.Errorf("proxy artifact: %w", err))
	}

	calldata, err := PackInitializer(impl.ABI, initializer, args)
	if err != nil {
		return fail(domain.StageEncode, err)
	}

	backend, err := s.dial(ctx, network)
	if err != nil {
		return fail(domain.StageConnect, err)
	}
	defer backend.Close()

	predicted, err := PredictAddress(s.factory, backend.From(), backend.ChainID(), salt)
	if err != nil {
		return fail(domain.StageEncode, err)
	}

	if err := s.checkFactory(ctx, backend); err != nil {
		return fail(domain.StageConnect, err)
	}

	code, err := backend.CodeAt(ctx, predicted)
	if err != nil {
		return fail(domain.StageConnect, fmt.Errorf("failed to check %s: %w", predicted.Hex(), err))
	}
	if len(code) > 0 {
		return fail(domain.StageProxy, fmt.Errorf("%w: code already exists at %s for salt %s", domain.ErrAddressCollision, predicted.Hex(), salt.Hex()))
	}

	s.log.Debug("deploying implementation", "alias", alias, "bytecode", len(impl.Bytecode))
	implementation, implReceipt, err := backend.Deploy(ctx, impl.Bytecode)
	if err != nil {
		return fail(domain.StageImplementation, err)
	}
	s.log.Info("implementation deployed", "alias", alias, "address", implementation.Hex(), "tx", implReceipt.TxHash.Hex())

	initCode, err := ProxyInitCode(proxy, implementation)
	if err != nil {
		return fail(domain.StageEncode, err)
	}

	data, err := s.contract.PackDeployCreate3AndInit(salt, initCode, calldata, ZeroValues())
	if err != nil {
		return fail(domain.StageEncode, err)
	}

	s.log.Debug("creating proxy", "alias", alias, "salt", salt.Hex(), "predicted", predicted.Hex())
	receipt, err := backend.Transact(ctx, s.factory, data)
	if err != nil {
		return fail(domain.StageProxy, s.decodeRevert(err))
	}

	created, ok := s.contract.CreatedContract(s.factory, receipt.Logs)
	if !ok {
		return fail(domain.StageReceipt, fmt.Errorf("no ContractCreation event in transaction %s", receipt.TxHash.Hex()))
	}
	if created != predicted {
		return fail(domain.StageReceipt, fmt.Errorf("%w: predicted %s, created %s", domain.ErrPredictionMismatch, predicted.Hex(), created.Hex()))
	}

	return &domain.CreationReceipt{
		Address:        created,
		Implementation: implementation,
		TxHash:         receipt.TxHash,
		ChainID:        backend.ChainID(),
	}, nil
}

func (s *Service) checkFactory(ctx context.Context, backend Backend) error {
	code, err := backend.CodeAt(ctx, s.factory)
	if err != nil {
		return fmt.Errorf("failed to check CreateX factory: %w", err)
	}
	if len(code) == 0 {
		return fmt.Errorf("CreateX factory not deployed at %s on chain %d", s.factory.Hex(), backend.ChainID())
	}
	return nil
}

// decodeRevert annotates errors carrying CreateX custom error data
func (s *Service) decodeRevert(err error) error {
	var dataErr interface{ ErrorData() interface{} }
	if !errors.As(err, &dataErr) {
		return err
	}
	raw, ok := dataErr.ErrorData().(string)
	if !ok {
		return err
	}
	data, decodeErr := hexutil.Decode(raw)
	if decodeErr != nil {
		return err
	}
	if name, ok := s.contract.DecodeError(data); ok {
		return fmt.Errorf("%w (CreateX %s)", err, name)
	}
	if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
		return fmt.Errorf("%w (%s)", err, reason)
	}
	return err
}

// PackInitializer encodes the initializer call, checking arity before types
func PackInitializer(contractABI abi.ABI, initializer string, args []any) ([]byte, error) {
	method, ok := contractABI.Methods[initializer]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInitializerNotFound, initializer)
	}
	if len(method.Inputs) != len(args) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", domain.ErrArgumentMismatch, method.Sig, len(method.Inputs), len(args))
	}
	data, err := contractABI.Pack(initializer, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrArgumentMismatch, method.Sig, err)
	}
	return data, nil
}

// ProxyInitCode returns the ERC1967 proxy creation code for implementation
// with empty constructor data
func ProxyInitCode(proxy *artifacts.Artifact, implementation common.Address) ([]byte, error) {
	ctorArgs, err := proxy.ABI.Pack("", implementation, []byte{})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s constructor: %w", proxy.Name, err)
	}
	initCode := make([]byte, 0, len(proxy.Bytecode)+len(ctorArgs))
	initCode = append(initCode, proxy.Bytecode...)
	return append(initCode, ctorArgs...), nil
}

var (
	_ usecase.ProxyCreationService = (*Service)(nil)
	_ usecase.AddressPredictor     = (*Service)(nil)
)
