package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"github.com/stretchr/testify/mock"
)

var (
	deployerAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	deposits     = common.HexToAddress("0xD1")
	settings     = common.HexToAddress("0x51")
	operators    = common.HexToAddress("0x01")
	vrc          = common.HexToAddress("0x0C")
	registry     = common.HexToAddress("0x0E1")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Namespace: "default",
		AssumeYes: true,
		Network: &config.Network{
			Name:    "local",
			ChainID: 31337,
			RPCURL:  "http://127.0.0.1:8545",
		},
		DeployerConfig: &config.DeployerConfig{
			Networks: map[string]config.NetworkInputs{
				"local": {
					Deposits:  deposits.Hex(),
					Settings:  settings.Hex(),
					Operators: operators.Hex(),
					VRC:       vrc.Hex(),
				},
			},
		},
	}
}

// addressFor is the address fakes derive for a salt
func addressFor(salt domain.Salt) common.Address {
	return common.BytesToAddress(crypto.Keccak256(salt[:]))
}

type createCall struct {
	Alias       string
	Initializer string
	Args        []any
	Salt        domain.Salt
	Network     *config.Network
}

// stubCreator records Create calls and answers with a fixed address or error
type stubCreator struct {
	mu      sync.Mutex
	calls   []createCall
	address func(alias string, salt domain.Salt) common.Address
	err     error
}

func (s *stubCreator) Create(_ context.Context, alias, initializer string, args []any, salt domain.Salt, network *config.Network) (*domain.CreationReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, createCall{alias, initializer, args, salt, network})
	if s.err != nil {
		return nil, s.err
	}
	addr := addressFor(salt)
	if s.address != nil {
		addr = s.address(alias, salt)
	}
	return &domain.CreationReceipt{
		Address: addr,
		TxHash:  common.BytesToHash(addr.Bytes()),
		ChainID: network.ChainID,
	}, nil
}

func (s *stubCreator) argsFor(alias string) []any {
	for _, c := range s.calls {
		if c.Alias == alias {
			return c.Args
		}
	}
	return nil
}

// recordingReporter captures report lines
type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) ReportDeployed(_ context.Context, name string, addr common.Address) {
	r.lines = append(r.lines, fmt.Sprintf("%s contract: %s", name, addr.Hex()))
}

type fixedSender common.Address

func (f fixedSender) SenderAddress(context.Context) (common.Address, error) {
	return common.Address(f), nil
}

// saltPredictor predicts addressFor(salt)
type saltPredictor struct{}

func (saltPredictor) PredictAddress(_ context.Context, salt domain.Salt, _ *config.Network) (common.Address, error) {
	return addressFor(salt), nil
}

// MockRegistry is a mock implementation of DeploymentRegistry
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) SaveProxy(ctx context.Context, proxy *domain.DeployedProxy) error {
	args := m.Called(ctx, proxy)
	return args.Error(0)
}

func (m *MockRegistry) GetProxy(ctx context.Context, chainID uint64, namespace string, kind domain.ProxyKind) (*domain.DeployedProxy, error) {
	args := m.Called(ctx, chainID, namespace, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeployedProxy), args.Error(1)
}

func (m *MockRegistry) ListProxies(ctx context.Context, filter domain.ProxyFilter) ([]*domain.DeployedProxy, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DeployedProxy), args.Error(1)
}

// MockConfirmer is a mock implementation of BroadcastConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmBroadcast(ctx context.Context, plan usecase.BroadcastPlan) (bool, error) {
	args := m.Called(ctx, plan)
	return args.Bool(0), args.Error(1)
}

// progressRecorder keeps the stages it saw
type progressRecorder struct {
	stages []string
	errors []string
}

func (p *progressRecorder) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	p.stages = append(p.stages, event.Stage)
}
func (p *progressRecorder) Info(string) {}
func (p *progressRecorder) Error(message string) {
	p.errors = append(p.errors, message)
}
