package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// gasBufferPercent is added on top of eth_estimateGas
const gasBufferPercent = 20

// ethBackend is the subset of ethclient.Client the client uses
type ethBackend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	Close()
}

// Options tunes transaction confirmation
type Options struct {
	Confirmations uint64
	PollInterval  time.Duration
	Logger        *slog.Logger
}

// Client signs and sends EIP-1559 transactions with a single private key
type Client struct {
	eth           ethBackend
	key           *ecdsa.PrivateKey
	from          common.Address
	chainID       *big.Int
	signer        types.Signer
	confirmations uint64
	pollInterval  time.Duration
	log           *slog.Logger
}

// Dial connects to the network RPC and verifies it serves the expected chain
func Dial(ctx context.Context, network *config.Network, key *ecdsa.PrivateKey, opts Options) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c, err := newClient(ctx, eth, network.ChainID, key, opts)
	if err != nil {
		eth.Close()
		return nil, err
	}
	return c, nil
}

func newClient(ctx context.Context, eth ethBackend, expectedChainID uint64, key *ecdsa.PrivateKey, opts Options) (*Client, error) {
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if expectedChainID != 0 && chainID.Uint64() != expectedChainID {
		return nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, expectedChainID, chainID.Uint64())
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.Confirmations == 0 {
		opts.Confirmations = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		eth:           eth,
		key:           key,
		from:          crypto.PubkeyToAddress(key.PublicKey),
		chainID:       chainID,
		signer:        types.LatestSignerForChainID(chainID),
		confirmations: opts.Confirmations,
		pollInterval:  opts.PollInterval,
		log:           opts.Logger,
	}, nil
}

func (c *Client) ChainID() uint64 {
	return c.chainID.Uint64()
}

func (c *Client) From() common.Address {
	return c.from
}

func (c *Client) Close() {
	c.eth.Close()
}

// CodeAt returns the code at addr in the latest block
func (c *Client) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	return c.eth.CodeAt(ctx, addr, nil)
}

// Deploy sends a contract creation transaction and returns the created address
func (c *Client) Deploy(ctx context.Context, bytecode []byte) (common.Address, *types.Receipt, error) {
	receipt, err := c.send(ctx, nil, bytecode)
	if err != nil {
		return common.Address{}, receipt, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, receipt, fmt.Errorf("transaction %s created no contract", receipt.TxHash.Hex())
	}
	return receipt.ContractAddress, receipt, nil
}

// Transact sends data to the given contract
func (c *Client) Transact(ctx context.Context, to common.Address, data []byte) (*types.Receipt, error) {
	return c.send(ctx, &to, data)
}

func (c *Client) send(ctx context.Context, to *common.Address, data []byte) (*types.Receipt, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	tipCap, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tipCap)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From:      c.from,
		To:        to,
		GasFeeCap: feeCap,
		GasTipCap: tipCap,
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("gas estimation failed: %w", err)
	}
	gas += gas * gasBufferPercent / 100

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        to,
		Value:     big.NewInt(0),
		Data:      data,
	})
	signed, err := types.SignTx(tx, c.signer, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	c.log.Debug("transaction sent", "tx", signed.Hash().Hex(), "nonce", nonce, "gas", gas)

	receipt, err := c.WaitForReceipt(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted", signed.Hash().Hex())
	}
	return receipt, nil
}

// WaitForReceipt polls until the transaction is mined and has the configured confirmations
func (c *Client) WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	var receipt *types.Receipt
	for receipt == nil {
		r, err := c.eth.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			receipt = r
			continue
		case !errors.Is(err, ethereum.NotFound):
			return nil, fmt.Errorf("failed to get receipt for %s: %w", txHash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}

	if c.confirmations <= 1 || receipt.BlockNumber == nil {
		return receipt, nil
	}

	target := receipt.BlockNumber.Uint64() + c.confirmations - 1
	for {
		head, err := c.eth.BlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get block number: %w", err)
		}
		if head >= target {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for confirmations of %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}
