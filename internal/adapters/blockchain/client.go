package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/trebuchet-org/deployledger/internal/domain"
	"github.com/trebuchet-org/deployledger/internal/domain/models"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

var ownerFn = w3.MustNewFunc("owner()", "address")

// DefaultPollInterval is the delay between receipt lookups
const DefaultPollInterval = 2 * time.Second

// executionRevertedCode is the JSON-RPC error code nodes use for reverted calls
const executionRevertedCode = 3

// Client implements usecase.ChainConnection over a JSON-RPC endpoint
type Client struct {
	rpc          *rpc.Client
	eth          *ethclient.Client
	w3           *w3.Client
	pollInterval time.Duration
	log          *slog.Logger
}

// NewClient wraps an established RPC client
func NewClient(rpcClient *rpc.Client, log *slog.Logger) *Client {
	return &Client{
		rpc:          rpcClient,
		eth:          ethclient.NewClient(rpcClient),
		w3:           w3.NewClient(rpcClient),
		pollInterval: DefaultPollInterval,
		log:          log.With("component", "ChainClient"),
	}
}

// ChainID returns the id reported by the node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.eth.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id.Uint64(), nil
}

type rpcReceipt struct {
	TransactionHash common.Hash     `json:"transactionHash"`
	BlockNumber     *hexutil.Big    `json:"blockNumber"`
	Status          *hexutil.Uint64 `json:"status"`
}

// WaitForReceipt polls until the transaction is mined. It only gives up when ctx is done.
func (c *Client) WaitForReceipt(ctx context.Context, txHash string) (*models.Receipt, error) {
	if !isHexHash(txHash) {
		return nil, fmt.Errorf("invalid transaction hash %q", txHash)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var receipt *rpcReceipt
		err := c.rpc.CallContext(ctx, &receipt, "eth_getTransactionReceipt", common.HexToHash(txHash))
		switch {
		case err != nil:
			c.log.Debug("receipt lookup failed, retrying", "tx", txHash, "error", err)
		case receipt != nil && receipt.BlockNumber != nil:
			if receipt.Status != nil && *receipt.Status == 0 {
				return nil, fmt.Errorf("transaction %s reverted", txHash)
			}
			return &models.Receipt{
				TxHash:      receipt.TransactionHash.Hex(),
				BlockNumber: receipt.BlockNumber.ToInt().Uint64(),
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for receipt of %s: %w", txHash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// BlockTimestamp returns the timestamp of a block in seconds
func (c *Client) BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	var head *struct {
		Timestamp hexutil.Uint64 `json:"timestamp"`
	}
	if err := c.rpc.CallContext(ctx, &head, "eth_getBlockByNumber", hexutil.EncodeUint64(blockNumber), false); err != nil {
		return 0, fmt.Errorf("failed to get block %d: %w", blockNumber, err)
	}
	if head == nil {
		return 0, fmt.Errorf("block %d not found", blockNumber)
	}
	return uint64(head.Timestamp), nil
}

// ProbeOwner reads owner() from a contract. A missing contract, a revert or
// an empty return is reported as not ownable; anything else as a failed probe.
func (c *Client) ProbeOwner(ctx context.Context, address string) models.OwnerProbe {
	if !common.IsHexAddress(address) {
		return models.OwnerProbe{Status: models.OwnerProbeFailed, Err: fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)}
	}
	addr := common.HexToAddress(address)

	code, err := c.eth.CodeAt(ctx, addr, nil)
	if err != nil {
		return models.OwnerProbe{Status: models.OwnerProbeFailed, Err: fmt.Errorf("failed to get code: %w", err)}
	}
	if len(code) == 0 {
		return models.OwnerProbe{Status: models.OwnerNotOwnable, Err: errors.New("no code at address")}
	}

	var owner common.Address
	if err := c.w3.CallCtx(ctx, eth.CallFunc(addr, ownerFn).Returns(&owner)); err != nil {
		return models.OwnerProbe{Status: ClassifyOwnerError(err), Err: err}
	}
	return models.OwnerProbe{Owner: owner.Hex(), Status: models.OwnerFound}
}

// Close releases the underlying RPC connection
func (c *Client) Close() {
	c.rpc.Close()
}

// ClassifyOwnerError separates "contract has no owner()" from transport failures
func ClassifyOwnerError(err error) models.OwnerStatus {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == executionRevertedCode {
		return models.OwnerNotOwnable
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"revert", "invalid opcode", "abi:", "empty"} {
		if strings.Contains(msg, marker) {
			return models.OwnerNotOwnable
		}
	}
	return models.OwnerProbeFailed
}

func isHexHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}

// Dialer implements usecase.ChainDialer
type Dialer struct {
	log *slog.Logger
}

// NewDialer creates a Dialer
func NewDialer(log *slog.Logger) *Dialer {
	return &Dialer{log: log}
}

// Dial connects to rpcURL
func (d *Dialer) Dial(ctx context.Context, rpcURL string) (usecase.ChainConnection, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("RPC URL not configured")
	}
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return NewClient(rpcClient, d.log), nil
}

// Ensure Client implements usecase.ChainConnection
var _ usecase.ChainConnection = (*Client)(nil)

// Ensure Dialer implements usecase.ChainDialer
var _ usecase.ChainDialer = (*Dialer)(nil)
