// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain wraps the single RPC connection and signing key used for a
// run. Every call blocks until the node answers.
package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/crypto"
	"github.com/luxfi/erc20-go/erc20"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/ethclient"
	"go.uber.org/zap"
)

type Config struct {
	RPCURL     string
	PrivateKey string
	// DialTimeout bounds connection setup and the pre-flight queries.
	DialTimeout time.Duration
	// ConfirmTimeout bounds every WaitMined call. Zero waits indefinitely.
	ConfirmTimeout time.Duration
}

type Client struct {
	rpc            *ethclient.Client
	key            *ecdsa.PrivateKey
	address        common.Address
	chainID        *big.Int
	confirmTimeout time.Duration
	log            *zap.Logger
}

// TokenInfo is the ERC20 metadata read from an existing token contract.
type TokenInfo struct {
	Address  common.Address
	Name     string
	Symbol   string
	Decimals uint8
}

// ParsePrivateKey decodes a hex secp256k1 key, with or without 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, failure.Wrap(failure.ErrMissingCredential, nil, "private key is not set")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X"))
	if err != nil {
		// never echo the key itself
		return nil, failure.Wrap(failure.ErrMissingCredential, nil, "private key is malformed")
	}
	return key, nil
}

// Dial connects to cfg.RPCURL and runs the pre-flight checks: the key must
// parse, the endpoint must report a chain id, and the signer must hold a
// non-zero native balance.
func Dial(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	address := common.Address(crypto.PubkeyToAddress(key.PublicKey))

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}

	rpc, err := ethclient.DialContext(dialCtx, cfg.RPCURL)
	if err != nil {
		return nil, failure.Wrap(failure.ErrRPCUnavailable, err, "failed to connect to %s", cfg.RPCURL)
	}
	chainID, err := rpc.ChainID(dialCtx)
	if err != nil {
		rpc.Close()
		return nil, failure.Wrap(failure.ErrRPCUnavailable, err, "failed to get chain ID from %s", cfg.RPCURL)
	}
	balance, err := rpc.BalanceAt(dialCtx, address, nil)
	if err != nil {
		rpc.Close()
		return nil, failure.Wrap(failure.ErrRPCUnavailable, err, "failed to get balance of %s", address.Hex())
	}
	if balance.Sign() == 0 {
		rpc.Close()
		return nil, failure.Wrap(failure.ErrInsufficientFunds, nil, "deployer %s has no funds on chain %s", address.Hex(), chainID)
	}

	log.Info("connected",
		zap.String("rpc", cfg.RPCURL),
		zap.String("chainID", chainID.String()),
		zap.String("signer", address.Hex()),
		zap.String("balance", balance.String()),
	)
	return &Client{
		rpc:            rpc,
		key:            key,
		address:        address,
		chainID:        chainID,
		confirmTimeout: cfg.ConfirmTimeout,
		log:            log,
	}, nil
}

func (c *Client) Address() common.Address {
	return c.address
}

func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	balance, err := c.rpc.BalanceAt(ctx, c.address, nil)
	if err != nil {
		return nil, failure.Wrap(failure.ErrRPCUnavailable, err, "failed to get balance of %s", c.address.Hex())
	}
	return balance, nil
}

func (c *Client) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, err
	}
	auth.Context = ctx
	return auth, nil
}

// DeployContract submits a contract creation transaction. It does not wait
// for the receipt.
func (c *Client) DeployContract(
	ctx context.Context,
	parsed abi.ABI,
	bytecode []byte,
	params ...interface{},
) (common.Address, *types.Transaction, error) {
	auth, err := c.transactor(ctx)
	if err != nil {
		return common.Address{}, nil, err
	}
	address, tx, _, err := bind.DeployContract(auth, parsed, bytecode, c.rpc, params...)
	if err != nil {
		return common.Address{}, nil, err
	}
	c.log.Debug("contract creation submitted", zap.String("tx", tx.Hash().Hex()), zap.String("address", address.Hex()))
	return address, tx, nil
}

// Transfer calls transfer(to, amount) on token with a fixed gas limit. It does
// not wait for the receipt.
func (c *Client) Transfer(
	ctx context.Context,
	token common.Address,
	parsed abi.ABI,
	to common.Address,
	amount *big.Int,
	gasLimit uint64,
) (*types.Transaction, error) {
	auth, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}
	auth.GasLimit = gasLimit
	contract := bind.NewBoundContract(token, parsed, c.rpc, c.rpc, c.rpc)
	tx, err := contract.Transact(auth, "transfer", to, amount)
	if err != nil {
		return nil, err
	}
	c.log.Debug("transfer submitted", zap.String("tx", tx.Hash().Hex()), zap.String("to", to.Hex()))
	return tx, nil
}

// WaitMined blocks until tx is included, the context ends, or the
// confirmation timeout elapses.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if c.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmTimeout)
		defer cancel()
	}
	return bind.WaitMined(ctx, c.rpc, tx)
}

// TokenInfo reads name, symbol and decimals of an existing ERC20 contract.
func (c *Client) TokenInfo(ctx context.Context, token common.Address) (TokenInfo, error) {
	binding, err := erc20.NewGGToken(token, c.rpc)
	if err != nil {
		return TokenInfo{}, err
	}
	opts := &bind.CallOpts{Context: ctx}
	name, err := binding.Name(opts)
	if err != nil {
		return TokenInfo{}, failure.Wrap(failure.ErrInvalidInput, err, "%s does not look like an ERC20 token", token.Hex())
	}
	symbol, err := binding.Symbol(opts)
	if err != nil {
		return TokenInfo{}, failure.Wrap(failure.ErrInvalidInput, err, "failed to read symbol of %s", token.Hex())
	}
	decimals, err := binding.Decimals(opts)
	if err != nil {
		return TokenInfo{}, failure.Wrap(failure.ErrInvalidInput, err, "failed to read decimals of %s", token.Hex())
	}
	return TokenInfo{Address: token, Name: name, Symbol: symbol, Decimals: decimals}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}
