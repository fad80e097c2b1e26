// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mocks

import (
	"context"
	"math/big"

	"github.com/luxfi/autodeploy/pkg/chain"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/stretchr/testify/mock"
)

// ChainClient is a mock of the signing chain client used by the deployer
// and the distributor.
type ChainClient struct {
	mock.Mock
}

func (m *ChainClient) DeployContract(
	ctx context.Context,
	parsed abi.ABI,
	bytecode []byte,
	params ...interface{},
) (common.Address, *types.Transaction, error) {
	args := m.Called(ctx, parsed, bytecode, params)
	var tx *types.Transaction
	if v := args.Get(1); v != nil {
		tx = v.(*types.Transaction)
	}
	return args.Get(0).(common.Address), tx, args.Error(2)
}

func (m *ChainClient) Transfer(
	ctx context.Context,
	token common.Address,
	parsed abi.ABI,
	to common.Address,
	amount *big.Int,
	gasLimit uint64,
) (*types.Transaction, error) {
	args := m.Called(ctx, token, parsed, to, amount, gasLimit)
	if v := args.Get(0); v != nil {
		return v.(*types.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChainClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	args := m.Called(ctx, tx)
	if v := args.Get(0); v != nil {
		return v.(*types.Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChainClient) Address() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *ChainClient) Balance(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*big.Int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChainClient) ChainID() *big.Int {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.(*big.Int)
	}
	return nil
}

func (m *ChainClient) TokenInfo(ctx context.Context, token common.Address) (chain.TokenInfo, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(chain.TokenInfo), args.Error(1)
}

func (m *ChainClient) Close() {
	m.Called()
}

// NewTx returns a distinct unsigned transaction for nonce, good enough to
// carry a hash through tests.
func NewTx(nonce uint64) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		Gas:      21000,
		GasPrice: big.NewInt(1),
		Value:    big.NewInt(0),
	})
}
