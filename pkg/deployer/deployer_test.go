// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/luxfi/autodeploy/pkg/contract"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/mocks"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

const tokenABI = `[{"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}]`

var (
	testNetwork = models.Network{
		Name:     "Lux Testnet",
		RPCURL:   "http://127.0.0.1:9650/ext/bc/C/rpc",
		Explorer: "https://explore.lux-test.network",
	}
	contractAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")
)

func newBuilder(t *testing.T, identifier string, calls *int) *contract.Builder {
	t.Helper()
	path := "contracts.contract\\.sol." + identifier
	out, err := sjson.SetRaw(`{}`, path+".abi", tokenABI)
	require.NoError(t, err)
	out, err = sjson.Set(out, path+".evm.bytecode.object", "6080604052")
	require.NoError(t, err)
	runner := func(context.Context, string, []byte, ...string) ([]byte, error) {
		*calls++
		return []byte(out), nil
	}
	return contract.NewBuilder(contract.NewCompiler("solc", nil, contract.WithRunner(runner)))
}

func spec() models.TokenSpec {
	return models.NewTokenSpec("Test Token", "TT", big.NewInt(1000))
}

func TestDeploy(t *testing.T) {
	require := require.New(t)

	calls := 0
	fs := afero.NewMemMapFs()
	chain := &mocks.ChainClient{}
	tx := mocks.NewTx(0)
	chain.On("DeployContract", mock.Anything, mock.Anything, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, mock.Anything).
		Return(contractAddr, tx, nil).Once()
	chain.On("WaitMined", mock.Anything, tx).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, GasUsed: 654321}, nil).Once()

	var stages []Stage
	d := New(newBuilder(t, "TestToken", &calls), chain, fs, WithStageHook(func(s Stage) {
		stages = append(stages, s)
	}))
	dep, err := d.Deploy(context.Background(), testNetwork, spec())
	require.NoError(err)
	require.Equal(contractAddr, dep.Address)
	require.Equal(tx.Hash(), dep.TxHash)
	require.Equal(uint64(654321), dep.GasUsed)
	require.Equal("https://explore.lux-test.network/address/"+contractAddr.Hex(), dep.ExplorerURL)
	require.Contains(dep.ABI.Methods, "transfer")
	require.Equal([]Stage{StageCompile, StageSubmit, StageConfirm}, stages)
	require.Equal(1, calls)

	written, err := afero.ReadFile(fs, "contract.sol")
	require.NoError(err)
	require.Contains(string(written), "contract TestToken is ERC20")
	chain.AssertExpectations(t)
}

func TestDeployCompilationFailureSubmitsNothing(t *testing.T) {
	require := require.New(t)

	calls := 0
	fs := afero.NewMemMapFs()
	chain := &mocks.ChainClient{}
	// compiler output only knows a different contract name
	d := New(newBuilder(t, "SomethingElse", &calls), chain, fs, WithSourcePath("out/token.sol"))

	_, err := d.Deploy(context.Background(), testNetwork, spec())
	var compErr *contract.CompilationError
	require.ErrorAs(err, &compErr)
	require.ErrorIs(err, failure.ErrCompilation)
	chain.AssertNotCalled(t, "DeployContract", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// source is written before compiling
	exists, err := afero.Exists(fs, "out/token.sol")
	require.NoError(err)
	require.True(exists)
}

func TestDeployReverted(t *testing.T) {
	calls := 0
	chain := &mocks.ChainClient{}
	tx := mocks.NewTx(1)
	chain.On("DeployContract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(contractAddr, tx, nil)
	chain.On("WaitMined", mock.Anything, tx).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

	_, err := New(newBuilder(t, "TestToken", &calls), chain, afero.NewMemMapFs()).
		Deploy(context.Background(), testNetwork, spec())
	require.ErrorIs(t, err, failure.ErrDeployment)
	require.Equal(t, failure.Fatal, failure.KindOf(err))
}

func TestDeployClassifiesSubmitErrors(t *testing.T) {
	tests := map[string]struct {
		cause error
		want  error
	}{
		"insufficient funds": {
			cause: errors.New("insufficient funds for gas * price + value"),
			want:  failure.ErrInsufficientFunds,
		},
		"network": {
			cause: errors.New("dial tcp 127.0.0.1:9650: connect: connection refused"),
			want:  failure.ErrRPCUnavailable,
		},
		"other": {
			cause: errors.New("nonce too low"),
			want:  failure.ErrDeployment,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			calls := 0
			chain := &mocks.ChainClient{}
			chain.On("DeployContract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(common.Address{}, nil, tc.cause)

			_, err := New(newBuilder(t, "TestToken", &calls), chain, afero.NewMemMapFs()).
				Deploy(context.Background(), testNetwork, spec())
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, tc.cause)
			chain.AssertNotCalled(t, "WaitMined", mock.Anything, mock.Anything)
		})
	}
}
