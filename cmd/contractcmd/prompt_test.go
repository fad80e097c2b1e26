// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"io"
	"math/big"
	"testing"

	"github.com/luxfi/autodeploy/pkg/application"
	"github.com/luxfi/autodeploy/pkg/config"
	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/luxfi/autodeploy/pkg/networks"
	promptmocks "github.com/luxfi/autodeploy/pkg/prompts/mocks"
	"github.com/luxfi/autodeploy/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
)

var modeOptions = []string{
	"Same amount for all addresses",
	"Custom amount for each address",
	"Skip distribution",
}

func setupInteractive(t *testing.T) (*cobra.Command, *promptmocks.Prompter) {
	t.Helper()
	prompter := &promptmocks.Prompter{}
	app = application.New()
	app.Setup(zap.NewNop(), &config.Config{}, prompter)
	ux.NewUserLog(nil, io.Discard)

	cmd := &cobra.Command{Use: "deploy"}
	AddDeployFlags(cmd)
	return cmd, prompter
}

func TestSelectNetworkPrompts(t *testing.T) {
	cmd, prompter := setupInteractive(t)
	reg := &networks.Registry{Mode: "testnet", Networks: []models.Network{
		{Name: "Sepolia", RPCURL: "https://rpc.sepolia.org"},
		{Name: "Holesky", RPCURL: "https://rpc.holesky.io"},
	}}
	prompter.On("CaptureIndex", "Select a network", []any{"Sepolia", "Holesky"}).Return(1, nil).Once()

	network, err := selectNetwork(cmd, reg)
	require.NoError(t, err)
	require.Equal(t, "Holesky", network.Name)
	prompter.AssertExpectations(t)

	require.NoError(t, cmd.Flags().Set(networkFlag, "7"))
	_, err = selectNetwork(cmd, reg)
	require.ErrorIs(t, err, failure.ErrInvalidSelection)
	prompter.AssertNumberOfCalls(t, "CaptureIndex", 1)
}

func TestCaptureTokenPromptsForMissing(t *testing.T) {
	cmd, prompter := setupInteractive(t)
	require.NoError(t, cmd.Flags().Set(nameFlag, "My Token"))
	prompter.On("CaptureValidatedString", "Enter token symbol", mock.Anything).Return("MTK", nil).Once()
	prompter.On("CapturePositiveBigInt", "Enter token supply").Return(big.NewInt(1000), nil).Once()

	spec, err := captureToken(cmd)
	require.NoError(t, err)
	prompter.AssertExpectations(t)
	prompter.AssertNotCalled(t, "CaptureString", mock.Anything)
	require.Equal(t, "My Token", spec.Name)
	require.Equal(t, "MTK", spec.Symbol)
	require.Zero(t, spec.Supply.Cmp(big.NewInt(1000)))
	require.Equal(t, "MyToken", spec.ContractName())
}

func TestCaptureTokenRejectsBadFlags(t *testing.T) {
	cmd, _ := setupInteractive(t)
	require.NoError(t, cmd.Flags().Set(nameFlag, "My Token"))
	require.NoError(t, cmd.Flags().Set(symbolFlag, "M T K"))
	require.NoError(t, cmd.Flags().Set(supplyFlag, "1000"))
	_, err := captureToken(cmd)
	require.ErrorIs(t, err, failure.ErrInvalidInput)

	require.NoError(t, cmd.Flags().Set(symbolFlag, "MTK"))
	require.NoError(t, cmd.Flags().Set(supplyFlag, "-5"))
	_, err = captureToken(cmd)
	require.ErrorIs(t, err, failure.ErrInvalidInput)
}

func TestPlanEntriesCustom(t *testing.T) {
	cmd, prompter := setupInteractive(t)
	prompter.On("CaptureList", "Distribution option", modeOptions).Return(distribution.CustomAmount.String(), nil).Once()
	prompter.On("CaptureAmount", "(1/2) "+alice).Return("1", nil).Once()
	prompter.On("CaptureAmount", "(2/2) "+bob).Return("2.5", nil).Once()

	entries, err := planEntries(cmd, []string{alice, bob}, "MTK")
	require.NoError(t, err)
	prompter.AssertExpectations(t)
	require.Equal(t, []distribution.Entry{
		{Address: alice, Amount: "1"},
		{Address: bob, Amount: "2.5"},
	}, entries)
}

func TestPlanEntriesSame(t *testing.T) {
	cmd, prompter := setupInteractive(t)
	require.NoError(t, cmd.Flags().Set(distributionFlag, "same"))
	prompter.On("CaptureAmount", "Enter amount to send to each address (MTK)").Return("10", nil).Once()

	entries, err := planEntries(cmd, []string{alice, bob}, "MTK")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, "10", e.Amount)
	}
}

func TestPlanEntriesSkip(t *testing.T) {
	cmd, prompter := setupInteractive(t)
	prompter.On("CaptureList", "Distribution option", modeOptions).Return(distribution.Skip.String(), nil).Once()

	entries, err := planEntries(cmd, []string{alice}, "MTK")
	require.NoError(t, err)
	require.Nil(t, entries)
	prompter.AssertNotCalled(t, "CaptureAmount", mock.Anything)
}

func TestConfirmDistribution(t *testing.T) {
	cmd, prompter := setupInteractive(t)
	prompter.On("CaptureYesNo", "Confirm token distribution?").Return(false, nil).Once()
	ok, err := confirmDistribution(cmd)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cmd.Flags().Set(yesFlag, "true"))
	ok, err = confirmDistribution(cmd)
	require.NoError(t, err)
	require.True(t, ok)
	prompter.AssertExpectations(t)
}
