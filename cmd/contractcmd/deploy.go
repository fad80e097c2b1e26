// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"github.com/luxfi/autodeploy/cmd/flags"
	"github.com/luxfi/autodeploy/pkg/application"
	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/deployer"
	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/units"
	"github.com/luxfi/autodeploy/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AddDeployFlags registers the deploy flow flags on cmd. They are shared by
// the root command and 'deploy'.
func AddDeployFlags(cmd *cobra.Command) {
	cmd.Flags().String(networkFlag, "", "network to deploy to, by list number or name")
	cmd.Flags().String(nameFlag, "", "token name")
	cmd.Flags().String(symbolFlag, "", "token symbol")
	cmd.Flags().String(supplyFlag, "", "token supply in whole tokens")
	cmd.Flags().String(distributionFlag, "", "distribution mode: same, custom or skip")
	cmd.Flags().String(amountFlag, "", "amount sent to each address in 'same' mode")
	cmd.Flags().BoolP(yesFlag, "y", false, "confirm the distribution without asking")
}

// autodeploy deploy [mode]
func NewDeployCmd(injectedApp *application.AutoDeploy) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "deploy [mode]",
		Short: "Deploy an ERC20 token and optionally distribute it",
		Long: `Deploy compiles a fixed ERC20 contract for the token you describe, deploys
it to the selected network and then offers to distribute it to the addresses
listed in the address file.

mode selects the network list loaded from <chains-dir>/<mode>.json and
defaults to testnet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunDeploy,
	}
	AddDeployFlags(cmd)
	return cmd
}

// RunDeploy runs the full deploy flow: select network, describe the token,
// deploy it and distribute it.
func RunDeploy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	mode := flags.Mode(args)

	delay := headerDelay
	if !app.Interactive() {
		delay = 0
	}
	ux.Logger.Header(delay)

	reg, err := app.LoadNetworks(mode)
	if err != nil {
		return err
	}
	ux.Logger.PrintNetworks(mode, reg.Networks)
	network, err := selectNetwork(cmd, reg)
	if err != nil {
		return err
	}
	spec, err := captureToken(cmd)
	if err != nil {
		return err
	}

	ux.Logger.PrintToUser("")
	ux.Logger.PrintToUser("Deploying %s (%s) Token", spec.Name, spec.Symbol)
	ux.Logger.PrintToUser("Network: %s", network.Name)
	ux.Logger.PrintToUser("Total Supply: %s", spec.Supply)

	if version, err := app.Compiler().CheckVersion(ctx); err != nil {
		ux.Logger.Warn("%s", err)
	} else {
		app.Log.Debug("found solc", zap.String("version", version))
	}

	client, err := app.Connect(ctx, network)
	if err != nil {
		return err
	}
	defer client.Close()
	ux.Logger.PrintToUser("Deployer: %s", client.Address().Hex())
	if balance, err := client.Balance(ctx); err != nil {
		ux.Logger.Warn("%s", err)
	} else {
		ux.Logger.PrintToUser("Balance: %s", units.FormatUnits(balance, constants.NativeDecimals))
	}

	tracker := ux.NewStepTracker(ux.Logger, slowStepWarning)
	started := false
	onStage := func(stage deployer.Stage) {
		if started {
			tracker.CheckWarn()
			tracker.CompleteSuccess()
		}
		started = true
		tracker.Start(stage.String())
	}
	deployment, err := app.Deployer(client, onStage).Deploy(ctx, network, spec)
	if err != nil {
		if started {
			tracker.Failed(err.Error())
		}
		return err
	}
	tracker.CompleteSuccess()
	ux.Logger.PrintDeployment(deployment)

	token := distribution.Token{
		Address:  deployment.Address,
		ABI:      deployment.ABI,
		Symbol:   spec.Symbol,
		Decimals: spec.Decimals,
	}
	return distributeFromAddressFile(cmd, client, deployment.Network, token)
}
