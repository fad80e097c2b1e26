// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"github.com/luxfi/autodeploy/cmd/flags"
	"github.com/luxfi/autodeploy/pkg/application"
	"github.com/luxfi/autodeploy/pkg/contract"
	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/luxfi/autodeploy/pkg/ux"
	"github.com/luxfi/geth/common"
	"github.com/spf13/cobra"
)

// autodeploy distribute [mode]
func NewDistributeCmd(injectedApp *application.AutoDeploy) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "distribute [mode]",
		Short: "Distribute an already deployed ERC20 token",
		Long: `Distribute sends an existing ERC20 token to the addresses in the address
file, or retries the rows of a failure record written by a previous run:

  autodeploy distribute testnet --contract 0x... --from failed_distributions.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDistribute,
	}
	cmd.Flags().String(networkFlag, "", "network of the token, by list number or name")
	cmd.Flags().String(contractFlag, "", "address of the ERC20 token")
	cmd.Flags().String(fromFlag, "", "CSV file with address,amount rows to send instead of the address file")
	cmd.Flags().String(distributionFlag, "", "distribution mode: same, custom or skip")
	cmd.Flags().String(amountFlag, "", "amount sent to each address in 'same' mode")
	cmd.Flags().BoolP(yesFlag, "y", false, "confirm the distribution without asking")
	return cmd
}

func runDistribute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	mode := flags.Mode(args)

	tokenInput := flags.StringOrEnv(cmd, contractFlag)
	if tokenInput == "" {
		if !app.Interactive() {
			return missing(cmd, contractFlag, "address of the ERC20 token")
		}
		address, err := app.Prompt.CaptureAddress("Token contract address")
		if err != nil {
			return err
		}
		tokenInput = address.Hex()
	}
	if !common.IsHexAddress(tokenInput) {
		return failure.Wrap(failure.ErrInvalidInput, nil, "invalid token address %q", tokenInput)
	}

	reg, err := app.LoadNetworks(mode)
	if err != nil {
		return err
	}
	ux.Logger.PrintNetworks(mode, reg.Networks)
	network, err := selectNetwork(cmd, reg)
	if err != nil {
		return err
	}

	client, err := app.Connect(ctx, network)
	if err != nil {
		return err
	}
	defer client.Close()

	info, err := client.TokenInfo(ctx, common.HexToAddress(tokenInput))
	if err != nil {
		return err
	}
	parsed, err := contract.ERC20ABI()
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Token: %s (%s), %d decimals", info.Name, info.Symbol, info.Decimals)
	token := distribution.Token{
		Address:  info.Address,
		ABI:      parsed,
		Symbol:   info.Symbol,
		Decimals: info.Decimals,
	}

	from := flags.StringOrEnv(cmd, fromFlag)
	if from == "" {
		return distributeFromAddressFile(cmd, client, network, token)
	}
	entries, err := distribution.ReadFailures(app.Fs, from)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ux.Logger.Warn("No rows found in %s, nothing to distribute", from)
		return nil
	}
	ux.Logger.PrintToUser("Found %d rows in %s", len(entries), from)
	return runDistribution(cmd, client, network, token, entries)
}

// distributeFromAddressFile plans a distribution over the address file and
// runs it. A missing or empty address file skips distribution.
func distributeFromAddressFile(
	cmd *cobra.Command,
	client application.ChainClient,
	network models.Network,
	token distribution.Token,
) error {
	addresses, err := app.LoadAddresses()
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		ux.Logger.Warn("No addresses found in %s, skipping distribution", app.Conf.AddressFile)
		return nil
	}
	ux.Logger.PrintToUser("")
	ux.Logger.PrintToUser("Found %d addresses in %s", len(addresses), app.Conf.AddressFile)
	entries, err := planEntries(cmd, addresses, token.Symbol)
	if err != nil {
		return err
	}
	if entries == nil {
		ux.Logger.PrintToUser("Distribution skipped")
		return nil
	}
	return runDistribution(cmd, client, network, token, entries)
}

func runDistribution(
	cmd *cobra.Command,
	client application.ChainClient,
	network models.Network,
	token distribution.Token,
	entries []distribution.Entry,
) error {
	total, err := distribution.Total(entries)
	if err != nil {
		ux.Logger.Warn("some amounts are invalid and will be recorded as failures: %s", err)
		total = "?"
	}
	ux.Logger.PrintPlan(entries, token.Symbol, total)

	ok, err := confirmDistribution(cmd)
	if err != nil {
		return err
	}
	if !ok {
		ux.Logger.PrintToUser("Distribution cancelled")
		return nil
	}

	ux.Logger.PrintToUser("")
	ux.Logger.PrintToUser("Starting Token Distribution")
	ux.Logger.PrintToUser("Contract: %s", token.Address.Hex())
	ux.Logger.PrintToUser("Network: %s", network.Name)
	ux.Logger.PrintToUser("")

	progress := ux.NewDistributionProgress(ux.Logger, network, token.Symbol)
	result := app.Distributor(client, progress).Distribute(cmd.Context(), token, entries)

	failedFile, err := app.WriteRecords(result)
	ux.Logger.PrintSummary(result, failedFile)
	return err
}
