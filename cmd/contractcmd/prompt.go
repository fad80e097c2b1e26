// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/luxfi/autodeploy/cmd/flags"
	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/luxfi/autodeploy/pkg/networks"
	"github.com/luxfi/autodeploy/pkg/prompts"
	"github.com/luxfi/autodeploy/pkg/ux"
	"github.com/spf13/cobra"
)

func missing(cmd *cobra.Command, flag, note string) error {
	return prompts.MissingError(cmd.CommandPath(), []prompts.MissingOpt{{
		Flag: "--" + flag,
		Env:  flags.EnvName(flag),
		Note: note,
	}})
}

// selectNetwork resolves --network (an index or a name), or offers the
// network names as a list.
func selectNetwork(cmd *cobra.Command, reg *networks.Registry) (models.Network, error) {
	input := flags.StringOrEnv(cmd, networkFlag)
	if input != "" {
		return reg.Select(input)
	}
	if !app.Interactive() {
		return models.Network{}, missing(cmd, networkFlag, "index or name of the network")
	}
	names := reg.Names()
	options := make([]any, 0, len(names))
	for _, name := range names {
		options = append(options, name)
	}
	index, err := app.Prompt.CaptureIndex("Select a network", options)
	if err != nil {
		return models.Network{}, err
	}
	return reg.SelectIndex(index + 1)
}

func captureToken(cmd *cobra.Command) (models.TokenSpec, error) {
	name := flags.StringOrEnv(cmd, nameFlag)
	symbol := flags.StringOrEnv(cmd, symbolFlag)
	supply := flags.StringOrEnv(cmd, supplyFlag)

	v := prompts.NewValidator(cmd.CommandPath(), app.Interactive()).
		Require(&name, prompts.MissingOpt{Flag: "--" + nameFlag, Env: flags.EnvName(nameFlag), Prompt: "Enter token name"}).
		Require(&symbol, prompts.MissingOpt{Flag: "--" + symbolFlag, Env: flags.EnvName(symbolFlag), Prompt: "Enter token symbol"}).
		Require(&supply, prompts.MissingOpt{Flag: "--" + supplyFlag, Env: flags.EnvName(supplyFlag), Prompt: "Enter token supply"})
	err := v.Resolve(func(m prompts.MissingOpt) (string, error) {
		switch m.Flag {
		case "--" + symbolFlag:
			return app.Prompt.CaptureValidatedString(m.Prompt, prompts.ValidateSymbol)
		case "--" + supplyFlag:
			n, err := app.Prompt.CapturePositiveBigInt(m.Prompt)
			if err != nil {
				return "", err
			}
			return n.String(), nil
		}
		return app.Prompt.CaptureString(m.Prompt)
	})
	if err != nil {
		return models.TokenSpec{}, err
	}

	if err := prompts.ValidateSymbol(symbol); err != nil {
		return models.TokenSpec{}, failure.Wrap(failure.ErrInvalidInput, err, "invalid token symbol %q", symbol)
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(supply), 10)
	if !ok || n.Sign() <= 0 {
		return models.TokenSpec{}, failure.Wrap(failure.ErrInvalidInput, nil, "token supply must be a positive whole number, got %q", supply)
	}
	return models.NewTokenSpec(name, symbol, n), nil
}

func captureMode(cmd *cobra.Command) (distribution.Mode, error) {
	input := flags.StringOrEnv(cmd, distributionFlag)
	if input == "" {
		if !app.Interactive() {
			return 0, missing(cmd, distributionFlag, "same, custom or skip")
		}
		modes := distribution.Modes()
		options := make([]string, 0, len(modes))
		for _, m := range modes {
			options = append(options, m.String())
		}
		choice, err := app.Prompt.CaptureList("Distribution option", options)
		if err != nil {
			return 0, err
		}
		for _, m := range modes {
			if m.String() == choice {
				return m, nil
			}
		}
		return 0, failure.Wrap(failure.ErrDistributionOption, nil, "invalid distribution option %q", choice)
	}
	return distribution.ParseMode(input)
}

// planEntries builds the distribution list for addresses. It returns nil
// when the operator chose to skip distribution.
func planEntries(cmd *cobra.Command, addresses []string, symbol string) ([]distribution.Entry, error) {
	mode, err := captureMode(cmd)
	if err != nil {
		return nil, err
	}
	switch mode {
	case distribution.SameAmount:
		amount := flags.StringOrEnv(cmd, amountFlag)
		if amount == "" {
			if !app.Interactive() {
				return nil, missing(cmd, amountFlag, "amount sent to each address")
			}
			amount, err = app.Prompt.CaptureAmount(fmt.Sprintf("Enter amount to send to each address (%s)", symbol))
			if err != nil {
				return nil, err
			}
		}
		if err := prompts.ValidateAmount(amount); err != nil {
			return nil, failure.Wrap(failure.ErrInvalidInput, err, "invalid amount %q", amount)
		}
		return distribution.PlanSame(addresses, amount), nil
	case distribution.CustomAmount:
		if !app.Interactive() {
			return nil, failure.Wrap(
				failure.ErrDistributionOption,
				nil,
				"custom amounts need an interactive terminal; use 'distribute --%s <csv>' instead",
				fromFlag,
			)
		}
		ux.Logger.PrintToUser("")
		ux.Logger.PrintToUser("Enter amount for each address:")
		amounts, err := prompts.CaptureAmounts(app.Prompt, addresses)
		if err != nil {
			return nil, err
		}
		return distribution.PlanCustom(addresses, amounts)
	}
	return nil, nil
}

func confirmDistribution(cmd *cobra.Command) (bool, error) {
	if flags.BoolOrEnv(cmd, yesFlag) {
		return true, nil
	}
	if !app.Interactive() {
		return false, missing(cmd, yesFlag, "confirm the distribution")
	}
	return app.Prompt.CaptureYesNo("Confirm token distribution?")
}
