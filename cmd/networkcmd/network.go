// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package networkcmd

import (
	"github.com/luxfi/autodeploy/cmd/flags"
	"github.com/luxfi/autodeploy/pkg/application"
	"github.com/luxfi/autodeploy/pkg/ux"
	"github.com/spf13/cobra"
)

var app *application.AutoDeploy

// NewCmd creates the command listing the networks of a mode.
func NewCmd(injectedApp *application.AutoDeploy) *cobra.Command {
	app = injectedApp
	return &cobra.Command{
		Use:   "networks [mode]",
		Short: "List the networks available for a mode",
		Long: `Networks prints the networks loaded from <chains-dir>/<mode>.json (or .yaml),
with the number used to select each one. mode defaults to testnet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: listNetworks,
	}
}

func listNetworks(_ *cobra.Command, args []string) error {
	mode := flags.Mode(args)
	reg, err := app.LoadNetworks(mode)
	if err != nil {
		return err
	}
	ux.Logger.PrintNetworks(mode, reg.Networks)
	ux.Logger.Info("loaded networks from %s", reg.Path)
	return nil
}
