// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxfi/autodeploy/cmd/contractcmd"
	"github.com/luxfi/autodeploy/cmd/networkcmd"
	"github.com/luxfi/autodeploy/pkg/application"
	"github.com/luxfi/autodeploy/pkg/config"
	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/prompts"
	"github.com/luxfi/autodeploy/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	app *application.AutoDeploy

	Version = "0.1.0"
	cfgFile string
)

func NewRootCmd(injectedApp *application.AutoDeploy) *cobra.Command {
	app = injectedApp
	v := viper.New()

	// rootCmd runs the deploy flow when called without a subcommand
	rootCmd := &cobra.Command{
		Use:   "autodeploy [mode]",
		Short: "Deploy an ERC20 token to an EVM network and distribute it",
		Long: `autodeploy - deploy and distribute ERC20 tokens on EVM-compatible networks.

Without a subcommand, autodeploy walks through the whole flow:

  1. pick a network from <chains-dir>/<mode>.json (mode defaults to testnet)
  2. enter the token name, symbol and supply
  3. compile and deploy the token with solc
  4. optionally distribute it to the addresses in address.txt

The signing key is read from PRIVATE_KEY, either in the environment or in a
.env file in the working directory.

NON-INTERACTIVE USE:

  autodeploy testnet --non-interactive --network 1 --name "My Token" \
    --symbol MTK --supply 1000000 --distribution same --amount 10 --yes

Failed transfers are written to failed_distributions.csv and can be retried
with 'autodeploy distribute --contract <address> --from failed_distributions.csv'.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return createApp(cmd, v) },
		RunE:              contractcmd.RunDeploy,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./autodeploy.yaml)")
	pf.String(constants.ConfigLogLevel, constants.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String(constants.ConfigLogFile, "", "write logs to this file instead of stderr")
	pf.Bool(constants.ConfigNonInteractive, false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")
	pf.String(constants.ConfigChainsDir, constants.DefaultChainsDir, "directory holding <mode>.json network files")
	pf.String(constants.ConfigAddressFile, constants.DefaultAddressFile, "file with one recipient address per line")
	pf.String(constants.ConfigFailedFile, constants.DefaultFailedFile, "where failed transfers are recorded")
	pf.String(constants.ConfigSuccessFile, constants.DefaultSuccessFile, "where confirmed transfers are recorded")
	pf.Bool(constants.ConfigRecordSuccesses, false, "also record confirmed transfers")
	pf.String(constants.ConfigSourceFile, constants.DefaultSourceFile, "where the rendered contract source is written")
	pf.String(constants.ConfigSolcPath, constants.DefaultSolcPath, "solc binary used to compile the contract")
	pf.Uint64(constants.ConfigGasLimit, constants.DefaultTransferGasLimit, "gas limit of each distribution transfer")
	pf.Duration(constants.ConfigDialTimeout, constants.DefaultDialTimeout, "timeout for connecting to the RPC endpoint")
	pf.Duration(constants.ConfigConfirmTimeout, constants.DefaultConfirmTimeout, "timeout for each confirmation, 0 waits forever")
	pf.Float64(constants.ConfigSubmitRate, 0, "maximum transfers submitted per second, 0 is unlimited")

	contractcmd.AddDeployFlags(rootCmd)

	rootCmd.AddCommand(contractcmd.NewDeployCmd(app))
	rootCmd.AddCommand(contractcmd.NewDistributeCmd(app))
	rootCmd.AddCommand(networkcmd.NewCmd(app))

	return rootCmd
}

// createApp resolves configuration and builds the logger and prompter.
// Priority: flags > env vars > .env file > config file > defaults
func createApp(cmd *cobra.Command, v *viper.Viper) error {
	if err := config.LoadDotEnv(app.Fs, constants.DotEnvFileName); err != nil {
		return err
	}
	config.SetDefaults(v)
	if err := config.BindEnv(v); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := config.ReadConfigFile(app.Fs, v, cfgFile); err != nil {
		return err
	}
	conf, err := config.Load(v)
	if err != nil {
		return err
	}

	log, err := application.NewLogger(conf.LogLevel, conf.LogFile)
	if err != nil {
		return err
	}
	// user output goes to stdout, logs go to stderr or the log file
	ux.NewUserLog(log, cmd.OutOrStdout())
	if conf.ConfigFile != "" {
		log.Debug("using config file", zap.String("config-file", conf.ConfigFile))
	}

	// Interactive by default on TTY, non-interactive when:
	// AUTODEPLOY_NON_INTERACTIVE=1, CI=1, --non-interactive flag, or stdin is piped
	app.Setup(log, conf, prompts.NewPrompterForMode(conf.NonInteractive))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app = application.New()
	rootCmd := NewRootCmd(app)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
	}
	_ = app.Log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "\nERROR: %s\n", err)
	if hint := failure.Hint(err); hint != "" {
		fmt.Fprintf(w, "%s\n", hint)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "Interrupted")
	}
	app.Log.Error("command failed", zap.Error(err), zap.Stringer("kind", failure.KindOf(err)))
}
