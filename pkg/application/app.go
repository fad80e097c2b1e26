// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"errors"
	"math/big"

	"github.com/luxfi/autodeploy/pkg/chain"
	"github.com/luxfi/autodeploy/pkg/config"
	"github.com/luxfi/autodeploy/pkg/contract"
	"github.com/luxfi/autodeploy/pkg/deployer"
	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/luxfi/autodeploy/pkg/networks"
	"github.com/luxfi/autodeploy/pkg/prompts"
	"github.com/luxfi/geth/common"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ChainClient is everything the commands need from a connected signer.
type ChainClient interface {
	deployer.ContractDeployer
	distribution.Transferer
	Address() common.Address
	ChainID() *big.Int
	Balance(ctx context.Context) (*big.Int, error)
	TokenInfo(ctx context.Context, token common.Address) (chain.TokenInfo, error)
	Close()
}

// DialFunc opens a ChainClient. Tests replace it to avoid a live node.
type DialFunc func(ctx context.Context, cfg chain.Config, log *zap.Logger) (ChainClient, error)

func dialChain(ctx context.Context, cfg chain.Config, log *zap.Logger) (ChainClient, error) {
	client, err := chain.Dial(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type AutoDeploy struct {
	Log        *zap.Logger
	Conf       *config.Config
	Prompt     prompts.Prompter
	Fs         afero.Fs
	Dial       DialFunc
	SolcRunner contract.Runner
}

func New() *AutoDeploy {
	return &AutoDeploy{
		Log:        zap.NewNop(),
		Fs:         afero.NewOsFs(),
		Dial:       dialChain,
		SolcRunner: contract.ExecRunner,
	}
}

func (app *AutoDeploy) Setup(log *zap.Logger, conf *config.Config, prompt prompts.Prompter) {
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
}

// Interactive reports whether missing values may be prompted for.
func (app *AutoDeploy) Interactive() bool {
	_, nonInteractive := app.Prompt.(*prompts.NonInteractivePrompter)
	return !nonInteractive
}

func (app *AutoDeploy) LoadNetworks(mode string) (*networks.Registry, error) {
	return networks.Load(app.Fs, app.Conf.ChainsDir, mode)
}

func (app *AutoDeploy) Compiler() *contract.Compiler {
	return contract.NewCompiler(app.Conf.SolcPath, app.Log.Named("solc"), contract.WithRunner(app.SolcRunner))
}

// Connect dials network with the configured signing key and runs the
// pre-flight checks.
func (app *AutoDeploy) Connect(ctx context.Context, network models.Network) (ChainClient, error) {
	return app.Dial(ctx, app.Conf.ChainConfig(network.RPCURL), app.Log.Named("chain"))
}

func (app *AutoDeploy) Deployer(client ChainClient, onStage func(deployer.Stage)) *deployer.Deployer {
	return deployer.New(
		contract.NewBuilder(app.Compiler()),
		client,
		app.Fs,
		deployer.WithSourcePath(app.Conf.SourceFile),
		deployer.WithStageHook(onStage),
		deployer.WithLogger(app.Log.Named("deployer")),
	)
}

func (app *AutoDeploy) Distributor(client ChainClient, observer distribution.Observer) *distribution.Distributor {
	return distribution.New(
		client,
		distribution.WithGasLimit(app.Conf.GasLimit),
		distribution.WithRateLimiter(app.Conf.Limiter()),
		distribution.WithObserver(observer),
		distribution.WithLogger(app.Log.Named("distribution")),
	)
}

func (app *AutoDeploy) LoadAddresses() ([]string, error) {
	return distribution.LoadAddresses(app.Fs, app.Conf.AddressFile, app.Log)
}

// WriteRecords writes the failure record and, when enabled, the success
// record. It returns the failure file path, or "" when none was written.
// The failure record is written even if the success record cannot be.
func (app *AutoDeploy) WriteRecords(result distribution.Result) (string, error) {
	var path string
	written, failedErr := distribution.WriteFailures(app.Fs, app.Conf.FailedFile, result)
	if failedErr == nil && written {
		path = app.Conf.FailedFile
	}
	var successErr error
	if app.Conf.RecordSuccesses {
		_, successErr = distribution.WriteSuccesses(app.Fs, app.Conf.SuccessFile, result)
	}
	return path, errors.Join(failedErr, successErr)
}
