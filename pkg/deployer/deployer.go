// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployer publishes a freshly compiled token contract.
package deployer

import (
	"context"
	"fmt"

	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/contract"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Builder renders and compiles token sources.
type Builder interface {
	Render(spec models.TokenSpec) (contract.Source, error)
	Compile(ctx context.Context, src contract.Source) (*contract.Artifact, error)
}

// ContractDeployer submits contract creations and waits for them.
type ContractDeployer interface {
	DeployContract(ctx context.Context, parsed abi.ABI, bytecode []byte, params ...interface{}) (common.Address, *types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

type Stage int

const (
	StageCompile Stage = iota
	StageSubmit
	StageConfirm
)

func (s Stage) String() string {
	switch s {
	case StageCompile:
		return "Compiling contract..."
	case StageSubmit:
		return "Deploying contract..."
	case StageConfirm:
		return "Waiting for confirmation..."
	}
	return "unknown stage"
}

// Deployment is the outcome of a successful deploy.
type Deployment struct {
	Network     models.Network
	Token       models.TokenSpec
	Address     common.Address
	TxHash      common.Hash
	GasUsed     uint64
	ABI         abi.ABI
	ABIJSON     string
	ExplorerURL string
}

type Deployer struct {
	builder    Builder
	chain      ContractDeployer
	fs         afero.Fs
	sourcePath string
	onStage    func(Stage)
	log        *zap.Logger
}

type Option func(*Deployer)

// WithSourcePath sets where the rendered source is written before compiling.
func WithSourcePath(path string) Option {
	return func(d *Deployer) {
		d.sourcePath = path
	}
}

// WithStageHook is called as each stage starts.
func WithStageHook(f func(Stage)) Option {
	return func(d *Deployer) {
		d.onStage = f
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(d *Deployer) {
		d.log = log
	}
}

func New(builder Builder, chain ContractDeployer, fs afero.Fs, opts ...Option) *Deployer {
	d := &Deployer{
		builder:    builder,
		chain:      chain,
		fs:         fs,
		sourcePath: constants.DefaultSourceFile,
		onStage:    func(Stage) {},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy renders, writes, compiles and publishes spec on network, blocking
// until the creation transaction is mined. Every error it returns is fatal.
func (d *Deployer) Deploy(ctx context.Context, network models.Network, spec models.TokenSpec) (*Deployment, error) {
	d.onStage(StageCompile)
	src, err := d.builder.Render(spec)
	if err != nil {
		return nil, err
	}
	// the source file is overwritten on every run, even when compilation fails
	if err := afero.WriteFile(d.fs, d.sourcePath, []byte(src.Code), constants.WriteReadReadPerms); err != nil {
		return nil, failure.Wrap(failure.ErrCompilation, err, "failed to write %s", d.sourcePath)
	}
	artifact, err := d.builder.Compile(ctx, src)
	if err != nil {
		return nil, err
	}
	d.log.Info("compiled",
		zap.String("contract", artifact.Name),
		zap.Int("bytecodeSize", len(artifact.Bytecode)),
	)

	d.onStage(StageSubmit)
	address, tx, err := d.chain.DeployContract(ctx, artifact.ABI, artifact.Bytecode)
	if err != nil {
		return nil, failure.Wrap(failure.Classify(err, failure.ErrDeployment), err, "failed to submit contract creation")
	}
	d.log.Info("contract creation submitted", zap.String("tx", tx.Hash().Hex()), zap.String("network", network.Name))

	d.onStage(StageConfirm)
	receipt, err := d.chain.WaitMined(ctx, tx)
	if err != nil {
		return nil, failure.Wrap(
			failure.Classify(err, failure.ErrDeployment),
			err,
			"failed waiting for deployment %s",
			tx.Hash().Hex(),
		)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, failure.Wrap(
			failure.ErrDeployment,
			nil,
			"contract creation %s reverted (gas used %d)",
			tx.Hash().Hex(),
			receipt.GasUsed,
		)
	}
	if receipt.ContractAddress != (common.Address{}) && receipt.ContractAddress != address {
		d.log.Warn("receipt contract address differs from predicted address",
			zap.String("predicted", address.Hex()),
			zap.String("receipt", receipt.ContractAddress.Hex()),
		)
		address = receipt.ContractAddress
	}
	return &Deployment{
		Network:     network,
		Token:       spec,
		Address:     address,
		TxHash:      tx.Hash(),
		GasUsed:     receipt.GasUsed,
		ABI:         artifact.ABI,
		ABIJSON:     artifact.ABIJSON,
		ExplorerURL: network.AddressURL(address.Hex()),
	}, nil
}

func (d Deployment) String() string {
	return fmt.Sprintf("%s (%s) at %s on %s", d.Token.Name, d.Token.Symbol, d.Address.Hex(), d.Network.Name)
}
