// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package distribution sends tokens to a list of addresses, one transfer at a
// time, and records what happened to each.
package distribution

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/units"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Transferer submits ERC20 transfers and waits for them to be mined.
type Transferer interface {
	Transfer(ctx context.Context, token common.Address, parsed abi.ABI, to common.Address, amount *big.Int, gasLimit uint64) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Token identifies the contract being distributed.
type Token struct {
	Address  common.Address
	ABI      abi.ABI
	Symbol   string
	Decimals uint8
}

// Observer is notified as entries progress. Calls happen on the distributing
// goroutine.
type Observer interface {
	OnSubmit(index, total int, entry Entry)
	OnOutcome(outcome Outcome, total int)
}

type nopObserver struct{}

func (nopObserver) OnSubmit(int, int, Entry) {}
func (nopObserver) OnOutcome(Outcome, int) {}

type Distributor struct {
	chain    Transferer
	gasLimit uint64
	limiter  *rate.Limiter
	observer Observer
	log      *zap.Logger
}

type Option func(*Distributor)

func WithGasLimit(gasLimit uint64) Option {
	return func(d *Distributor) {
		if gasLimit > 0 {
			d.gasLimit = gasLimit
		}
	}
}

// WithRateLimiter paces submissions. A nil limiter submits as fast as
// confirmations allow.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(d *Distributor) {
		d.limiter = limiter
	}
}

func WithObserver(observer Observer) Option {
	return func(d *Distributor) {
		if observer != nil {
			d.observer = observer
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(d *Distributor) {
		if log != nil {
			d.log = log
		}
	}
}

func New(chain Transferer, opts ...Option) *Distributor {
	d := &Distributor{
		chain:    chain,
		gasLimit: constants.DefaultTransferGasLimit,
		observer: nopObserver{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Distribute processes entries strictly in order and returns exactly one
// outcome per entry. A failing entry never stops the loop. Once ctx is done,
// every remaining entry is recorded as SubmitError without being sent.
func (d *Distributor) Distribute(ctx context.Context, token Token, entries []Entry) Result {
	result := Result{Outcomes: make([]Outcome, 0, len(entries))}
	for i, entry := range entries {
		result.add(d.process(ctx, token, i, entry, len(entries)))
	}
	d.log.Info("distribution finished",
		zap.Int("entries", len(entries)),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailedCount()),
	)
	return result
}

func (d *Distributor) process(ctx context.Context, token Token, index int, entry Entry, total int) (out Outcome) {
	out = Outcome{Index: index, Entry: entry, State: Pending}
	defer func() {
		if r := recover(); r != nil {
			out.State = SubmitError
			out.Err = failure.NewEntryError(failure.ErrSubmission, fmt.Errorf("panic: %v", r))
			d.log.Error("recovered panic while distributing", zap.Int("index", index), zap.Any("panic", r))
		}
		d.observer.OnOutcome(out, total)
	}()

	if err := ctx.Err(); err != nil {
		return submitError(out, err)
	}
	to, amount, err := resolve(entry, token.Decimals)
	if err != nil {
		return submitError(out, err)
	}
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return submitError(out, err)
		}
	}

	d.observer.OnSubmit(index, total, entry)
	tx, err := d.chain.Transfer(ctx, token.Address, token.ABI, to, amount, d.gasLimit)
	if err != nil {
		d.log.Warn("transfer submission failed", zap.String("to", entry.Address), zap.Error(err))
		return submitError(out, err)
	}
	hash := tx.Hash()
	out.State = Submitted
	out.TxHash = &hash

	receipt, err := d.chain.WaitMined(ctx, tx)
	if err != nil {
		d.log.Warn("waiting for transfer failed", zap.String("tx", hash.Hex()), zap.Error(err))
		return submitError(out, err)
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		out.State = ConfirmedSuccess
	} else {
		out.State = ConfirmedFailed
	}
	d.log.Debug("transfer mined",
		zap.String("tx", hash.Hex()),
		zap.Stringer("state", out.State),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)
	return out
}

func submitError(out Outcome, cause error) Outcome {
	out.State = SubmitError
	out.Err = failure.NewEntryError(failure.ErrSubmission, cause)
	return out
}

func resolve(entry Entry, decimals uint8) (common.Address, *big.Int, error) {
	address := strings.TrimSpace(entry.Address)
	if !common.IsHexAddress(address) {
		return common.Address{}, nil, fmt.Errorf("invalid address %q", entry.Address)
	}
	amount, err := units.ParseUnits(entry.Amount, decimals)
	if err != nil {
		return common.Address{}, nil, err
	}
	return common.HexToAddress(address), amount, nil
}
