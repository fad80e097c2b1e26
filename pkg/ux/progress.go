// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/luxfi/autodeploy/pkg/distribution"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// DistributionProgress reports each transfer as it happens. On a terminal it
// draws a progress bar; otherwise it prints one block per transfer.
type DistributionProgress struct {
	ul      *UserLog
	network models.Network
	symbol  string
	isTTY   bool
	bar     *progressbar.ProgressBar
}

var _ distribution.Observer = (*DistributionProgress)(nil)

func NewDistributionProgress(ul *UserLog, network models.Network, symbol string) *DistributionProgress {
	return &DistributionProgress{
		ul:      ul,
		network: network,
		symbol:  symbol,
		isTTY:   isTerminal(ul.writer),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *DistributionProgress) OnSubmit(index, total int, entry distribution.Entry) {
	if p.isTTY {
		if p.bar == nil {
			p.bar = newBar(p.ul.writer, total)
		}
		p.bar.Describe(fmt.Sprintf("[cyan]%s[reset]", entry.Address))
		return
	}
	p.ul.PrintToUser("Sending to %s (%d/%d)", entry.Address, index+1, total)
	p.ul.PrintToUser("   Amount: %s %s", entry.Amount, p.symbol)
}

func (p *DistributionProgress) OnOutcome(outcome distribution.Outcome, total int) {
	if err := outcome.Failure(); err != nil {
		p.ul.log.Warn("transfer failed",
			zap.Int("index", outcome.Index),
			zap.String("to", outcome.Entry.Address),
			zap.Stringer("state", outcome.State),
			zap.Error(err),
		)
	}
	if p.isTTY {
		if p.bar == nil {
			p.bar = newBar(p.ul.writer, total)
		}
		_ = p.bar.Add(1)
		if outcome.Index == total-1 {
			_ = p.bar.Finish()
			_, _ = fmt.Fprintln(p.ul.writer)
		}
		return
	}
	switch outcome.State {
	case distribution.ConfirmedSuccess:
		p.ul.GreenCheckmarkToUser("   Success")
		p.ul.PrintToUser("   Tx Hash: %s", p.network.TxURL(outcome.TxHash.Hex()))
	case distribution.ConfirmedFailed:
		p.ul.RedXToUser("   Failed")
		p.ul.PrintToUser("   Tx Hash: %s", p.network.TxURL(outcome.TxHash.Hex()))
	default:
		p.ul.RedXToUser("   Error: %s", outcome.Reason())
		p.ul.PrintToUser("   Skipping to next address...")
	}
	p.ul.PrintToUser("")
}

func newBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]Distributing[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
