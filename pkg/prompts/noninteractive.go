// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"
)

// ErrNonInteractive is returned when a prompt is attempted in non-interactive mode.
// Commands should catch this error and provide actionable guidance.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// NonInteractivePrompter implements Prompter but fails fast on any prompt attempt.
type NonInteractivePrompter struct {
	// FailMessage tells the operator which flag or variable to set.
	FailMessage string
}

// nonInteractiveHint is the default FailMessage.
const nonInteractiveHint = "use flags to provide required values, or unset " + EnvNonInteractive

func NewNonInteractivePrompter() *NonInteractivePrompter {
	return NewNonInteractivePrompterWithMessage(nonInteractiveHint)
}

func NewNonInteractivePrompterWithMessage(msg string) *NonInteractivePrompter {
	return &NonInteractivePrompter{FailMessage: msg}
}

func (p *NonInteractivePrompter) fail(operation string) error {
	msg := p.FailMessage
	if msg == "" {
		msg = nonInteractiveHint
	}
	return fmt.Errorf("%w: %s - %s", ErrNonInteractive, operation, msg)
}

func (p *NonInteractivePrompter) CaptureString(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureValidatedString(promptStr string, _ func(string) error) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CapturePositiveBigInt(promptStr string) (*big.Int, error) {
	return nil, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureAmount(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureAddress(promptStr string) (common.Address, error) {
	return common.Address{}, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureYesNo(promptStr string) (bool, error) {
	return false, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureList(promptStr string, _ []string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureIndex(promptStr string, _ []any) (int, error) {
	return 0, p.fail(promptStr)
}
