// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package failure holds the single error taxonomy used across the tool.
//
// Every class is registered once and carries a Kind. Fatal classes abort the
// whole run; Recoverable classes are recorded against a single distribution
// entry and never stop the loop. The propagation policy lives at the call
// site: the deploy flow returns fatal errors up to the command, the
// distributor catches and records recoverable ones.
package failure

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	errorsmod "cosmossdk.io/errors"
)

const Codespace = "autodeploy"

// Kind tells the caller whether an error aborts the run.
type Kind int

const (
	Fatal Kind = iota + 1
	Recoverable
)

func (k Kind) String() string {
	switch k {
	case Fatal:
		return "fatal"
	case Recoverable:
		return "recoverable"
	}
	return "unknown"
}

// Fatal classes.
var (
	ErrNetworkConfig      = errorsmod.Register(Codespace, 2, "network configuration error")
	ErrInvalidSelection   = errorsmod.Register(Codespace, 3, "invalid network selection")
	ErrMissingCredential  = errorsmod.Register(Codespace, 4, "missing or invalid signing credential")
	ErrRPCUnavailable     = errorsmod.Register(Codespace, 5, "rpc endpoint unreachable")
	ErrInsufficientFunds  = errorsmod.Register(Codespace, 6, "insufficient funds")
	ErrCompilation        = errorsmod.Register(Codespace, 7, "contract compilation failed")
	ErrDeployment         = errorsmod.Register(Codespace, 8, "contract deployment failed")
	ErrInvalidInput       = errorsmod.Register(Codespace, 9, "invalid input")
	ErrDistributionOption = errorsmod.Register(Codespace, 10, "invalid distribution option")
	ErrRecord             = errorsmod.Register(Codespace, 11, "cannot write distribution record")
)

// Recoverable classes, scoped to one distribution entry.
var (
	ErrSubmission     = errorsmod.Register(Codespace, 20, "transfer submission failed")
	ErrOnChainFailure = errorsmod.Register(Codespace, 21, "transfer failed on chain")
)

var recoverable = []*errorsmod.Error{ErrSubmission, ErrOnChainFailure}

// KindOf reports the kind of err. Anything that is not explicitly recoverable
// is treated as fatal.
func KindOf(err error) Kind {
	for _, class := range recoverable {
		if errors.Is(err, class) {
			return Recoverable
		}
	}
	return Fatal
}

// Wrap attaches a class and a message to cause while keeping both reachable
// through errors.Is.
func Wrap(class *errorsmod.Error, cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return errorsmod.Wrap(class, msg)
	}
	return fmt.Errorf("%s: %w: %w", msg, class, cause)
}

// Classify refines a raw chain error into ErrInsufficientFunds or
// ErrRPCUnavailable when it recognizes one, and otherwise returns fallback.
func Classify(err error, fallback *errorsmod.Error) *errorsmod.Error {
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, ErrInsufficientFunds), isInsufficientFunds(err):
		return ErrInsufficientFunds
	case errors.Is(err, ErrRPCUnavailable), isNetworkError(err):
		return ErrRPCUnavailable
	}
	return fallback
}

func isInsufficientFunds(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "insufficient funds")
}

func isNetworkError(err error) bool {
	var (
		netErr net.Error
		urlErr *url.Error
		opErr  *net.OpError
	)
	switch {
	case errors.As(err, &urlErr), errors.As(err, &opErr):
		return true
	case errors.As(err, &netErr) && netErr.Timeout():
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")
}

// Hint returns an operator-facing suggestion for a fatal error, or "" when
// there is nothing more useful to say than the error itself.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "Please check your deployer wallet balance"
	case errors.Is(err, ErrRPCUnavailable):
		return "Please check your RPC URL and network connection"
	case errors.Is(err, ErrMissingCredential):
		return "Set PRIVATE_KEY in the environment or in a .env file"
	case errors.Is(err, ErrInvalidSelection):
		return "Pick one of the listed networks"
	case errors.Is(err, ErrCompilation):
		return "Check the token name: it must form a valid Solidity identifier once spaces are removed"
	case errors.Is(err, ErrNetworkConfig):
		return "Check the network configuration file for the selected mode"
	}
	return ""
}

// EntryError is the recoverable error recorded against one distribution
// entry. Its message is the cause's message unchanged, so it can be written to
// failure records as-is.
type EntryError struct {
	Class *errorsmod.Error
	Cause error
}

func NewEntryError(class *errorsmod.Error, cause error) *EntryError {
	return &EntryError{Class: class, Cause: cause}
}

func (e *EntryError) Error() string {
	if e.Cause == nil {
		return e.Class.Error()
	}
	return e.Cause.Error()
}

func (e *EntryError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Class}
	}
	return []error{e.Class, e.Cause}
}
