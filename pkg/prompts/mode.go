// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"os"
	"strings"

	"github.com/luxfi/autodeploy/pkg/constants"
	"golang.org/x/term"
)

const (
	// EnvNonInteractive forces non-interactive mode when truthy.
	EnvNonInteractive = constants.EnvNonInteractive

	// EnvCI is set by most CI systems and implies non-interactive.
	EnvCI = "CI"
)

// isTruthyEnv accepts 1, true, t, yes, y, on (case-insensitive).
func isTruthyEnv(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// stdinIsTTY is a variable so tests can simulate a terminal.
var stdinIsTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive reports whether prompting is allowed: stdin is a terminal
// and neither AUTODEPLOY_NON_INTERACTIVE nor CI is truthy.
func IsInteractive() bool {
	if isTruthyEnv(EnvNonInteractive) {
		return false
	}
	if isTruthyEnv(EnvCI) {
		return false
	}
	return stdinIsTTY()
}

// IsNonInteractive combines the --non-interactive flag with the environment.
func IsNonInteractive(flag bool) bool {
	if flag {
		return true
	}
	return !IsInteractive()
}

// NewPrompterForMode returns a prompter that fails fast when prompting is not
// possible, and the promptui prompter otherwise.
func NewPrompterForMode(nonInteractiveFlag bool) Prompter {
	if IsNonInteractive(nonInteractiveFlag) {
		return NewNonInteractivePrompter()
	}
	return NewPrompter()
}
