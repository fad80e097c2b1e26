// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// MissingOpt describes a required option that was not provided.
type MissingOpt struct {
	Flag   string // e.g., "--symbol"
	Env    string // e.g., "AUTODEPLOY_SYMBOL" (optional)
	Prompt string // label used when prompting
	Note   string // optional additional context
}

// MissingError lists every missing option and points at --help.
func MissingError(cmd string, missing []MissingOpt) error {
	if len(missing) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("missing required options:\n")
	for _, m := range missing {
		if m.Env != "" {
			fmt.Fprintf(&b, "  %s (or %s)", m.Flag, m.Env)
		} else {
			fmt.Fprintf(&b, "  %s", m.Flag)
		}
		if m.Note != "" {
			fmt.Fprintf(&b, " - %s", m.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nrun '%s --help' to see all options", cmd)
	return errors.New(b.String())
}

// Validator collects required options that are still empty after flags,
// environment and config have been applied.
type Validator struct {
	cmd         string
	interactive bool
	missing     []MissingOpt
	values      []*string
}

func NewValidator(cmd string, interactive bool) *Validator {
	return &Validator{cmd: cmd, interactive: interactive}
}

// Require marks a value as required. If empty, adds to missing list.
func (v *Validator) Require(target *string, opt MissingOpt) *Validator {
	if strings.TrimSpace(*target) == "" {
		v.missing = append(v.missing, opt)
		v.values = append(v.values, target)
	}
	return v
}

func (v *Validator) Missing() []MissingOpt {
	return v.missing
}

func (v *Validator) HasMissing() bool {
	return len(v.missing) > 0
}

// Resolve prompts for missing values (interactive) or returns error (non-interactive).
func (v *Validator) Resolve(promptFn func(MissingOpt) (string, error)) error {
	if !v.HasMissing() {
		return nil
	}

	if !v.interactive {
		return MissingError(v.cmd, v.missing)
	}

	for i, m := range v.missing {
		val, err := promptFn(m)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", m.Flag, err)
		}
		*v.values[i] = val
	}
	return nil
}
