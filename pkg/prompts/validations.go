// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"math/big"
	"strings"

	"github.com/luxfi/autodeploy/pkg/units"
	"github.com/luxfi/geth/common"
)

func validateNonEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("string cannot be empty")
	}
	return nil
}

func validatePositiveBigInt(input string) error {
	n, ok := new(big.Int).SetString(strings.TrimSpace(input), 10)
	if !ok {
		return errors.New("invalid number")
	}
	if n.Sign() <= 0 {
		return errors.New("number must be greater than zero")
	}
	return nil
}

func validateAddress(input string) error {
	if !common.IsHexAddress(strings.TrimSpace(input)) {
		return errors.New("invalid address")
	}
	return nil
}

// ValidateAmount accepts non-negative decimals with at most 18 fractional
// digits.
func ValidateAmount(input string) error {
	_, err := units.ParseDecimal(input)
	return err
}

// ValidateSymbol accepts a non-empty symbol without whitespace.
func ValidateSymbol(input string) error {
	s := strings.TrimSpace(input)
	if s == "" {
		return errors.New("symbol cannot be empty")
	}
	if strings.ContainsAny(s, " \t") {
		return errors.New("symbol cannot contain spaces")
	}
	return nil
}
