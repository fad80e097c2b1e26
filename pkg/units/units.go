// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package units converts token amounts between the human-readable decimal
// form typed by the operator and the smallest on-chain unit.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// MaxDecimals is the largest number of fractional digits an amount may carry.
const MaxDecimals = sdkmath.LegacyPrecision

var (
	ErrEmptyAmount    = errors.New("amount is empty")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrSignedAmount   = errors.New("amount must not carry a sign")
	ErrTooPrecise     = errors.New("amount has more fractional digits than the token supports")
)

var ten = big.NewInt(10)

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}

// ParseDecimal parses a non-negative human amount such as "1.5" or "100".
func ParseDecimal(amount string) (sdkmath.LegacyDec, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return sdkmath.LegacyDec{}, ErrEmptyAmount
	}
	switch s[0] {
	case '-':
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: %q", ErrNegativeAmount, amount)
	case '+':
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: %q", ErrSignedAmount, amount)
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		// zeros past the last significant digit do not change the value
		s = strings.TrimSuffix(s[:i]+"."+strings.TrimRight(s[i+1:], "0"), ".")
		if len(s)-i-1 > MaxDecimals {
			return sdkmath.LegacyDec{}, fmt.Errorf("%w: %q", ErrTooPrecise, amount)
		}
	}
	dec, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return dec, nil
}

// ParseUnits returns amount * 10^decimals as an exact integer.
// "1.5" with 18 decimals is 1500000000000000000.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	if decimals > MaxDecimals {
		return nil, fmt.Errorf("unsupported decimals %d (max %d)", decimals, MaxDecimals)
	}
	dec, err := ParseDecimal(amount)
	if err != nil {
		return nil, err
	}
	// LegacyDec stores the value scaled by 10^18
	scaled := dec.BigInt()
	divisor := pow10(MaxDecimals - decimals)
	quo, rem := new(big.Int).QuoRem(scaled, divisor, new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("%w: %q with %d decimals", ErrTooPrecise, amount, decimals)
	}
	return quo, nil
}

// FormatUnits renders a smallest-unit amount back in human units, without
// trailing zeros.
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	neg := value.Sign() < 0
	abs := new(big.Int).Abs(value)
	intPart, frac := new(big.Int).QuoRem(abs, pow10(decimals), new(big.Int))
	out := intPart.String()
	if decimals > 0 && frac.Sign() != 0 {
		fracStr := frac.String()
		fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
		out += "." + strings.TrimRight(fracStr, "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Sum adds human amounts exactly and returns the total in human units.
func Sum(amounts []string) (string, error) {
	total := sdkmath.LegacyZeroDec()
	for _, a := range amounts {
		dec, err := ParseDecimal(a)
		if err != nil {
			return "", err
		}
		total = total.Add(dec)
	}
	return FormatUnits(total.BigInt(), MaxDecimals), nil
}
