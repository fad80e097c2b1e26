// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"math/big"
	"strings"

	"github.com/luxfi/autodeploy/pkg/constants"
)

// TokenSpec holds the operator-supplied parameters of the token to deploy.
// Supply is expressed in whole tokens; the contract scales it by 10^Decimals.
type TokenSpec struct {
	Name     string
	Symbol   string
	Supply   *big.Int
	Decimals uint8
}

func NewTokenSpec(name, symbol string, supply *big.Int) TokenSpec {
	return TokenSpec{
		Name:     strings.TrimSpace(name),
		Symbol:   strings.TrimSpace(symbol),
		Supply:   supply,
		Decimals: constants.TokenDecimals,
	}
}

// ContractName is the Solidity identifier derived from the token name by
// removing all whitespace.
func (t TokenSpec) ContractName() string {
	return strings.Join(strings.Fields(t.Name), "")
}
