// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"fmt"
	"strings"
)

// Network describes one EVM-compatible network an operator can deploy to.
type Network struct {
	Name     string `json:"name" yaml:"name"`
	RPCURL   string `json:"rpcUrl" yaml:"rpcUrl"`
	Explorer string `json:"explorer" yaml:"explorer"`
}

func (n Network) String() string {
	return n.Name
}

// TxURL returns the explorer link for a transaction hash.
func (n Network) TxURL(txHash string) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimSuffix(n.Explorer, "/"), txHash)
}

// AddressURL returns the explorer link for an account or contract.
func (n Network) AddressURL(address string) string {
	return fmt.Sprintf("%s/address/%s", strings.TrimSuffix(n.Explorer, "/"), address)
}
