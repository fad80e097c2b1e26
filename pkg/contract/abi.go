// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"strings"

	"github.com/luxfi/geth/accounts/abi"
)

// erc20TransferABI covers the calls made against tokens this tool did not
// just compile.
const erc20TransferABI = `[
  {"type":"function","name":"transfer","stateMutability":"nonpayable",
   "inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"_owner","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]}
]`

// ERC20ABI returns the ABI used to distribute an already deployed token.
func ERC20ABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(erc20TransferABI))
}
