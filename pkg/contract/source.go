// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract renders and compiles the ERC20 token contract deployed by
// autodeploy.
package contract

import (
	"bytes"
	"errors"
	"strings"
	"text/template"

	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/models"
)

// Source is the rendered Solidity source for one token.
type Source struct {
	// Identifier is the name of the deployable child contract.
	Identifier string
	// FileName is the source unit name passed to the compiler.
	FileName string
	Code     string
}

var solidityString = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", " ",
	"\r", " ",
)

var tokenTemplate = template.Must(template.New("token").Funcs(template.FuncMap{
	"str": solidityString.Replace,
}).Parse(`// SPDX-License-Identifier: UNLICENSED
pragma solidity {{.Pragma}};

contract ERC20 {
  mapping(address => uint256) public balances;
  mapping(address => mapping(address => uint256)) public allowed;

  uint256 public totalSupply;
  string public name;
  string public symbol;
  uint8 public decimals;

  event Transfer(address indexed from, address indexed to, uint256 value);
  event Approval(address indexed owner, address indexed spender, uint256 value);

  constructor(string memory _name, string memory _symbol, uint256 _supply, uint8 _decimals) {
    name = _name;
    symbol = _symbol;
    decimals = _decimals;
    totalSupply = _supply * 10 ** uint256(_decimals);
    balances[msg.sender] = totalSupply;
    emit Transfer(address(0), msg.sender, totalSupply);
  }

  function transfer(address _to, uint256 _value) public returns (bool) {
    require(balances[msg.sender] >= _value, "insufficient balance");
    balances[msg.sender] -= _value;
    balances[_to] += _value;
    emit Transfer(msg.sender, _to, _value);
    return true;
  }

  function approve(address _spender, uint256 _value) public returns (bool) {
    allowed[msg.sender][_spender] = _value;
    emit Approval(msg.sender, _spender, _value);
    return true;
  }

  function transferFrom(address _from, address _to, uint256 _value) public returns (bool) {
    require(balances[_from] >= _value, "insufficient balance");
    require(allowed[_from][msg.sender] >= _value, "insufficient allowance");
    balances[_from] -= _value;
    balances[_to] += _value;
    allowed[_from][msg.sender] -= _value;
    emit Transfer(_from, _to, _value);
    return true;
  }

  function balanceOf(address _owner) public view returns (uint256) {
    return balances[_owner];
  }

  function allowance(address _owner, address _spender) public view returns (uint256) {
    return allowed[_owner][_spender];
  }
}

contract {{.Identifier}} is ERC20 {
  constructor() ERC20("{{str .Name}}", "{{str .Symbol}}", {{.Supply}}, {{.Decimals}}) {}
}
`))

// Render produces the Solidity source for spec. The output depends only on
// spec, so rendering the same token twice yields identical code.
func Render(spec models.TokenSpec) (Source, error) {
	identifier := spec.ContractName()
	if identifier == "" {
		return Source{}, failure.Wrap(failure.ErrInvalidInput, nil, "token name must not be empty")
	}
	if spec.Supply == nil || spec.Supply.Sign() < 0 {
		return Source{}, failure.Wrap(failure.ErrInvalidInput, nil, "token supply must be a non-negative integer")
	}
	var buf bytes.Buffer
	err := tokenTemplate.Execute(&buf, struct {
		Pragma     string
		Identifier string
		Name       string
		Symbol     string
		Supply     string
		Decimals   uint8
	}{
		Pragma:     constants.SolidityPragma,
		Identifier: identifier,
		Name:       spec.Name,
		Symbol:     spec.Symbol,
		Supply:     spec.Supply.String(),
		Decimals:   spec.Decimals,
	})
	if err != nil {
		return Source{}, errors.Join(failure.ErrCompilation, err)
	}
	return Source{
		Identifier: identifier,
		FileName:   constants.DefaultSourceFile,
		Code:       buf.String(),
	}, nil
}
