// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	AppName = "autodeploy"

	WriteReadReadPerms = 0o644

	DefaultNetworkMode = "testnet"

	// files read and written in the working directory
	DefaultChainsDir      = "chains"
	DefaultAddressFile    = "address.txt"
	DefaultFailedFile     = "failed_distributions.csv"
	DefaultSuccessFile    = "successful_distributions.csv"
	DefaultSourceFile     = "contract.sol"
	DefaultConfigFileName = "autodeploy"
	DefaultConfigFileType = "yaml"
	DotEnvFileName        = ".env"

	DefaultSolcPath = "solc"
	MinSolcVersion  = "0.8.0"
	SolidityPragma  = "^0.8.0"

	DefaultDialTimeout    = 15 * time.Second
	DefaultConfirmTimeout = time.Duration(0)
	HeaderDelay           = 3 * time.Second

	DefaultLogLevel = "warn"

	// config keys
	ConfigPrivateKey      = "private-key"
	ConfigChainsDir       = "chains-dir"
	ConfigAddressFile     = "address-file"
	ConfigFailedFile      = "failed-file"
	ConfigSuccessFile     = "success-file"
	ConfigRecordSuccesses = "record-successes"
	ConfigSourceFile      = "source-file"
	ConfigSolcPath        = "solc-path"
	ConfigGasLimit        = "gas-limit"
	ConfigDialTimeout     = "dial-timeout"
	ConfigConfirmTimeout  = "confirm-timeout"
	ConfigSubmitRate      = "submit-rate"
	ConfigLogLevel        = "log-level"
	ConfigLogFile         = "log-file"
	ConfigNonInteractive  = "non-interactive"

	EnvPrefix         = "AUTODEPLOY"
	EnvPrivateKey     = "PRIVATE_KEY"
	EnvNonInteractive = "AUTODEPLOY_NON_INTERACTIVE"
)

// TokenDecimals is fixed for every token this tool deploys.
const TokenDecimals uint8 = 18

// NativeDecimals is the precision of the chain's gas coin.
const NativeDecimals uint8 = 18

// DefaultTransferGasLimit is the ceiling applied to every distribution transfer.
const DefaultTransferGasLimit uint64 = 300000
