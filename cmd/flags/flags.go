// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"os"
	"strings"

	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/spf13/cobra"
)

// Mode returns the network mode positional argument, defaulting to testnet.
func Mode(args []string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return constants.DefaultNetworkMode
	}
	return strings.TrimSpace(args[0])
}

// EnvName is the environment variable that stands in for flag when the flag
// is not passed, e.g. --symbol -> AUTODEPLOY_SYMBOL.
func EnvName(flag string) string {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimLeft(flag, "-"), "-", "_"))
	return constants.EnvPrefix + "_" + name
}

// StringOrEnv returns the value of flag if it was set on the command line,
// and its environment variable otherwise.
func StringOrEnv(cmd *cobra.Command, flag string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return os.Getenv(EnvName(flag))
}

// BoolOrEnv is StringOrEnv for boolean flags.
func BoolOrEnv(cmd *cobra.Command, flag string) bool {
	switch strings.ToLower(StringOrEnv(cmd, flag)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}
