// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/luxfi/autodeploy/pkg/chain"
	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// Config is the resolved configuration of one run. Components receive the
// values they need from it and never read viper themselves.
type Config struct {
	PrivateKey      string
	ChainsDir       string
	AddressFile     string
	FailedFile      string
	SuccessFile     string
	RecordSuccesses bool
	SourceFile      string
	SolcPath        string
	GasLimit        uint64
	DialTimeout     time.Duration
	ConfirmTimeout  time.Duration
	// SubmitRate caps transfer submissions per second. Zero means unlimited.
	SubmitRate     float64
	LogLevel       string
	LogFile        string
	NonInteractive bool
	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(constants.ConfigChainsDir, constants.DefaultChainsDir)
	v.SetDefault(constants.ConfigAddressFile, constants.DefaultAddressFile)
	v.SetDefault(constants.ConfigFailedFile, constants.DefaultFailedFile)
	v.SetDefault(constants.ConfigSuccessFile, constants.DefaultSuccessFile)
	v.SetDefault(constants.ConfigRecordSuccesses, false)
	v.SetDefault(constants.ConfigSourceFile, constants.DefaultSourceFile)
	v.SetDefault(constants.ConfigSolcPath, constants.DefaultSolcPath)
	v.SetDefault(constants.ConfigGasLimit, constants.DefaultTransferGasLimit)
	v.SetDefault(constants.ConfigDialTimeout, constants.DefaultDialTimeout)
	v.SetDefault(constants.ConfigConfirmTimeout, constants.DefaultConfirmTimeout)
	v.SetDefault(constants.ConfigSubmitRate, 0)
	v.SetDefault(constants.ConfigLogLevel, constants.DefaultLogLevel)
	v.SetDefault(constants.ConfigNonInteractive, false)
}

// BindEnv maps AUTODEPLOY_<KEY> onto every key, and PRIVATE_KEY onto the
// signing key.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindEnv(
		constants.ConfigPrivateKey,
		constants.EnvPrefix+"_PRIVATE_KEY",
		constants.EnvPrivateKey,
	)
}

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set win, so the file sits between
// the real environment and the config file.
func LoadDotEnv(fs afero.Fs, path string) error {
	if _, err := fs.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	dotenv := viper.New()
	dotenv.SetFs(fs)
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed reading %s: %w", path, err)
	}
	for _, key := range dotenv.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, dotenv.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}

// ReadConfigFile reads path, or autodeploy.yaml from the working directory
// when path is empty. Only an explicitly named file is required to exist.
func ReadConfigFile(fs afero.Fs, v *viper.Viper, path string) error {
	v.SetFs(fs)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed reading config file %s: %w", path, err)
		}
		return nil
	}
	name := constants.DefaultConfigFileName + "." + constants.DefaultConfigFileType
	if _, err := fs.Stat(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	v.SetConfigFile(name)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed reading config file %s: %w", name, err)
	}
	return nil
}

// Load materializes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		PrivateKey:      v.GetString(constants.ConfigPrivateKey),
		ChainsDir:       v.GetString(constants.ConfigChainsDir),
		AddressFile:     v.GetString(constants.ConfigAddressFile),
		FailedFile:      v.GetString(constants.ConfigFailedFile),
		SuccessFile:     v.GetString(constants.ConfigSuccessFile),
		RecordSuccesses: v.GetBool(constants.ConfigRecordSuccesses),
		SourceFile:      v.GetString(constants.ConfigSourceFile),
		SolcPath:        v.GetString(constants.ConfigSolcPath),
		GasLimit:        v.GetUint64(constants.ConfigGasLimit),
		DialTimeout:     v.GetDuration(constants.ConfigDialTimeout),
		ConfirmTimeout:  v.GetDuration(constants.ConfigConfirmTimeout),
		SubmitRate:      v.GetFloat64(constants.ConfigSubmitRate),
		LogLevel:        v.GetString(constants.ConfigLogLevel),
		LogFile:         v.GetString(constants.ConfigLogFile),
		NonInteractive:  v.GetBool(constants.ConfigNonInteractive),
		ConfigFile:      v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.GasLimit == 0:
		return failure.Wrap(failure.ErrInvalidInput, nil, "%s must be positive", constants.ConfigGasLimit)
	case c.SubmitRate < 0:
		return failure.Wrap(failure.ErrInvalidInput, nil, "%s must not be negative", constants.ConfigSubmitRate)
	case c.DialTimeout < 0, c.ConfirmTimeout < 0:
		return failure.Wrap(failure.ErrInvalidInput, nil, "timeouts must not be negative")
	case c.ChainsDir == "", c.SourceFile == "", c.FailedFile == "":
		return failure.Wrap(failure.ErrInvalidInput, nil, "file paths must not be empty")
	case c.RecordSuccesses && c.SuccessFile == "":
		return failure.Wrap(failure.ErrInvalidInput, nil, "%s must not be empty when %s is set",
			constants.ConfigSuccessFile, constants.ConfigRecordSuccesses)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return failure.Wrap(failure.ErrInvalidInput, err, "invalid %s", constants.ConfigLogLevel)
	}
	return nil
}

// Limiter returns the submission limiter, or nil when submissions are not
// paced.
func (c *Config) Limiter() *rate.Limiter {
	if c.SubmitRate <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.SubmitRate), 1)
}

// ChainConfig is the client configuration for rpcURL.
func (c *Config) ChainConfig(rpcURL string) chain.Config {
	return chain.Config{
		RPCURL:         rpcURL,
		PrivateKey:     c.PrivateKey,
		DialTimeout:    c.DialTimeout,
		ConfirmTimeout: c.ConfirmTimeout,
	}
}
