// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package distribution

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/units"
	"github.com/luxfi/geth/common"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Mode selects how amounts are assigned to addresses.
type Mode int

const (
	SameAmount Mode = iota + 1
	CustomAmount
	Skip
)

var modeNames = map[Mode]string{
	SameAmount:   "Same amount for all addresses",
	CustomAmount: "Custom amount for each address",
	Skip:         "Skip distribution",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Modes lists the options in the order they are offered to the operator.
func Modes() []Mode {
	return []Mode{SameAmount, CustomAmount, Skip}
}

// ParseMode accepts the option number ("1", "2", "3") or the short names
// "same", "custom" and "skip".
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "same":
		return SameAmount, nil
	case "2", "custom":
		return CustomAmount, nil
	case "3", "skip":
		return Skip, nil
	}
	return 0, failure.Wrap(failure.ErrDistributionOption, nil, "invalid distribution option %q", input)
}

// LoadAddresses reads one address per line from path. Lines are trimmed and
// anything that is not a hex address is dropped. A missing file yields an
// empty list.
func LoadAddresses(fs afero.Fs, path string, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("address file not found", zap.String("path", path))
			return []string{}, nil
		}
		return nil, failure.Wrap(failure.ErrInvalidInput, err, "failed to read %s", path)
	}
	addresses := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		candidate := strings.TrimSpace(scanner.Text())
		if candidate == "" {
			continue
		}
		if !common.IsHexAddress(candidate) {
			log.Debug("skipping invalid address", zap.String("path", path), zap.Int("line", line))
			continue
		}
		addresses = append(addresses, candidate)
	}
	if err := scanner.Err(); err != nil {
		return nil, failure.Wrap(failure.ErrInvalidInput, err, "failed to read %s", path)
	}
	return addresses, nil
}

// PlanSame gives every address the same amount.
func PlanSame(addresses []string, amount string) []Entry {
	entries := make([]Entry, 0, len(addresses))
	for _, a := range addresses {
		entries = append(entries, Entry{Address: a, Amount: strings.TrimSpace(amount)})
	}
	return entries
}

// PlanCustom pairs addresses with amounts positionally.
func PlanCustom(addresses, amounts []string) ([]Entry, error) {
	if len(addresses) != len(amounts) {
		return nil, failure.Wrap(
			failure.ErrInvalidInput,
			nil,
			"got %d amounts for %d addresses",
			len(amounts),
			len(addresses),
		)
	}
	entries := make([]Entry, 0, len(addresses))
	for i, a := range addresses {
		entries = append(entries, Entry{Address: a, Amount: strings.TrimSpace(amounts[i])})
	}
	return entries, nil
}

// Total is the exact sum of the entry amounts in human units.
func Total(entries []Entry) (string, error) {
	amounts := make([]string, 0, len(entries))
	for _, e := range entries {
		amounts = append(amounts, e.Amount)
	}
	return units.Sum(amounts)
}
