// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package networks loads the network descriptors available for a run mode.
package networks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/autodeploy/pkg/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Registry is the ordered list of networks loaded for one mode.
type Registry struct {
	Mode     string
	Path     string
	Networks []models.Network
}

// Load reads <dir>/<mode>.json, falling back to .yaml and .yml.
func Load(fs afero.Fs, dir, mode string) (*Registry, error) {
	mode = strings.TrimSpace(mode)
	if mode == "" || strings.ContainsAny(mode, `/\`) {
		return nil, failure.Wrap(failure.ErrNetworkConfig, nil, "invalid network mode %q", mode)
	}
	var lastErr error
	for _, ext := range extensions {
		path := filepath.Join(dir, mode+ext)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				lastErr = err
				continue
			}
			return nil, failure.Wrap(failure.ErrNetworkConfig, err, "error loading network configuration %s", path)
		}
		nets, err := decode(data, ext)
		if err != nil {
			return nil, failure.Wrap(failure.ErrNetworkConfig, err, "error parsing network configuration %s", path)
		}
		if err := validate(nets); err != nil {
			return nil, failure.Wrap(failure.ErrNetworkConfig, err, "invalid network configuration %s", path)
		}
		return &Registry{Mode: mode, Path: path, Networks: nets}, nil
	}
	return nil, failure.Wrap(
		failure.ErrNetworkConfig,
		lastErr,
		"no network configuration for mode %q in %s",
		mode,
		dir,
	)
}

func decode(data []byte, ext string) ([]models.Network, error) {
	var nets []models.Network
	if ext == ".json" {
		if err := json.Unmarshal(data, &nets); err != nil {
			return nil, err
		}
		return nets, nil
	}
	if err := yaml.Unmarshal(data, &nets); err != nil {
		return nil, err
	}
	return nets, nil
}

func validate(nets []models.Network) error {
	if len(nets) == 0 {
		return errors.New("no networks defined")
	}
	for i, n := range nets {
		if strings.TrimSpace(n.Name) == "" {
			return fmt.Errorf("network #%d has no name", i+1)
		}
		u, err := url.Parse(n.RPCURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("network %q has an invalid rpcUrl %q", n.Name, n.RPCURL)
		}
	}
	return nil
}

// Names returns the network names in file order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Networks))
	for _, n := range r.Networks {
		names = append(names, n.Name)
	}
	return names
}

// SelectIndex picks a network by its 1-based position in the list.
func (r *Registry) SelectIndex(index int) (models.Network, error) {
	if index < 1 || index > len(r.Networks) {
		return models.Network{}, failure.Wrap(
			failure.ErrInvalidSelection,
			nil,
			"selection %d is out of range 1-%d",
			index,
			len(r.Networks),
		)
	}
	return r.Networks[index-1], nil
}

// Select resolves user input that is either a 1-based index or a network name
// (case-insensitive).
func (r *Registry) Select(input string) (models.Network, error) {
	input = strings.TrimSpace(input)
	if index, err := strconv.Atoi(input); err == nil {
		return r.SelectIndex(index)
	}
	for _, n := range r.Networks {
		if strings.EqualFold(n.Name, input) {
			return n, nil
		}
	}
	return models.Network{}, failure.Wrap(failure.ErrInvalidSelection, nil, "unknown network %q", input)
}
