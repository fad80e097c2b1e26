// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package networks

import (
	"path/filepath"
	"testing"

	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testnetJSON = `[
  {"name": "Sepolia", "rpcUrl": "https://rpc.sepolia.org", "explorer": "https://sepolia.etherscan.io"},
  {"name": "Lux Testnet", "rpcUrl": "https://api.lux-test.network/ext/bc/C/rpc", "explorer": "https://explore.lux-test.network"}
]`

const mainnetYAML = `
- name: Lux Mainnet
  rpcUrl: https://api.lux.network/ext/bc/C/rpc
  explorer: https://explore.lux.network
`

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("chains", name), []byte(content), 0o644))
	}
	return fs
}

func TestLoadJSON(t *testing.T) {
	require := require.New(t)
	fs := newFs(t, map[string]string{"testnet.json": testnetJSON})

	reg, err := Load(fs, "chains", "testnet")
	require.NoError(err)
	require.Equal("testnet", reg.Mode)
	require.Equal([]string{"Sepolia", "Lux Testnet"}, reg.Names())
	require.Equal("https://sepolia.etherscan.io", reg.Networks[0].Explorer)
}

func TestLoadYAMLFallback(t *testing.T) {
	require := require.New(t)
	fs := newFs(t, map[string]string{"mainnet.yaml": mainnetYAML})

	reg, err := Load(fs, "chains", "mainnet")
	require.NoError(err)
	require.Len(reg.Networks, 1)
	require.Equal("https://api.lux.network/ext/bc/C/rpc", reg.Networks[0].RPCURL)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing":   {},
		"malformed": {"testnet.json": `{not json`},
		"empty":     {"testnet.json": `[]`},
		"bad rpc":   {"testnet.json": `[{"name":"x","rpcUrl":"not a url","explorer":""}]`},
		"no name":   {"testnet.json": `[{"name":"","rpcUrl":"http://localhost:8545","explorer":""}]`},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(newFs(t, files), "chains", "testnet")
			require.ErrorIs(t, err, failure.ErrNetworkConfig)
			require.Equal(t, failure.Fatal, failure.KindOf(err))
		})
	}

	_, err := Load(afero.NewMemMapFs(), "chains", "../etc")
	require.ErrorIs(t, err, failure.ErrNetworkConfig)
}

func TestSelect(t *testing.T) {
	require := require.New(t)
	reg, err := Load(newFs(t, map[string]string{"testnet.json": testnetJSON}), "chains", "testnet")
	require.NoError(err)

	n, err := reg.SelectIndex(2)
	require.NoError(err)
	require.Equal("Lux Testnet", n.Name)

	n, err = reg.Select("1")
	require.NoError(err)
	require.Equal("Sepolia", n.Name)

	n, err = reg.Select("lux testnet")
	require.NoError(err)
	require.Equal("Lux Testnet", n.Name)

	for _, input := range []string{"0", "3", "-1", "Goerli", ""} {
		_, err = reg.Select(input)
		require.ErrorIs(err, failure.ErrInvalidSelection, input)
	}
}
