// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/luxfi/autodeploy/pkg/constants"
	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// Artifact is the compiler output needed to deploy and call a contract.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	ABIJSON  string
	Bytecode []byte
}

// CompilationError reports that the compiler did not produce a deployable
// artifact for the requested contract.
type CompilationError struct {
	Contract string
	Messages []string
}

func (e *CompilationError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("failed to compile contract: %s not found in output", e.Contract)
	}
	return fmt.Sprintf("failed to compile contract %s: %s", e.Contract, strings.Join(e.Messages, "; "))
}

func (*CompilationError) Unwrap() error {
	return failure.ErrCompilation
}

// Runner executes the compiler binary with args, feeding stdin, and returns
// its standard output.
type Runner func(ctx context.Context, path string, stdin []byte, args ...string) ([]byte, error)

// ExecRunner runs the compiler as a subprocess.
func ExecRunner(ctx context.Context, path string, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", path, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Compiler drives solc through its standard-json interface.
type Compiler struct {
	path string
	run  Runner
	log  *zap.Logger
}

type CompilerOption func(*Compiler)

// WithRunner replaces the subprocess runner, mainly for tests.
func WithRunner(run Runner) CompilerOption {
	return func(c *Compiler) {
		c.run = run
	}
}

func NewCompiler(solcPath string, log *zap.Logger, opts ...CompilerOption) *Compiler {
	if solcPath == "" {
		solcPath = constants.DefaultSolcPath
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Compiler{path: solcPath, run: ExecRunner, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StandardJSONInput builds the compiler input for src.
func StandardJSONInput(src Source) ([]byte, error) {
	input := `{"language":"Solidity"}`
	input, err := sjson.Set(input, "sources."+gjson.Escape(src.FileName)+".content", src.Code)
	if err != nil {
		return nil, err
	}
	input, err = sjson.SetRaw(input, "settings.outputSelection", `{"*":{"*":["abi","evm.bytecode.object"]}}`)
	if err != nil {
		return nil, err
	}
	input, err = sjson.SetRaw(input, "settings.optimizer", `{"enabled":true,"runs":200}`)
	if err != nil {
		return nil, err
	}
	return []byte(input), nil
}

// Compile compiles src and extracts the artifact of src.Identifier.
func (c *Compiler) Compile(ctx context.Context, src Source) (*Artifact, error) {
	input, err := StandardJSONInput(src)
	if err != nil {
		return nil, failure.Wrap(failure.ErrCompilation, err, "cannot build compiler input")
	}
	c.log.Debug("invoking solc", zap.String("path", c.path), zap.String("contract", src.Identifier))
	out, err := c.run(ctx, c.path, input, "--standard-json")
	if err != nil {
		return nil, failure.Wrap(failure.ErrCompilation, err, "cannot run solidity compiler")
	}
	return ParseOutput(out, src)
}

// ParseOutput extracts the artifact of src.Identifier from standard-json
// compiler output.
func ParseOutput(out []byte, src Source) (*Artifact, error) {
	if !gjson.ValidBytes(out) {
		return nil, &CompilationError{Contract: src.Identifier, Messages: []string{"compiler returned malformed output"}}
	}
	var messages []string
	gjson.GetBytes(out, "errors").ForEach(func(_, e gjson.Result) bool {
		if e.Get("severity").String() != "error" {
			return true
		}
		msg := strings.TrimSpace(e.Get("formattedMessage").String())
		if msg == "" {
			msg = e.Get("message").String()
		}
		messages = append(messages, msg)
		return true
	})
	if len(messages) > 0 {
		return nil, &CompilationError{Contract: src.Identifier, Messages: messages}
	}

	contract := gjson.GetBytes(out, "contracts."+gjson.Escape(src.FileName)+"."+gjson.Escape(src.Identifier))
	if !contract.Exists() {
		return nil, &CompilationError{Contract: src.Identifier}
	}
	bytecode := common.FromHex(contract.Get("evm.bytecode.object").String())
	if len(bytecode) == 0 {
		return nil, &CompilationError{Contract: src.Identifier, Messages: []string{"empty bytecode"}}
	}
	abiJSON := contract.Get("abi").Raw
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, &CompilationError{Contract: src.Identifier, Messages: []string{"invalid abi: " + err.Error()}}
	}
	return &Artifact{
		Name:     src.Identifier,
		ABI:      parsed,
		ABIJSON:  abiJSON,
		Bytecode: bytecode,
	}, nil
}

var solcVersion = regexp.MustCompile(`Version:\s*v?(\d+\.\d+\.\d+)`)

// CheckVersion verifies that the configured compiler is at least
// MinSolcVersion and returns the version found.
func (c *Compiler) CheckVersion(ctx context.Context) (string, error) {
	out, err := c.run(ctx, c.path, nil, "--version")
	if err != nil {
		return "", failure.Wrap(failure.ErrCompilation, err, "solidity compiler %q is not available", c.path)
	}
	m := solcVersion.FindSubmatch(out)
	if m == nil {
		return "", failure.Wrap(failure.ErrCompilation, nil, "cannot determine version of %q", c.path)
	}
	version := string(m[1])
	if semver.Compare("v"+version, "v"+constants.MinSolcVersion) < 0 {
		return version, failure.Wrap(
			failure.ErrCompilation,
			nil,
			"solc %s found, minimum required is %s",
			version,
			constants.MinSolcVersion,
		)
	}
	return version, nil
}
