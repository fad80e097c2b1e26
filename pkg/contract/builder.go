// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"

	"github.com/luxfi/autodeploy/pkg/models"
)

// Builder turns a token spec into a deployable artifact.
type Builder struct {
	compiler *Compiler
}

func NewBuilder(compiler *Compiler) *Builder {
	return &Builder{compiler: compiler}
}

func (*Builder) Render(spec models.TokenSpec) (Source, error) {
	return Render(spec)
}

func (b *Builder) Compile(ctx context.Context, src Source) (*Artifact, error) {
	return b.compiler.Compile(ctx, src)
}
