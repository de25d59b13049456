//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/thebartekbanach/woundfn/pkg/config"
	"github.com/thebartekbanach/woundfn/pkg/function"
	"github.com/thebartekbanach/woundfn/pkg/provisioner"
	"go.uber.org/zap"
)

func InitializeApplication(ctx context.Context, cfg config.Config, log *zap.Logger) (*application, func(), error) {
	wire.Build(
		provideStorageFactory,
		providePublisherFactory,
		provideProvisionerConfig,
		provisioner.NewGitProvisioner,
		provideLoader,
		provideResolver,
		provideInvocationsRepository,
		function.NewFunctionService,
		wire.Struct(new(application), "*"),
	)
	return nil, nil, nil
}
