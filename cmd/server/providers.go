package main

import (
	"context"
	"fmt"
	"time"

	"github.com/thebartekbanach/woundfn/pkg/config"
	"github.com/thebartekbanach/woundfn/pkg/entrypoint"
	"github.com/thebartekbanach/woundfn/pkg/function"
	"github.com/thebartekbanach/woundfn/pkg/provisioner"
	"github.com/thebartekbanach/woundfn/pkg/publisher"
	"github.com/thebartekbanach/woundfn/pkg/records"
	"github.com/thebartekbanach/woundfn/pkg/storage"
	storageconnections "github.com/thebartekbanach/woundfn/pkg/storage/connections"
	"go.uber.org/zap"
)

type application struct {
	functionService function.FunctionService
	invocations     records.InvocationsRepository
}

func provideStorageFactory() function.StorageFactory {
	return storage.NewFileStorageFromConfig
}

func providePublisherFactory() function.PublisherFactory {
	return publisher.NewPNGPublisher
}

func provideProvisionerConfig(cfg config.Config) provisioner.Config {
	return provisioner.Config{
		WorkDir:             cfg.Repository.WorkDir,
		Isolate:             cfg.Repository.Isolate,
		AllowedRepositories: cfg.Repository.Allowed,
	}
}

func provideLoader(cfg config.Config) (entrypoint.Loader, error) {
	return entrypoint.NewLoader(cfg.EntryPoint.Loader, cfg.EntryPoint.Package)
}

func provideResolver(cfg config.Config, log *zap.Logger) *entrypoint.Resolver {
	return entrypoint.NewResolver(cfg.EntryPoint.Strict, log)
}

// provideInvocationsRepository connects to the records database when one is
// configured and falls back to not recording invocations otherwise.
func provideInvocationsRepository(ctx context.Context, cfg config.Config, log *zap.Logger) (records.InvocationsRepository, func(), error) {
	if cfg.Records.MongoURI == "" {
		log.Info("invocation records disabled")
		return records.NewNopInvocationsRepository(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	conn, err := storageconnections.NewRecordsDBProductionConnection(connectCtx, storageconnections.RecordsDBConfig{
		ConnectionString: cfg.Records.MongoURI,
		Database:         cfg.Records.Database,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to records database: %w", err)
	}

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := conn.Close(closeCtx); err != nil {
			log.Warn("cannot close records database connection", zap.Error(err))
		}
	}

	return records.NewInvocationsRepository(conn), cleanup, nil
}
