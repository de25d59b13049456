package function

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thebartekbanach/woundfn/pkg/config"
	"github.com/thebartekbanach/woundfn/pkg/entrypoint"
	"github.com/thebartekbanach/woundfn/pkg/input"
	"github.com/thebartekbanach/woundfn/pkg/provisioner"
	"github.com/thebartekbanach/woundfn/pkg/publisher"
	"github.com/thebartekbanach/woundfn/pkg/records"
	"github.com/thebartekbanach/woundfn/pkg/storage"
	"go.uber.org/zap"
)

type StorageFactory func(cfg config.StorageConfig) (storage.FileStorage, error)

type PublisherFactory func(fileStorage storage.FileStorage) publisher.Publisher

type functionService struct {
	config           config.Config
	storageFactory   StorageFactory
	publisherFactory PublisherFactory
	provisioner      provisioner.CodeProvisioner
	loader           entrypoint.Loader
	resolver         *entrypoint.Resolver
	records          records.InvocationsRepository
	logger           *zap.Logger

	generateID func() string
	now        func() time.Time

	storageMu sync.Mutex
	storage   storage.FileStorage
}

var _ FunctionService = (*functionService)(nil)

func NewFunctionService(
	cfg config.Config,
	storageFactory StorageFactory,
	publisherFactory PublisherFactory,
	codeProvisioner provisioner.CodeProvisioner,
	loader entrypoint.Loader,
	resolver *entrypoint.Resolver,
	invocations records.InvocationsRepository,
	logger *zap.Logger,
) FunctionService {
	return &functionService{
		config:           cfg,
		storageFactory:   storageFactory,
		publisherFactory: publisherFactory,
		provisioner:      codeProvisioner,
		loader:           loader,
		resolver:         resolver,
		records:          invocations,
		logger:           logger,
		generateID:       uuid.NewString,
		now:              time.Now,
	}
}

func (s *functionService) Handle(ctx context.Context, body []byte, responseWriter ResponseWriter) {
	invocationID := s.generateID()
	logger := s.logger.With(zap.String("invocation_id", invocationID))
	logger.Info("invocation started", zap.String("body", redactBody(body)))

	record := records.InvocationRecord{InvocationID: invocationID, StartedAt: s.now().UTC()}

	response, status := s.handle(ctx, logger, body, &record)

	record.Success = response.Success
	record.Status = status
	record.Message = response.Message
	record.ProcessedImageID = response.ProcessedImageID
	record.FinishedAt = s.now().UTC()
	if err := s.records.Create(ctx, record); err != nil {
		logger.Warn("cannot store invocation record", zap.Error(err))
	}

	if response.Success {
		logger.Info("invocation finished", zap.String("processed_image_id", response.ProcessedImageID))
	} else {
		logger.Error("invocation failed", zap.Int("status", status), zap.String("message", response.Message))
	}

	responseWriter.JSON(response, status)
}

// handle runs the pipeline. The workspace is removed before it returns,
// whatever the outcome.
func (s *functionService) handle(ctx context.Context, logger *zap.Logger, body []byte, record *records.InvocationRecord) (Response, int) {
	if err := s.config.Validate(); err != nil {
		return s.fail(logger, newConfigurationError(err))
	}

	request, err := input.Normalize(body)
	if err != nil {
		return s.fail(logger, newValidationError(err))
	}

	record.Source = request.Kind().String()
	record.FileID = request.FileID
	record.FileName = request.Metadata.FileName

	fileStorage, err := s.fileStorage()
	if err != nil {
		return s.fail(logger, newConfigurationError(err))
	}

	repositoryURL := s.config.Repository.URL
	workspace := s.provisioner.Workspace(repositoryURL)
	defer s.cleanup(logger, workspace)

	img, format, err := input.Resolve(ctx, request, fileStorage)
	if err != nil {
		return s.fail(logger, newResolveError(err))
	}

	logger.Info("image resolved",
		zap.Stringer("source", request.Kind()),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)

	workspace, err = s.provisioner.Provision(ctx, repositoryURL, workspace)
	if err != nil {
		return s.fail(logger, newProvisionError(err))
	}

	logger.Info("code provisioned", zap.String("dir", workspace.Dir), zap.Bool("fetched", workspace.Created))

	resolution, err := s.resolver.LoadAndResolve(ctx, s.loader, workspace.Dir)
	if err != nil {
		return s.fail(logger, newProcessingError(err))
	}

	record.EntryPoint = resolution.Name
	record.Passthrough = resolution.Passthrough
	logger.Info("entry point resolved", zap.String("name", resolution.Name), zap.Bool("passthrough", resolution.Passthrough))

	result, err := s.invoke(ctx, logger, resolution, img, request)
	if err != nil {
		return s.fail(logger, newProcessingError(err))
	}

	processedImageID, err := s.publisherFactory(fileStorage).Publish(ctx, result)
	if err != nil {
		return s.fail(logger, newProcessingError(err))
	}

	return successResponse(processedImageID)
}

func (s *functionService) invoke(ctx context.Context, logger *zap.Logger, resolution entrypoint.Resolution, img image.Image, request input.Request) (image.Image, error) {
	result, err := entrypoint.Invoke(ctx, resolution.Processor, img, entrypoint.Metadata(request.ProcessingMetadata()))

	var panicErr *entrypoint.PanicError
	if errors.As(err, &panicErr) {
		logger.Error("entry point panicked",
			zap.String("name", resolution.Name),
			zap.Any("value", panicErr.Value),
			zap.ByteString("stack", panicErr.Stack),
		)
	}

	return result, err
}

func (s *functionService) fail(logger *zap.Logger, err *Error) (Response, int) {
	logger.Error("invocation error", zap.String("kind", string(err.Kind)), zap.Error(err.Err))
	return failureResponse(err)
}

func (s *functionService) cleanup(logger *zap.Logger, workspace provisioner.Workspace) {
	if err := s.provisioner.Remove(workspace); err != nil {
		logger.Error("cleanup failed", zap.String("root", workspace.Root), zap.Error(err))
		return
	}

	logger.Debug("workspace removed", zap.String("root", workspace.Root))
}

// fileStorage connects to storage on first use so a misconfigured
// deployment still answers every invocation.
func (s *functionService) fileStorage() (storage.FileStorage, error) {
	s.storageMu.Lock()
	defer s.storageMu.Unlock()

	if s.storage != nil {
		return s.storage, nil
	}

	fileStorage, err := s.storageFactory(s.config.Storage)
	if err != nil {
		return nil, err
	}

	s.storage = fileStorage
	return fileStorage, nil
}
