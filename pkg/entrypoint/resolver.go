package entrypoint

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type Resolution struct {
	Name            string
	Processor       Processor
	AcceptsMetadata bool
	Passthrough     bool
}

type Resolver struct {
	strict bool
	logger *zap.Logger
}

func NewResolver(strict bool, logger *zap.Logger) *Resolver {
	return &Resolver{strict, logger}
}

// LoadAndResolve loads the module in dir and resolves its entry point.
// Outside strict mode a module that is unavailable (ErrModuleUnavailable)
// degrades to the passthrough processor; any other load failure is a
// LoadError.
func (r *Resolver) LoadAndResolve(ctx context.Context, loader Loader, dir string) (Resolution, error) {
	module, err := loader.Load(ctx, dir)
	if err != nil {
		if r.strict || !errors.Is(err, ErrModuleUnavailable) {
			return Resolution{}, &LoadError{Dir: dir, Err: err}
		}

		r.logger.Warn("cannot load external module", zap.String("dir", dir), zap.Error(err))
		module = nil
	}

	return r.Resolve(module)
}

// Resolve picks main first, then the first usable fallback name, then the
// passthrough processor. Symbols of unsupported shape are skipped.
func (r *Resolver) Resolve(module Module) (Resolution, error) {
	if module != nil {
		names := append([]string{MainEntryPoint}, FallbackEntryPoints...)
		for _, name := range names {
			symbol, found := module.Lookup(name)
			if !found {
				continue
			}

			processor, acceptsMetadata, ok := adapt(symbol)
			if !ok {
				r.logger.Warn("entry point has unsupported signature", zap.String("name", name))
				continue
			}

			r.logger.Debug("resolved entry point", zap.String("name", name), zap.Bool("acceptsMetadata", acceptsMetadata))
			return Resolution{
				Name:            name,
				Processor:       processor,
				AcceptsMetadata: acceptsMetadata,
			}, nil
		}
	}

	if r.strict {
		return Resolution{}, ErrNoEntryPoint
	}

	return Resolution{
		Name:        "passthrough",
		Processor:   NewPassthrough(r.logger),
		Passthrough: true,
	}, nil
}

type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	return "cannot load module from " + e.Dir + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// unavailableError marks a load failure caused by the checkout itself, e.g.
// code that does not build.
type unavailableError struct {
	err error
}

func (e *unavailableError) Error() string {
	return e.err.Error()
}

func (e *unavailableError) Unwrap() error {
	return e.err
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrModuleUnavailable
}

var (
	ErrNoEntryPoint      = errors.New("no usable entry point found")
	ErrModuleUnavailable = errors.New("module unavailable")
)
