package entrypoint

import (
	"context"
	"image"
)

// Metadata is passed through to the entry point unmodified.
type Metadata map[string]interface{}

type Processor interface {
	Process(ctx context.Context, img image.Image, metadata Metadata) (image.Image, error)
}

type ProcessorFunc func(ctx context.Context, img image.Image, metadata Metadata) (image.Image, error)

func (f ProcessorFunc) Process(ctx context.Context, img image.Image, metadata Metadata) (image.Image, error) {
	return f(ctx, img, metadata)
}

// Symbol is whatever a module exposes under a name. Its shape is unknown
// until adapted.
type Symbol interface{}

// Module is a loaded unit of external code. Names are the canonical entry
// point names (main, process_image, ...); every module maps them to its
// own naming convention.
type Module interface {
	Lookup(name string) (Symbol, bool)
}

type Loader interface {
	Load(ctx context.Context, dir string) (Module, error)
}

const MainEntryPoint = "main"

var FallbackEntryPoints = []string{"process_image", "analyze", "process", "run"}
