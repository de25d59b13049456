package entrypoint

import (
	"context"
	"image"
	"reflect"
)

// adapt wraps a symbol of one of the supported shapes into a Processor.
// acceptsMetadata reports whether the underlying callable receives the
// metadata; single argument shapes get the image only.
func adapt(symbol Symbol) (processor Processor, acceptsMetadata bool, ok bool) {
	switch fn := symbol.(type) {
	case nil:
		return nil, false, false
	case Processor:
		return fn, true, true
	case func(context.Context, image.Image, Metadata) (image.Image, error):
		return ProcessorFunc(fn), true, true
	case func(image.Image, Metadata) (image.Image, error):
		return ProcessorFunc(func(_ context.Context, img image.Image, metadata Metadata) (image.Image, error) {
			return fn(img, metadata)
		}), true, true
	case func(image.Image, map[string]interface{}) (image.Image, error):
		return ProcessorFunc(func(_ context.Context, img image.Image, metadata Metadata) (image.Image, error) {
			return fn(img, metadata)
		}), true, true
	case func(image.Image, Metadata) image.Image:
		return ProcessorFunc(func(_ context.Context, img image.Image, metadata Metadata) (image.Image, error) {
			return fn(img, metadata), nil
		}), true, true
	case func(image.Image, map[string]interface{}) image.Image:
		return ProcessorFunc(func(_ context.Context, img image.Image, metadata Metadata) (image.Image, error) {
			return fn(img, metadata), nil
		}), true, true
	case func(image.Image) (image.Image, error):
		return ProcessorFunc(func(_ context.Context, img image.Image, _ Metadata) (image.Image, error) {
			return fn(img)
		}), false, true
	case func(image.Image) image.Image:
		return ProcessorFunc(func(_ context.Context, img image.Image, _ Metadata) (image.Image, error) {
			return fn(img), nil
		}), false, true
	}

	// plugin.Lookup returns pointers for exported variables.
	value := reflect.ValueOf(symbol)
	if value.Kind() == reflect.Ptr && !value.IsNil() && value.Elem().Kind() == reflect.Func {
		if value.Elem().IsNil() {
			return nil, false, false
		}
		return adapt(value.Elem().Interface())
	}

	return nil, false, false
}
