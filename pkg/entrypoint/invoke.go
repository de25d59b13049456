package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime/debug"
)

// Invoke calls the processor exactly once. Panics raised by external code
// are returned as *PanicError.
func Invoke(ctx context.Context, processor Processor, img image.Image, metadata Metadata) (result image.Image, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = &PanicError{Value: recovered, Stack: debug.Stack()}
		}
	}()

	result, err = processor.Process(ctx, img, metadata)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, ErrNilResult
	}

	return result, nil
}

type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("entry point panicked: %v", e.Value)
}

var ErrNilResult = errors.New("entry point returned no image")
