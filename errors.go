package smolcube

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// SmolCubeError is the error type returned by the container and text codecs.
// Every error can be matched with [errors.Is] against one of the root errors
// below, regardless of how many messages or causes were attached to it.
type SmolCubeError interface {
	error
	WithMessage(message string) SmolCubeError
	Wrap(err error) SmolCubeError
}

type baseSmolCubeError string

const rootError = baseSmolCubeError("")

// ErrFileAccess indicates a path could not be opened for reading or writing.
var ErrFileAccess = rootError.WithMessage("File access error")

// ErrInvalidArgument indicates a missing required parameter or API misuse.
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

// ErrInvalidHeaderData indicates a bad magic number or malformed top-level
// header fields.
var ErrInvalidHeaderData = rootError.WithMessage("Invalid header data")

// ErrInvalidContentData indicates a chunk that overruns the file, a LUT header
// field out of range, or a data length that doesn't match the declared shape.
var ErrInvalidContentData = rootError.WithMessage("Invalid content data")

func (e baseSmolCubeError) Error() string {
	return string(e)
}

func (e baseSmolCubeError) RootCause() SmolCubeError {
	return e
}

func (e baseSmolCubeError) WithMessage(message string) SmolCubeError {
	return customSmolCubeError{
		message:       message,
		originalError: e,
	}
}

func (e baseSmolCubeError) Wrap(err error) SmolCubeError {
	return customSmolCubeError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customSmolCubeError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customSmolCubeError) Error() string {
	return e.message
}

func (e customSmolCubeError) WithMessage(message string) SmolCubeError {
	return customSmolCubeError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customSmolCubeError) Wrap(err error) SmolCubeError {
	return customSmolCubeError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customSmolCubeError) Unwrap() error {
	return e.originalError
}
