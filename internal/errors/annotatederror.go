// Package errors provides error annotation with [slog.Attr] and source location
// on top of the standard library errors package.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// annotatedError carries a message, optional wrapped error, [slog.Attr]
// annotations, and the source location where it was created.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves the file:line of the caller skipping the given number
// of frames on top of callerSource itself.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// NewSentinel creates an error suitable for package-level sentinel values.
func NewSentinel(msg string) error {
	return &annotatedError{
		msg:    msg,
		err:    nil,
		attrs:  nil,
		source: callerSource(1),
	}
}

// Wrap annotates err with a message and optional [slog.Attr]. The annotations
// surface in log output through [SlogError]. A nil err is tolerated so that
// Wrap can be used unconditionally in error paths.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(1),
	}
}

// DecoratePanic converts a recovered panic value into an error pointing at the
// recover site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		err:    nil,
		attrs:  []slog.Attr{slog.String("stack", stack())},
		source: callerSource(1),
	}
}

func stack() string {
	buf := make([]byte, 64*1024) //nolint:mnd // enough for a readable trace
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// SlogError converts an error into a [slog.Attr] carrying the error message,
// the annotations collected from the whole error chain, and the source
// location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		attrs  []slog.Attr
		source string
	)
	for unwrapped := err; unwrapped != nil; unwrapped = Unwrap(unwrapped) {
		var annotated *annotatedError
		if errors.As(unwrapped, &annotated) {
			attrs = append(attrs, annotated.attrs...)
			source = annotated.source
			unwrapped = annotated
			continue
		}
		break
	}

	group := []any{slog.String("message", err.Error())}
	if source != "" {
		group = append(group, slog.String("source", source))
	}
	if len(attrs) > 0 {
		annotations := make([]any, 0, len(attrs))
		for _, attr := range attrs {
			annotations = append(annotations, attr)
		}
		group = append(group, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", group...)
}

// New passes through to the standard library.
func New(text string) error {
	return errors.New(text) //nolint:err113 // passthrough
}

// Is passes through to the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As passes through to the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap passes through to the standard library.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join passes through to the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
