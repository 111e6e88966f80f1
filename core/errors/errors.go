// Package errors provides standardized error types and helpers for the proflow codebase.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	// ErrTruncated indicates container bytes ended before a declared field.
	ErrTruncated = errors.New("truncated document")
	// ErrUnknownVersion indicates an unrecognized container format version.
	ErrUnknownVersion = errors.New("unknown format version")
	// ErrTypeTagMismatch indicates an action's declared variant does not match its payload.
	ErrTypeTagMismatch = errors.New("type tag mismatch")
	// ErrTemplateNotFound indicates a template skeleton file is missing.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrContentOverflow indicates injected content was dropped, a programming defect.
	ErrContentOverflow = errors.New("content overflow")
	// ErrInvalidInput indicates invalid input or validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// ParseError represents a failure to decode container or rich-text bytes.
type ParseError struct {
	Format  string // Format being parsed (e.g., "presentation", "playlist", "rtf")
	Path    string // File path, if applicable
	Offset  int    // Byte offset of the failure, -1 if unknown
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to parse %s", e.Format)
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// TypeTagMismatchError reports an action whose declared variant tag disagrees
// with the embedded payload. Fatal on decode: the consuming application
// renders such documents silently wrong rather than erroring.
type TypeTagMismatchError struct {
	Path     string // Structural path of the offending action
	Declared string // Declared variant tag
	Actual   string // Actual payload variant
}

func (e *TypeTagMismatchError) Error() string {
	return fmt.Sprintf("action %s declares variant %s but carries %s payload", e.Path, e.Declared, e.Actual)
}

func (e *TypeTagMismatchError) Unwrap() error { return ErrTypeTagMismatch }

// TemplateNotFoundError reports a missing template skeleton with the expected
// filename and every path that was searched, so the message is user-actionable.
type TemplateNotFoundError struct {
	Category    string   // Template category (scripture, song, info)
	Filename    string   // Expected filename
	SearchPaths []string // Directories searched, in order
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no %s template found: provide %s in one of: %s",
		e.Category, e.Filename, strings.Join(e.SearchPaths, ", "))
}

func (e *TemplateNotFoundError) Unwrap() error { return ErrTemplateNotFound }

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "rename")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// GenerateError wraps a failure on the generation path with the template
// category and file involved, per the user-visible failure policy.
type GenerateError struct {
	Category string // Template category of the request
	Name     string // Name of the document being generated
	Step     string // Pipeline step that failed (template, inject, clone, encode, write)
	Err      error  // Underlying error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generating %q (%s template): %s failed: %v", e.Name, e.Category, e.Step, e.Err)
}

func (e *GenerateError) Unwrap() error { return e.Err }

// Helper functions for creating common errors

// NewParse creates a ParseError with no byte offset.
func NewParse(format, path, message string) *ParseError {
	return &ParseError{Format: format, Path: path, Offset: -1, Message: message}
}

// NewParseAt creates a ParseError at a byte offset.
func NewParseAt(format string, offset int, message string) *ParseError {
	return &ParseError{Format: format, Offset: offset, Message: message}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
