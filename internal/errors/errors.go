// Package errors provides standardized error handling for lookat.
// It defines the error kinds a browsing session can report, typed errors for
// file, configuration and navigation failures, and helpers to classify them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Navigation error kinds
	UserCancelled
	OutOfRange
	InvalidComparator
	InvalidPredicate
	NotFound
	EmptyList
	NoCurrentFile
	// Input error kinds
	InvalidInputData
)

var kindNames = map[ErrorKind]string{
	Unknown:           "unknown",
	FileNotFound:      "file_not_found",
	FileAccessDenied:  "file_access_denied",
	InvalidPath:       "invalid_path",
	InvalidConfig:     "invalid_config",
	ConfigNotFound:    "config_not_found",
	UserCancelled:     "user_cancelled",
	OutOfRange:        "out_of_range",
	InvalidComparator: "invalid_comparator",
	InvalidPredicate:  "invalid_predicate",
	NotFound:          "not_found",
	EmptyList:         "empty_list",
	NoCurrentFile:     "no_current_file",
	InvalidInputData:  "invalid_input",
}

// String returns a stable snake_case name for the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Common error constants for frequently occurring errors
var (
	ErrUserCancelled = NewNavigationError("cancelled", "", UserCancelled, nil)
	ErrEmptyList     = NewNavigationError("no files loaded", "", EmptyList, nil)
	ErrNoCurrentFile = NewNavigationError("no current file", "", NoCurrentFile, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// NavigationError represents a rejected cursor or session operation.
// A navigation error never leaves the cursor partially modified.
type NavigationError struct {
	ApplicationError
	operation string
}

// NewNavigationError creates a new navigation error
func NewNavigationError(msg string, operation string, kind ErrorKind, err error) *NavigationError {
	return &NavigationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		operation: operation,
	}
}

// Error returns the navigation error message
func (e *NavigationError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.operation, e.msg, e.err)
		}
		return fmt.Sprintf("%s: %s", e.operation, e.msg)
	}
	return e.ApplicationError.Error()
}

// Operation returns the operation that failed
func (e *NavigationError) Operation() string {
	return e.operation
}

// Is matches navigation errors by kind so the exported sentinels work with
// errors.Is regardless of the operation that produced them.
func (e *NavigationError) Is(target error) bool {
	var other *NavigationError
	if errors.As(target, &other) {
		return other.kind == e.kind
	}
	return false
}

// OutOfRangef creates an OutOfRange navigation error
func OutOfRangef(operation string, format string, args ...interface{}) *NavigationError {
	return NewNavigationError(fmt.Sprintf(format, args...), operation, OutOfRange, nil)
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain,
// or Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// hasKind reports whether any classified error in err's chain has kind.
func hasKind(err error, kind ErrorKind) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return hasKind(err, FileNotFound)
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	return hasKind(err, FileAccessDenied)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsUserCancelled checks if a prompt was dismissed
func IsUserCancelled(err error) bool {
	return hasKind(err, UserCancelled)
}

// IsOutOfRange checks if an index was outside the valid bound
func IsOutOfRange(err error) bool {
	return hasKind(err, OutOfRange)
}

// IsNotFound checks if a path or search target was missing
func IsNotFound(err error) bool {
	return hasKind(err, NotFound)
}

// IsInvalidComparator checks if a sort comparator was rejected
func IsInvalidComparator(err error) bool {
	return hasKind(err, InvalidComparator)
}

// IsInvalidPredicate checks if a filter predicate was rejected
func IsInvalidPredicate(err error) bool {
	return hasKind(err, InvalidPredicate)
}

// IsEmptyList checks if an operation needed a loaded working set
func IsEmptyList(err error) bool {
	return hasKind(err, EmptyList)
}

// IsNoCurrentFile checks if an operation needed a current file
func IsNoCurrentFile(err error) bool {
	return hasKind(err, NoCurrentFile)
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}
