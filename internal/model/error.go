package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for the model package.
var (
	ErrNotRegistered = errors.New("model not found in registry")
)

// NotFoundError reports that a model path does not exist or that no
// candidate file matched any supported format.
type NotFoundError struct {
	Path   string
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Detail, e.Path)
}

// UnsupportedFormatError reports a file extension outside the accepted
// set for its context.
type UnsupportedFormatError struct {
	Path     string
	Accepted []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format for %s, files with following suffixes are allowed: %s",
		e.Path, strings.Join(e.Accepted, ", "))
}

// AmbiguousMatchError reports that more than one equally valid candidate
// matched; the caller must disambiguate explicitly.
type AmbiguousMatchError struct {
	Pattern string
	Matches []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("more than one file matched %s (%d candidates), please specify explicitly: %s",
		e.Pattern, len(e.Matches), strings.Join(e.Matches, ", "))
}

// ConfigurationError reports that format-specific companion data could
// not be derived from the configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}
