// Package errors defines the typed error kinds surfaced across the DSP and
// matching pipeline, and maps each to an HTTP response at the handler edge.
package errors

import "fmt"

// APIError is a typed error carrying the HTTP status it maps to, plain-text
// per the spec's §7 propagation policy (no JSON envelope for 400/500 bodies).
type APIError struct {
	Code    ErrorCode
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, message string) *APIError {
	return &APIError{Code: code, Message: message, Status: code.StatusCode()}
}

// NewEmptyAudio builds an EmptyAudio error.
func NewEmptyAudio(message string) *APIError {
	return newError(EmptyAudio, message)
}

// NewDecodeFailure builds a DecodeFailure error.
func NewDecodeFailure(message string) *APIError {
	return newError(DecodeFailure, message)
}

// NewNotReady builds a NotReady error.
func NewNotReady(message string) *APIError {
	return newError(NotReady, message)
}

// NewSnapshotCorrupt builds a SnapshotCorrupt error.
func NewSnapshotCorrupt(message string) *APIError {
	return newError(SnapshotCorrupt, message)
}

// NewInternalDSPError builds an InternalDSPError.
func NewInternalDSPError(message string) *APIError {
	return newError(InternalDSPError, message)
}

// NewTempFileIO builds a TempFileIO error.
func NewTempFileIO(message string) *APIError {
	return newError(TempFileIO, message)
}
