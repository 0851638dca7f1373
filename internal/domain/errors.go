package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for ledger operations
var (
	// ErrRecordNotFound is returned when no deployment record exists for a chain
	ErrRecordNotFound = errors.New("deployment record not found")

	// ErrRecordCorrupt is returned when a persisted record is not well-formed
	ErrRecordCorrupt = errors.New("deployment record corrupt")

	// ErrWriteFailed is returned when the storage layer rejects a write
	ErrWriteFailed = errors.New("deployment record write failed")

	// ErrUnknownChain is returned when a chain identifier is not supported
	ErrUnknownChain = errors.New("unknown chain")

	// ErrInvalidTarget is returned when a record path cannot be resolved
	ErrInvalidTarget = errors.New("invalid record path")

	// ErrAlreadyExists is returned when trying to create something that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidAddress is returned when an address is not a 20-byte hex string
	ErrInvalidAddress = errors.New("invalid address")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")
)

// RecordError describes a failed operation on a persisted record file.
type RecordError struct {
	Op   string
	Path string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// UnknownChainErr names the chain that could not be resolved.
type UnknownChainErr struct {
	Input       string
	Suggestions []string
}

func (e UnknownChainErr) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrUnknownChain, e.Input)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e UnknownChainErr) Unwrap() error {
	return ErrUnknownChain
}

// InvalidTargetErr describes why a dotted record path was rejected.
type InvalidTargetErr struct {
	Path        string
	Reason      string
	Suggestions []string
}

func (e InvalidTargetErr) Error() string {
	msg := fmt.Sprintf("%v %q: %s", ErrInvalidTarget, e.Path, e.Reason)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e InvalidTargetErr) Unwrap() error {
	return ErrInvalidTarget
}
