// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
)

// ResultKind is the outcome of a command after all of its attempts.
type ResultKind int

const (
	// Success means the last attempt exited with status 0.
	Success ResultKind = iota
	// Failure means every attempt failed.
	Failure
)

// String implements fmt.Stringer.
func (k ResultKind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is created once per command and not modified afterwards.
type Result struct {
	Kind   ResultKind
	ErrMsg string // Empty on success
	Err    error  // Error of the last attempt, nil on success
}

// NewSuccess returns a successful result.
func NewSuccess() Result {
	return Result{Kind: Success}
}

// NewFailure returns a failed result for err.
// For a *SpawnError the message is the captured stderr, or the generic message if there was none.
func NewFailure(err error) Result {
	msg := ""

	var se *SpawnError
	switch {
	case errors.As(err, &se):
		msg = se.ErrMsg()
	case err != nil:
		msg = err.Error()
	}

	return Result{
		Kind:   Failure,
		ErrMsg: msg,
		Err:    err,
	}
}
