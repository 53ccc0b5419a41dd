// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/storage"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	// ExitUsageError indicates invalid arguments or flags.
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid config file.
	ExitConfigError = 3
	// ExitNetworkError indicates the backend could not be reached or
	// answered with an error status.
	ExitNetworkError  = 5
	ExitNotFoundError = 7
	ExitTimeoutError  = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a command failure with context.
type CommandError struct {
	Command string
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Command, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Command, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError is a bad argument.
type UsageError struct {
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return e.Reason + "\nExample: " + e.Example
	}
	return e.Reason
}

// reportedError wraps a failure whose user-facing message was already
// printed. Execute only uses it for the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported marks err as already shown to the user.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	var validation config.ValidateErrors
	switch {
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, api.ErrTimeout):
		return ExitTimeoutError
	case errors.Is(err, api.ErrConnection), errors.Is(err, api.ErrBadStatus):
		return ExitNetworkError
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, chat.ErrNoHistory):
		return ExitNotFoundError
	default:
		return ExitGeneralError
	}
}

// displayError prints err unless it was already reported.
func displayError(w io.Writer, err error) {
	var rep *reportedError
	if err == nil || errors.As(err, &rep) {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), err.Error())
}
