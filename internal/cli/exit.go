package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/rolodex/internal/session"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Exit codes.
const (
	ExitSuccess   = 0
	ExitUserError = 1
	ExitSysError  = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func userError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: msg, Err: err}
}

func sysError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitSysError, Message: msg, Err: err}
}

// ExitCode maps err to a process exit code. Errors that are not an ExitError
// came from cobra itself (bad flags or arguments) and count as user errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}

// classify wraps a failed command result. Problems with the input are user
// errors; everything else is the system's fault.
func classify(msg string, err error) *ExitError {
	var (
		validation *types.ValidationError
		index      *types.IndexError
		imp        *types.ImportError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &index), errors.As(err, &imp),
		errors.Is(err, session.ErrNoSelection), errors.Is(err, os.ErrNotExist):
		return userError(msg, err)
	default:
		return sysError(msg, err)
	}
}
