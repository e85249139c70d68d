package commands

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "DOCNAV_COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "DOCNAV_COMMAND_CANCELED"
	commandContextTimeout   = "DOCNAV_COMMAND_TIMEOUT"
	commandContextErrorCode = "DOCNAV_COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "DOCNAV_COMMAND_FAILED"
	relocationPartialCode   = "DOCNAV_RELOCATION_PARTIAL"
)

// ErrRelocationIncomplete is returned by strict relocation runs that left
// some documents or images behind.
var ErrRelocationIncomplete = errors.New("relocation finished with failures")

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}

func relocationIncomplete(failed int) error {
	return goerrors.Wrap(ErrRelocationIncomplete, goerrors.CategoryCommand, fmt.Sprintf("relocation left %d file(s) behind", failed)).
		WithTextCode(relocationPartialCode)
}
