// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for the CLI.
const (
	ExitSuccess = 0 // Command succeeded
	ExitFailure = 1 // Unexpected failure
	ExitUsage   = 2 // Invalid arguments, flags or configuration
)

// ExitError is an error carrying the exit code the process should report.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code and message.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// *ExitError report ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope of all JSON output.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError describes a failed command in JSON output.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OutputFormatter writes command results in the configured format.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// Success writes the result of a command. In text mode, data is printed
// using its String method.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.writeJSON(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error reports a failed command. JSON errors go to the regular output so
// they can be consumed alongside results; text errors go to ErrWriter.
func (f *OutputFormatter) Error(code int, err error) error {
	if f.Format == "json" {
		return f.writeJSON(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    fmt.Sprintf("E%03d", code),
				Message: err.Error(),
			},
		})
	}
	_, werr := fmt.Fprintf(f.ErrWriter, "civil: %v\n", err)
	return werr
}

func (f *OutputFormatter) writeJSON(resp CLIResponse) error {
	if err := json.NewEncoder(f.Writer).Encode(resp); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
