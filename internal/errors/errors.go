// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the rosa CLI.
//
// UserError carries what went wrong, why, and how to fix it, plus the exit
// code the process should end with.
//
// # Usage Example
//
//	err := errors.NewRegistryError(
//	    "Cannot reach the ROS master",
//	    "Connection refused at http://localhost:11311/",
//	    "Start roscore or set ROS_MASTER_URI to a running master",
//	    underlyingErr,
//	)
//	errors.FatalError(err, false)
//
// Format prints (with colors):
//
//	Error: Cannot reach the ROS master
//	Cause: Connection refused at http://localhost:11311/
//	Fix:   Start roscore or set ROS_MASTER_URI to a running master
//
// ToJSON gives the machine-readable form used with --json:
//
//	{
//	  "error": "Cannot reach the ROS master",
//	  "cause": "Connection refused at http://localhost:11311/",
//	  "fix": "Start roscore or set ROS_MASTER_URI to a running master",
//	  "exit_code": 2
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Configuration errors (missing/invalid config)
//   - ExitRegistry (2): The ROS master answered with an error or nonsense
//   - ExitNetwork (3): The ROS master or a node could not be reached
//   - ExitInput (4): Invalid user input (bad arguments, unknown tool)
//   - ExitPermission (5): Permission denied (file access, etc.)
//   - ExitNotFound (6): Unknown topic, node, parameter, package, etc.
//   - ExitInternal (10): Internal errors (bugs, panics)
package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	ExitSuccess = 0

	// ExitConfig indicates configuration errors (missing/invalid config files).
	ExitConfig = 1

	// ExitRegistry indicates the master answered but the answer was unusable.
	ExitRegistry = 2

	// ExitNetwork indicates the master or a node could not be reached.
	ExitNetwork = 3

	// ExitInput indicates invalid user input (bad arguments, validation errors).
	ExitInput = 4

	ExitPermission = 5

	// ExitNotFound indicates a graph entity, parameter or package does not exist.
	ExitNotFound = 6

	// ExitInternal signals a bug that should be reported.
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
type UserError struct {
	// Message describes what went wrong in user-friendly language.
	Message string

	// Cause explains why the error occurred.
	Cause string

	// Fix provides an actionable suggestion.
	Fix string

	ExitCode int

	// Err is the underlying error, kept for errors.Is/As.
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: code, Err: err}
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Example:
//
//	return NewConfigError(
//	    "Cannot load rosa configuration",
//	    "master_uri must be a valid URL",
//	    "Edit .rosa/config.yaml or run 'rosa init --force'",
//	    err,
//	)
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewRegistryError creates an error for a malformed or failed master
// response, with exit code ExitRegistry.
func NewRegistryError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitRegistry, msg, cause, fix, err)
}

// NewNetworkError creates a network error with exit code ExitNetwork.
//
// Example:
//
//	return NewNetworkError(
//	    "Cannot reach the ROS master",
//	    "Connection timed out after 5s",
//	    "Check ROS_MASTER_URI and that roscore is running",
//	    err,
//	)
func NewNetworkError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitNetwork, msg, cause, fix, err)
}

// NewInputError creates an input validation error with exit code ExitInput.
// Input errors do not wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewPermissionError creates a permission denied error with exit code
// ExitPermission.
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitPermission, msg, cause, fix, err)
}

// NewNotFoundError creates a not found error with exit code ExitNotFound.
//
// Example:
//
//	return NewNotFoundError(
//	    "Tool not found",
//	    "No tool named 'rostopic_echo' is registered",
//	    "Run 'rosa tools' to list available tools",
//	)
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newUserError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an internal error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

// ExitCodeForKind maps a tool failure kind to an exit code. Unknown kinds
// are internal errors.
func ExitCodeForKind(kind string) int {
	switch kind {
	case "registry_unavailable":
		return ExitNetwork
	case "malformed_response":
		return ExitRegistry
	case "not_found", "empty_result":
		return ExitNotFound
	case "invalid_argument":
		return ExitInput
	default:
		return ExitInternal
	}
}

// fixForKind suggests a next step for a tool failure kind.
func fixForKind(kind string) string {
	switch kind {
	case "registry_unavailable":
		return "Start roscore or point ROS_MASTER_URI at a running master"
	case "malformed_response":
		return "Check that ROS_MASTER_URI points at a ROS1 master"
	case "not_found":
		return "List what exists first, e.g. 'rosa call rostopic_list'"
	case "empty_result":
		return "Relax the namespace, pattern or blacklist"
	case "invalid_argument":
		return "Run 'rosa tools' to see each tool's arguments"
	default:
		return ""
	}
}

// NewToolError converts a failed tool call into a UserError. The result's
// text becomes the Cause.
func NewToolError(tool, kind, text string) *UserError {
	msg := fmt.Sprintf("Tool %s failed", tool)
	fix := fixForKind(kind)
	switch kind {
	case "registry_unavailable":
		return NewNetworkError(msg, text, fix, nil)
	case "malformed_response":
		return NewRegistryError(msg, text, fix, nil)
	case "not_found", "empty_result":
		return NewNotFoundError(msg, text, fix)
	case "invalid_argument":
		return NewInputError(msg, text, fix)
	default:
		return NewInternalError(msg, text, fix, nil)
	}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns the error for terminal display. Empty Cause or Fix lines
// are omitted. Colors are off when noColor is set or NO_COLOR is present.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Report writes err to w and returns the exit code to use. A UserError is
// written as JSON or formatted text; anything else as a plain line with
// ExitInternal.
func Report(w io.Writer, err error, jsonOutput, noColor bool) int {
	if err == nil {
		return ExitSuccess
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(w, ue.Format(noColor))
		}
		return ue.ExitCode
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitInternal
}

// FatalError prints err to stderr and exits with its code. It does nothing
// when err is nil.
//
// Usage:
//
//	if err := run(); err != nil {
//	    errors.FatalError(err, jsonMode)
//	}
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	os.Exit(Report(os.Stderr, err, jsonOutput, false))
}
