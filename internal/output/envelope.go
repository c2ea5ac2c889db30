// Package output is the CLI-only presentation layer: it wraps a mutator's
// plain Go return value or error into the structured envelope spec.md §6
// names, and renders it as text or JSON. internal/mutate and friends never
// construct an Envelope themselves — they return ordinary values and
// *model.CoreError, which internal/cli (env.emit) hands to output.FromResult
// or output.FromError at the command boundary.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/taskwarden/warden/internal/model"
)

// Meta identifies the command and format that produced an Envelope.
type Meta struct {
	Format    string    `json:"format"`
	Version   string    `json:"version"`
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorPayload is the error shape spec.md §6 names:
// {code, message, exitCode, recoverable, suggestion?, context?}.
type ErrorPayload struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	ExitCode    int            `json:"exitCode"`
	Recoverable bool           `json:"recoverable"`
	Suggestion  string         `json:"suggestion,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

// Envelope is the top-level object every warden command returns when the
// caller requests structured output.
type Envelope struct {
	Meta    Meta          `json:"_meta"`
	Success bool          `json:"success"`
	Payload any           `json:"payload,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// Version is the envelope schema version, bumped only if the envelope
// shape itself changes.
const Version = "1"

// FromResult builds the envelope for a successful command, carrying
// payload verbatim.
func FromResult(format, command string, payload any, now time.Time) Envelope {
	return Envelope{
		Meta:    Meta{Format: format, Version: Version, Command: command, Timestamp: now},
		Success: true,
		Payload: payload,
	}
}

// FromError builds the envelope for a failed command. Any error is
// accepted, but only a *model.CoreError carries a stable code/exitCode/
// recoverable triple; anything else is wrapped as an unclassified failure
// at exit code 1, since a CoreError is the only error type internal/mutate
// and friends ever return deliberately.
func FromError(format, command string, err error, now time.Time) Envelope {
	ep := ErrorPayload{Message: err.Error(), ExitCode: 1}
	if ce, ok := err.(*model.CoreError); ok {
		ep = ErrorPayload{
			Code:        ce.Code,
			Message:     ce.Message,
			ExitCode:    ce.ExitCode,
			Recoverable: ce.Recoverable,
			Suggestion:  ce.Suggestion,
			Context:     ce.Context,
		}
	}
	return Envelope{
		Meta:  Meta{Format: format, Version: Version, Command: command, Timestamp: now},
		Error: &ep,
	}
}

// ExitCode reports the process exit code this envelope's command should
// terminate with.
func (e Envelope) ExitCode() int {
	if e.Error == nil {
		return 0
	}
	return e.Error.ExitCode
}

// Write renders e to w in the envelope's own format ("json" or "text").
// Text rendering is deliberately plain — no color, no unicode glyphs,
// per spec.md §1's out-of-scope presentation boundary. No caller layers
// color or unicode on top; config.output.showColor/showUnicode are not
// consulted.
func (e Envelope) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	default:
		return e.writeText(w)
	}
}

func (e Envelope) writeText(w io.Writer) error {
	if e.Success {
		if e.Payload == nil {
			_, err := fmt.Fprintln(w, "ok")
			return err
		}
		_, err := fmt.Fprintf(w, "%v\n", e.Payload)
		return err
	}
	if e.Error == nil {
		_, err := fmt.Fprintln(w, "error")
		return err
	}
	_, err := fmt.Fprintf(w, "error: %s (%s)\n", e.Error.Message, e.Error.Code)
	if err != nil {
		return err
	}
	if e.Error.Suggestion != "" {
		_, err = fmt.Fprintf(w, "suggestion: %s\n", e.Error.Suggestion)
	}
	return err
}
