package tool

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	tools "github.com/mutablelogic/go-tools"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Failure is the structured error returned across the tool boundary. It
// carries a human-readable message only.
type Failure struct {
	Message string `json:"error"`
}

// Result is either a value or a failure, never both
type Result struct {
	Value   any
	Failure *Failure
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultFailureMessage is used when an error carries no message
	DefaultFailureMessage = "An error occurred during tool execution"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFailure returns a failure for an error, falling back to a generic
// message when the error has none
func NewFailure(err error) *Failure {
	if err == nil || err.Error() == "" {
		return &Failure{Message: DefaultFailureMessage}
	}
	return &Failure{Message: err.Error()}
}

// Call runs a tool in the toolkit and folds the outcome into a Result.
// Errors and panics raised by the tool are converted into a Failure, so
// nothing is thrown past the caller.
func (tk *Toolkit) Call(ctx context.Context, name string, input json.RawMessage) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Failure: NewFailure(tools.ErrInternalServerError.Withf("%s: %v", name, r))}
		}
	}()
	if value, err := tk.Run(ctx, name, input); err != nil {
		return Result{Failure: NewFailure(err)}
	} else {
		return Result{Value: value}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (f *Failure) Error() string {
	return f.Message
}

// Ok returns true if the result carries a value
func (r Result) Ok() bool {
	return r.Failure == nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (f *Failure) String() string {
	return fmt.Sprintf("<failure %q>", f.Message)
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	return json.Marshal(r.Value)
}

func (r Result) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
