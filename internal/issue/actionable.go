// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages:
	// what operation failed, what resource was involved, and how to fix it.
	//
	// Use the Context builder for construction:
	//
	//	err := issue.NewContext().
	//		WithOperation("load manifest").
	//		WithResource("./depot.json").
	//		WithSuggestion("Run 'depot config init' to scaffold configuration").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation describes what was being attempted (e.g., "load manifest").
		Operation string

		// Resource identifies the file, path, or entity involved (optional).
		Resource string

		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error that triggered this one (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError instances.
	Context struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewContext creates a new Context builder.
func NewContext() *Context {
	return &Context{}
}

// WithOperation sets the operation being performed, as a verb phrase
// ("load manifest", "install module").
func (c *Context) WithOperation(op string) *Context {
	c.operation = op
	return c
}

// WithResource sets the resource (file, path, module) involved.
func (c *Context) WithResource(res string) *Context {
	c.resource = res
	return c
}

// WithSuggestion adds a suggestion for how to fix the issue.
// Can be called multiple times.
func (c *Context) WithSuggestion(sug string) *Context {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// Wrap records an underlying error as the cause.
func (c *Context) Wrap(err error) *Context {
	c.cause = err
	return c
}

// Build creates an ActionableError from the context. Returns nil if no
// operation is set (operation is required).
func (c *Context) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build returned as an error interface, convenient in return
// statements. Returns nil if no operation is set.
func (c *Context) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}

// Error implements the error interface with a concise message suitable for
// default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *ActionableError) Unwrap() error { return e.Cause }

// Format returns the message plus suggestions; verbose mode appends the
// full error chain, one numbered line per cause.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	for _, suggestion := range e.Suggestions {
		msg.WriteString("\n  • ")
		msg.WriteString(suggestion)
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}
