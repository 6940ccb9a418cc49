// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
var ErrInvalidModuleName = errors.New("invalid module name")

type (
	// ModuleName identifies a dependency declared in the manifest's module
	// mapping. Names must be non-empty and must not contain whitespace,
	// since they double as log labels and receipt keys.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName is empty or
	// contains whitespace.
	InvalidModuleNameError struct {
		Value ModuleName
	}
)

// String returns the string representation of the ModuleName.
func (m ModuleName) String() string { return string(m) }

// IsValid returns whether the ModuleName is valid.
// Names must be non-empty and free of whitespace.
func (m ModuleName) IsValid() (bool, []error) {
	if m == "" || strings.ContainsAny(string(m), " \t\n\r") {
		return false, []error{&InvalidModuleNameError{Value: m}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }
