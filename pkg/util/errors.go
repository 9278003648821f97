// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Error families. Every fatal error of a reconciliation run unwraps to
// exactly one of these.
var (
	ErrInputValidation     = errors.New("invalid input")
	ErrTransport           = errors.New("inventory request failed")
	ErrNotFoundInInventory = errors.New("not found in inventory")
	ErrSwitchSession       = errors.New("switch session failed")
	ErrMalformedAddress    = errors.New("malformed hardware address")
	ErrNoPortBindings      = errors.New("no port bindings found on the requested ports")
)

// Port range kinds, each also an ErrInputValidation.
var (
	ErrNonNumericBound   = errors.New("port bound is not a number")
	ErrPortRangeExceeded = errors.New("port outside the physical port range")
	ErrMalformedToken    = errors.New("malformed port range token")
	ErrInvertedRange     = errors.New("port range upper bound below lower bound")
)

// PortRangeError reports a bad token in a port range specification.
type PortRangeError struct {
	Kind   error
	Token  string
	Detail string
}

func (e *PortRangeError) Error() string {
	msg := fmt.Sprintf("port range %q: %v", e.Token, e.Kind)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *PortRangeError) Unwrap() []error {
	return []error{e.Kind, ErrInputValidation}
}

// NewPortRangeError creates a port range error of the given kind
func NewPortRangeError(kind error, token, detail string) *PortRangeError {
	return &PortRangeError{Kind: kind, Token: token, Detail: detail}
}

// CountMismatchError is returned when the number of supplied hostnames does
// not match the number of requested ports.
type CountMismatchError struct {
	Hostnames int
	Ports     int
}

func (e *CountMismatchError) Error() string {
	if e.Hostnames > e.Ports {
		return fmt.Sprintf("%d hostnames supplied but only %d ports requested", e.Hostnames, e.Ports)
	}
	return fmt.Sprintf("%d ports requested but only %d hostnames supplied", e.Ports, e.Hostnames)
}

func (e *CountMismatchError) Unwrap() error {
	return ErrInputValidation
}

// MalformedAddressError reports a string that is not a 48-bit hardware address.
type MalformedAddressError struct {
	Input string
}

func (e *MalformedAddressError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMalformedAddress, e.Input)
}

func (e *MalformedAddressError) Unwrap() error {
	return ErrMalformedAddress
}

// NotFoundError is returned when an inventory query succeeds but yields no
// entities for the key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in inventory", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFoundInInventory
}

// SwitchSessionError wraps a failure talking to the switch.
type SwitchSessionError struct {
	Host string
	Op   string
	Err  error
}

func (e *SwitchSessionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("switch %s: %s failed", e.Host, e.Op)
	}
	return fmt.Sprintf("switch %s: %s: %v", e.Host, e.Op, e.Err)
}

func (e *SwitchSessionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSwitchSession}
	}
	return []error{ErrSwitchSession, e.Err}
}

// NewSwitchSessionError creates a switch session error
func NewSwitchSessionError(host, op string, err error) *SwitchSessionError {
	return &SwitchSessionError{Host: host, Op: op, Err: err}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
