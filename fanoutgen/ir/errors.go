package ir

import (
	"errors"
	"fmt"
)

// ErrEmptyGroup is wrapped by the ConfigurationError reported for a
// declaration group without members.
var ErrEmptyGroup = errors.New("declaration group has no members")

// ConfigurationError reports malformed, duplicated or unknown options, and
// declaration groups that cannot be transformed as configured.
type ConfigurationError struct {
	Source Source
	Msg    string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	if e.Source.IsZero() {
		return msg
	}
	return e.Source.String() + ": " + msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Configf creates a ConfigurationError with a formatted message.
func Configf(src Source, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Source: src, Msg: fmt.Sprintf(format, args...)}
}

// SignatureMismatchError reports a member whose shape differs from the
// baseline member's.
type SignatureMismatchError struct {
	Group         string
	Baseline      string
	BaselineShape Shape
	Member        string
	MemberShape   Shape
	Source        Source
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("%s: %s.%s does not match the signature of %s.%s\n  baseline: %s %s\n  got:      %s %s",
		e.Source, e.Group, e.Member, e.Group, e.Baseline,
		e.Baseline, e.BaselineShape, e.Member, e.MemberShape)
}

// UnsupportedReceiverError reports a method with a value receiver. A value
// receiver would give each member call its own copy of the receiver, so
// dispatchers require pointer receivers.
type UnsupportedReceiverError struct {
	Group  string
	Member string
	Source Source
}

func (e *UnsupportedReceiverError) Error() string {
	return fmt.Sprintf("%s: method %s has a value receiver; declare it as func (*%s) %s",
		e.Source, e.Member, e.Group, e.Member)
}
