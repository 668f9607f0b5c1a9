package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decode and encode failures
type ErrorKind string

const (
	KindIO                  ErrorKind = "io"
	KindMissingField        ErrorKind = "missing_field"
	KindTypeConversion      ErrorKind = "type_conversion"
	KindUnknownCode         ErrorKind = "unknown_code"
	KindUnsupportedVersion  ErrorKind = "unsupported_version"
	KindMissingSubstructure ErrorKind = "missing_substructure"
	KindDuplicateItem       ErrorKind = "duplicate_item"
	KindInvalidVariant      ErrorKind = "invalid_variant"
)

// Sentinels for errors.Is; matching is by kind only
var (
	ErrIO                  = &DecodeError{Kind: KindIO}
	ErrMissingField        = &DecodeError{Kind: KindMissingField}
	ErrTypeConversion      = &DecodeError{Kind: KindTypeConversion}
	ErrUnknownCode         = &DecodeError{Kind: KindUnknownCode}
	ErrUnsupportedVersion  = &DecodeError{Kind: KindUnsupportedVersion}
	ErrMissingSubstructure = &DecodeError{Kind: KindMissingSubstructure}
	ErrDuplicateItem       = &DecodeError{Kind: KindDuplicateItem}
	ErrInvalidVariant      = &DecodeError{Kind: KindInvalidVariant}
)

// DecodeError represents a mapping failure with section and field context
type DecodeError struct {
	Kind     ErrorKind
	Section  string // e.g. "ide", "det/prod"
	Field    string // wire tag, attribute or code table name
	Expected string // expected scalar kind, where relevant
	Value    string // offending text or code
	Message  string
	Cause    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("[%s]", e.Kind)
	if e.Section != "" {
		msg += " " + e.Section
		if e.Field != "" {
			msg += "/" + e.Field
		}
	} else if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s, got %q)", e.Expected, e.Value)
	} else if e.Value != "" {
		msg += fmt.Sprintf(" (value=%q)", e.Value)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DecodeError of the same kind
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// InSection returns a copy of the error tagged with section and field when
// they are not set yet
func (e *DecodeError) InSection(section, field string) *DecodeError {
	c := *e
	if c.Section == "" {
		c.Section = section
	}
	if c.Field == "" {
		c.Field = field
	}
	return &c
}

// KindOf returns the kind of a DecodeError anywhere in the chain
func KindOf(err error) (ErrorKind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// NewIOError wraps a read or tokenizer failure
func NewIOError(message string, cause error) *DecodeError {
	return &DecodeError{Kind: KindIO, Message: message, Cause: cause}
}

// NewMissingFieldError reports an absent mandatory tag or attribute
func NewMissingFieldError(section, tag string) *DecodeError {
	return &DecodeError{
		Kind:    KindMissingField,
		Section: section,
		Field:   tag,
		Message: "mandatory field is absent",
	}
}

// NewTypeConversionError reports text that does not parse as the expected kind
func NewTypeConversionError(section, tag, expected, value string, cause error) *DecodeError {
	return &DecodeError{
		Kind:     KindTypeConversion,
		Section:  section,
		Field:    tag,
		Expected: expected,
		Value:    value,
		Cause:    cause,
	}
}

// NewUnknownCodeError reports a code absent from its code table
func NewUnknownCodeError(table, code string) *DecodeError {
	return &DecodeError{
		Kind:    KindUnknownCode,
		Field:   table,
		Value:   code,
		Message: "code not in table",
	}
}

// NewUnsupportedVersionError reports a schema version other than 4.00
func NewUnsupportedVersionError(found string) *DecodeError {
	return &DecodeError{
		Kind:    KindUnsupportedVersion,
		Field:   "versao",
		Value:   found,
		Message: "unsupported schema version",
	}
}

// NewMissingSubstructureError reports an absent section an operation depends on
func NewMissingSubstructureError(section, message string) *DecodeError {
	return &DecodeError{
		Kind:    KindMissingSubstructure,
		Section: section,
		Message: message,
	}
}

// NewDuplicateItemError reports a repeated nItem
func NewDuplicateItemError(number string) *DecodeError {
	return &DecodeError{
		Kind:    KindDuplicateItem,
		Section: "det",
		Field:   "nItem",
		Value:   number,
		Message: "item number already used",
	}
}

// NewInvalidVariantError reports a model value no code table or union accepts
func NewInvalidVariantError(section, field, value, message string) *DecodeError {
	return &DecodeError{
		Kind:    KindInvalidVariant,
		Section: section,
		Field:   field,
		Value:   value,
		Message: message,
	}
}
