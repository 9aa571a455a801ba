// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package errors

import (
	"fmt"
	"strings"
)

type werror string

func (e werror) Error() string {
	return string(e)
}

const (
	// Scanner-detected grammar violation in the input (missing colon or
	// comma, unterminated object, stray token). Never transient; never
	// retried.
	ErrMalformedInput = werror("wiremsg: Malformed input")

	// Unpack was asked to produce a type whose schema name does not match
	// the container's type identifier
	ErrTypeMismatch = werror("wiremsg: Type identifier mismatch")

	// A type identifier is present but the registry has no factory for it,
	// and the operation requires resolution (text decode, binary encode of
	// deferred JSON, JSON encode of raw bytes).
	//
	// Distinct from ErrMalformedInput: the data is well formed, it just
	// cannot be interpreted here.
	ErrUnresolvableType = werror("wiremsg: Type not resolvable")

	// A message failed its required-field completeness check during
	// encode preflight
	ErrMissingRequiredFields = werror("wiremsg: Message missing required fields")

	// Unpack called on a container which claims a type but holds no
	// payload in any slot
	ErrNoPayload = werror("wiremsg: Container holds no payload")

	// A varint or length prefix in binary wire data is truncated or
	// otherwise undecodable
	ErrMalformedWireData = werror("wiremsg: Malformed binary wire data")

	// Decode target must be a non-nil message
	ErrNilMessage = werror("wiremsg: Nil message")
)

// SyntaxError reports a grammar violation at a byte offset of the input
// text
type SyntaxError struct {
	Offset int
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("wiremsg: Malformed input at offset %d: %s", e.Offset, e.Detail)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedInput
}

// TypeMismatchError reports the two qualified names which failed to match
// during Unpack
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s (container holds '%s', caller wants '%s')",
		ErrTypeMismatch, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnresolvableTypeError records the identifier which the registry could
// not resolve
type UnresolvableTypeError struct {
	TypeURL string
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("%s ('%s')", ErrUnresolvableType, e.TypeURL)
}

func (e *UnresolvableTypeError) Is(target error) bool {
	return target == ErrUnresolvableType
}

// MissingFieldsError lists the unset required fields of a message
type MissingFieldsError struct {
	Schema string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	uerr := strings.TrimPrefix(ErrMissingRequiredFields.Error(), "wiremsg: ")
	return fmt.Sprintf("wiremsg: %s '%s': %s", uerr, e.Schema, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredFields
}

// WireError wraps a low-level binary decode failure with the field
// number at which it occurred (0 if the tag itself was undecodable)
type WireError struct {
	Field      int32
	Underlying error
}

func (e *WireError) Error() string {
	if e.Field == 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedWireData, e.Underlying)
	}
	return fmt.Sprintf("%s (field %d): %s", ErrMalformedWireData, e.Field, e.Underlying)
}

func (e *WireError) Is(target error) bool {
	return target == ErrMalformedWireData
}

func (e *WireError) Unwrap() error {
	return e.Underlying
}
