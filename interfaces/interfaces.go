// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package wiremsginterfaces defines the primary interfaces of the wiremsg
// serialization library
//
// (This package is primarily separated out in order to permit the implementation to
// be broken down into multiple packages)
package wiremsginterfaces

import (
	"go.e43.eu/wiremsg/jsontext"
	"go.e43.eu/wiremsg/textfmt"
)

// interface Message is the capability set through which the library
// handles arbitrary concrete message types. Generated (or hand-written)
// message code implements it; the Any container and the package-level
// helpers depend only on this interface, never on concrete types.
type Message interface {
	// SchemaName returns the fully qualified schema name of the message
	// type (e.g. "example.SensorReading"). It must be a stable
	// identifier: it is used for registry lookup and as the wire-visible
	// type tag of Any containers
	SchemaName() string

	// AppendWire appends the binary wire encoding of the message to buf
	// and returns the extended buffer.
	//
	// When partial is true, missing required fields are tolerated; the
	// caller takes responsibility for completeness checking (see
	// CheckInitialized)
	AppendWire(buf []byte, partial bool) ([]byte, error)

	// DecodeWire merges the binary wire encoding in data into the
	// message. It does not reset the message first
	DecodeWire(data []byte) error

	// EncodeJSON writes the complete JSON value of the message. The
	// registry is threaded through so nested Any fields can transcode;
	// messages without such fields may ignore it
	EncodeJSON(e *jsontext.Encoder, reg Registry) error

	// DecodeJSON consumes one complete JSON value from the scanner
	DecodeJSON(s *jsontext.Scanner, reg Registry) error

	// EncodeTextFormat writes the fields of the message in text format.
	// The enclosing braces, if any, belong to the caller
	EncodeTextFormat(w *textfmt.Writer, reg Registry) error

	// DecodeTextFormat consumes fields until the current body ends. It
	// must leave the closing '}' (or end of input) unconsumed
	DecodeTextFormat(s *textfmt.Scanner, reg Registry) error

	// CheckInitialized returns nil iff every required field is set
	CheckInitialized() error

	// Reset returns the message to its empty state. Decode operations
	// merge, so a full replacement is a Reset followed by a decode
	Reset()

	// NewEmpty returns a fresh, empty message of the same concrete type
	NewEmpty() Message
}

// interface Registry resolves a type identifier to a factory for the
// matching concrete message type.
//
// Lookup receives the full identifier ("<prefix>/<qualified.Name>" or a
// bare qualified name); implementations match on the qualified-name
// portion only. Implementations must be safe for concurrent lookup
type Registry interface {
	Lookup(typeURL string) (func() Message, bool)
}

// interface JSONScalar marks a message whose canonical JSON form is a
// single bare value rather than a field map (timestamps, durations,
// scalar wrappers). Its EncodeJSON/DecodeJSON read and write that bare
// value; an Any container wraps it as {"@type": ..., "value": <bare>}
type JSONScalar interface {
	Message

	// JSONScalarMessage is a marker and does nothing
	JSONScalarMessage()
}
