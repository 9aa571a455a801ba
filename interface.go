// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package wiremsg implements serialization of schema-described messages
// to and from three wire representations: a compact binary encoding
// (protobuf-style varint/tag framing), a JSON text encoding, and a
// verbose human-readable text format.
//
// Message types implement the Message capability interface (normally
// via generated code; the tests in this repository hand-write such
// implementations) and register themselves so they can be resolved by
// name:
//
//	func init() { wiremsg.Register(&SensorReading{}) }
//
// The centrepiece of the package is the Any container: a polymorphic
// value holder carrying a message whose concrete type is unknown to the
// reader, tagged with a registered type identifier. An Any populated
// from one wire format can be re-projected into any other; conversion
// is deferred until a projection actually needs it, and JSON content
// whose type is not (yet) registered is retained verbatim rather than
// rejected:
//
//	var a wiremsg.Any
//	a.Pack(&SensorReading{ID: "r1", Value: 20})
//
//	var r SensorReading
//	err := a.Unpack(&r, nil)        // nil ⇒ DefaultRegistry
//
// The three representations carry different information, so not every
// projection is possible in every state; see the Any documentation for
// the exact transcoding and failure rules. Note in particular that
// Any.Equal is intentionally representation-sensitive.
//
// The codec building blocks live in the sub-packages wire, jsontext and
// textfmt; the boundary interfaces live in the interfaces package and
// are aliased here.
package wiremsg

import (
	wiremsginterfaces "go.e43.eu/wiremsg/interfaces"
)

// interface Message is the capability set implemented by every concrete
// message type
type Message = wiremsginterfaces.Message

// interface Registry resolves type identifiers to message factories
type Registry = wiremsginterfaces.Registry

// interface JSONScalar marks messages whose JSON form is a single bare
// value
type JSONScalar = wiremsginterfaces.JSONScalar
