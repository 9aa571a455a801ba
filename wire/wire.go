// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package wire provides the binary field primitives used by wiremsg
// message implementations: varint/tag/length-delimited framing in the
// protobuf wire format, built on google.golang.org/protobuf/encoding/protowire.
//
// Encoding is append-based (the caller owns the buffer); decoding is a
// pull-style iteration over fields so unknown fields can be skipped
// without interpretation.
package wire

import (
	stderrors "errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"go.e43.eu/wiremsg/internal/errors"
)

var errUnexpectedType = stderrors.New("unexpected wire type")

// Number identifies a field within a message
type Number = protowire.Number

// Type is the wire type of an encoded field
type Type = protowire.Type

const (
	VarintType  = protowire.VarintType
	Fixed32Type = protowire.Fixed32Type
	Fixed64Type = protowire.Fixed64Type
	BytesType   = protowire.BytesType
)

// AppendVarintField appends a varint-typed field
func AppendVarintField(buf []byte, num Number, v uint64) []byte {
	buf = protowire.AppendTag(buf, num, protowire.VarintType)
	return protowire.AppendVarint(buf, v)
}

// AppendIntField appends a signed integer as a varint-typed field.
// Negative values are sign extended to 64 bits, as protobuf does for
// int32/int64 fields
func AppendIntField(buf []byte, num Number, v int64) []byte {
	return AppendVarintField(buf, num, uint64(v))
}

// AppendBoolField appends a bool as a varint-typed field
func AppendBoolField(buf []byte, num Number, v bool) []byte {
	return AppendVarintField(buf, num, protowire.EncodeBool(v))
}

// AppendFixed64Field appends a fixed64-typed field
func AppendFixed64Field(buf []byte, num Number, v uint64) []byte {
	buf = protowire.AppendTag(buf, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(buf, v)
}

// AppendDoubleField appends a float64 as a fixed64-typed field
func AppendDoubleField(buf []byte, num Number, v float64) []byte {
	return AppendFixed64Field(buf, num, math.Float64bits(v))
}

// AppendStringField appends a length-delimited string field
func AppendStringField(buf []byte, num Number, v string) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendString(buf, v)
}

// AppendBytesField appends a length-delimited bytes field
func AppendBytesField(buf []byte, num Number, v []byte) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendBytes(buf, v)
}

// Decoder iterates over the fields of a single encoded message.
//
// Usage:
//
//	d := wire.NewDecoder(data)
//	for {
//	    num, typ, ok, err := d.Next()
//	    if err != nil { return err }
//	    if !ok { break }
//	    switch num {
//	    case 1:  s, err := d.String()  ...
//	    default: err = d.Skip(num, typ)
//	    }
//	}
type Decoder struct {
	buf []byte
	pos int

	// Wire type of the field returned by the last Next, consumed by the
	// typed accessors for validation
	num Number
	typ Type
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Next advances to the next field. ok is false once the buffer is
// exhausted
func (d *Decoder) Next() (Number, Type, bool, error) {
	if d.pos >= len(d.buf) {
		return 0, 0, false, nil
	}
	num, typ, n := protowire.ConsumeTag(d.buf[d.pos:])
	if n < 0 {
		return 0, 0, false, &errors.WireError{Underlying: protowire.ParseError(n)}
	}
	d.pos += n
	d.num, d.typ = num, typ
	return num, typ, true, nil
}

// Varint reads the current field as a varint
func (d *Decoder) Varint() (uint64, error) {
	if d.typ != protowire.VarintType {
		return 0, d.typeError()
	}
	v, n := protowire.ConsumeVarint(d.buf[d.pos:])
	if n < 0 {
		return 0, d.wireError(protowire.ParseError(n))
	}
	d.pos += n
	return v, nil
}

// Int reads the current field as a signed integer
func (d *Decoder) Int() (int64, error) {
	v, err := d.Varint()
	return int64(v), err
}

// Bool reads the current field as a bool
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Varint()
	return protowire.DecodeBool(v), err
}

// Fixed64 reads the current field as a fixed64
func (d *Decoder) Fixed64() (uint64, error) {
	if d.typ != protowire.Fixed64Type {
		return 0, d.typeError()
	}
	v, n := protowire.ConsumeFixed64(d.buf[d.pos:])
	if n < 0 {
		return 0, d.wireError(protowire.ParseError(n))
	}
	d.pos += n
	return v, nil
}

// Double reads the current field as a float64
func (d *Decoder) Double() (float64, error) {
	v, err := d.Fixed64()
	return math.Float64frombits(v), err
}

// Bytes reads the current length-delimited field. The returned slice
// aliases the input buffer
func (d *Decoder) Bytes() ([]byte, error) {
	if d.typ != protowire.BytesType {
		return nil, d.typeError()
	}
	v, n := protowire.ConsumeBytes(d.buf[d.pos:])
	if n < 0 {
		return nil, d.wireError(protowire.ParseError(n))
	}
	d.pos += n
	return v, nil
}

// String reads the current length-delimited field as a string
func (d *Decoder) String() (string, error) {
	v, err := d.Bytes()
	return string(v), err
}

// Skip discards the current field whatever its type
func (d *Decoder) Skip(num Number, typ Type) error {
	n := protowire.ConsumeFieldValue(num, typ, d.buf[d.pos:])
	if n < 0 {
		return d.wireError(protowire.ParseError(n))
	}
	d.pos += n
	return nil
}

func (d *Decoder) typeError() error {
	return &errors.WireError{Field: int32(d.num), Underlying: errUnexpectedType}
}

func (d *Decoder) wireError(err error) error {
	return &errors.WireError{Field: int32(d.num), Underlying: err}
}
