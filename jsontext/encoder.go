// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package jsontext

import (
	"strconv"
	"unicode/utf8"
)

// Encoder builds compact JSON text by appending to an internal buffer.
//
// It tracks comma placement for the caller: StartField and Append insert
// the separating ',' automatically when the enclosing object already has
// members. Append splices raw member text (as captured by Scanner.Skip)
// into the output without any re-parsing or re-formatting.
type Encoder struct {
	buf []byte

	// Member count per open object, innermost last
	nest []int

	// Set between StartField and the value that follows it, so the value
	// writer knows not to insert another separator
	afterField bool
}

func NewEncoder() *Encoder {
	return new(Encoder)
}

// Bytes returns the accumulated output. The returned slice aliases the
// encoder's buffer
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) String() string {
	return string(e.buf)
}

func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.nest = e.nest[:0]
	e.afterField = false
}

// member inserts a separator if this value is an additional member of
// the enclosing object
func (e *Encoder) member() {
	if e.afterField {
		e.afterField = false
		return
	}
	if n := len(e.nest); n > 0 {
		if e.nest[n-1] > 0 {
			e.buf = append(e.buf, ',')
		}
		e.nest[n-1]++
	}
}

func (e *Encoder) StartObject() {
	e.member()
	e.buf = append(e.buf, '{')
	e.nest = append(e.nest, 0)
}

func (e *Encoder) EndObject() {
	e.nest = e.nest[:len(e.nest)-1]
	e.buf = append(e.buf, '}')
}

// StartField emits the key of the next object member followed by ':'.
// The caller must follow with exactly one value
func (e *Encoder) StartField(name string) {
	n := len(e.nest)
	if e.nest[n-1] > 0 {
		e.buf = append(e.buf, ',')
	}
	e.nest[n-1]++
	e.putQuoted(name)
	e.buf = append(e.buf, ':')
	e.afterField = true
}

func (e *Encoder) PutString(s string) {
	e.member()
	e.putQuoted(s)
}

func (e *Encoder) PutInt(i int64) {
	e.member()
	e.buf = strconv.AppendInt(e.buf, i, 10)
}

func (e *Encoder) PutBool(b bool) {
	e.member()
	e.buf = strconv.AppendBool(e.buf, b)
}

func (e *Encoder) PutFloat(f float64) {
	e.member()
	e.buf = strconv.AppendFloat(e.buf, f, 'g', -1, 64)
}

func (e *Encoder) PutNull() {
	e.member()
	e.buf = append(e.buf, "null"...)
}

// Append writes raw, previously captured JSON text verbatim. When called
// directly inside an open object (rather than after StartField) the text
// must be complete member text ("key":value pairs, comma separated); the
// separator joining it to earlier members is inserted here
func (e *Encoder) Append(raw string) {
	if raw == "" {
		return
	}
	e.member()
	e.buf = append(e.buf, raw...)
}

func (e *Encoder) putQuoted(s string) {
	e.buf = append(e.buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			e.buf = append(e.buf, '\\', '"')
			i++
		case c == '\\':
			e.buf = append(e.buf, '\\', '\\')
			i++
		case c == '\n':
			e.buf = append(e.buf, '\\', 'n')
			i++
		case c == '\r':
			e.buf = append(e.buf, '\\', 'r')
			i++
		case c == '\t':
			e.buf = append(e.buf, '\\', 't')
			i++
		case c < 0x20:
			const hex = "0123456789abcdef"
			e.buf = append(e.buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			i++
		case c < utf8.RuneSelf:
			e.buf = append(e.buf, c)
			i++
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			e.buf = append(e.buf, s[i:i+size]...)
			i += size
		}
	}
	e.buf = append(e.buf, '"')
}
