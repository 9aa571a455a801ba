// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package textfmt

import "strconv"

// Writer builds text-format output. Message bodies are indented two
// spaces per nesting level; each field occupies one line
type Writer struct {
	buf   []byte
	depth int
}

func NewWriter() *Writer {
	return new(Writer)
}

// Bytes returns the accumulated output. The returned slice aliases the
// writer's buffer
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf = append(w.buf, ' ', ' ')
	}
}

// StringField writes `name: "value"`
func (w *Writer) StringField(name, v string) {
	w.indent()
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, ':', ' ', '"')
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '"':
			w.buf = append(w.buf, '\\', '"')
		case '\\':
			w.buf = append(w.buf, '\\', '\\')
		case '\n':
			w.buf = append(w.buf, '\\', 'n')
		case '\r':
			w.buf = append(w.buf, '\\', 'r')
		case '\t':
			w.buf = append(w.buf, '\\', 't')
		default:
			w.buf = append(w.buf, c)
		}
	}
	w.buf = append(w.buf, '"', '\n')
}

// IntField writes `name: 42`
func (w *Writer) IntField(name string, v int64) {
	w.indent()
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, ':', ' ')
	w.buf = strconv.AppendInt(w.buf, v, 10)
	w.buf = append(w.buf, '\n')
}

// StartMessage opens a nested body: `name {`
func (w *Writer) StartMessage(name string) {
	w.indent()
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, ' ', '{', '\n')
	w.depth++
}

// StartAnyBody opens the bracketed-type body of an Any value:
// `[type.e43.eu/pkg.Name] {`
func (w *Writer) StartAnyBody(typeURL string) {
	w.indent()
	w.buf = append(w.buf, '[')
	w.buf = append(w.buf, typeURL...)
	w.buf = append(w.buf, ']', ' ', '{', '\n')
	w.depth++
}

// EndMessage closes the innermost open body
func (w *Writer) EndMessage() {
	w.depth--
	w.indent()
	w.buf = append(w.buf, '}', '\n')
}
