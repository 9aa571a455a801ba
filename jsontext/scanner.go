// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package jsontext implements the JSON tokenizer and emitter used by the
// wiremsg codecs.
//
// Both halves operate on raw text fragments: Scanner.Skip returns the
// exact bytes of a value without semantic reinterpretation, and
// Encoder.Append splices such fragments back into the output verbatim.
// This is what allows an Any container to carry JSON content for a type
// it cannot resolve and later re-emit it byte-identically.
package jsontext

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.e43.eu/wiremsg/internal/errors"
)

// Scanner tokenizes a JSON document held in memory. It exposes exactly
// the operations the message decoders need; it is not a general purpose
// streaming parser.
type Scanner struct {
	buf string
	pos int
}

func NewScanner(s string) *Scanner {
	return &Scanner{buf: s}
}

// Offset returns the current byte offset into the input
func (s *Scanner) Offset() int {
	return s.pos
}

func (s *Scanner) syntax(detail string) error {
	return &errors.SyntaxError{Offset: s.pos, Detail: detail}
}

func (s *Scanner) ws() {
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

// consume advances past c if it is the next non-whitespace byte
func (s *Scanner) consume(c byte) bool {
	s.ws()
	if s.pos < len(s.buf) && s.buf[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

// SkipRequiredObjectStart consumes a '{'
func (s *Scanner) SkipRequiredObjectStart() error {
	if !s.consume('{') {
		return s.syntax("expected '{'")
	}
	return nil
}

// SkipOptionalObjectEnd consumes a '}' if it is next, reporting whether
// it did so
func (s *Scanner) SkipOptionalObjectEnd() bool {
	return s.consume('}')
}

// SkipRequiredColon consumes the ':' separating a key from its value
func (s *Scanner) SkipRequiredColon() error {
	if !s.consume(':') {
		return s.syntax("expected ':'")
	}
	return nil
}

// SkipRequiredComma consumes the ',' separating two members
func (s *Scanner) SkipRequiredComma() error {
	if !s.consume(',') {
		return s.syntax("expected ','")
	}
	return nil
}

// ExpectEOF fails unless only trailing whitespace remains
func (s *Scanner) ExpectEOF() error {
	s.ws()
	if s.pos != len(s.buf) {
		return s.syntax("trailing data after value")
	}
	return nil
}

// NextQuotedString decodes a JSON string, processing escapes
func (s *Scanner) NextQuotedString() (string, error) {
	if !s.consume('"') {
		return "", s.syntax("expected string")
	}

	// Fast path: no escapes present
	start := s.pos
	for s.pos < len(s.buf) {
		switch c := s.buf[s.pos]; {
		case c == '"':
			str := s.buf[start:s.pos]
			s.pos++
			return str, nil
		case c == '\\':
			return s.nextQuotedStringSlow(start)
		case c < 0x20:
			return "", s.syntax("control character in string")
		default:
			s.pos++
		}
	}
	return "", s.syntax("unterminated string")
}

func (s *Scanner) nextQuotedStringSlow(start int) (string, error) {
	var b strings.Builder
	b.WriteString(s.buf[start:s.pos])

	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		switch {
		case c == '"':
			s.pos++
			return b.String(), nil
		case c == '\\':
			s.pos++
			if s.pos >= len(s.buf) {
				return "", s.syntax("unterminated escape")
			}
			e := s.buf[s.pos]
			s.pos++
			switch e {
			case '"', '\\', '/':
				b.WriteByte(e)
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				r, err := s.hexRune()
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) {
					if s.pos+1 < len(s.buf) && s.buf[s.pos] == '\\' && s.buf[s.pos+1] == 'u' {
						s.pos += 2
						r2, err := s.hexRune()
						if err != nil {
							return "", err
						}
						r = utf16.DecodeRune(r, r2)
					} else {
						r = utf8.RuneError
					}
				}
				b.WriteRune(r)
			default:
				return "", s.syntax("invalid escape")
			}
		case c < 0x20:
			return "", s.syntax("control character in string")
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", s.syntax("unterminated string")
}

func (s *Scanner) hexRune() (rune, error) {
	if s.pos+4 > len(s.buf) {
		return 0, s.syntax("truncated \\u escape")
	}
	n, err := strconv.ParseUint(s.buf[s.pos:s.pos+4], 16, 32)
	if err != nil {
		return 0, s.syntax("invalid \\u escape")
	}
	s.pos += 4
	return rune(n), nil
}

// Skip consumes the next value of any kind and returns its raw text,
// byte for byte as it appeared in the input (leading and trailing
// whitespace excluded). Numbers keep their original formatting; nested
// objects and arrays are captured whole.
func (s *Scanner) Skip() (string, error) {
	s.ws()
	start := s.pos
	if err := s.skipValue(); err != nil {
		return "", err
	}
	return s.buf[start:s.pos], nil
}

// NextInt decodes an integer value. A convenience for hand-written
// message code; tolerates the common proto3-JSON habit of quoting
// 64-bit values.
func (s *Scanner) NextInt() (int64, error) {
	raw, err := s.Skip()
	if err != nil {
		return 0, err
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, s.syntax("invalid integer")
	}
	return n, nil
}

func (s *Scanner) skipValue() error {
	s.ws()
	if s.pos >= len(s.buf) {
		return s.syntax("unexpected end of input")
	}
	switch c := s.buf[s.pos]; {
	case c == '"':
		return s.skipString()
	case c == '{':
		return s.skipObject()
	case c == '[':
		return s.skipArray()
	case c == 't':
		return s.skipLiteral("true")
	case c == 'f':
		return s.skipLiteral("false")
	case c == 'n':
		return s.skipLiteral("null")
	case c == '-' || (c >= '0' && c <= '9'):
		return s.skipNumber()
	default:
		return s.syntax("unexpected character")
	}
}

// skipString consumes a string without decoding escapes
func (s *Scanner) skipString() error {
	s.pos++ // opening quote
	for s.pos < len(s.buf) {
		switch c := s.buf[s.pos]; {
		case c == '"':
			s.pos++
			return nil
		case c == '\\':
			s.pos += 2
		case c < 0x20:
			return s.syntax("control character in string")
		default:
			s.pos++
		}
	}
	return s.syntax("unterminated string")
}

func (s *Scanner) skipObject() error {
	s.pos++ // '{'
	if s.consume('}') {
		return nil
	}
	for {
		s.ws()
		if s.pos >= len(s.buf) || s.buf[s.pos] != '"' {
			return s.syntax("expected object key")
		}
		if err := s.skipString(); err != nil {
			return err
		}
		if err := s.SkipRequiredColon(); err != nil {
			return err
		}
		if err := s.skipValue(); err != nil {
			return err
		}
		if s.consume(',') {
			continue
		}
		if s.consume('}') {
			return nil
		}
		return s.syntax("expected ',' or '}'")
	}
}

func (s *Scanner) skipArray() error {
	s.pos++ // '['
	s.ws()
	if s.consume(']') {
		return nil
	}
	for {
		if err := s.skipValue(); err != nil {
			return err
		}
		if s.consume(',') {
			continue
		}
		if s.consume(']') {
			return nil
		}
		return s.syntax("expected ',' or ']'")
	}
}

func (s *Scanner) skipLiteral(lit string) error {
	if !strings.HasPrefix(s.buf[s.pos:], lit) {
		return s.syntax("invalid literal")
	}
	s.pos += len(lit)
	return nil
}

func (s *Scanner) skipNumber() error {
	start := s.pos
	if s.buf[s.pos] == '-' {
		s.pos++
	}
	digits := 0
	for s.pos < len(s.buf) && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
		s.pos++
		digits++
	}
	if digits == 0 {
		return s.syntax("invalid number")
	}
	if s.pos < len(s.buf) && s.buf[s.pos] == '.' {
		s.pos++
		digits = 0
		for s.pos < len(s.buf) && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
			s.pos++
			digits++
		}
		if digits == 0 {
			return s.syntax("invalid number")
		}
	}
	if s.pos < len(s.buf) && (s.buf[s.pos] == 'e' || s.buf[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.buf) && (s.buf[s.pos] == '+' || s.buf[s.pos] == '-') {
			s.pos++
		}
		digits = 0
		for s.pos < len(s.buf) && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
			s.pos++
			digits++
		}
		if digits == 0 {
			return s.syntax("invalid number")
		}
	}
	if s.pos == start {
		return s.syntax("invalid number")
	}
	return nil
}
