// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package textfmt implements the verbose, human-readable text form of
// wiremsg messages:
//
//	name: "payload-a"
//	count: 3
//	detail {
//	  unit: "ms"
//	}
//	extra {
//	  [type.e43.eu/example.Reading] {
//	    id: "r1"
//	  }
//	}
//
// Unlike the JSON form, the text grammar is type driven: a nested body
// cannot be decoded, or even skipped, without resolving the concrete
// type first. There is no raw-capture fallback.
package textfmt

import (
	"strconv"
	"strings"

	"go.e43.eu/wiremsg/internal/errors"
)

// Scanner tokenizes text-format input held in memory
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

// ws skips whitespace and '#' line comments
func (s *Scanner) ws() {
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		case '#':
			for s.pos < len(s.buf) && s.buf[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *Scanner) consume(c byte) bool {
	s.ws()
	if s.pos < len(s.buf) && s.buf[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '.'
}

// NextIdent reads a field name or dotted type name
func (s *Scanner) NextIdent() (string, error) {
	s.ws()
	start := s.pos
	for s.pos < len(s.buf) && isIdentChar(s.buf[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", s.syntax("expected identifier")
	}
	return s.buf[start:s.pos], nil
}

// SkipColon consumes the ':' after a scalar field name
func (s *Scanner) SkipColon() error {
	if !s.consume(':') {
		return s.syntax("expected ':'")
	}
	return nil
}

// TrySkipColon consumes a ':' if present. Message-typed fields permit
// but do not require one before the opening brace
func (s *Scanner) TrySkipColon() bool {
	return s.consume(':')
}

// SkipBodyStart consumes the '{' opening a nested message body
func (s *Scanner) SkipBodyStart() error {
	if !s.consume('{') {
		return s.syntax("expected '{'")
	}
	return nil
}

// SkipBodyEnd consumes the '}' closing a nested message body
func (s *Scanner) SkipBodyEnd() error {
	if !s.consume('}') {
		return s.syntax("expected '}'")
	}
	return nil
}

// AtBodyEnd reports, without consuming anything, whether the next token
// ends the current body ('}' or end of input)
func (s *Scanner) AtBodyEnd() bool {
	s.ws()
	return s.pos >= len(s.buf) || s.buf[s.pos] == '}'
}

// NextTypeURL reads a bracketed type identifier: "[type.e43.eu/pkg.Name]"
func (s *Scanner) NextTypeURL() (string, error) {
	if !s.consume('[') {
		return "", s.syntax("expected '['")
	}
	s.ws()
	start := s.pos
	for s.pos < len(s.buf) && (isIdentChar(s.buf[s.pos]) || s.buf[s.pos] == '/' || s.buf[s.pos] == '-') {
		s.pos++
	}
	if s.pos == start {
		return "", s.syntax("expected type identifier")
	}
	url := s.buf[start:s.pos]
	if !s.consume(']') {
		return "", s.syntax("expected ']'")
	}
	return url, nil
}

// NextString reads a quoted string value
func (s *Scanner) NextString() (string, error) {
	s.ws()
	if s.pos >= len(s.buf) || s.buf[s.pos] != '"' {
		return "", s.syntax("expected string")
	}
	s.pos++
	var b strings.Builder
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		switch c {
		case '"':
			s.pos++
			return b.String(), nil
		case '\\':
			s.pos++
			if s.pos >= len(s.buf) {
				return "", s.syntax("unterminated escape")
			}
			switch e := s.buf[s.pos]; e {
			case '"', '\\':
				b.WriteByte(e)
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", s.syntax("invalid escape")
			}
			s.pos++
		case '\n':
			return "", s.syntax("newline in string")
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", s.syntax("unterminated string")
}

// NextInt reads an integer value
func (s *Scanner) NextInt() (int64, error) {
	s.ws()
	start := s.pos
	if s.pos < len(s.buf) && s.buf[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.buf) && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
		s.pos++
	}
	n, err := strconv.ParseInt(s.buf[start:s.pos], 10, 64)
	if err != nil {
		s.pos = start
		return 0, s.syntax("expected integer")
	}
	return n, nil
}

// ExpectEOF fails unless only trailing whitespace or comments remain
func (s *Scanner) ExpectEOF() error {
	s.ws()
	if s.pos != len(s.buf) {
		return s.syntax("trailing data")
	}
	return nil
}
