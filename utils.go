// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package wiremsg

import (
	"go.e43.eu/wiremsg/jsontext"
	"go.e43.eu/wiremsg/textfmt"
)

// Marshal encodes m into its binary wire form, first checking that all
// required fields are set
func Marshal(m Message) ([]byte, error) {
	if err := m.CheckInitialized(); err != nil {
		return nil, err
	}
	return m.AppendWire(nil, false)
}

// MarshalPartial encodes m into its binary wire form, tolerating
// missing required fields
func MarshalPartial(m Message) ([]byte, error) {
	return m.AppendWire(nil, true)
}

// Unmarshal decodes binary wire data into m, replacing its contents
func Unmarshal(data []byte, m Message) error {
	m.Reset()
	return m.DecodeWire(data)
}

// MarshalJSON encodes m as JSON text. A nil registry means
// DefaultRegistry
func MarshalJSON(m Message, reg Registry) ([]byte, error) {
	e := jsontext.NewEncoder()
	if err := m.EncodeJSON(e, registryOrDefault(reg)); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// UnmarshalJSON decodes JSON text into m, replacing its contents
func UnmarshalJSON(data []byte, m Message, reg Registry) error {
	s := jsontext.NewScanner(string(data))
	m.Reset()
	if err := m.DecodeJSON(s, registryOrDefault(reg)); err != nil {
		return err
	}
	return s.ExpectEOF()
}

// MarshalTextFormat encodes m in the verbose text form
func MarshalTextFormat(m Message, reg Registry) ([]byte, error) {
	w := textfmt.NewWriter()
	if err := m.EncodeTextFormat(w, registryOrDefault(reg)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// UnmarshalTextFormat decodes text-format input into m, replacing its
// contents
func UnmarshalTextFormat(data []byte, m Message, reg Registry) error {
	s := textfmt.NewScanner(string(data))
	m.Reset()
	if err := m.DecodeTextFormat(s, registryOrDefault(reg)); err != nil {
		return err
	}
	return s.ExpectEOF()
}
