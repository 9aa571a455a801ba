// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package wiremsg

import (
	wiremsginterfaces "go.e43.eu/wiremsg/interfaces"
	"go.e43.eu/wiremsg/jsontext"
	"go.e43.eu/wiremsg/textfmt"
	"go.e43.eu/wiremsg/wire"
)

// Binary field numbers of the Any wrapper message
const (
	anyFieldTypeURL = wire.Number(1)
	anyFieldValue   = wire.Number(2)
)

// AnyMessage is the schema-level wrapper that lets an Any container
// travel as an ordinary message (and hence as a field of other
// messages). It is a thin adapter: all interesting behaviour lives in
// the embedded container.
//
// Its binary form is two fields: the type identifier (1, string) and
// the wrapped message's wire encoding (2, bytes). The bytes field is
// produced through the container's best-effort RawBytes projection
// against the default registry
type AnyMessage struct {
	Any
}

var _ wiremsginterfaces.Message = (*AnyMessage)(nil)

func (m *AnyMessage) SchemaName() string {
	return "wiremsg.Any"
}

func (m *AnyMessage) NewEmpty() wiremsginterfaces.Message {
	return new(AnyMessage)
}

func (m *AnyMessage) Reset() {
	m.Any.reset()
}

func (m *AnyMessage) CheckInitialized() error {
	return m.Any.CheckInitialized(nil)
}

func (m *AnyMessage) AppendWire(buf []byte, partial bool) ([]byte, error) {
	if !partial {
		if err := m.CheckInitialized(); err != nil {
			return buf, err
		}
	}
	if url := m.TypeURL(); url != "" {
		buf = wire.AppendStringField(buf, anyFieldTypeURL, url)
	}
	if b := m.RawBytes(nil); len(b) > 0 {
		buf = wire.AppendBytesField(buf, anyFieldValue, b)
	}
	return buf, nil
}

func (m *AnyMessage) DecodeWire(data []byte) error {
	var typeURL string
	var value []byte
	seen := false

	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch num {
		case anyFieldTypeURL:
			typeURL, err = d.String()
		case anyFieldValue:
			value, err = d.Bytes()
		default:
			if err := d.Skip(num, typ); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		seen = true
	}

	if seen {
		m.SetRaw(typeURL, value)
	}
	return nil
}

// DecodeJSON consumes the container's JSON object. The registry is
// unused: JSON population always defers resolution
func (m *AnyMessage) DecodeJSON(s *jsontext.Scanner, reg wiremsginterfaces.Registry) error {
	return m.Any.DecodeJSON(s)
}

func (m *AnyMessage) DecodeTextFormat(s *textfmt.Scanner, reg wiremsginterfaces.Registry) error {
	typeURL, err := s.NextTypeURL()
	if err != nil {
		return err
	}
	return m.Any.DecodeTextFormat(typeURL, s, reg)
}
