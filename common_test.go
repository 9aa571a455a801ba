// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package wiremsg

import (
	stderrors "errors"

	"go.e43.eu/wiremsg/internal/errors"
	"go.e43.eu/wiremsg/jsontext"
	"go.e43.eu/wiremsg/textfmt"
	"go.e43.eu/wiremsg/wire"
)

// The types below are hand-written stand-ins for generated message
// code. They implement the full Message capability set the way a
// generator would: explicit field numbers, merge-style wire decode,
// omit-default encoding.

// pingMessage has only optional fields
type pingMessage struct {
	Name  string
	Count int64
}

var _ Message = (*pingMessage)(nil)

func (m *pingMessage) SchemaName() string { return "wiremsg.test.Ping" }
func (m *pingMessage) NewEmpty() Message  { return new(pingMessage) }
func (m *pingMessage) Reset()             { *m = pingMessage{} }

func (m *pingMessage) CheckInitialized() error { return nil }

func (m *pingMessage) AppendWire(buf []byte, partial bool) ([]byte, error) {
	if m.Name != "" {
		buf = wire.AppendStringField(buf, 1, m.Name)
	}
	if m.Count != 0 {
		buf = wire.AppendIntField(buf, 2, m.Count)
	}
	return buf, nil
}

func (m *pingMessage) DecodeWire(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.Name, err = d.String()
		case 2:
			m.Count, err = d.Int()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

func (m *pingMessage) EncodeJSON(e *jsontext.Encoder, reg Registry) error {
	e.StartObject()
	if m.Name != "" {
		e.StartField("name")
		e.PutString(m.Name)
	}
	if m.Count != 0 {
		e.StartField("count")
		e.PutInt(m.Count)
	}
	e.EndObject()
	return nil
}

func (m *pingMessage) DecodeJSON(s *jsontext.Scanner, reg Registry) error {
	if err := s.SkipRequiredObjectStart(); err != nil {
		return err
	}
	if s.SkipOptionalObjectEnd() {
		return nil
	}
	for {
		key, err := s.NextQuotedString()
		if err != nil {
			return err
		}
		if err := s.SkipRequiredColon(); err != nil {
			return err
		}
		switch key {
		case "name":
			m.Name, err = s.NextQuotedString()
		case "count":
			m.Count, err = s.NextInt()
		default:
			_, err = s.Skip()
		}
		if err != nil {
			return err
		}
		if s.SkipOptionalObjectEnd() {
			return nil
		}
		if err := s.SkipRequiredComma(); err != nil {
			return err
		}
	}
}

func (m *pingMessage) EncodeTextFormat(w *textfmt.Writer, reg Registry) error {
	if m.Name != "" {
		w.StringField("name", m.Name)
	}
	if m.Count != 0 {
		w.IntField("count", m.Count)
	}
	return nil
}

func (m *pingMessage) DecodeTextFormat(s *textfmt.Scanner, reg Registry) error {
	for !s.AtBodyEnd() {
		name, err := s.NextIdent()
		if err != nil {
			return err
		}
		switch name {
		case "name":
			if err := s.SkipColon(); err != nil {
				return err
			}
			m.Name, err = s.NextString()
		case "count":
			if err := s.SkipColon(); err != nil {
				return err
			}
			m.Count, err = s.NextInt()
		default:
			return &errors.SyntaxError{Offset: s.Offset(), Detail: "unknown field '" + name + "'"}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// sensorReading has two required fields (id, value) and one optional
// (unit). Presence is tracked explicitly, proto2 style
type sensorReading struct {
	ID       string
	Value    int64
	Unit     string
	hasID    bool
	hasValue bool
}

var _ Message = (*sensorReading)(nil)

func newSensorReading(id string, value int64, unit string) *sensorReading {
	return &sensorReading{ID: id, Value: value, Unit: unit, hasID: true, hasValue: true}
}

func (m *sensorReading) SchemaName() string { return "wiremsg.test.SensorReading" }
func (m *sensorReading) NewEmpty() Message  { return new(sensorReading) }
func (m *sensorReading) Reset()             { *m = sensorReading{} }

func (m *sensorReading) CheckInitialized() error {
	var missing []string
	if !m.hasID {
		missing = append(missing, "id")
	}
	if !m.hasValue {
		missing = append(missing, "value")
	}
	if missing != nil {
		return &errors.MissingFieldsError{Schema: m.SchemaName(), Fields: missing}
	}
	return nil
}

func (m *sensorReading) AppendWire(buf []byte, partial bool) ([]byte, error) {
	if !partial {
		if err := m.CheckInitialized(); err != nil {
			return buf, err
		}
	}
	if m.hasID {
		buf = wire.AppendStringField(buf, 1, m.ID)
	}
	if m.hasValue {
		buf = wire.AppendIntField(buf, 2, m.Value)
	}
	if m.Unit != "" {
		buf = wire.AppendStringField(buf, 3, m.Unit)
	}
	return buf, nil
}

func (m *sensorReading) DecodeWire(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.ID, err = d.String()
			m.hasID = err == nil
		case 2:
			m.Value, err = d.Int()
			m.hasValue = err == nil
		case 3:
			m.Unit, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

func (m *sensorReading) EncodeJSON(e *jsontext.Encoder, reg Registry) error {
	e.StartObject()
	if m.hasID {
		e.StartField("id")
		e.PutString(m.ID)
	}
	if m.hasValue {
		e.StartField("value")
		e.PutInt(m.Value)
	}
	if m.Unit != "" {
		e.StartField("unit")
		e.PutString(m.Unit)
	}
	e.EndObject()
	return nil
}

func (m *sensorReading) DecodeJSON(s *jsontext.Scanner, reg Registry) error {
	if err := s.SkipRequiredObjectStart(); err != nil {
		return err
	}
	if s.SkipOptionalObjectEnd() {
		return nil
	}
	for {
		key, err := s.NextQuotedString()
		if err != nil {
			return err
		}
		if err := s.SkipRequiredColon(); err != nil {
			return err
		}
		switch key {
		case "id":
			m.ID, err = s.NextQuotedString()
			m.hasID = err == nil
		case "value":
			m.Value, err = s.NextInt()
			m.hasValue = err == nil
		case "unit":
			m.Unit, err = s.NextQuotedString()
		default:
			_, err = s.Skip()
		}
		if err != nil {
			return err
		}
		if s.SkipOptionalObjectEnd() {
			return nil
		}
		if err := s.SkipRequiredComma(); err != nil {
			return err
		}
	}
}

func (m *sensorReading) EncodeTextFormat(w *textfmt.Writer, reg Registry) error {
	if m.hasID {
		w.StringField("id", m.ID)
	}
	if m.hasValue {
		w.IntField("value", m.Value)
	}
	if m.Unit != "" {
		w.StringField("unit", m.Unit)
	}
	return nil
}

func (m *sensorReading) DecodeTextFormat(s *textfmt.Scanner, reg Registry) error {
	for !s.AtBodyEnd() {
		name, err := s.NextIdent()
		if err != nil {
			return err
		}
		if err := s.SkipColon(); err != nil {
			return err
		}
		switch name {
		case "id":
			m.ID, err = s.NextString()
			m.hasID = err == nil
		case "value":
			m.Value, err = s.NextInt()
			m.hasValue = err == nil
		case "unit":
			m.Unit, err = s.NextString()
		default:
			return &errors.SyntaxError{Offset: s.Offset(), Detail: "unknown field '" + name + "'"}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// stampMillis is a well-known-style type: its JSON form is a bare
// integer, not an object
type stampMillis struct {
	Millis int64
}

var _ JSONScalar = (*stampMillis)(nil)

func (m *stampMillis) SchemaName() string { return "wiremsg.test.StampMillis" }
func (m *stampMillis) NewEmpty() Message  { return new(stampMillis) }
func (m *stampMillis) Reset()             { *m = stampMillis{} }

func (m *stampMillis) JSONScalarMessage() {}

func (m *stampMillis) CheckInitialized() error { return nil }

func (m *stampMillis) AppendWire(buf []byte, partial bool) ([]byte, error) {
	if m.Millis != 0 {
		buf = wire.AppendIntField(buf, 1, m.Millis)
	}
	return buf, nil
}

func (m *stampMillis) DecodeWire(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.Millis, err = d.Int()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

func (m *stampMillis) EncodeJSON(e *jsontext.Encoder, reg Registry) error {
	e.PutInt(m.Millis)
	return nil
}

func (m *stampMillis) DecodeJSON(s *jsontext.Scanner, reg Registry) error {
	v, err := s.NextInt()
	if err != nil {
		return err
	}
	m.Millis = v
	return nil
}

func (m *stampMillis) EncodeTextFormat(w *textfmt.Writer, reg Registry) error {
	if m.Millis != 0 {
		w.IntField("millis", m.Millis)
	}
	return nil
}

func (m *stampMillis) DecodeTextFormat(s *textfmt.Scanner, reg Registry) error {
	for !s.AtBodyEnd() {
		name, err := s.NextIdent()
		if err != nil {
			return err
		}
		if name != "millis" {
			return &errors.SyntaxError{Offset: s.Offset(), Detail: "unknown field '" + name + "'"}
		}
		if err := s.SkipColon(); err != nil {
			return err
		}
		m.Millis, err = s.NextInt()
		if err != nil {
			return err
		}
	}
	return nil
}

// envelopeMessage carries an Any as an ordinary field, exercising the
// wrapper adapter and registry threading through nested codecs
type envelopeMessage struct {
	Note  string
	Extra AnyMessage
}

var _ Message = (*envelopeMessage)(nil)

func (m *envelopeMessage) SchemaName() string { return "wiremsg.test.Envelope" }
func (m *envelopeMessage) NewEmpty() Message  { return new(envelopeMessage) }
func (m *envelopeMessage) Reset()             { *m = envelopeMessage{} }

func (m *envelopeMessage) CheckInitialized() error {
	return m.Extra.CheckInitialized()
}

func (m *envelopeMessage) AppendWire(buf []byte, partial bool) ([]byte, error) {
	if m.Note != "" {
		buf = wire.AppendStringField(buf, 1, m.Note)
	}
	if !m.Extra.IsEmpty() || m.Extra.TypeURL() != "" {
		sub, err := m.Extra.AppendWire(nil, partial)
		if err != nil {
			return buf, err
		}
		buf = wire.AppendBytesField(buf, 2, sub)
	}
	return buf, nil
}

func (m *envelopeMessage) DecodeWire(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.Note, err = d.String()
		case 2:
			var sub []byte
			sub, err = d.Bytes()
			if err == nil {
				err = m.Extra.DecodeWire(sub)
			}
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

func (m *envelopeMessage) EncodeJSON(e *jsontext.Encoder, reg Registry) error {
	e.StartObject()
	if m.Note != "" {
		e.StartField("note")
		e.PutString(m.Note)
	}
	if !m.Extra.IsEmpty() || m.Extra.TypeURL() != "" {
		e.StartField("extra")
		if err := m.Extra.EncodeJSON(e, reg); err != nil {
			return err
		}
	}
	e.EndObject()
	return nil
}

func (m *envelopeMessage) DecodeJSON(s *jsontext.Scanner, reg Registry) error {
	if err := s.SkipRequiredObjectStart(); err != nil {
		return err
	}
	if s.SkipOptionalObjectEnd() {
		return nil
	}
	for {
		key, err := s.NextQuotedString()
		if err != nil {
			return err
		}
		if err := s.SkipRequiredColon(); err != nil {
			return err
		}
		switch key {
		case "note":
			m.Note, err = s.NextQuotedString()
		case "extra":
			err = m.Extra.DecodeJSON(s, reg)
		default:
			_, err = s.Skip()
		}
		if err != nil {
			return err
		}
		if s.SkipOptionalObjectEnd() {
			return nil
		}
		if err := s.SkipRequiredComma(); err != nil {
			return err
		}
	}
}

func (m *envelopeMessage) EncodeTextFormat(w *textfmt.Writer, reg Registry) error {
	if m.Note != "" {
		w.StringField("note", m.Note)
	}
	if !m.Extra.IsEmpty() {
		w.StartMessage("extra")
		if err := m.Extra.EncodeTextFormat(w, reg); err != nil {
			return err
		}
		w.EndMessage()
	}
	return nil
}

func (m *envelopeMessage) DecodeTextFormat(s *textfmt.Scanner, reg Registry) error {
	for !s.AtBodyEnd() {
		name, err := s.NextIdent()
		if err != nil {
			return err
		}
		switch name {
		case "note":
			if err := s.SkipColon(); err != nil {
				return err
			}
			m.Note, err = s.NextString()
		case "extra":
			s.TrySkipColon()
			if err := s.SkipBodyStart(); err != nil {
				return err
			}
			if err := m.Extra.DecodeTextFormat(s, reg); err != nil {
				return err
			}
			err = s.SkipBodyEnd()
		default:
			return &errors.SyntaxError{Offset: s.Offset(), Detail: "unknown field '" + name + "'"}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// brokenMessage fails to encode; used to exercise the best-effort
// fallbacks
type brokenMessage struct{}

var _ Message = (*brokenMessage)(nil)

func (m *brokenMessage) SchemaName() string { return "wiremsg.test.Broken" }
func (m *brokenMessage) NewEmpty() Message  { return new(brokenMessage) }
func (m *brokenMessage) Reset()             {}

func (m *brokenMessage) CheckInitialized() error { return nil }

var errBrokenEncode = stderrors.New("broken message never encodes")

func (m *brokenMessage) AppendWire(buf []byte, partial bool) ([]byte, error) {
	return buf, errBrokenEncode
}

func (m *brokenMessage) DecodeWire(data []byte) error { return nil }

func (m *brokenMessage) EncodeJSON(e *jsontext.Encoder, reg Registry) error {
	e.StartObject()
	e.EndObject()
	return nil
}

func (m *brokenMessage) DecodeJSON(s *jsontext.Scanner, reg Registry) error {
	_, err := s.Skip()
	return err
}

func (m *brokenMessage) EncodeTextFormat(w *textfmt.Writer, reg Registry) error { return nil }

func (m *brokenMessage) DecodeTextFormat(s *textfmt.Scanner, reg Registry) error { return nil }

// newTestRegistry returns a registry with all sample types except
// brokenMessage (tests register it separately when needed)
func newTestRegistry() *TypeRegistry {
	r := NewTypeRegistry()
	r.Register(&pingMessage{})
	r.Register(&sensorReading{})
	r.Register(&stampMillis{})
	r.Register(&envelopeMessage{})
	return r
}
