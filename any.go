// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package wiremsg

import (
	"bytes"
	"strings"

	"github.com/spaolacci/murmur3"

	"go.e43.eu/wiremsg/internal/errors"
	"go.e43.eu/wiremsg/jsontext"
	"go.e43.eu/wiremsg/textfmt"
)

// PayloadState identifies which payload slot of an Any is populated.
// Exactly one slot is ever populated; StateEmpty is the valid "empty
// Any" state
type PayloadState uint8

const (
	StateEmpty PayloadState = iota
	StateRaw
	StateMessage
	StateJSON
)

func (s PayloadState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateRaw:
		return "raw"
	case StateMessage:
		return "message"
	case StateJSON:
		return "deferred-json"
	default:
		return "invalid"
	}
}

// Any is a polymorphic container holding a message whose concrete type
// need not be known to the reader, identified by a type identifier
// string ("<prefix>/<qualified.Name>").
//
// The payload lives in exactly one of three slots, whichever was
// cheapest to retain when the container was populated:
//
//   - raw: the binary wire encoding of the wrapped message, opaque
//   - msg: a fully decoded, strongly typed instance
//   - jsonFragment: the raw field text of a JSON object whose concrete
//     type could not (or need not) be resolved at decode time
//
// Projection operations (RawBytes, Unpack, EncodeJSON, ...) transcode
// between the slots on demand, consulting a Registry where resolution
// is required. Assigning any slot clears the others; there is never
// stale multi-slot state.
//
// A zero Any is a valid empty container.
type Any struct {
	typeURL string
	state   PayloadState

	raw          []byte
	msg          Message
	jsonFragment string

	// cachedWire memoizes the binary projection of the msg slot. It is
	// derived state only: excluded from Equal and Hash, invalidated
	// whenever a payload slot is assigned
	cachedWire []byte
}

// reset clears the identifier and every payload slot
func (a *Any) reset() {
	a.typeURL = ""
	a.state = StateEmpty
	a.raw = nil
	a.msg = nil
	a.jsonFragment = ""
	a.cachedWire = nil
}

// TypeURL returns the container's type identifier ("" when unset)
func (a *Any) TypeURL() string {
	return a.typeURL
}

// TypeName returns the qualified-name portion of the type identifier
func (a *Any) TypeName() string {
	return typeNameFromURL(a.typeURL)
}

// State reports which payload slot is populated
func (a *Any) State() PayloadState {
	return a.state
}

// IsEmpty reports whether no payload slot is populated
func (a *Any) IsEmpty() bool {
	return a.state == StateEmpty
}

// Is reports whether the container claims to hold a message of m's
// type. It compares the qualified-name portion of the type identifier
// against m.SchemaName() only; it is cheap and independent of which
// payload slot is populated
func (a *Any) Is(m Message) bool {
	if m == nil || a.typeURL == "" {
		return false
	}
	return typeNameFromURL(a.typeURL) == m.SchemaName()
}

// Pack stores m as the typed-instance payload under its default type
// identifier. It cannot fail: validation of m is deferred until a
// projection needs it
func (a *Any) Pack(m Message) {
	a.PackAs(m, TypeURLOf(m))
}

// PackAs is Pack with an explicit type identifier override
func (a *Any) PackAs(m Message, typeURL string) {
	a.reset()
	a.typeURL = typeURL
	a.state = StateMessage
	a.msg = m
}

// SetRaw stores the binary wire encoding of a message under the given
// type identifier, without interpreting it. This is the population path
// used when decoding the container from binary wire data
func (a *Any) SetRaw(typeURL string, data []byte) {
	a.reset()
	a.typeURL = typeURL
	a.state = StateRaw
	a.raw = append([]byte(nil), data...)
}

// DecodeJSON populates the container from a JSON object.
//
// The reserved "@type" key, if present, becomes the type identifier.
// Every other member is captured as raw text, byte for byte, into the
// deferred-JSON slot: the concrete type needed to interpret the content
// may not be registered locally, and capturing verbatim means a later
// re-emit loses nothing (including exact numeric formatting). No
// registry is consulted here; resolution happens on projection.
//
// An object with no members beyond "@type" leaves the container empty
func (a *Any) DecodeJSON(s *jsontext.Scanner) error {
	a.reset()

	if err := s.SkipRequiredObjectStart(); err != nil {
		return err
	}

	var typeURL string
	var frag []byte
	members := 0

	if !s.SkipOptionalObjectEnd() {
		for {
			// Keys are captured raw so non-type members round-trip
			// byte-identically; "@type" is matched on its exact
			// unescaped spelling
			rawKey, err := s.Skip()
			if err != nil {
				return err
			}
			if len(rawKey) < 2 || rawKey[0] != '"' {
				return &errors.SyntaxError{Offset: s.Offset(), Detail: "expected object key"}
			}
			if err := s.SkipRequiredColon(); err != nil {
				return err
			}

			if rawKey == `"@type"` {
				typeURL, err = s.NextQuotedString()
				if err != nil {
					return err
				}
			} else {
				rawValue, err := s.Skip()
				if err != nil {
					return err
				}
				if members > 0 {
					frag = append(frag, ',')
				}
				frag = append(frag, rawKey...)
				frag = append(frag, ':')
				frag = append(frag, rawValue...)
				members++
			}

			if s.SkipOptionalObjectEnd() {
				break
			}
			if err := s.SkipRequiredComma(); err != nil {
				return err
			}
		}
	}

	a.typeURL = typeURL
	if members > 0 {
		a.state = StateJSON
		a.jsonFragment = string(frag)
	}
	return nil
}

// DecodeTextFormat populates the container from text-format input. The
// scanner must be positioned at the '{' opening the nested body; the
// bracketed type identifier has already been read by the caller.
//
// Text format, unlike JSON, cannot defer: its grammar is type driven
// and there is no way to capture an uninterpreted body. An unregistered
// identifier is therefore an immediate failure
func (a *Any) DecodeTextFormat(typeURL string, s *textfmt.Scanner, reg Registry) error {
	a.reset()

	reg = registryOrDefault(reg)
	factory, ok := reg.Lookup(typeURL)
	if !ok {
		return &errors.UnresolvableTypeError{TypeURL: typeURL}
	}

	m := factory()
	if err := s.SkipBodyStart(); err != nil {
		return err
	}
	if err := m.DecodeTextFormat(s, reg); err != nil {
		return err
	}
	if err := s.SkipBodyEnd(); err != nil {
		return err
	}
	// The verbose Any grammar allows exactly the type tag plus one
	// nested value
	if !s.AtBodyEnd() {
		return &errors.SyntaxError{Offset: s.Offset(), Detail: "Any body permits a single nested value"}
	}

	a.typeURL = typeURL
	a.state = StateMessage
	a.msg = m
	return nil
}

// encodeMessage materializes (and memoizes) the binary form of the
// typed-instance slot. Partial mode: the container does not enforce the
// wrapped message's completeness at this layer
func (a *Any) encodeMessage() ([]byte, error) {
	if a.cachedWire != nil {
		return a.cachedWire, nil
	}
	b, err := a.msg.AppendWire(nil, true)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	a.cachedWire = b
	return b, nil
}

// RawBytes projects the wrapped message into its binary wire form (of
// the wrapped message, not of the container).
//
// This is the library's one best-effort operation: it returns an empty
// slice rather than failing when the payload cannot be rendered as
// bytes (no payload, unresolvable deferred JSON, encode error). It is
// used opportunistically — by the wrapper's binary encoding and by
// Equal/Hash — where a hard failure has nowhere to go. Callers needing
// strict semantics use Unpack or CheckInitialized first.
//
// Resolution order: the raw slot is returned as-is; a typed instance is
// encoded (and the encoding cached); deferred JSON is transcoded
// through the registry
func (a *Any) RawBytes(reg Registry) []byte {
	switch a.state {
	case StateRaw:
		return a.raw
	case StateMessage:
		b, err := a.encodeMessage()
		if err != nil {
			return nil
		}
		return b
	case StateJSON:
		if a.typeURL == "" {
			return nil
		}
		m, err := a.resolveJSON(registryOrDefault(reg))
		if err != nil {
			return nil
		}
		b, err := m.AppendWire(nil, true)
		if err != nil {
			return nil
		}
		return b
	default:
		return nil
	}
}

// resolveJSON decodes the deferred fragment into a fresh instance of
// the registered type. The container itself stays in the deferred
// state: a failed (or successful) resolution is never cached, so a type
// registered later is picked up on the next access
func (a *Any) resolveJSON(reg Registry) (Message, error) {
	factory, ok := reg.Lookup(a.typeURL)
	if !ok {
		return nil, &errors.UnresolvableTypeError{TypeURL: a.typeURL}
	}
	m := factory()
	if err := a.decodeFragmentInto(m, reg); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeFragmentInto decodes the deferred fragment into m, restoring
// the object braces the fragment omits. Scalar-form messages read the
// conventional "value" member
func (a *Any) decodeFragmentInto(m Message, reg Registry) error {
	s := jsontext.NewScanner("{" + a.jsonFragment + "}")

	if _, scalar := m.(JSONScalar); !scalar {
		return m.DecodeJSON(s, reg)
	}

	if err := s.SkipRequiredObjectStart(); err != nil {
		return err
	}
	for {
		if s.SkipOptionalObjectEnd() {
			return &errors.SyntaxError{Offset: s.Offset(), Detail: "scalar Any content has no \"value\" member"}
		}
		key, err := s.NextQuotedString()
		if err != nil {
			return err
		}
		if err := s.SkipRequiredColon(); err != nil {
			return err
		}
		if key == "value" {
			return m.DecodeJSON(s, reg)
		}
		if _, err := s.Skip(); err != nil {
			return err
		}
		if !s.SkipOptionalObjectEnd() {
			if err := s.SkipRequiredComma(); err != nil {
				return err
			}
			continue
		}
		return &errors.SyntaxError{Offset: s.Offset(), Detail: "scalar Any content has no \"value\" member"}
	}
}

// Unpack decodes the wrapped message into target, which must be of the
// type the container's identifier names (a name-string comparison, not
// a structural check). The target is fully replaced, never merged.
//
// On type mismatch the target is untouched. A container with an
// identifier but no payload in any slot fails with ErrNoPayload.
//
// A typed-instance payload always travels through its wire form, even
// into a same-typed target: there is no direct-assignment fast path, so
// an instance whose encoding fails cannot be unpacked either
func (a *Any) Unpack(target Message, reg Registry) error {
	if target == nil {
		return errors.ErrNilMessage
	}
	want := target.SchemaName()
	if got := typeNameFromURL(a.typeURL); got != want {
		return &errors.TypeMismatchError{Want: want, Got: got}
	}

	switch a.state {
	case StateMessage:
		// Covers both a same-typed instance and an instance of a
		// different type packed under an overriding identifier: either
		// way the value travels through its wire form, which also
		// guarantees target and container never alias
		b, err := a.encodeMessage()
		if err != nil {
			return err
		}
		target.Reset()
		return target.DecodeWire(b)
	case StateRaw:
		target.Reset()
		return target.DecodeWire(a.raw)
	case StateJSON:
		target.Reset()
		return a.decodeFragmentInto(target, registryOrDefault(reg))
	default:
		return errors.ErrNoPayload
	}
}

// EncodeJSON writes the container's JSON form: the wrapped message's
// members alongside an "@type" member, `{}` for an empty container.
//
// A deferred fragment is re-emitted verbatim, preserving the original
// text exactly. A raw payload must transcode through the registry —
// binary bytes are otherwise uninterpretable as JSON — and fails with
// ErrUnresolvableType when the type is unknown
func (a *Any) EncodeJSON(e *jsontext.Encoder, reg Registry) error {
	switch a.state {
	case StateMessage:
		return encodeMessageJSON(e, a.typeURL, a.msg, registryOrDefault(reg))

	case StateRaw:
		reg = registryOrDefault(reg)
		factory, ok := reg.Lookup(a.typeURL)
		if !ok {
			return &errors.UnresolvableTypeError{TypeURL: a.typeURL}
		}
		m := factory()
		if err := m.DecodeWire(a.raw); err != nil {
			return err
		}
		return encodeMessageJSON(e, a.typeURL, m, reg)

	case StateJSON:
		e.StartObject()
		if a.typeURL != "" {
			e.StartField("@type")
			e.PutString(a.typeURL)
		}
		e.Append(a.jsonFragment)
		e.EndObject()
		return nil

	default:
		e.StartObject()
		if a.typeURL != "" {
			e.StartField("@type")
			e.PutString(a.typeURL)
		}
		e.EndObject()
		return nil
	}
}

func encodeMessageJSON(e *jsontext.Encoder, typeURL string, m Message, reg Registry) error {
	e.StartObject()
	e.StartField("@type")
	e.PutString(typeURL)

	if _, scalar := m.(JSONScalar); scalar {
		e.StartField("value")
		if err := m.EncodeJSON(e, reg); err != nil {
			return err
		}
	} else {
		sub := jsontext.NewEncoder()
		if err := m.EncodeJSON(sub, reg); err != nil {
			return err
		}
		body := strings.TrimSuffix(strings.TrimPrefix(sub.String(), "{"), "}")
		e.Append(body)
	}

	e.EndObject()
	return nil
}

// EncodeTextFormat writes the container's text form: a bracketed type
// identifier followed by the wrapped message's body. Raw and deferred
// payloads must be resolvable; an empty container emits nothing
func (a *Any) EncodeTextFormat(w *textfmt.Writer, reg Registry) error {
	reg = registryOrDefault(reg)

	var m Message
	switch a.state {
	case StateMessage:
		m = a.msg
	case StateRaw:
		factory, ok := reg.Lookup(a.typeURL)
		if !ok {
			return &errors.UnresolvableTypeError{TypeURL: a.typeURL}
		}
		m = factory()
		if err := m.DecodeWire(a.raw); err != nil {
			return err
		}
	case StateJSON:
		var err error
		m, err = a.resolveJSON(reg)
		if err != nil {
			return err
		}
	default:
		return nil
	}

	w.StartAnyBody(a.typeURL)
	if err := m.EncodeTextFormat(w, reg); err != nil {
		return err
	}
	w.EndMessage()
	return nil
}

// CheckInitialized is the preflight run before any binary encode
// traversal, so invalid content fails here rather than after partial
// bytes have been emitted.
//
// A typed instance must pass its own completeness check. A deferred
// fragment needs a registry-resolvable identifier (binary-encoding JSON
// content of an unknown type is impossible). Raw bytes are opaque and
// pass through; an empty container is trivially valid
func (a *Any) CheckInitialized(reg Registry) error {
	switch a.state {
	case StateMessage:
		return a.msg.CheckInitialized()
	case StateJSON:
		if _, ok := registryOrDefault(reg).Lookup(a.typeURL); !ok || a.typeURL == "" {
			return &errors.UnresolvableTypeError{TypeURL: a.typeURL}
		}
		return nil
	default:
		return nil
	}
}

// rawForCompare returns the byte form used by Equal and Hash. Only the
// raw and typed-instance slots have one; deferred JSON is never
// transcoded just for comparison. An encode failure degrades to empty
// bytes, matching RawBytes
func (a *Any) rawForCompare() ([]byte, bool) {
	switch a.state {
	case StateRaw:
		return a.raw, true
	case StateMessage:
		b, err := a.encodeMessage()
		if err != nil {
			return nil, true
		}
		return b, true
	case StateJSON:
		return nil, false
	default:
		return nil, true
	}
}

// Equal reports whether two containers hold the same type identifier
// and byte-identical raw forms.
//
// This relation is intentionally weak: no transcoding is performed for
// comparison, so a container holding deferred JSON compares unequal to
// everything — including one holding the semantically identical message
// in another slot. This mirrors the behaviour callers already depend
// on; do not "fix" it to semantic equality
func (a *Any) Equal(b *Any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.typeURL != b.typeURL {
		return false
	}
	ab, aok := a.rawForCompare()
	bb, bok := b.rawForCompare()
	if !aok || !bok {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Hash returns a 64-bit hash consistent with Equal: equal containers
// hash equal. The converse does not hold — differently-represented but
// semantically equal containers may collide or differ arbitrarily,
// which is acceptable given the weak equality relation
func (a *Any) Hash() uint64 {
	h := murmur3.New64()
	h.Write([]byte(a.typeURL))
	h.Write([]byte{0})
	if b, ok := a.rawForCompare(); ok {
		h.Write(b)
	} else {
		h.Write([]byte(a.jsonFragment))
	}
	return h.Sum64()
}

// Clone returns a deep copy: mutating the clone (or a message unpacked
// from it) never affects the original. A typed instance is duplicated
// through its wire form; if that encoding fails, the clone degrades to
// an empty payload under the same lossy policy as RawBytes
func (a *Any) Clone() *Any {
	c := &Any{typeURL: a.typeURL, state: a.state}
	switch a.state {
	case StateRaw:
		c.raw = append([]byte(nil), a.raw...)
	case StateMessage:
		b, err := a.encodeMessage()
		if err != nil {
			c.state = StateEmpty
			break
		}
		m := a.msg.NewEmpty()
		if err := m.DecodeWire(b); err != nil {
			c.state = StateEmpty
			break
		}
		c.msg = m
	case StateJSON:
		c.jsonFragment = a.jsonFragment
	}
	return c
}
