// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package wiremsg

import (
	"fmt"
	"strings"
	"sync"
)

// TypeURLPrefix is prepended to a schema name to form the default type
// identifier of a packed Any
const TypeURLPrefix = "type.e43.eu"

// TypeURLOf returns the default type identifier for a message type
func TypeURLOf(m Message) string {
	return TypeURLPrefix + "/" + m.SchemaName()
}

// typeNameFromURL extracts the qualified-name portion of a type
// identifier. Everything up to and including the final '/' is prefix
func typeNameFromURL(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}

// TypeRegistry maps qualified schema names to factories for the matching
// concrete message types. It is safe for concurrent lookup; registration
// normally happens once at init time
type TypeRegistry struct {
	mu        sync.RWMutex
	factories map[string]func() Message
}

var _ Registry = (*TypeRegistry)(nil)

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{factories: make(map[string]func() Message)}
}

// Register adds a message type, keyed by its schema name. Panics if the
// name is already taken: two types claiming one identifier is a
// programming error, not a runtime condition
func (r *TypeRegistry) Register(m Message) {
	name := m.SchemaName()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("wiremsg: duplicate registration of '%s'", name))
	}
	r.factories[name] = m.NewEmpty
}

// Lookup resolves a type identifier (with or without a URL prefix) to a
// factory for the matching type
func (r *TypeRegistry) Lookup(typeURL string) (func() Message, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typeNameFromURL(typeURL)]
	return f, ok
}

// The default registry (used whenever an operation receives a nil
// Registry). Generated code registers its types here from init
var DefaultRegistry = NewTypeRegistry()

// Register adds a message type to the default registry
func Register(m Message) {
	DefaultRegistry.Register(m)
}

func registryOrDefault(reg Registry) Registry {
	if reg == nil {
		return DefaultRegistry
	}
	return reg
}
