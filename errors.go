// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package wiremsg

import (
	"go.e43.eu/wiremsg/internal/errors"
)

// Sentinels for the library's failure classes, usable with errors.Is.
// The concrete errors carry detail (offsets, names) and match these
var (
	// Grammar violation detected while scanning input
	ErrMalformedInput error = errors.ErrMalformedInput

	// Unpack target type does not match the container's identifier
	ErrTypeMismatch error = errors.ErrTypeMismatch

	// A required type resolution found no registry entry
	ErrUnresolvableType error = errors.ErrUnresolvableType

	// A message failed its required-field check during encode preflight
	ErrMissingRequiredFields error = errors.ErrMissingRequiredFields

	// Unpack called on a container with an identifier but no payload
	ErrNoPayload error = errors.ErrNoPayload

	// Undecodable binary wire data
	ErrMalformedWireData error = errors.ErrMalformedWireData
)
