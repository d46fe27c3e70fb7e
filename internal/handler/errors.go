// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address
	// is configured. This is a fatal misconfiguration.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoTokenSignKey is returned when platform tokens could not be
	// verified because no sign key is configured.
	errNoTokenSignKey = errors.New("platform token sign key is not configured")
)
