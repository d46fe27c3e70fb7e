// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created: HTTP handler and address are required")
	errListen              = errors.New("cannot listen on HTTP address")
	errServe               = errors.New("HTTP server stopped unexpectedly")
	errShutdown            = errors.New("HTTP server did not shut down cleanly")
)
