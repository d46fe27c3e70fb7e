// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, identifier generation, and platform JWT
// token generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PlatformIDCtxKey is the key used to store the authenticated platform
// identifier in the context. It is set by the platform authentication
// middleware from the bearer token subject.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.PlatformIDCtxKey, "app-1")
var PlatformIDCtxKey = contextKey("platformID")

// GetPlatformIDFromContext retrieves the platform identifier from the context.
//
// Returns ok == false when the value is missing, empty or has an unexpected type.
func GetPlatformIDFromContext(ctx context.Context) (string, bool) {
	platformID, ok := ctx.Value(PlatformIDCtxKey).(string)
	return platformID, ok && platformID != ""
}
