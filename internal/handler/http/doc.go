// Package http implements the HTTP transport of the invisible wallet.
//
// It exposes route wiring, request handlers and middleware used by the REST
// API. Platform authentication, request tracing, access logging and request
// metrics are handled in this package before requests are delegated to the
// service layer. Service error kinds are mapped to status codes here.
package http
