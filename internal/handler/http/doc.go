// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API: starting, inspecting, and cancelling sync runs, plus read access to
// the synced game history. Cross-cutting concerns such as request tracing
// and access logging are handled in this package before requests are
// delegated to the service layer.
package http
