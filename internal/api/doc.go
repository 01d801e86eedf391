// Package api provides the HTTP client for the dropzone manifest service.
//
// Resource paths live under the configured base prefix: /skydiver,
// /passenger, /parachute (each with POST, DELETE /:id, and PUT /:id/block
// and /:id/unblock), and /exitplan with its dispatch and undo-dispatch
// actions. Bodies are JSON both ways.
//
// A non-2xx response becomes an *Error carrying the status, the message
// taken from the body's message/error/title field when present (else a
// generic "HTTP <code>"), and for 400 responses the field-level error map.
// Status 0 marks a request that never reached the service. The IsConflict,
// IsBadInput, and IsServerFault helpers classify errors for the message
// surface; all three classes are recoverable, and the synchronization layer
// always follows a failed mutation with a refresh.
//
// The tandem instructor link is deliberately absent from the wire slot
// shape; the service does not store it, and the client re-derives it from
// shared parachute ids after every fetch.
package api
