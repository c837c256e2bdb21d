// Package client contains the transport used to talk to the documentation
// backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): submit one
//     source file, get back the raw successful response.
//  2. A concrete HTTP implementation (see HTTPClient) that posts the file as
//     multipart form data to {baseURL}/api/generate and maps failures.
//
// # Error Handling
//
// Connectivity problems are wrapped with ErrUnavailable and can be matched
// with errors.Is. Non-2xx answers are returned as *ServerError whose message
// is the server's "detail" field or, failing that, "Error: <status> <text>".
//
// There is no retry. A timeout applies only when one was configured; the
// request otherwise runs until the context is cancelled.
package client
