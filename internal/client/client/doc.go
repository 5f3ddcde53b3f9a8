// Package client contains the HTTP clients fcpanel uses to talk to its two
// backends.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts: AuthClient (signup, signin, current user)
//     and VMClient (create, list, get, delete, start, stop).
//  2. Concrete HTTP/JSON implementations, HTTPAuthClient and HTTPVMClient,
//     sharing one request helper that sets JSON headers, a request id and the
//     bearer token, and turns every failure into an *Error.
//
// # Error Handling
//
// Every failure is an *Error tagged with a Kind (transport, status, malformed,
// validation, unauthenticated) and a single human-readable Detail. Callers
// switch on the kind with KindOf or errors.As instead of matching strings.
// errors.Is(err, ErrUnavailable) and errors.Is(err, ErrUnauthorized) also work.
//
// # Concurrency & Contexts
//
// Clients hold no per-user state and are safe for concurrent use. Every call
// takes a context; no timeout is applied unless the *http.Client has one.
package client
