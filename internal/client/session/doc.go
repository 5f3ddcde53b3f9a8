// Package session persists the signed-in state of the CLI: the bearer token
// and the cached profile of the current user.
//
// The state survives restarts in a small SQLite file and is wiped on logout.
// Callers depend on the Store interface; SQLiteStore is the production
// implementation and MemoryStore backs tests.
package session
