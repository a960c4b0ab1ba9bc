// Package session provides session management for the tile merge game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the session manager that handles all session operations. Each
// service.Session owns exactly one engine.GameEngine together with its
// creation and last access times.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters drawn from crypto/rand. Callers may
// supply their own ID instead; it must be 1 to 64 characters of letters,
// digits, '-' or '_'. Lookups are case-insensitive.
//
// Concurrency:
//
// The manager map is guarded by a RWMutex. Commands against a single
// session are serialized by the session's own lock (see service.Session.Do),
// so different sessions never contend with each other.
//
// Usage:
//
//	manager := session.NewManagerWithLogger(logger)
//
//	sess, err := manager.Create("", service.CreateOptions{})
//	if err != nil {
//		return err
//	}
//
//	sess.Do(func(e *engine.GameEngine) {
//		e.Move(engine.Left)
//	})
//
// Sessions live in memory only. They are removed explicitly with Delete or
// by CleanupExpiredSessions once they have been idle longer than a TTL.
package session
