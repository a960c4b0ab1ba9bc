// Package websocket provides WebSocket transport for the tile merge game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Whole-board broadcasts after every change
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client has a read pump and a write pump
// goroutine; the hub's event loop owns registration and fan-out.
//
// Message Protocol:
//
// Each frame carries one JSON Message:
//
//	{"session_id": "a1b2", "event": "board_changed", "board": {"tiles": [...], ...}}
//
// The board is always sent whole. Clients redraw from it and never patch
// individual tiles. Messages sent by clients are read and discarded.
//
// Session Integration:
//
// Clients choose a session with the query parameter ?session=ID. Broadcasts
// reach only the clients of that session.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	hub.BroadcastBoard(sessionID, view)
//
// Shutdown:
//
// Run returns when its context is cancelled. It closes every client's send
// channel, which makes the write pump send a close frame and exit.
package websocket
