// Package mcp exposes the tile merge game to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool calls the REST API and renders the
// response as plain text, with boards drawn as ASCII grids.
//
// MCP Tools:
//   - create_session: Create a session, optionally with a seed or 16 starting tiles
//   - list_sessions: List all active sessions
//   - get_session: Session details and board
//   - board_state: Current board
//   - move: Slide tiles up, down, left or right
//   - bulk_move: Several moves in one call
//   - reset_game: Replace the board with a fresh one
//   - game_instructions: Rules of the game
//
// Transport Modes:
//   - Stdio: the mcp command serves GetMCPServer over stdin/stdout
//   - HTTP: the server command mounts it at /mcp
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080", logger)
//	server.ServeStdio(client.GetMCPServer())
package mcp
