// Package api provides HTTP REST API handlers for the tile merge game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session; body {"id"?, "seed"?, "tiles"?, "strict"?}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session with its board
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/board - Current board
//   - POST /api/sessions/{id}/move - {"direction": "up|down|left|right"}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["left", "up", ...]}
//   - POST /api/sessions/{id}/command - {"command": "ArrowLeft|reset|..."}
//   - POST /api/sessions/{id}/reset - Replace the board with a fresh one
//
// Other:
//   - GET /api - Endpoint index
//   - GET /api/health - Liveness probe
//   - GET /ws?session={id} - WebSocket board updates
//
// Unrecognized directions and commands are not errors: the response reports
// "recognized": false and the board is untouched.
//
// Errors are returned as JSON:
//
//	{"error": "session ab12: session not found"}
//
// with 404 for unknown sessions, 409 for duplicate IDs and 400 for malformed
// bodies, invalid IDs, tile lists that are not 16 long and empty bulk moves.
//
// Every response carries an X-Request-ID header, reused from the request when
// present, and every request is logged once through zap.
package api
