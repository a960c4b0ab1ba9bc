package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wricardo/tilemerge/game/engine"
	"github.com/wricardo/tilemerge/game/service"
	"github.com/wricardo/tilemerge/internal/logging"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
	logger     *zap.Logger
}

// NewClient creates a new MCP client that calls the REST API at baseURL
func NewClient(baseURL string, logger *zap.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.OrNop(logger),
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Merge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Merge - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A 4x4 board of numbered tiles. Every move slides all tiles toward one edge;
equal neighbours merge into one tile of twice the value. A move that changes
the board spawns one new tile (2 or 4) in a random empty cell.

AVAILABLE TOOLS:
- create_session: Create a new board (optional id, seed, tiles)
- list_sessions: List all active sessions
- get_session: Get session details and its board
- board_state: Get the current board
- move: Single move (up/down/left/right)
- bulk_move: Several moves in one call
- reset_game: Replace the board with a fresh one
- game_instructions: Rules and tips`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session. Pass a seed for reproducible spawns or 16 tiles to start from a known board.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Requested session ID (optional, 1-64 of A-Z a-z 0-9 _ -)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed (optional)",
				},
				"tiles": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "16 row-major tile values, 0 for empty (optional)",
				},
				"strict": map[string]interface{}{
					"type":        "boolean",
					"description": "Reject tiles that are not 0 or a power of two (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Apply several moves in order (at most %d per call)", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Directions to apply in order",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Replace the board with a fresh one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var opts service.CreateOptions
	opts.ID, _ = args["session_id"].(string)

	if raw, ok := args["seed"]; ok {
		seed, err := toUint64(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("seed: %v", err)), nil
		}
		opts.Seed = &seed
	}

	if raw, ok := args["tiles"].([]interface{}); ok {
		opts.Tiles = make([]int, 0, len(raw))
		for _, v := range raw {
			n, ok := v.(float64)
			if !ok || n != math.Trunc(n) {
				return mcp.NewToolResultError(fmt.Sprintf("tiles: %v is not an integer", v)), nil
			}
			opts.Tiles = append(opts.Tiles, int(n))
		}
	}

	opts.Strict, _ = args["strict"].(bool)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", opts, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Created " + formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		maxTile := 0
		if s.Board != nil {
			maxTile = s.Board.MaxTile
		}
		fmt.Fprintf(&b, "- %s (Max tile: %d, Created: %s)\n",
			s.ID, maxTile, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var board service.BoardView
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID+"/board", nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&board)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}
	direction, _ := request.GetArguments()["direction"].(string)

	var result service.MoveResult
	body := map[string]string{"direction": direction}
	if err := c.apiCall(ctx, "POST", "/api/sessions/"+sessionID+"/move", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}
	movesRaw, _ := request.GetArguments()["moves"].([]interface{})

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	var result service.BulkMoveResult
	body := map[string]interface{}{"moves": moves}
	if err := c.apiCall(ctx, "POST", "/api/sessions/"+sessionID+"/bulk-move", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	var response struct {
		Message string             `json:"message"`
		Board   *service.BoardView `json:"board"`
	}
	if err := c.apiCall(ctx, "POST", "/api/sessions/"+sessionID+"/reset", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatBoard(response.Board))), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Tile Merge - Instructions

BOARD:
A 4x4 grid. Each cell is empty (shown as .) or holds a power of two.
A new game starts with three tiles, each a 2 or a 4.

MOVES:
- up, down, left, right slide every tile toward that edge.
- Two equal tiles that meet merge into one tile of their sum.
- The pair nearest the edge merges first: [2 2 2 .] moved left is [4 2 . .].
- A tile produced by a merge does not merge again in the same move:
  [2 2 4 .] moved left is [4 4 . .].
- Rows (or columns) move independently.

SPAWNING:
- If a move changed the board, one new tile appears in a random empty cell.
- A new tile is 2 or 4 with equal chance.
- If nothing moved, nothing spawns.

COMMANDS:
- Unknown directions are ignored; the board is left as it was.
- reset_game replaces the board with a fresh three-tile start.
- bulk_move applies up to 50 moves in order; each one spawns only if it
  changed the board.

There is no score and no game-over detection: keep merging as long as you like.`

// requireSessionID extracts session_id, or an error result when it is missing.
func requireSessionID(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	sessionID, _ := request.GetArguments()["session_id"].(string)
	if sessionID == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return sessionID, nil
}

func toUint64(v interface{}) (uint64, error) {
	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%v is not a number", v)
	}
	if n < 0 || n != math.Trunc(n) || n >= math.MaxUint64 {
		return 0, fmt.Errorf("%v is not a non-negative integer", v)
	}
	return uint64(n), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	if session.Seed != nil {
		fmt.Fprintf(&b, "Seed: %d\n", *session.Seed)
	}
	fmt.Fprintf(&b, "Created: %s\n\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(formatBoard(session.Board))
	return b.String()
}

// formatBoard renders a board as a fixed-width ASCII grid.
func formatBoard(board *service.BoardView) string {
	if board == nil || len(board.Tiles) != engine.CellCount {
		return "No board available"
	}

	var b strings.Builder
	separator := strings.Repeat("+------", engine.Size) + "+\n"

	b.WriteString(separator)
	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			v := board.Tiles[row*engine.Size+col]
			if v == 0 {
				b.WriteString("|    . ")
			} else {
				fmt.Fprintf(&b, "|%5d ", v)
			}
		}
		b.WriteString("|\n")
		b.WriteString(separator)
	}

	fmt.Fprintf(&b, "Max tile: %d | Empty cells: %d\n", board.MaxTile, board.EmptyCells)
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	switch {
	case !result.Recognized:
		b.WriteString("✗ Unrecognized direction; board unchanged\n")
	case result.Changed:
		fmt.Fprintf(&b, "✓ %s\n", result.Command)
	default:
		fmt.Fprintf(&b, "• %s: nothing moved\n", result.Command)
	}
	if result.Spawned {
		b.WriteString("New tile spawned\n")
	}

	b.WriteString("\n" + formatBoard(result.Board))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", sessionID)
	fmt.Fprintf(&b, "Executed %d/%d moves, %d changed the board\n",
		result.MovesExecuted, result.RequestedMoves, result.ChangedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to the first %d moves\n", result.Limit)
	}

	if len(result.Steps) > 0 {
		b.WriteString("Steps:\n")
		for _, step := range result.Steps {
			status := "✓"
			switch {
			case !step.Recognized:
				status = "ignored"
			case !step.Changed:
				status = "no-op"
			}
			fmt.Fprintf(&b, "  %d. %s %s\n", step.Idx, step.Input, status)
		}
	}

	b.WriteString("\n" + formatBoard(result.Board))
	return b.String()
}
