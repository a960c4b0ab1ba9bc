// Package service provides the business logic layer for the tile merge game.
//
// The service package implements:
//   - Multi-session game management
//   - Command dispatch for single, bulk and raw-input moves
//   - Board views shared by every transport
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine, and every command runs
// under that session's lock, so a move is applied as a whole before any
// reader sees the board.
//
// Usage:
//
//	sessionMgr := session.NewManagerWithLogger(logger)
//	gameService := service.NewGameService(sessionMgr, logger)
//
//	// Create a new session
//	info, err := gameService.CreateSession(ctx, service.CreateOptions{})
//	if err != nil {
//		return err
//	}
//
//	// Execute moves
//	result, err := gameService.Move(ctx, info.ID, "left")
//
// Errors:
//
// Lookups of unknown sessions wrap ErrSessionNotFound. A board built from the
// wrong number of tiles wraps engine.ErrInvalidLength. Unrecognized commands
// are not errors; they are reported with Recognized set to false.
package service
