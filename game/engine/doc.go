// Package engine provides the core rules of the tile merge game.
//
// The engine package implements:
//   - The fixed 4x4 board and its construction from randomness or literal tiles
//   - Directional moves: per-line merge followed by pack
//   - Post-move spawning of a 2 or 4 into a random empty cell
//   - A command-driven controller that gates spawning on board changes
//
// Core Types:
//
// Board holds the 16 cell values. GameEngine owns a Board and a RandomSource
// and applies Commands to it. RandomSource is injected so that tests and
// replays can use deterministic draws.
//
// Usage:
//
//	eng := engine.NewEngine(engine.CryptoSource{})
//
//	// Move every row to the right, spawning a tile if anything moved
//	changed := eng.Move(engine.Right)
//	tiles := eng.Snapshot()
//
//	// Build a board from literal tiles for tests
//	board, err := engine.FromTiles([]int{
//		0, 0, 2, 2,
//		0, 0, 0, 0,
//		0, 0, 0, 0,
//		0, 0, 0, 0,
//	})
//
// Move Rules:
//
// Each line is walked from the edge the move pushes toward. Equal values
// merge pairwise, nearest to that edge first, and a merged cell never merges
// again in the same move. The survivors then slide toward the edge with
// their order preserved. A move that changes nothing does not spawn a tile.
// There is no win or loss detection and no score.
package engine
