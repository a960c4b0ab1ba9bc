package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wricardo/tilemerge/game/engine"
	"github.com/wricardo/tilemerge/internal/logging"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	logger   *zap.Logger
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, logger *zap.Logger) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		logger:   logging.OrNop(logger),
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(opts.ID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created", zap.String("session_id", sess.ID))
	return sess.Info(), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Info(), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sess.Info())
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// Move executes a single directional move. Anything other than a direction
// name is ignored and reported as unrecognized.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var result *MoveResult
	sess.Do(func(e *engine.GameEngine) {
		d, ok := engine.ParseDirection(direction)
		if !ok {
			result = newMoveResult(engine.Outcome{}, e)
			return
		}
		result = newMoveResult(e.Handle(engine.Command(d.String())), e)
	})

	s.logMove(sessionID, direction, result)
	return result, nil
}

// Command executes any controller command, including reset.
func (s *gameServiceImpl) Command(ctx context.Context, sessionID, raw string) (*MoveResult, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var result *MoveResult
	sess.Do(func(e *engine.GameEngine) {
		result = newMoveResult(e.HandleInput(raw), e)
	})

	s.logMove(sessionID, raw, result)
	return result, nil
}

// BulkMove executes multiple moves in sequence. Each move is gated on its
// own: an unrecognized or no-op entry does not stop the ones after it.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error) {
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{RequestedMoves: len(moves)}
	if len(moves) > engine.MaxBulkMoves {
		moves = moves[:engine.MaxBulkMoves]
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
	}

	sess.Do(func(e *engine.GameEngine) {
		result.Steps = make([]StepInfo, 0, len(moves))
		for i, raw := range moves {
			step := StepInfo{Idx: i + 1, Input: raw}
			if d, ok := engine.ParseDirection(raw); ok {
				out := e.Handle(engine.Command(d.String()))
				step.Recognized = out.Recognized
				step.Changed = out.Changed
				step.Spawned = out.Spawned
			}
			if step.Changed {
				result.ChangedMoves++
			}
			result.MovesExecuted++
			result.Steps = append(result.Steps, step)
		}
		result.Board = NewBoardView(e.Board())
	})

	s.logger.Debug("bulk move",
		zap.String("session_id", sessionID),
		zap.Int("requested", result.RequestedMoves),
		zap.Int("executed", result.MovesExecuted),
		zap.Int("changed", result.ChangedMoves),
		zap.Bool("truncated", result.Truncated))

	return result, nil
}

// Reset replaces the session's board with a freshly seeded one
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*BoardView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var view *BoardView
	sess.Do(func(e *engine.GameEngine) {
		e.Reset()
		view = NewBoardView(e.Board())
	})

	s.logger.Info("session reset", zap.String("session_id", sessionID))
	return view, nil
}

// GetBoard retrieves the current board
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (*BoardView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var view *BoardView
	sess.Do(func(e *engine.GameEngine) {
		view = NewBoardView(e.Board())
	})
	return view, nil
}

// session looks up a session and records the access
func (s *gameServiceImpl) session(ctx context.Context, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	// A concurrent delete can land between Get and the access update
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.logger.Debug("session access not recorded",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess, nil
}

func newMoveResult(out engine.Outcome, e *engine.GameEngine) *MoveResult {
	return &MoveResult{
		Command:    string(out.Command),
		Recognized: out.Recognized,
		Changed:    out.Changed,
		Spawned:    out.Spawned,
		Message:    outcomeMessage(out),
		Board:      NewBoardView(e.Board()),
	}
}

func outcomeMessage(out engine.Outcome) string {
	switch {
	case !out.Recognized:
		return "Unrecognized command ignored"
	case out.Command == engine.CommandReset:
		return "Game reset"
	case !out.Changed:
		return "Nothing moved"
	case out.Spawned:
		return "Tiles moved; new tile spawned"
	default:
		return "Tiles moved"
	}
}

func (s *gameServiceImpl) logMove(sessionID, input string, result *MoveResult) {
	s.logger.Debug("move",
		zap.String("session_id", sessionID),
		zap.String("input", input),
		zap.Bool("recognized", result.Recognized),
		zap.Bool("changed", result.Changed),
		zap.Bool("spawned", result.Spawned))
}
