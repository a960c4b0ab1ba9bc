package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/tilemerge/game/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
	ErrNoMoves              = errors.New("no moves provided")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error)
	Command(ctx context.Context, sessionID, raw string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*BoardView, error)

	// Game State
	GetBoard(ctx context.Context, sessionID string) (*BoardView, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, opts CreateOptions) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, opts CreateOptions) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Seed           *uint64
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu sync.Mutex
}

// Do runs fn with exclusive access to the session's engine. Every command
// and every read of the board goes through Do, so readers never observe a
// half-applied move.
func (s *Session) Do(fn func(e *engine.GameEngine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Engine)
}

// Touch records an access at t.
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastAccessedAt = t
}

// LastAccessed returns the time of the most recent access.
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}

// Info returns a consistent snapshot of the session and its board.
func (s *Session) Info() *SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &SessionInfo{
		ID:             s.ID,
		Seed:           s.Seed,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
		Board:          NewBoardView(s.Engine.Board()),
	}
}
