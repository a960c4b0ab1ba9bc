package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/tilemerge/game/engine"
	"github.com/wricardo/tilemerge/game/service"
	"github.com/wricardo/tilemerge/internal/logging"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionAlreadyExists
	ErrInvalidSessionID     = service.ErrInvalidSessionID
)

var validSessionID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// generatedIDAttempts bounds retries when a random ID collides
const generatedIDAttempts = 16

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	logger      *zap.Logger
	defaultSeed *uint64
	mu          sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return NewManagerWithLogger(nil)
}

// NewManagerWithLogger creates a session manager that logs lifecycle events
func NewManagerWithLogger(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		logger:   logging.OrNop(logger),
	}
}

// SetDefaultSeed makes sessions created without a seed use seed instead of
// the OS entropy pool.
func (m *Manager) SetDefaultSeed(seed uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultSeed = &seed
}

// Create creates a new session with the given ID and options
func (m *Manager) Create(id string, opts service.CreateOptions) (*service.Session, error) {
	if id != "" && !validSessionID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.RLock()
	if opts.Seed == nil && m.defaultSeed != nil {
		seed := *m.defaultSeed
		opts.Seed = &seed
	}
	m.mu.RUnlock()

	eng, err := newEngine(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id, err = m.generateSessionID()
		if err != nil {
			return nil, err
		}
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Seed:           opts.Seed,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[strings.ToLower(id)] = session

	m.logger.Debug("session created",
		zap.String("session_id", id),
		zap.Bool("seeded", opts.Seed != nil),
		zap.Bool("from_tiles", opts.Tiles != nil))

	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, opts service.CreateOptions) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		session, err = m.Create(id, opts)
		if errors.Is(err, ErrSessionAlreadyExists) {
			// Lost a race with another creator
			return m.Get(id)
		}
		return session, err
	}

	return nil, err
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)

	m.logger.Debug("session deleted", zap.String("session_id", id))
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}
	session.Touch(time.Now())
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessed().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Info("expired sessions removed",
			zap.Int("removed", removed),
			zap.Duration("max_age", maxAge))
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates a random, unused 4-character session ID.
// Callers must hold m.mu.
func (m *Manager) generateSessionID() (string, error) {
	bytes := make([]byte, 2)
	for attempt := 0; attempt < generatedIDAttempts; attempt++ {
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("failed to generate session ID: %w", err)
		}
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate session ID: %w", ErrSessionAlreadyExists)
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}

// newEngine builds the engine a new session will own.
func newEngine(opts service.CreateOptions) (*engine.GameEngine, error) {
	var rng engine.RandomSource = engine.CryptoSource{}
	if opts.Seed != nil {
		rng = engine.SeededSource(*opts.Seed)
	}

	if opts.Tiles != nil {
		if opts.Strict && !engine.ValidTiles(opts.Tiles) {
			return nil, fmt.Errorf("%w: %v", engine.ErrInvalidTileValue, opts.Tiles)
		}
		return engine.NewEngineFromTiles(opts.Tiles, rng)
	}
	return engine.NewEngine(rng), nil
}
