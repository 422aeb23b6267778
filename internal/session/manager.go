// Package session owns per-viewer navigation state: the selection, the
// current route and the display-surface scale, plus the manager that tracks
// all live sessions.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/venue-navigator/backend/internal/overlay"
)

// MaxSessions limits concurrent viewer sessions to prevent memory exhaustion.
const MaxSessions = 200

// KeepAliveWindow is how long a session counts as actively used after its
// last access.
const KeepAliveWindow = 5 * time.Minute

// Manager tracks active navigation sessions.
type Manager struct {
	sessions map[string]*sessionState
	mu       sync.RWMutex

	venue    VenueClient
	renderer *overlay.Renderer
	native   overlay.Dimensions
}

type sessionState struct {
	controller   *Controller
	lastAccessed time.Time
}

// NewManager creates a session manager. Every session it creates shares the
// venue client, the renderer and the floor plan's native dimensions.
func NewManager(client VenueClient, renderer *overlay.Renderer, native overlay.Dimensions) *Manager {
	return &Manager{
		sessions: make(map[string]*sessionState),
		venue:    client,
		renderer: renderer,
		native:   native,
	}
}

// Create starts a new idle session and returns its controller.
func (m *Manager) Create() *Controller {
	m.evictIfAtCapacity()

	id := uuid.New().String()
	c := NewController(id, m.venue, m.renderer, m.native)

	m.mu.Lock()
	m.sessions[id] = &sessionState{
		controller:   c,
		lastAccessed: time.Now(),
	}
	m.mu.Unlock()

	fmt.Printf("[Manager] Created session %s\n", shortID(id))
	return c
}

// Get returns a session controller by ID and marks it as accessed.
func (m *Manager) Get(id string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	state.lastAccessed = time.Now()
	return state.controller, true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupOldSessions drops sessions idle for longer than maxAge. Sessions
// accessed within KeepAliveWindow are always kept.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAlive := time.Now().Add(-KeepAliveWindow)

	for id, state := range m.sessions {
		if state.lastAccessed.After(keepAlive) {
			continue
		}
		if state.lastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			fmt.Printf("[Manager] Cleaned up session %s (last accessed %s ago)\n",
				shortID(id), time.Since(state.lastAccessed).Round(time.Second))
		}
	}
}

// evictIfAtCapacity removes the least recently accessed sessions until a new
// one fits.
func (m *Manager) evictIfAtCapacity() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.sessions) >= MaxSessions {
		oldestID := ""
		var oldest time.Time
		for id, state := range m.sessions {
			if oldestID == "" || state.lastAccessed.Before(oldest) {
				oldestID = id
				oldest = state.lastAccessed
			}
		}
		delete(m.sessions, oldestID)
		fmt.Printf("[Manager] Evicted session %s to stay under capacity\n", shortID(oldestID))
	}
}
