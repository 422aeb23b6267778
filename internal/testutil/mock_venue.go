// mock_venue.go - Mock venue service client for testing
package testutil

import (
	"context"
	"sync"

	"github.com/venue-navigator/backend/internal/models"
)

// MockVenue implements the venue client interfaces used by the session
// controller and the nodes handler, counting every call so tests can assert
// that no network request was made.
type MockVenue struct {
	mu sync.Mutex

	routeCalls int
	nodeCalls  int

	// RouteFn handles FindRoute calls; nil returns an empty route.
	RouteFn func(ctx context.Context, startID, endID string) (models.Route, error)
	// NodesFn handles ListNodes calls; nil returns an empty catalog.
	NodesFn func(ctx context.Context) (models.NodeCatalog, error)
}

// NewMockVenue creates a mock with default empty responses.
func NewMockVenue() *MockVenue {
	return &MockVenue{}
}

func (m *MockVenue) FindRoute(ctx context.Context, startID, endID string) (models.Route, error) {
	m.mu.Lock()
	m.routeCalls++
	fn := m.RouteFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, startID, endID)
	}
	return models.Route{}, nil
}

func (m *MockVenue) ListNodes(ctx context.Context) (models.NodeCatalog, error) {
	m.mu.Lock()
	m.nodeCalls++
	fn := m.NodesFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return models.NodeCatalog{}, nil
}

// RouteCalls returns how many FindRoute calls were made.
func (m *MockVenue) RouteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routeCalls
}

// NodeCalls returns how many ListNodes calls were made.
func (m *MockVenue) NodeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodeCalls
}
