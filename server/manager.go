package server

import (
	"sync"

	"github.com/orkadesh/blackjacksrv/round"
)

// Manager tracks every live seat connection so the server can report
// occupancy and close everything on shutdown.
type Manager struct {
	mu    sync.RWMutex
	seats map[string]round.SeatConn
}

// NewManager creates an empty connection manager.
func NewManager() *Manager {
	return &Manager{seats: make(map[string]round.SeatConn)}
}

// Add registers a seat connection under its seat ID.
func (m *Manager) Add(id string, conn round.SeatConn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seats[id] = conn
}

// Remove forgets a seat connection.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seats, id)
}

// Count reports how many seats are currently connected.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.seats)
}

// CloseAll closes every tracked connection and forgets them.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, conn := range m.seats {
		_ = conn.Close()
		delete(m.seats, id)
	}
}
