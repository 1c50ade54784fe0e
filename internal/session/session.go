// Package session tracks live player sessions for the SSH server.
// Each connection gets a uuid identity; finished rounds flow through the
// registry to an optional saver so play keeps working without a database.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID uniquely identifies a player's session (e.g., SSH connection).
type ID string

// NewID returns a fresh random session identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	SessionID ID
	Handle    string // Player display name at the time of the round
	Mode      string
	Score     int
	Shots     int
	Hits      int
	Duration  float64 // Round time in seconds
}

// ResultSaver persists round results.
// This allows the registry to save results without depending on the storage package.
type ResultSaver interface {
	SaveRoundResult(res RoundResult) error
}

// Player is the bookkeeping record for one live session.
type Player struct {
	id          ID
	handle      string
	remoteAddr  string
	connectedAt time.Time

	mu        sync.Mutex
	rounds    int
	bestScore int
}

// NewPlayer creates a record for a newly connected session.
// An empty handle falls back to "anonymous" for display purposes.
func NewPlayer(id ID, handle, remoteAddr string) *Player {
	if handle == "" {
		handle = "anonymous"
	}
	return &Player{
		id:          id,
		handle:      handle,
		remoteAddr:  remoteAddr,
		connectedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (p *Player) ID() ID {
	return p.id
}

// Handle returns the player's display name.
func (p *Player) Handle() string {
	return p.handle
}

// RemoteAddr returns the peer address the session connected from.
func (p *Player) RemoteAddr() string {
	return p.remoteAddr
}

// ConnectedAt returns when the session was registered.
func (p *Player) ConnectedAt() time.Time {
	return p.connectedAt
}

// Rounds returns how many rounds this session has finished.
func (p *Player) Rounds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rounds
}

// BestScore returns the session's best finished-round score.
func (p *Player) BestScore() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bestScore
}

func (p *Player) noteResult(res RoundResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rounds++
	if res.Score > p.bestScore {
		p.bestScore = res.Score
	}
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	players map[ID]*Player

	saver ResultSaver // Optional, can be nil
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[ID]*Player),
	}
}

// SetResultSaver sets the optional round result saver.
// Call before sessions start reporting results.
func (r *Registry) SetResultSaver(saver ResultSaver) {
	r.saver = saver
}

// Register adds a session to the registry.
func (r *Registry) Register(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID()] = p
}

// Unregister removes a session from the registry.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// RecordResult updates the session's aggregates and forwards the result
// to the configured saver. Results from sessions that already disconnected
// are still saved.
func (r *Registry) RecordResult(res RoundResult) error {
	if p, ok := r.Get(res.SessionID); ok {
		p.noteResult(res)
	}
	if r.saver == nil {
		return nil
	}
	return r.saver.SaveRoundResult(res)
}
