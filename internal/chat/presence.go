package chat

import (
	"sync"

	"github.com/rs/zerolog"
)

// SendBuffer is the per-connection outbound queue depth. A connection whose
// queue is full is skipped rather than blocked on.
const SendBuffer = 256

// Conn is a single client connection registered with the presence router.
// Send carries pre-encoded frames to the connection's write loop; the
// presence router closes it on Leave.
type Conn struct {
	UserID string
	Send   chan []byte
}

// NewConn returns a connection owned by the given user with a buffered
// send queue.
func NewConn(userID string) *Conn {
	return &Conn{UserID: userID, Send: make(chan []byte, SendBuffer)}
}

// room holds every live connection for one user. A user with multiple tabs
// has one room with multiple members.
type room struct {
	conns map[*Conn]struct{}
}

// Presence maps user IDs to their rooms. A room exists exactly while it has
// at least one member: the first Join creates it, the last Leave removes it.
type Presence struct {
	mu    sync.RWMutex
	rooms map[string]*room
	log   zerolog.Logger
}

// NewPresence returns an empty presence router.
func NewPresence(log zerolog.Logger) *Presence {
	return &Presence{
		rooms: make(map[string]*room),
		log:   log.With().Str("component", "presence").Logger(),
	}
}

// Join adds the connection to its user's room, creating the room if the user
// had no live connections. Joining twice with the same connection is a no-op.
func (p *Presence) Join(c *Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.rooms[c.UserID]
	if !ok {
		r = &room{conns: make(map[*Conn]struct{})}
		p.rooms[c.UserID] = r
	}
	if _, dup := r.conns[c]; dup {
		return
	}
	r.conns[c] = struct{}{}
	p.log.Debug().Str("user_id", c.UserID).Int("connections", len(r.conns)).Msg("joined room")
}

// Leave removes the connection from its user's room, closes its send queue,
// and deletes the room when it empties. Leaving a connection that was never
// joined is a no-op.
func (p *Presence) Leave(c *Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.rooms[c.UserID]
	if !ok {
		return
	}
	if _, member := r.conns[c]; !member {
		return
	}
	delete(r.conns, c)
	close(c.Send)
	if len(r.conns) == 0 {
		delete(p.rooms, c.UserID)
	}
	p.log.Debug().Str("user_id", c.UserID).Int("connections", len(r.conns)).Msg("left room")
}

// BroadcastToUser queues the frame on every live connection of the user and
// returns the number of connections that accepted it. A user with no room
// yields zero; a connection with a full queue is skipped.
func (p *Presence) BroadcastToUser(userID string, frame []byte) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r, ok := p.rooms[userID]
	if !ok {
		return 0
	}
	delivered := 0
	for c := range r.conns {
		select {
		case c.Send <- frame:
			delivered++
		default:
			p.log.Warn().Str("user_id", userID).Msg("send queue full, dropping frame")
		}
	}
	return delivered
}

// Connections reports how many live connections the user has.
func (p *Presence) Connections(userID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.rooms[userID]
	if !ok {
		return 0
	}
	return len(r.conns)
}

// Online reports whether the user has at least one live connection.
func (p *Presence) Online(userID string) bool {
	return p.Connections(userID) > 0
}
