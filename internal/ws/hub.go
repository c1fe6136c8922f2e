package ws

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Conn is the write side of a client socket.
type Conn interface {
	WriteJSON(v interface{}) error
}

type requestKind int

const (
	register requestKind = iota
	unregister
	broadcast
	send
	count
)

type request struct {
	kind     requestKind
	conn     Conn
	username string
	msg      ServerMessage
	reply    chan int
}

// room owns the connections of one game. Only its goroutine touches conns,
// so every write to a socket of that game is serialized.
type room struct {
	gameID   string
	requests chan request
	done     chan struct{}
	conns    map[Conn]string
}

// Hub fans server messages out to the sockets attached to each game.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]*room
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]*room),
		logger: logger,
	}
}

func (h *Hub) Register(gameID, username string, conn Conn) {
	h.do(gameID, request{kind: register, conn: conn, username: username})
}

func (h *Hub) Unregister(gameID string, conn Conn) {
	h.do(gameID, request{kind: unregister, conn: conn})
}

// Broadcast sends msg to every connection of the game except exclude.
func (h *Hub) Broadcast(gameID string, msg ServerMessage, exclude Conn) {
	h.do(gameID, request{kind: broadcast, conn: exclude, msg: msg})
}

// Send writes msg to a single connection, registered or not.
func (h *Hub) Send(gameID string, conn Conn, msg ServerMessage) {
	h.do(gameID, request{kind: send, conn: conn, msg: msg})
}

func (h *Hub) Count(gameID string) int {
	return h.do(gameID, request{kind: count})
}

func (h *Hub) do(gameID string, req request) int {
	req.reply = make(chan int, 1)
	for {
		r := h.room(gameID)
		select {
		case r.requests <- req:
			return <-req.reply
		case <-r.done:
		}
	}
}

func (h *Hub) room(gameID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[gameID]
	if !ok {
		r = &room{
			gameID:   gameID,
			requests: make(chan request),
			done:     make(chan struct{}),
			conns:    make(map[Conn]string),
		}
		h.rooms[gameID] = r
		go h.run(r)
	}
	return r
}

func (h *Hub) run(r *room) {
	for req := range r.requests {
		switch req.kind {
		case register:
			r.conns[req.conn] = req.username
		case unregister:
			delete(r.conns, req.conn)
		case broadcast:
			for conn, username := range r.conns {
				if conn == req.conn {
					continue
				}
				if err := conn.WriteJSON(req.msg); err != nil {
					h.logger.Warn("dropping connection", "game", r.gameID, "user", username, "err", err)
					delete(r.conns, conn)
				}
			}
		case send:
			if err := req.conn.WriteJSON(req.msg); err != nil {
				h.logger.Warn("write failed", "game", r.gameID, "err", err)
			}
		}
		req.reply <- len(r.conns)

		if len(r.conns) == 0 {
			h.mu.Lock()
			if h.rooms[r.gameID] == r {
				delete(h.rooms, r.gameID)
			}
			h.mu.Unlock()
			close(r.done)
			return
		}
	}
}
