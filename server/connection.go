package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/odyssey-game/server/wire"
)

const (
	readDeadline  = 60 * time.Second
	writeDeadline = 10 * time.Second
	pingInterval  = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// connection is one accepted socket's transport attachment: a reader
// actor and a writer actor, each cooperatively suspended on socket
// I/O or channel operations.
type connection struct {
	id   int64
	conn *websocket.Conn
	send chan []byte
	srv  *Server

	// limiter throttles inbound frames per connection.
	limiter *rate.Limiter
}

// enqueue queues a frame for the writer actor. Broadcasts are small
// and clients are few; a full buffered channel here would only ever
// mean a dead peer that hasn't been reaped yet.
func (c *connection) enqueue(raw []byte) {
	select {
	case c.send <- raw:
	default:
		c.srv.log.Warnw("outbound queue full, dropping frame", "conn", c.id)
	}
}

// HandleWebSocket upgrades an HTTP request and spins up the pair of
// per-connection actors.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("websocket upgrade failed", "err", err)
		return
	}

	c := &connection{
		id:      s.connIDs.Next(),
		conn:    ws,
		send:    make(chan []byte, 256),
		srv:     s,
		limiter: rate.NewLimiter(rate.Limit(40), 80),
	}

	s.register <- c
	go c.writePump()
	go c.readPump()
}

// readPump parses binary frames and forwards them to the loop's
// inbound channel. Text/ping/pong frames are ignored. On close or
// error it forwards the sentinel frame [0xFF] so the loop learns of
// the disconnect in the same ordered stream as this connection's
// other messages, then exits. Panics here never propagate to the
// loop.
func (c *connection) readPump() {
	defer func() {
		if r := recover(); r != nil {
			c.srv.log.Errorw("panic in readPump", "conn", c.id, "recover", r)
		}
		c.srv.inbound <- inboundMsg{connID: c.id, raw: []byte{byte(wire.Disconnected)}}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		msgType, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		if !c.limiter.Allow() {
			continue
		}
		select {
		case c.srv.inbound <- inboundMsg{connID: c.id, raw: raw}:
		default:
			c.srv.log.Warnw("inbound queue full, dropping frame", "conn", c.id)
		}
	}
}

// writePump drains the connection's outbound queue, closing on the
// first write error.
func (c *connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleRegister admits a newly accepted connection.
func (s *Server) handleRegister(c *connection) {
	s.conns[c.id] = c
}

// handleDisconnect marks the attached player (if any) disconnected and
// starts its 60s removal timer, then forgets the transport entirely.
// Invoked from dispatch on the [0xFF] sentinel.
func (s *Server) handleDisconnect(connID int64) {
	delete(s.conns, connID)
	playerID, ok := s.connPlayer[connID]
	if !ok {
		return
	}
	delete(s.connPlayer, connID)
	delete(s.playerConn, playerID)

	p := s.findPlayer(playerID)
	if p == nil {
		return
	}
	p.Disconnected = true
	p.DisconnectTime = s.nowMS()
	s.savePlayer(context.Background(), p)
}
