// Package realtime holds WebSocket plumbing shared by the voice endpoints:
// a write-serialized connection, the connection registry and the speaker
// that owns synthesis for one connection.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 70 * time.Second
	pingPeriod = 30 * time.Second

	// MaxFrameBytes bounds one inbound frame (about a minute of 16 kHz PCM).
	MaxFrameBytes = 4 << 20
)

// Conn serializes writes to a gorilla connection. Reads must come from a
// single goroutine.
type Conn struct {
	ID       string
	UserID   string
	Endpoint string

	ws     *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func NewConn(ws *websocket.Conn, id, userID, endpoint string) *Conn {
	ws.SetReadLimit(MaxFrameBytes)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &Conn{ID: id, UserID: userID, Endpoint: endpoint, ws: ws}
}

// ReadMessage reads the next frame and extends the read deadline.
func (c *Conn) ReadMessage() (int, []byte, error) {
	mt, data, err := c.ws.ReadMessage()
	if err == nil {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	}
	return mt, data, err
}

func (c *Conn) write(mt int, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(mt, b)
}

func (c *Conn) WriteText(b []byte) error   { return c.write(websocket.TextMessage, b) }
func (c *Conn) WriteBinary(b []byte) error { return c.write(websocket.BinaryMessage, b) }

func (c *Conn) WriteJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.WriteText(b)
}

// KeepAlive pings the peer until ctx is done or a ping fails.
func (c *Conn) KeepAlive(ctx context.Context) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// Close sends a close frame with code and reason, then closes the socket.
// Calling it more than once is safe.
func (c *Conn) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
	return c.ws.Close()
}
