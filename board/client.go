/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"time"

	"github.com/gorilla/websocket"
)

// writeTimeout bounds a single frame write to a client.
const writeTimeout = 10 * time.Second

// Client is one websocket connection taking part in the drawing.
type Client struct {
	id   ClientID
	conn *websocket.Conn
	send chan []byte
}

// Serve runs a participant over an already upgraded connection and blocks
// until it disconnects. The participant's unfinished stroke is finalized
// on the way out no matter how the connection ended.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &Client{
		conn: conn,
		send: make(chan []byte, h.opts.SendBuffer),
	}

	if !h.join(c) {
		_ = conn.Close()
		return
	}
	defer h.leave(c)

	go c.writePump(h.opts.PingInterval)
	c.readPump(h)
}

// readPump feeds frames to the hub strictly in the order they arrive.
func (c *Client) readPump(h *Hub) {
	defer c.conn.Close()

	pongWait := 2 * h.opts.PingInterval

	c.conn.SetReadLimit(h.opts.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				h.opts.Logf("BOARD: Client %d read error: %v", c.id, err)
			}
			return
		}

		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		h.handle(c, data)
	}
}

// writePump is the only writer on the connection.
func (c *Client) writePump(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
