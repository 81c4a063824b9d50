/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/constellation/board"
)

// qrSize is large enough to scan from the back of a room when shown on
// the projection page.
const qrSize = 320

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWebSocket hands each upgraded connection to the hub for its whole
// lifetime.
func serveWebSocket(cfg *Config, hub *board.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: Websocket upgrade from %s: %v", realIP(r), err)
			return
		}

		startTime := time.Now()
		logf(cfg, "BOARD: Connection from %s", realIP(r))

		hub.Serve(conn)

		logf(cfg, "BOARD: Connection from %s closed after %s",
			realIP(r),
			time.Since(startTime).Round(time.Second),
		)
	}
}

// serveHistory returns the same payload a newly connected client receives.
func serveHistory(cfg *Config, hub *board.Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := json.Marshal(board.HistoryMessage{
			Type:  board.TypeHistory,
			Paths: hub.Snapshot(),
		})
		if err != nil {
			errs <- err

			http.Error(w, "history unavailable", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err = w.Write(data)
		if err != nil {
			errs <- err

			return
		}
	}
}

// clientURL reconstructs the public address of the drawing page,
// respecting TLS and an http or https X-Forwarded-Proto if present.
func clientURL(cfg *Config, r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	switch proto = strings.ToLower(strings.TrimSpace(proto)); proto {
	case "http", "https":
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + "/client"
}

// serveQR renders a PNG QR code pointing at the drawing page.
func serveQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := qrcode.Encode(clientURL(cfg, r), qrcode.Medium, qrSize)
		if err != nil {
			errs <- err

			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		_, err = w.Write(png)
		if err != nil {
			errs <- err

			return
		}
	}
}

// registerBoard sets up routes so that:
//   - $prefix/ws          → websocket for the shared board
//   - $prefix/history     → JSON snapshot of finished strokes
//   - $prefix/qr          → PNG QR code for the drawing page
//   - $prefix/export.pdf  → current board as a PDF
func registerBoard(cfg *Config, mux *httprouter.Router, hub *board.Hub, errs chan<- error) {
	mux.GET(cfg.prefix+"/ws", serveWebSocket(cfg, hub))

	mux.GET(cfg.prefix+"/history", serveHistory(cfg, hub, errs))

	mux.GET(cfg.prefix+"/qr", serveQR(cfg, errs))

	mux.GET(cfg.prefix+"/export.pdf", serveExport(cfg, hub, errs))
}
