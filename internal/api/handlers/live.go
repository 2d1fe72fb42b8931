package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/HarshMaht02004/wacc-backend/internal/wacc"
)

// Timing
const (
	livePingInterval = 30 * time.Second
	livePongWait     = 60 * time.Second
	liveWriteWait    = 5 * time.Second
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The form frontend is served from a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveMessage is one recompute response. Exactly one message is sent
// per received input; the client treats the latest as authoritative.
type LiveMessage struct {
	Success bool         `json:"success"`
	Data    *wacc.Result `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Kind    wacc.Kind    `json:"kind,omitempty"`
}

// Live upgrades to a WebSocket and recomputes on every form snapshot
// the client sends. Each message carries the raw form fields; the
// server normalizes and computes, then replies with the result or a
// structured error. Computations are independent and stateless, so
// there is no ordering concern beyond "latest reply wins".
// GET /api/v1/wacc/live
func (h *CalcHandler) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Live calculation session opened")

	var writeMu sync.Mutex
	stopPing := make(chan struct{})
	defer close(stopPing)

	conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	go h.livePingLoop(conn, &writeMu, stopPing)

	for {
		var form wacc.FormInput
		if err := conn.ReadJSON(&form); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("Live session read failed")
			}
			return
		}

		msg := h.recompute(form)

		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		err = conn.WriteJSON(msg)
		writeMu.Unlock()
		if err != nil {
			h.logger.WithError(err).Debug("Live session write failed")
			return
		}
	}
}

// recompute normalizes one form snapshot and computes its result.
func (h *CalcHandler) recompute(form wacc.FormInput) LiveMessage {
	in, err := wacc.ParseForm(form, h.cfg.Display.CurrencyScale)
	if err != nil {
		return LiveMessage{Error: err.Error(), Kind: wacc.KindOf(err)}
	}

	result, err := wacc.Compute(in)
	if err != nil {
		return LiveMessage{Error: err.Error(), Kind: wacc.KindOf(err)}
	}

	return LiveMessage{Success: true, Data: &result}
}

// livePingLoop keeps the connection alive between keystrokes.
func (h *CalcHandler) livePingLoop(conn *websocket.Conn, writeMu *sync.Mutex, stop <-chan struct{}) {
	ticker := time.NewTicker(livePingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
