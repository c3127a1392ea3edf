// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// chat_stream.go - WebSocket Chat Stream
//
// GET /api/ai-chat/stream upgrades to a WebSocket carrying the same
// request/response shapes as POST /api/ai-chat, one JSON document per
// text frame. Invalid frames answer with the same error body the POST
// endpoint uses instead of closing the connection.

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
)

const (
	streamWriteWait      = 10 * time.Second
	streamPongWait       = 60 * time.Second
	streamPingPeriod     = (streamPongWait * 9) / 10
	streamMaxMessageSize = 8 * 1024 // chat requests are small
)

// streamUpgrader upgrades chat stream requests. Same-origin requests
// and non-browser clients (no Origin header) are accepted; cross-origin
// browsers must match the configured CORS origins, where "*" allows
// any. The chat stub is public, so this mirrors the /api CORS policy
// rather than locking the endpoint down.
func (h *Handlers) streamUpgrader() *websocket.Upgrader {
	allowAny := false
	allowed := make(map[string]struct{}, len(h.config.Security.CORSOrigins))
	for _, origin := range h.config.Security.CORSOrigins {
		if origin == "*" {
			allowAny = true
		}
		allowed[origin] = struct{}{}
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowAny {
				return true
			}
			if origin == "http://"+r.Host || origin == "https://"+r.Host {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
	}
}

// ChatStream handles GET /api/ai-chat/stream.
func (h *Handlers) ChatStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.streamUpgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		metrics.RecordWSError("upgrade")
		logging.CtxWarn(r.Context()).Err(err).Msg("Chat stream upgrade failed")
		return
	}

	metrics.TrackWSConnection(true)
	logging.CtxDebug(r.Context()).Str("remote_addr", r.RemoteAddr).Msg("Chat stream connected")

	session := &streamSession{
		handlers: h,
		conn:     conn,
		send:     make(chan chatResponse, 16),
		limiter:  newStreamLimiter(h.config.Chat.StreamMessagesPerMinute),
	}
	go session.writePump()
	session.readPump()
}

// newStreamLimiter builds the per-connection token bucket. The refill
// rate comes from the per-minute budget; the burst lets a client send
// a short flurry before throttling bites.
func newStreamLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 5)
}

// streamSession is one upgraded chat connection.
type streamSession struct {
	handlers *Handlers
	conn     *websocket.Conn
	send     chan chatResponse
	limiter  *rate.Limiter
}

// readPump reads chat requests until the connection drops. It owns the
// read side: deadlines, size limit, pong handling.
func (s *streamSession) readPump() {
	defer func() {
		close(s.send)
		_ = s.conn.Close()
		metrics.TrackWSConnection(false)
	}()

	s.conn.SetReadLimit(streamMaxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(streamPongWait)); err != nil {
		logging.Error().Err(err).Msg("Failed to set read deadline")
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				metrics.RecordWSError("read")
				logging.Debug().Err(err).Msg("Chat stream closed unexpectedly")
			}
			return
		}
		metrics.RecordWSMessageReceived()

		if !s.limiter.Allow() {
			s.reply(chatResponse{Message: "You're sending messages too quickly. Take a breath."})
			continue
		}

		var req chatRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			// Same contract as the POST endpoint, but the connection
			// stays open: a malformed frame should not kill the chat.
			metrics.RecordChatInvalidPayload()
			s.reply(chatResponse{Message: errInvalidMessageFormat})
			continue
		}

		resp, ok := s.handlers.respondChat(req)
		if !ok {
			s.reply(chatResponse{Message: errInvalidMessageFormat})
			continue
		}
		s.reply(resp)
	}
}

// reply queues a response for the write pump, dropping it if the
// client cannot keep up.
func (s *streamSession) reply(resp chatResponse) {
	select {
	case s.send <- resp:
	default:
		metrics.RecordWSError("backpressure")
	}
}

// writePump writes queued responses and keeps the connection alive
// with pings.
func (s *streamSession) writePump() {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case resp, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				logging.Error().Err(err).Msg("Failed to set write deadline")
				return
			}
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(resp); err != nil {
				metrics.RecordWSError("write")
				logging.Debug().Err(err).Msg("Failed to write chat response")
				return
			}
			metrics.RecordWSMessageSent()

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
