// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// handlers_chat.go - AI Chat Stub API
//
// The JSON endpoints behind the chat widget. Request and response
// shapes are flat (no envelope) and byte-compatible with the previous
// deployment, so the shipped frontend script keeps working:
//
//	request:  {"agentId": "...", "message": "...", "timestamp": "..."}
//	response: {"agentId": "...", "message": "...", "timestamp": "..."}
//	error:    {"error": "Invalid message format"}

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bandstand/internal/agents"
	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
)

// errInvalidMessageFormat is the fixed 400 body for bad chat requests.
// The frontend matches on this exact string.
const errInvalidMessageFormat = "Invalid message format"

// chatRequest is the POST /api/ai-chat body. Timestamp is an opaque
// client string echoed back untouched.
type chatRequest struct {
	AgentID   string `json:"agentId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// chatResponse mirrors chatRequest with the canned reply in Message.
type chatResponse struct {
	AgentID   string `json:"agentId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type chatError struct {
	Error string `json:"error"`
}

// AIAgents handles GET /api/ai-agents: the persona roster as a flat
// JSON array.
func (h *Handlers) AIAgents(w http.ResponseWriter, r *http.Request) {
	writeChatJSON(w, http.StatusOK, h.agents.List())
}

// AIChat handles POST /api/ai-chat.
func (h *Handlers) AIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordChatInvalidPayload()
		logging.CtxDebug(r.Context()).Err(err).Msg("Undecodable chat request")
		writeChatJSON(w, http.StatusBadRequest, chatError{Error: errInvalidMessageFormat})
		return
	}

	resp, ok := h.respondChat(req)
	if !ok {
		writeChatJSON(w, http.StatusBadRequest, chatError{Error: errInvalidMessageFormat})
		return
	}
	writeChatJSON(w, http.StatusOK, resp)
}

// respondChat validates a chat request and produces the stub reply.
// The second return is false when the request fails the contract
// (missing agentId or message after trimming).
func (h *Handlers) respondChat(req chatRequest) (chatResponse, bool) {
	agentID := strings.TrimSpace(req.AgentID)
	message := strings.TrimSpace(req.Message)
	if agentID == "" || message == "" {
		metrics.RecordChatInvalidPayload()
		return chatResponse{}, false
	}

	message = agents.TruncateMessage(message, h.config.Chat.MaxMessageLength)

	reply, known := h.agents.Respond(agentID, message)
	agentLabel := agentID
	if !known {
		// Unknown persona is not a client error; the generic reply
		// already acknowledges the message. Collapse the metric label
		// so arbitrary IDs cannot mint label values.
		metrics.RecordChatUnknownAgent()
		logging.Debug().Str("agent_id", agentID).Msg("Chat request for unknown agent")
		agentLabel = "unknown"
	}
	metrics.RecordChatMessage(agentLabel)

	return chatResponse{
		AgentID:   agentID,
		Message:   reply,
		Timestamp: req.Timestamp,
	}, true
}

// writeChatJSON writes a flat JSON body with the fixed wire shape.
func writeChatJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to encode chat response")
	}
}
