// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package agents

import (
	"fmt"
	"hash/fnv"
)

// StatusOnline is the only status the built-in personas report.
const StatusOnline = "online"

// Agent describes a chat persona as exposed by the JSON API.
type Agent struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Avatar      string   `json:"avatar"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

// persona pairs a public descriptor with its reply templates. Every
// template embeds the visitor's message verbatim through one %s verb.
type persona struct {
	agent   Agent
	replies []string
}

// Registry holds the chat personas. It is built once at startup and
// read-only afterwards, so lookups need no locking.
type Registry struct {
	order []Agent
	byID  map[string]persona
}

// NewRegistry builds a registry over the built-in personas.
func NewRegistry() *Registry {
	personas := builtinPersonas()

	r := &Registry{
		order: make([]Agent, 0, len(personas)),
		byID:  make(map[string]persona, len(personas)),
	}
	for _, p := range personas {
		r.order = append(r.order, p.agent)
		r.byID[p.agent.ID] = p
	}
	return r
}

// List returns the personas in display order. The slice is a copy so
// callers cannot reorder the registry.
func (r *Registry) List() []Agent {
	out := make([]Agent, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the descriptor for an agent ID.
func (r *Registry) Get(agentID string) (Agent, bool) {
	p, ok := r.byID[agentID]
	if !ok {
		return Agent{}, false
	}
	return p.agent, true
}

// Respond renders the persona's canned reply with the visitor's message
// embedded verbatim. Unknown IDs get the generic band acknowledgement and
// ok=false so callers can count them; the reply is still a usable answer
// because an unknown agent is not a client error.
func (r *Registry) Respond(agentID, message string) (string, bool) {
	p, ok := r.byID[agentID]
	if !ok {
		return fmt.Sprintf(fallbackReply, message), false
	}

	reply := p.replies[replyIndex(message, len(p.replies))]
	return fmt.Sprintf(reply, message), true
}

// replyIndex picks a reply deterministically from the message text so
// repeated questions get stable answers.
func replyIndex(message string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(message))
	return int(h.Sum32() % uint32(n))
}

// TruncateMessage caps a chat message at max runes before templating.
// Rune-aware so multi-byte text is never cut mid-character. max <= 0
// leaves the message alone.
func TruncateMessage(message string, max int) string {
	if max <= 0 {
		return message
	}
	runes := 0
	for i := range message {
		if runes == max {
			return message[:i]
		}
		runes++
	}
	return message
}
