// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package agents provides the chat personas behind the AI-chat API.

There is no model and no network call. Each persona is a static
descriptor (id, name, description, avatar, status, tags) plus a small
set of canned reply templates, and every reply embeds the visitor's
message verbatim so the conversation feels acknowledged.

The four built-in personas are cosmic-guide, lyric-muse, tour-oracle,
and studio-sage, all permanently "online".

# Usage

	registry := agents.NewRegistry()

	// GET /api/ai-agents
	list := registry.List()

	// POST /api/ai-chat
	reply, known := registry.Respond(req.AgentID, msg)
	if !known {
	    metrics.RecordChatUnknownAgent()
	}

Respond never fails: an unknown agent ID produces a generic band
acknowledgement with ok=false, and the HTTP layer still answers 200.
Reply selection hashes the message text, so the same question always
gets the same answer.

Messages should be capped with TruncateMessage before templating; the
limit comes from ChatConfig.MaxMessageLength.
*/
package agents
