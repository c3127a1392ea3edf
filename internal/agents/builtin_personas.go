// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// builtin_personas.go - Built-in Chat Personas
//
// This file contains the canned chat personas the AI-chat API serves.
// There is no model behind them: each persona is a descriptor plus a
// small set of reply templates that embed the visitor's message.
package agents

// fallbackReply answers chat requests addressed to an unknown agent.
const fallbackReply = `Thanks for reaching out! The band hears you: "%s". One of us will pick this up soon.`

// builtinPersonas returns the four chat personas in display order.
func builtinPersonas() []persona {
	return []persona{
		getCosmicGuide(),
		getLyricMuse(),
		getTourOracle(),
		getStudioSage(),
	}
}

// getCosmicGuide returns the mindfulness persona.
func getCosmicGuide() persona {
	return persona{
		agent: Agent{
			ID:          "cosmic-guide",
			Name:        "Cosmic Guide",
			Description: "A calm presence for mindful moments between shows",
			Avatar:      "/static/images/agents/cosmic-guide.svg",
			Status:      StatusOnline,
			Tags:        []string{"mindfulness", "cosmos", "calm"},
		},
		replies: []string{
			`The cosmos hears you. Sit with "%s" for three slow breaths and notice what softens.`,
			`Like starlight, "%s" has traveled far to reach this moment. Let it land gently.`,
			`The universe is vast and patient. Carry "%s" lightly, the way the night sky carries the moon.`,
		},
	}
}

// getLyricMuse returns the songwriting persona.
func getLyricMuse() persona {
	return persona{
		agent: Agent{
			ID:          "lyric-muse",
			Name:        "Lyric Muse",
			Description: "Songwriting prompts and lyric inspiration",
			Avatar:      "/static/images/agents/lyric-muse.svg",
			Status:      StatusOnline,
			Tags:        []string{"lyrics", "writing", "inspiration"},
		},
		replies: []string{
			`There's a verse hiding inside "%s". Sing it over a slow chord and see where the melody wants to go.`,
			`"%s" could open the second verse. Write three lines that rhyme with how it feels, not how it sounds.`,
			`Every lyric starts as a fragment. Keep "%s" in your notebook - the chorus will find it.`,
		},
	}
}

// getTourOracle returns the tour-news persona.
func getTourOracle() persona {
	return persona{
		agent: Agent{
			ID:          "tour-oracle",
			Name:        "Tour Oracle",
			Description: "Tour dates, venues, and where to find tickets",
			Avatar:      "/static/images/agents/tour-oracle.svg",
			Status:      StatusOnline,
			Tags:        []string{"tour", "dates", "venues"},
		},
		replies: []string{
			`The road says: "%s". Check the tour page for the next stop - new dates land there first.`,
			`Noted: "%s". Venue news and ticket links always hit the tour page before anywhere else.`,
			`Good question - "%s". When the next leg is confirmed, the tour page updates the same day.`,
		},
	}
}

// getStudioSage returns the production persona.
func getStudioSage() persona {
	return persona{
		agent: Agent{
			ID:          "studio-sage",
			Name:        "Studio Sage",
			Description: "Production wisdom from behind the console",
			Avatar:      "/static/images/agents/studio-sage.svg",
			Status:      StatusOnline,
			Tags:        []string{"studio", "production", "gear"},
		},
		replies: []string{
			`In the studio we'd track "%s" twice and keep the take with the mistakes - that's where the feel lives.`,
			`"%s" sounds like a mix decision. Trust your ears, not the meters.`,
			`Gear comes and goes, but "%s" is really about the song. Demo it rough first.`,
		},
	}
}
