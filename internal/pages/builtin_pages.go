// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// Package pages renders the server-side HTML for the band website.
//
// builtin_pages.go - Built-in Page Catalog and Templates
//
// This file contains the page catalog driving route registration and the
// compiled-in template bodies. Every body defines a "content" block that
// the shared base layout includes; the catalog's legacy aliases keep the
// original site's *.html bookmarks and renamed routes working.
package pages

// Catalog returns the descriptors for every routable page.
func Catalog() []Page {
	return []Page{
		getHomePage(),
		getAboutPage(),
		getMusicReleasePage(),
		getMusicArchivePage(),
		getTourPage(),
		getEngagePage(),
		getNewsletterPage(),
		getBlogPage(),
		getCollaborationPage(),
		getContactPage(),
		getAccessibilityPage(),
		getAIChatPage(),
	}
}

// getHomePage returns the front page descriptor.
func getHomePage() Page {
	return Page{
		Route:         "/",
		TemplateName:  TemplateHome,
		Title:         "Home",
		LegacyAliases: []string{"/home_page.html", "/index.html"},
	}
}

// getAboutPage returns the about page descriptor.
func getAboutPage() Page {
	return Page{
		Route:         "/about",
		TemplateName:  TemplateAbout,
		Title:         "About",
		LegacyAliases: []string{"/about_page.html"},
	}
}

// getMusicReleasePage returns the latest-release page descriptor.
// The original route name survives as an alias.
func getMusicReleasePage() Page {
	return Page{
		Route:         "/new-music",
		TemplateName:  TemplateMusicRelease,
		Title:         "New Music",
		LegacyAliases: []string{"/music-release", "/music_release_page.html"},
	}
}

// getMusicArchivePage returns the back-catalog page descriptor.
// The original route name survives as an alias.
func getMusicArchivePage() Page {
	return Page{
		Route:         "/archived-music",
		TemplateName:  TemplateMusicArchive,
		Title:         "Archived Music",
		LegacyAliases: []string{"/music", "/music_page.html"},
	}
}

// getTourPage returns the tour page descriptor.
func getTourPage() Page {
	return Page{
		Route:         "/tour",
		TemplateName:  TemplateTour,
		Title:         "Tour",
		LegacyAliases: []string{"/tour_page.html"},
	}
}

// getEngagePage returns the fan engagement page descriptor.
func getEngagePage() Page {
	return Page{
		Route:         "/engage",
		TemplateName:  TemplateEngage,
		Title:         "Engage",
		LegacyAliases: []string{"/engage_page.html"},
	}
}

// getNewsletterPage returns the newsletter signup page descriptor.
func getNewsletterPage() Page {
	return Page{
		Route:         "/newsletter",
		TemplateName:  TemplateNewsletter,
		Title:         "Newsletter",
		LegacyAliases: []string{"/newsletter_page.html"},
	}
}

// getBlogPage returns the blog page descriptor.
func getBlogPage() Page {
	return Page{
		Route:         "/blog",
		TemplateName:  TemplateBlog,
		Title:         "Blog",
		LegacyAliases: []string{"/blog_page.html"},
	}
}

// getCollaborationPage returns the collaboration page descriptor. The
// original template was named for gifts and sponsorships.
func getCollaborationPage() Page {
	return Page{
		Route:         "/collaboration",
		TemplateName:  TemplateCollaboration,
		Title:         "Collaboration",
		LegacyAliases: []string{"/gifts_and_sponsorships_page.html"},
	}
}

// getContactPage returns the contact form page descriptor.
func getContactPage() Page {
	return Page{
		Route:         "/contact",
		TemplateName:  TemplateContact,
		Title:         "Contact",
		LegacyAliases: []string{"/contact_page.html"},
	}
}

// getAccessibilityPage returns the accessibility statement descriptor.
func getAccessibilityPage() Page {
	return Page{
		Route:         "/accessibility",
		TemplateName:  TemplateAccessibility,
		Title:         "Accessibility",
		LegacyAliases: []string{"/accessibility_page.html"},
	}
}

// getAIChatPage returns the AI chat page descriptor.
func getAIChatPage() Page {
	return Page{
		Route:         "/ai-chat",
		TemplateName:  TemplateAIChat,
		Title:         "AI Chat",
		LegacyAliases: []string{"/ai_chat_page.html"},
	}
}

// builtinPageBodies maps template names to their body definitions.
func builtinPageBodies() map[string]string {
	return map[string]string{
		TemplateHome:          homePageTemplate,
		TemplateAbout:         aboutPageTemplate,
		TemplateMusicRelease:  musicReleasePageTemplate,
		TemplateMusicArchive:  musicArchivePageTemplate,
		TemplateTour:          tourPageTemplate,
		TemplateEngage:        engagePageTemplate,
		TemplateNewsletter:    newsletterPageTemplate,
		TemplateBlog:          blogPageTemplate,
		TemplateCollaboration: collaborationPageTemplate,
		TemplateContact:       contactPageTemplate,
		TemplateAccessibility: accessibilityPageTemplate,
		TemplateAIChat:        aiChatPageTemplate,
		TemplateNotFound:      notFoundPageTemplate,
		TemplateServerError:   serverErrorPageTemplate,
	}
}

// baseTemplate is the shared layout every page renders inside.
const baseTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | Bandstand</title>
  <link rel="stylesheet" href="/static/css/site.css">
  <link rel="icon" href="/static/images/favicon.svg" type="image/svg+xml">
</head>
<body>
  <a class="skip-link" href="#main">Skip to content</a>
  <header class="site-header">
    <a class="brand" href="/">Bandstand</a>
    <nav aria-label="Primary">
      <ul>
        <li><a href="/">Home</a></li>
        <li><a href="/about">About</a></li>
        <li><a href="/new-music">New Music</a></li>
        <li><a href="/archived-music">Archive</a></li>
        <li><a href="/tour">Tour</a></li>
        <li><a href="/engage">Engage</a></li>
        <li><a href="/blog">Blog</a></li>
        <li><a href="/newsletter">Newsletter</a></li>
        <li><a href="/collaboration">Collaborate</a></li>
        <li><a href="/contact">Contact</a></li>
        <li><a href="/ai-chat">Chat</a></li>
      </ul>
    </nav>
  </header>
  {{with .Flash}}
  <div class="flash flash-{{.Category}}" role="status">{{.Text}}</div>
  {{end}}
  <main id="main">
    {{template "content" .}}
  </main>
  <footer class="site-footer">
    <p>&copy; {{currentYear}} Bandstand. All rights reserved.</p>
    <p><a href="/accessibility">Accessibility</a></p>
  </footer>
</body>
</html>`

const homePageTemplate = `{{define "content"}}
<section class="hero">
  <h1>Bandstand</h1>
  <p class="tagline">Four friends, too many pedals, songs that stick around.</p>
  <p class="hero-actions">
    <a class="button" href="/new-music">Hear the new single</a>
    <a class="button button-secondary" href="/tour">See us live</a>
  </p>
</section>
<section>
  <h2>Latest</h2>
  <p>The new single is out everywhere, the autumn tour is booked, and the
  newsletter is where we tell you first. Dig in below.</p>
</section>
{{end}}`

const aboutPageTemplate = `{{define "content"}}
<h1>About the Band</h1>
<p>We started in a rented rehearsal room with one working amp and a drum
kit held together with gaffer tape. A few hundred shows later the amp
still hums, and so do we.</p>
<p>Between records we write, argue about tones, and answer every message
that comes through the <a href="/contact">contact page</a>. That part is
not an exaggeration.</p>
{{end}}`

const musicReleasePageTemplate = `{{define "content"}}
<h1>New Music</h1>
<p>The latest single is streaming now on every major platform. Press play
below or grab it from your service of choice.</p>
<section class="release">
  <h2>Current Single</h2>
  <p>Recorded live to tape in three takes. The third one is the keeper.</p>
</section>
{{end}}`

const musicArchivePageTemplate = `{{define "content"}}
<h1>Archived Music</h1>
<p>Everything we have put out, oldest first. Some of it is rough. All of
it is honest.</p>
<section class="release-list">
  <h2>Back Catalog</h2>
  <p>EPs, singles, and the live takes we still like. Streaming links live
  on each release page of your preferred platform.</p>
</section>
{{end}}`

const tourPageTemplate = `{{define "content"}}
<h1>Tour</h1>
<p>Dates go up here the moment they are confirmed. Newsletter readers get
presale codes first.</p>
<section class="tour-dates">
  <h2>Upcoming Shows</h2>
  <p>Routing for the autumn run is being finalized now. Check back soon or
  <a href="/newsletter">subscribe</a> and we will tell you directly.</p>
</section>
{{end}}`

const engagePageTemplate = `{{define "content"}}
<h1>Engage</h1>
<p>Ways to be part of this beyond pressing play.</p>
<ul class="engage-list">
  <li>Join the <a href="/newsletter">newsletter</a> for first word on everything.</li>
  <li>Talk to the <a href="/ai-chat">AI crew</a> when we are in the van.</li>
  <li>Pitch a <a href="/collaboration">collaboration</a> if you make things.</li>
  <li>Or just <a href="/contact">write to us</a>. We read it all.</li>
</ul>
{{end}}`

const newsletterPageTemplate = `{{define "content"}}
<h1>Newsletter</h1>
<p>One email when something real happens. New songs, new dates, the
occasional demo that will never be released anywhere else. Easy out,
any time.</p>
<form method="post" action="/newsletter" novalidate>
  <div class="field">
    <label for="email">Email address</label>
    <input type="email" id="email" name="email" value="{{.Form.Email}}" autocomplete="email"
           {{if hasErrors .Errors "email"}}{{safeAttr "aria-invalid=\"true\""}}{{end}}>
    {{range fieldErrors .Errors "email"}}<p class="field-error">{{.}}</p>{{end}}
  </div>
  <button type="submit">Subscribe</button>
</form>
{{end}}`

const blogPageTemplate = `{{define "content"}}
<h1>Blog</h1>
<p>Tour diaries, studio notes, and whatever else survives the edit.</p>
<section class="post-list">
  <article class="post-teaser">
    <h2>Notes from the rehearsal room</h2>
    <p>What changed when we stopped trying to sound like our record
    collection and started sounding like a Tuesday night.</p>
  </article>
  <article class="post-teaser">
    <h2>How the single got its name</h2>
    <p>It was a working title. Working titles win more often than anyone
    admits.</p>
  </article>
</section>
{{end}}`

const collaborationPageTemplate = `{{define "content"}}
<h1>Collaboration</h1>
<p>Gifts, sponsorships, remixes, film placements, split releases. If you
make something and think it fits next to what we make, we want to hear
about it.</p>
<p>Send the pitch through the <a href="/contact">contact form</a> with
enough detail that we can say yes quickly.</p>
{{end}}`

const contactPageTemplate = `{{define "content"}}
<h1>Contact</h1>
<p>Booking, press, or just want to say hi. Every message lands in front
of an actual band member.</p>
<form method="post" action="/contact" novalidate>
  <div class="field">
    <label for="name">Name</label>
    <input type="text" id="name" name="name" value="{{.Form.Name}}" autocomplete="name"
           {{if hasErrors .Errors "name"}}{{safeAttr "aria-invalid=\"true\""}}{{end}}>
    {{range fieldErrors .Errors "name"}}<p class="field-error">{{.}}</p>{{end}}
  </div>
  <div class="field">
    <label for="email">Email address</label>
    <input type="email" id="email" name="email" value="{{.Form.Email}}" autocomplete="email"
           {{if hasErrors .Errors "email"}}{{safeAttr "aria-invalid=\"true\""}}{{end}}>
    {{range fieldErrors .Errors "email"}}<p class="field-error">{{.}}</p>{{end}}
  </div>
  <div class="field">
    <label for="message">Message</label>
    <textarea id="message" name="message" rows="6"
              {{if hasErrors .Errors "message"}}{{safeAttr "aria-invalid=\"true\""}}{{end}}>{{.Form.Message}}</textarea>
    {{range fieldErrors .Errors "message"}}<p class="field-error">{{.}}</p>{{end}}
  </div>
  <button type="submit">Send Message</button>
</form>
{{end}}`

const accessibilityPageTemplate = `{{define "content"}}
<h1>Accessibility</h1>
<p>This site is built to work with keyboards, screen readers, and slow
connections. Every page has a skip link, form fields carry labels and
error descriptions, and nothing essential needs JavaScript.</p>
<p>If something here does not work for you, that is a bug. Tell us
through the <a href="/contact">contact form</a> and we will fix it.</p>
{{end}}`

const aiChatPageTemplate = `{{define "content"}}
<h1>Chat With the Crew</h1>
<p>Four AI companions trained on our world. They cover the hours when the
band is asleep or in the van. Pick one and start typing.</p>
<div class="agent-grid">
  {{range .Agents}}
  <article class="agent-card" data-agent-id="{{.ID}}">
    <img class="agent-avatar" src="{{.Avatar}}" alt="" width="64" height="64">
    <h2>{{.Name}}</h2>
    <p class="agent-description">{{truncate .Description 120}}</p>
    <p class="agent-status{{if eqStr .Status "online"}} agent-status-online{{end}}">{{titleCase .Status}}</p>
    <ul class="agent-tags">
      {{range .Tags}}<li>{{titleCase .}}</li>{{end}}
    </ul>
  </article>
  {{end}}
</div>
<section id="chat-window" class="chat-window" aria-live="polite"></section>
<script src="/static/js/chat.js" defer></script>
{{end}}`

const notFoundPageTemplate = `{{define "content"}}
<section class="error-page">
  <h1>404</h1>
  <p>That page slipped off the setlist.</p>
  <p><a href="/">Back to the front page</a></p>
</section>
{{end}}`

const serverErrorPageTemplate = `{{define "content"}}
<section class="error-page">
  <h1>500</h1>
  <p>Something broke backstage. We are on it.</p>
  <p><a href="/">Back to the front page</a></p>
</section>
{{end}}`
