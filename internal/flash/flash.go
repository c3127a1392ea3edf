// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package flash

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/tomtom215/bandstand/internal/metrics"
)

// Flash categories. These become CSS classes on the rendered banner, so
// the set is closed and Set rejects anything else.
const (
	CategorySuccess = "success"
	CategoryError   = "error"
)

// DefaultCookieName is the cookie the store writes flashes into.
const DefaultCookieName = "bandstand_flash"

// DefaultTTL bounds how long an undelivered flash stays valid.
const DefaultTTL = 10 * time.Minute

// hkdfInfo binds the derived signing key to this use of the secret.
const hkdfInfo = "bandstand-flash-v1"

// signingKeyLen is the HMAC-SHA256 key size in bytes.
const signingKeyLen = 32

// Pop outcomes recorded in metrics.
const (
	outcomeDisplayed = "displayed"
	outcomeExpired   = "expired"
	outcomeInvalid   = "invalid"
)

// Message is a one-shot notice rendered on the client's next page view.
type Message struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Success builds a success-category message.
func Success(text string) Message {
	return Message{Text: text, Category: CategorySuccess}
}

// Error builds an error-category message.
func Error(text string) Message {
	return Message{Text: text, Category: CategoryError}
}

// claims is the JWT payload carrying a flash message.
type claims struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	jwt.RegisteredClaims
}

// Store signs flash messages into a client-side cookie and reads them back
// exactly once. There is no server-side state: the cookie is the storage
// and the HMAC signature is the tamper check, so messages cannot leak
// between clients.
type Store struct {
	key        []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

// Option configures a Store.
type Option func(*Store)

// WithCookieName overrides the flash cookie name.
func WithCookieName(name string) Option {
	return func(s *Store) { s.cookieName = name }
}

// WithTTL overrides how long an unread flash stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithSecure marks the cookie Secure for HTTPS-only deployments.
func WithSecure(secure bool) Option {
	return func(s *Store) { s.secure = secure }
}

// NewStore derives a dedicated flash signing key from secret and returns a
// configured Store. The key comes from HKDF-SHA256 so flash signatures stay
// independent of any other use of the same configured secret.
func NewStore(secret []byte, opts ...Option) (*Store, error) {
	if len(secret) == 0 {
		return nil, errors.New("flash: secret must not be empty")
	}

	key, err := deriveKey(secret, signingKeyLen)
	if err != nil {
		return nil, fmt.Errorf("flash: derive signing key: %w", err)
	}

	s := &Store{
		key:        key,
		cookieName: DefaultCookieName,
		ttl:        DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// deriveKey derives a key using HKDF-SHA256.
func deriveKey(secret []byte, keyLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(hkdfInfo))
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Set signs msg into the flash cookie on w. Unknown categories are
// rejected before anything is written.
func (s *Store) Set(w http.ResponseWriter, msg Message) error {
	if msg.Category != CategorySuccess && msg.Category != CategoryError {
		return fmt.Errorf("flash: unknown category %q", msg.Category)
	}

	now := time.Now()
	c := &claims{
		Text:     msg.Text,
		Category: msg.Category,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return fmt.Errorf("flash: sign message: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.RecordFlashSet(msg.Category)
	return nil
}

// Pop returns the pending flash message, if any, and clears the cookie in
// the same response. The cookie is expired even when its value does not
// verify, so a forged or stale cookie cannot wedge a client. Requests
// without a flash cookie return (Message{}, false) without touching the
// response.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return Message{}, false
	}

	s.expire(w)

	msg, outcome := s.verify(cookie.Value)
	metrics.RecordFlashPop(outcome)
	return msg, outcome == outcomeDisplayed
}

// expire clears the flash cookie on w.
func (s *Store) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// verify parses and validates a signed flash value, classifying failures
// for metrics.
func (s *Store) verify(value string) (Message, string) {
	token, err := jwt.ParseWithClaims(value, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Message{}, outcomeExpired
		}
		return Message{}, outcomeInvalid
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Message{}, outcomeInvalid
	}

	if c.Category != CategorySuccess && c.Category != CategoryError {
		return Message{}, outcomeInvalid
	}

	return Message{Text: c.Text, Category: c.Category}, outcomeDisplayed
}
