package handlers

import (
	"net/http"
	"sync"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/security"

	"printquote/services"
)

const quoteCookieName = "quote_session"

// QuoteStore holds the in-progress quotes, one per interactive session.
// The session token travels in the quote_session cookie. Each quote is only
// ever touched by its own session; the mutex guards the map itself.
type QuoteStore struct {
	mu     sync.Mutex
	quotes map[string]*services.Quote
}

// NewQuoteStore returns an empty store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		quotes: make(map[string]*services.Quote),
	}
}

// Resolve returns the quote for the request's session, creating the session
// (and setting its cookie) on first contact.
func (qs *QuoteStore) Resolve(e *core.RequestEvent) *services.Quote {
	token := ""
	if cookie, err := e.Request.Cookie(quoteCookieName); err == nil {
		token = cookie.Value
	}

	if token == "" {
		token = security.PseudorandomString(24)
		http.SetCookie(e.Response, &http.Cookie{
			Name:     quoteCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()

	quote, ok := qs.quotes[token]
	if !ok {
		quote = services.NewQuote()
		qs.quotes[token] = quote
	}
	return quote
}
