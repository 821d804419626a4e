package handler

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "flash"

// Flash is a one-shot notice shown on the next rendered page: set on a
// redirect, read and cleared by the page that renders it.
type Flash struct {
	Category string // "success" or "error"
	Message  string
}

// setFlash stores a notice in a short-lived cookie. The value is
// query-escaped because cookie values can't carry spaces or separators.
func setFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie. Returns nil when there is no
// pending notice or the cookie doesn't parse.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	// Single-use: clear it regardless of whether it parses.
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	category, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}

	return &Flash{Category: category, Message: message}
}
