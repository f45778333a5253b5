// Package cookie выставляет и удаляет сессионную cookie портала.
package cookie

import (
	"net/http"
	"time"
)

// Options описывает параметры сессионной cookie.
type Options struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Set записывает подписанное значение сессии.
func Set(w http.ResponseWriter, opts Options, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		Expires:  time.Now().Add(opts.TTL),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear удаляет cookie в браузере.
func Clear(w http.ResponseWriter, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
