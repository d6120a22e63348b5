package router

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/codewithraj/blog/internal/pkg/view"
)

const flashCookieName = "flash"

// setFlashCookie stores one-shot messages for the next rendered page.
func setFlashCookie(w http.ResponseWriter, flashes []view.Flash) {
	if len(flashes) == 0 {
		return
	}

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashCookie reads and clears pending flash messages.
func popFlashCookie(w http.ResponseWriter, r *http.Request) []view.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []view.Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
