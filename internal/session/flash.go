package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// Flash categories
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-time user-facing notice rendered on the next page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

const flashCookieName = "flash"

// SetFlashes queues notices for the next rendered page. A later call in the
// same response replaces the previous batch.
func SetFlashes(w http.ResponseWriter, flashes ...Flash) {
	if len(flashes) == 0 {
		return
	}

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns notices queued by the previous request and clears them.
// Malformed cookies are discarded silently.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
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

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}

	return flashes
}
