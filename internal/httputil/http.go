package httputil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "finantrack_flash"

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// RedirectFlash stores a one-shot flash message and redirects. The next view
// render pops it.
func RedirectFlash(w http.ResponseWriter, r *http.Request, path, msg string) {
	if msg != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    encodeFlash(msg),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return decodeFlash(cookie.Value)
}

// Flash text goes through base64 so arbitrary messages survive cookie
// value restrictions.
func encodeFlash(msg string) string {
	return base64.URLEncoding.EncodeToString([]byte(msg))
}

func decodeFlash(v string) string {
	b, err := base64.URLEncoding.DecodeString(v)
	if err != nil {
		return ""
	}
	return string(b)
}
