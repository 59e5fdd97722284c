package httpapi

import (
	"encoding/json"
	"net/http"

	"jobtrends-engine/internal/secrets"
)

type SecretsHandler struct{}

type setSessionCookieReq struct {
	Cookie string `json:"cookie"`
}

// SetSessionCookie stores the source's session cookie in the OS keyring.
// It is supplied out of band (it expires) and never lands in config or logs.
func (h SecretsHandler) SetSessionCookie(w http.ResponseWriter, r *http.Request) {
	var req setSessionCookieReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetSessionCookie(req.Cookie); err != nil {
		http.Error(w, "failed to store cookie: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSessionCookie removes the stored cookie; the scraper goes back to
// unauthenticated fetches on the next run.
func (h SecretsHandler) DeleteSessionCookie(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteSessionCookie(); err != nil {
		http.Error(w, "failed to delete cookie: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
