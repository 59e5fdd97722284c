package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups this app's secrets in the OS keychain.
	KeyringService = "jobtrends"

	sessionAccount = "session-cookie"
)

// GetSessionCookie returns the session cookie used for detail-page fetches.
// It lives only in the OS keyring, never in config files or source; an empty
// result means the scraper runs unauthenticated (listing pages still work).
func GetSessionCookie() (string, error) {
	v, err := keyring.Get(KeyringService, sessionAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func SetSessionCookie(cookie string) error {
	if strings.TrimSpace(cookie) == "" {
		return errors.New("session cookie is empty")
	}
	return keyring.Set(KeyringService, sessionAccount, cookie)
}

func DeleteSessionCookie() error {
	return keyring.Delete(KeyringService, sessionAccount)
}
