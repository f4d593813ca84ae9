package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"git.handmade.network/hmn/marsport/src/config"
	"git.handmade.network/hmn/marsport/src/marsurl"
	"git.handmade.network/hmn/marsport/src/models"
)

// The session cookie holds the username itself. It is the only record of who
// is logged in; the server keeps no copy.
const SessionCookieName = "logged"

var ErrUsernameRequired = errors.New("Username is required")

func ValidateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	return nil
}

// GetSession reads the session for a single request. Returns nil for
// anonymous requests.
func GetSession(req *http.Request) *models.Session {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil {
		// http.ErrNoCookie is the only error Cookie ever returns.
		return nil
	}

	// Values are percent-encoded so that any username survives the cookie
	// grammar. Fall back to the raw value for cookies set by other clients.
	username, err := url.PathUnescape(cookie.Value)
	if err != nil {
		username = cookie.Value
	}
	if username == "" {
		return nil
	}

	return &models.Session{Username: username}
}

func NewSessionCookie(username string) *http.Cookie {
	return &http.Cookie{
		Name:  SessionCookieName,
		Value: url.PathEscape(username),
		Path:  "/",

		Secure:   config.Config.Auth.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func DeleteSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:   SessionCookieName,
		Path:   "/",
		MaxAge: -1,

		Secure:   config.Config.Auth.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// IsGuardExempt reports whether path may be visited without a session.
func IsGuardExempt(path string) bool {
	return strings.HasPrefix(path, marsurl.StaticPath) ||
		strings.HasPrefix(path, marsurl.APIPath) ||
		path == marsurl.BuildLogin()
}

// MustRedirectToLogin is the route guard's whole decision.
func MustRedirectToLogin(req *http.Request) bool {
	return GetSession(req) == nil && !IsGuardExempt(req.URL.Path)
}
