package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithCookie(path string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestValidateUsername(t *testing.T) {
	assert.Equal(t, ErrUsernameRequired, ValidateUsername(""))
	assert.Nil(t, ValidateUsername("elon"))
	assert.Equal(t, "Username is required", ErrUsernameRequired.Error())
}

func TestGetSession(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		assert.Nil(t, GetSession(requestWithCookie("/", nil)))
	})
	t.Run("empty cookie", func(t *testing.T) {
		assert.Nil(t, GetSession(requestWithCookie("/", &http.Cookie{Name: SessionCookieName, Value: ""})))
	})
	t.Run("round trip", func(t *testing.T) {
		for _, username := range []string{"elon", "Gwynne Shotwell", "josé", "a;b=c"} {
			sess := GetSession(requestWithCookie("/", NewSessionCookie(username)))
			if assert.NotNil(t, sess, username) {
				assert.Equal(t, username, sess.Username)
			}
		}
	})
	t.Run("raw value", func(t *testing.T) {
		sess := GetSession(requestWithCookie("/", &http.Cookie{Name: SessionCookieName, Value: "100%"}))
		if assert.NotNil(t, sess) {
			assert.Equal(t, "100%", sess.Username)
		}
	})
}

func TestSessionCookieAttributes(t *testing.T) {
	c := NewSessionCookie("elon")
	assert.Equal(t, "logged", c.Name)
	assert.Equal(t, "elon", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)

	d := DeleteSessionCookie()
	assert.Equal(t, "logged", d.Name)
	assert.Less(t, d.MaxAge, 0)
}

func TestIsGuardExempt(t *testing.T) {
	exempt := []string{"/static", "/static/js/app.js", "/staticfiles", "/api", "/api/user", "/apis", "/login"}
	guarded := []string{"/", "/login/", "/logins", "/history", "/rockets/falcon9", "/client-module"}

	for _, path := range exempt {
		assert.True(t, IsGuardExempt(path), path)
	}
	for _, path := range guarded {
		assert.False(t, IsGuardExempt(path), path)
	}
}

func TestMustRedirectToLogin(t *testing.T) {
	assert.True(t, MustRedirectToLogin(requestWithCookie("/rockets", nil)))
	assert.False(t, MustRedirectToLogin(requestWithCookie("/rockets", NewSessionCookie("elon"))))
	assert.False(t, MustRedirectToLogin(requestWithCookie("/login", nil)))
	assert.False(t, MustRedirectToLogin(requestWithCookie("/api/rockets", nil)))
	assert.False(t, MustRedirectToLogin(requestWithCookie("/static/app.css", nil)))
}
