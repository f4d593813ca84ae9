package models

// Session is the identity carried by a single request. It is rebuilt from the
// session cookie on every request and never shared between requests.
type Session struct {
	Username string
}
