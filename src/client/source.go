package client

import (
	_ "embed"
)

// Source is the text of client.go, served to anyone who wants to read how
// the app talks to its server.
//
//go:embed client.go
var Source []byte
