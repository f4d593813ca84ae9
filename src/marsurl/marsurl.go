package marsurl

import (
	"net/url"
	"strings"
)

// Paths under these prefixes are served to anonymous visitors.
const (
	StaticPath = "/static"
	APIPath    = "/api"
)

type Q struct {
	Name  string
	Value string
}

// Url joins a base URL (scheme and host, optionally with a path prefix) with
// a path built by this package.
func Url(base string, path string, query []Q) string {
	result := strings.TrimSuffix(base, "/") + "/" + trim(path)
	if q := encodeQuery(query); q != "" {
		result += "?" + q
	}
	return result
}

func trim(path string) string {
	if len(path) > 0 && path[0] == '/' {
		return path[1:]
	}
	return path
}

func encodeQuery(query []Q) string {
	result := url.Values{}
	for _, q := range query {
		result.Set(q.Name, q.Value)
	}
	return result.Encode()
}
