package website

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"git.handmade.network/hmn/marsport/src/templates"
)

func FourOhFour(c *RequestContext) ResponseData {
	if isAPIRequest(c) {
		return c.JsonErrorResponse(http.StatusNotFound, "Not Found")
	}

	var res ResponseData
	res.StatusCode = http.StatusNotFound
	if c.Req.Header["Accept"] != nil && strings.Contains(c.Req.Header["Accept"][0], "text/html") {
		res.MustWriteTemplate("error.html", templates.ErrorData{
			BaseData:   getBaseData(c, "Page not found"),
			StatusCode: http.StatusNotFound,
			Message:    "Page not found",
		}, c.Perf)
	} else {
		res.Write([]byte("Not Found"))
	}
	return res
}

// A SafeError can be used to wrap another error and explicitly provide
// an error message that is safe to show to a user. This allows the original
// error to easily be logged and for servers to consistently return errors
// in a standard format, without having to worry about leaking sensitive
// info (assuming you use the right middleware!).
type SafeError struct {
	Wrapped error
	Msg     string
}

func NewSafeError(err error, msg string, args ...interface{}) error {
	return &SafeError{
		Wrapped: err,
		Msg:     fmt.Sprintf(msg, args...),
	}
}

func (s *SafeError) Error() string {
	return s.Msg
}

func (s *SafeError) Unwrap() error {
	return s.Wrapped
}

// safeMessage returns the first SafeError message among errs, if any.
func safeMessage(errs []error) string {
	for _, err := range errs {
		var safeErr *SafeError
		if errors.As(err, &safeErr) {
			return safeErr.Msg
		}
	}
	return ""
}
