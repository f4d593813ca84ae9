package website

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"git.handmade.network/hmn/marsport/src/auth"
	"git.handmade.network/hmn/marsport/src/logging"
	"git.handmade.network/hmn/marsport/src/marsurl"
	"git.handmade.network/hmn/marsport/src/oops"
	"git.handmade.network/hmn/marsport/src/perf"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

func requestIDMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		c.RequestID = uuid.NewString()
		logger := c.Logger.With().Str("request", c.RequestID).Logger()
		c.Logger = &logger
		c.ctx = logging.AttachLoggerToContext(c.Logger, c.ctx)

		res := h(c)
		if !res.hijacked {
			res.Header().Set(RequestIDHeader, c.RequestID)
		}
		return res
	}
}

func panicCatcherMiddleware(h Handler) Handler {
	return func(c *RequestContext) (res ResponseData) {
		defer func() {
			if recovered := recover(); recovered != nil {
				maybeError, ok := recovered.(error)
				var err error
				if ok {
					err = oops.New(maybeError, "Recovered from panic")
				} else {
					err = oops.New(nil, "Recovered from panic with value: %v", recovered)
				}
				if isAPIRequest(c) {
					res = c.JsonErrorResponse(http.StatusInternalServerError, "Internal server error", err)
				} else {
					res = c.ErrorResponse(http.StatusInternalServerError, err)
				}
			}
		}()

		return h(c)
	}
}

func trackRequestPerf(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		c.Perf = perf.MakeNewRequestPerf(c.Route, c.Req.Method, c.Req.URL.Path)
		var res ResponseData
		defer func() {
			c.Perf.EndRequest()
			c.Perf.Status = res.StatusCode
			if res.StatusCode == 0 && !res.hijacked {
				c.Perf.Status = http.StatusOK
			}
			log := c.Logger.Info()
			blockStack := make([]time.Time, 0)
			for i, block := range c.Perf.Blocks {
				for len(blockStack) > 0 && block.End.After(blockStack[len(blockStack)-1]) {
					blockStack = blockStack[:len(blockStack)-1]
				}
				log.Str(fmt.Sprintf("[%4.d] At %9.2fms", i, c.Perf.MsFromStart(&block)), fmt.Sprintf("%*.s[%s] %s (%.4fms)", len(blockStack)*2, "", block.Category, block.Description, block.DurationMs()))
				blockStack = append(blockStack, block.End)
			}
			log.Int("Status", c.Perf.Status).Msg(fmt.Sprintf("Served [%s] %s in %.4fms", c.Perf.Method, c.Perf.Path, c.Perf.DurationMs()))
			if c.PerfCollector != nil {
				c.PerfCollector.SubmitRun(c.Perf)
			}
		}()

		res = h(c)
		return res
	}
}

// loadSession derives the current session from the request's cookie. It is
// never stored anywhere but the request.
func loadSession(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		c.CurrentSession = auth.GetSession(c.Req)
		if c.CurrentSession != nil {
			logger := c.Logger.With().Str("user", c.CurrentSession.Username).Logger()
			c.Logger = &logger
			c.ctx = logging.AttachLoggerToContext(c.Logger, c.ctx)
		}
		return h(c)
	}
}

// routeGuard sends anonymous visitors to the login page, except on the paths
// that must work without a session.
func routeGuard(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if auth.MustRedirectToLogin(c.Req) {
			return c.Redirect(marsurl.BuildLogin(), http.StatusSeeOther)
		}
		return h(c)
	}
}

func logContextErrors(c *RequestContext, errs ...error) {
	for _, err := range errs {
		c.Logger.Error().Timestamp().Stack().Str("Requested", c.FullUrl()).Err(err).Msg("error occurred during request")
	}
}

func logContextErrorsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		logContextErrors(c, res.Errors...)
		return res
	}
}

func isAPIRequest(c *RequestContext) bool {
	p := c.Req.URL.Path
	return p == marsurl.APIPath || strings.HasPrefix(p, marsurl.APIPath+"/")
}
