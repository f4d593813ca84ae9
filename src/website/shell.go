package website

import (
	"net/http"

	"git.handmade.network/hmn/marsport/src/client"
	"git.handmade.network/hmn/marsport/src/marsurl"
	"git.handmade.network/hmn/marsport/src/templates"
)

// AppShell serves the single-page app for every browser route. The app
// does its own routing from there.
func AppShell(c *RequestContext) ResponseData {
	var res ResponseData
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := res.WriteTemplate("index.html", templates.ShellData{
		BaseData: getBaseData(c, ""),
		Route:    c.Req.URL.Path,
	}, c.Perf)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, NewSafeError(err, "Could not render the app"))
	}
	return res
}

func StaticFile(c *RequestContext) ResponseData {
	var res ResponseData
	if c.StaticDir == "" {
		return FourOhFour(c)
	}

	fileServer := http.StripPrefix(marsurl.StaticPath, http.FileServer(http.Dir(c.StaticDir)))
	fileServer.ServeHTTP(&res, c.Req)
	return res
}

// ClientModule serves the source of the client package. It must never be
// cached, so that it always matches the server it came from.
func ClientModule(c *RequestContext) ResponseData {
	var res ResponseData
	res.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.Write(client.Source)
	return res
}
