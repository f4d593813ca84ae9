package website

import (
	"io"
	"net/http"

	"git.handmade.network/hmn/marsport/src/auth"
	"git.handmade.network/hmn/marsport/src/oops"
	"github.com/goccy/go-json"
)

const maxJsonBodySize = 1 << 20

func APIUser(c *RequestContext) ResponseData {
	type userResponse struct {
		User *string `json:"user"`
	}

	var res ResponseData
	res.WriteJson(userResponse{User: c.CurrentUsername()}, c.Perf)
	return res
}

func APILogin(c *RequestContext) ResponseData {
	type loginRequest struct {
		Username string `json:"username"`
	}
	type loginResponse struct {
		Username string `json:"username"`
	}

	var req loginRequest
	if err := readJsonBody(c, &req); err != nil {
		return c.JsonErrorResponse(http.StatusBadRequest, auth.ErrUsernameRequired.Error(), err)
	}
	if err := auth.ValidateUsername(req.Username); err != nil {
		return c.JsonErrorResponse(http.StatusBadRequest, err.Error())
	}

	c.Logger.Info().Str("username", req.Username).Msg("User logged in")

	var res ResponseData
	res.SetCookie(auth.NewSessionCookie(req.Username))
	res.WriteJson(loginResponse{Username: req.Username}, c.Perf)
	return res
}

func APILogout(c *RequestContext) ResponseData {
	type logoutResponse struct {
		Message string `json:"message"`
	}

	if c.CurrentSession != nil {
		c.Logger.Info().Msg("User logged out")
	}

	var res ResponseData
	res.SetCookie(auth.DeleteSessionCookie())
	res.WriteJson(logoutResponse{Message: "User logged out"}, c.Perf)
	return res
}

func readJsonBody(c *RequestContext, dst any) error {
	b := c.Perf.StartBlock("JSON", "Decode request")
	defer b.End()

	body, err := io.ReadAll(io.LimitReader(c.Req.Body, maxJsonBodySize))
	if err != nil {
		return oops.New(err, "failed to read request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return oops.New(err, "request body is not valid JSON")
	}
	return nil
}
