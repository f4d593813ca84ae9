package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"git.handmade.network/hmn/marsport/src/logging"
	"git.handmade.network/hmn/marsport/src/marsurl"
	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/oops"
	"git.handmade.network/hmn/marsport/src/spacex"
	"git.handmade.network/hmn/marsport/src/utils"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

/*
A Client is the one place the app talks to the network from. It holds a
cookie jar, so like a browser it stays logged in between calls once
LoginUser succeeds.

The session methods (LoginUser, LogoutUser) never return errors. Failures
are logged and reported as "no user". Everything else returns its errors
to the caller.
*/
type Client struct {
	BaseUrl    string
	HTTPClient *http.Client
	SpaceX     *spacex.API
}

// StatusError is returned when the local server answers with a non-2xx
// status. Message holds the server's {"error": ...} text when there is one.
type StatusError struct {
	Method     string
	Url        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Url, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Url, e.StatusCode)
}

var ErrMissingItemID = errors.New("item has no id")

// New creates a Client for the server at baseUrl that fetches SpaceX data
// from spacexBaseUrl, or through the server's own proxy if spacexBaseUrl is
// empty. If httpClient is nil a default one is used. Either way the Client
// gets its own cookie jar unless httpClient already has one.
func New(baseUrl string, spacexBaseUrl string, httpClient *http.Client) *Client {
	var hc http.Client
	if httpClient != nil {
		hc = *httpClient
	}
	if hc.Jar == nil {
		hc.Jar = utils.Must1(cookiejar.New(nil))
	}
	var spacexAPI *spacex.API
	if spacexBaseUrl == "" {
		spacexAPI = spacex.NewProxyAPI(marsurl.Url(baseUrl, marsurl.BuildAPISpaceX(""), nil), &hc)
	} else {
		spacexAPI = spacex.NewAPI(spacexBaseUrl, &hc)
	}

	return &Client{
		BaseUrl:    strings.TrimSuffix(baseUrl, "/"),
		HTTPClient: &hc,
		SpaceX:     spacexAPI,
	}
}

/*
 * Session
 */

// GetUser returns the name of the logged-in user, or nil if nobody is
// logged in.
func (c *Client) GetUser(ctx context.Context) (*string, error) {
	var res struct {
		User *string `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, marsurl.BuildAPIUser(), nil, &res)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return res.User, nil
}

// LoginUser logs in as username and returns the name the server accepted,
// or nil if the login failed for any reason.
func (c *Client) LoginUser(ctx context.Context, username string) *string {
	req := struct {
		Username string `json:"username"`
	}{username}
	var res struct {
		Username *string `json:"username"`
	}

	if err := c.do(ctx, http.MethodPost, marsurl.BuildAPILogin(), req, &res); err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Msg("Failed to log in user")
		return nil
	}
	if res.Username == nil {
		logging.ExtractLogger(ctx).Error().Msg("Login response had no username")
		return nil
	}
	return res.Username
}

func (c *Client) LogoutUser(ctx context.Context) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, marsurl.BuildAPILogout(), nil, &res); err != nil {
		logging.ExtractLogger(ctx).Error().Err(err).Msg("Failed to log out user")
		return
	}
	logging.ExtractLogger(ctx).Debug().Str("Message", res.Message).Msg("User logged out")
}

/*
 * SpaceX data
 */

func (c *Client) GetInfo(ctx context.Context) (spacex.About, error) {
	return c.SpaceX.GetInfo(ctx)
}

func (c *Client) GetHistory(ctx context.Context) ([]spacex.EventBrief, error) {
	return c.SpaceX.GetHistory(ctx)
}

func (c *Client) GetHistoryEvent(ctx context.Context, id string) (spacex.EventFull, error) {
	return c.SpaceX.GetHistoryEvent(ctx, id)
}

func (c *Client) GetRockets(ctx context.Context) ([]spacex.RocketBrief, error) {
	return c.SpaceX.GetRockets(ctx)
}

func (c *Client) GetRocket(ctx context.Context, id string) (spacex.RocketFull, error) {
	return c.SpaceX.GetRocket(ctx, id)
}

func (c *Client) GetRoadster(ctx context.Context) (spacex.Roadster, error) {
	return c.SpaceX.GetRoadster(ctx)
}

/*
 * Mars shipments
 */

func (c *Client) GetSentToMars(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, marsurl.BuildAPISentToMars(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SendToMars queues item and returns everything queued afterward.
func (c *Client) SendToMars(ctx context.Context, item models.Item) ([]models.Item, error) {
	if item.ID == "" {
		return nil, ErrMissingItemID
	}

	var items []models.Item
	if err := c.do(ctx, http.MethodPost, marsurl.BuildAPISendToMars(item.ID), item, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CancelSendingToMars unqueues item and returns everything still queued.
func (c *Client) CancelSendingToMars(ctx context.Context, item models.Item) ([]models.Item, error) {
	if item.ID == "" {
		return nil, ErrMissingItemID
	}

	var items []models.Item
	if err := c.do(ctx, http.MethodDelete, marsurl.BuildAPICancelSendingToMars(item.ID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

/*
WatchSentToMars calls onChange with the shipment collection every time it
changes, starting with the current one. It blocks until ctx is canceled,
returning nil, or until the connection fails.
*/
func (c *Client) WatchSentToMars(ctx context.Context, onChange func(items []models.Item)) error {
	wsUrl := marsurl.Url(c.BaseUrl, marsurl.BuildAPISentToMarsLive(), nil)
	wsUrl = "ws" + strings.TrimPrefix(wsUrl, "http")

	dialer := websocket.Dialer{
		Jar:              c.HTTPClient.Jar,
		HandshakeTimeout: websocket.DefaultDialer.HandshakeTimeout,
	}
	if t, ok := c.HTTPClient.Transport.(*http.Transport); ok {
		dialer.TLSClientConfig = t.TLSClientConfig
	}

	conn, res, err := dialer.DialContext(ctx, wsUrl, nil)
	if err != nil {
		if res != nil {
			return &StatusError{Method: http.MethodGet, Url: wsUrl, StatusCode: res.StatusCode}
		}
		return oops.New(err, "failed to connect to shipment feed")
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return oops.New(err, "shipment feed failed")
		}

		var items []models.Item
		if err := json.Unmarshal(msg, &items); err != nil {
			return oops.New(err, "failed to parse shipment feed message")
		}
		onChange(items)
	}
}

// do sends a JSON request to the local server and decodes the JSON response
// into dst.
func (c *Client) do(ctx context.Context, method string, path string, body any, dst any) error {
	reqUrl := marsurl.Url(c.BaseUrl, path, nil)

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return oops.New(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqUrl, reqBody)
	if err != nil {
		return oops.New(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return oops.New(err, "%s %s failed", method, path)
	}
	defer func() {
		io.Copy(io.Discard, res.Body)
		res.Body.Close()
	}()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return oops.New(err, "failed to read response body")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		statusErr := &StatusError{
			Method:     method,
			Url:        reqUrl,
			StatusCode: res.StatusCode,
		}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resBody, &errBody) == nil {
			statusErr.Message = errBody.Error
		}
		return statusErr
	}

	if err := json.Unmarshal(resBody, dst); err != nil {
		return oops.New(err, "failed to parse response from %s %s", method, path)
	}
	return nil
}
