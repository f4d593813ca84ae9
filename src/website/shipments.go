package website

import (
	"errors"
	"net/http"
	"strings"

	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/validation"
	"github.com/gorilla/websocket"
)

func APISentToMars(c *RequestContext) ResponseData {
	var res ResponseData
	res.WriteJson(c.Shipments.List(), c.Perf)
	return res
}

// APISendToMars queues the item in the body under the id in the path. The
// path wins if the body names a different id.
func APISendToMars(c *RequestContext) ResponseData {
	var item models.Item
	if err := readJsonBody(c, &item); err != nil {
		return c.JsonErrorResponse(http.StatusBadRequest, "Invalid item", err)
	}
	item.ID = c.PathParams["itemid"]

	items, err := c.Shipments.Send(item)
	if err != nil {
		var valErr *validation.Error
		if errors.As(err, &valErr) {
			return c.JsonErrorResponse(http.StatusBadRequest, strings.Join(valErr.Messages, "; "))
		}
		return c.JsonErrorResponse(http.StatusInternalServerError, "Failed to send item", err)
	}

	c.Logger.Info().Str("item", item.ID).Msg("Item sent to Mars")

	var res ResponseData
	res.WriteJson(items, c.Perf)
	return res
}

func APICancelSendingToMars(c *RequestContext) ResponseData {
	items := c.Shipments.Cancel(c.PathParams["itemid"])

	var res ResponseData
	res.WriteJson(items, c.Perf)
	return res
}

var liveFeedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

func APISentToMarsLive(c *RequestContext) ResponseData {
	if c.LiveFeed == nil {
		return c.JsonErrorResponse(http.StatusServiceUnavailable, "Live feed is not running")
	}

	conn, err := liveFeedUpgrader.Upgrade(c.Res, c.Req, nil)
	if err != nil {
		// The upgrader has already responded.
		c.Logger.Warn().Err(err).Msg("Failed to upgrade live feed connection")
		return Hijacked()
	}

	c.LiveFeed.Serve(conn, c.Logger)
	return Hijacked()
}
