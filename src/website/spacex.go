package website

import (
	"errors"
	"net/http"

	"git.handmade.network/hmn/marsport/src/spacex"
)

/*
These proxy the SpaceX API for browsers that can't reach it directly. They
return exactly what the client package's methods return, and pass upstream
error statuses through unchanged.
*/

func APISpaceXCompany(c *RequestContext) ResponseData {
	about, err := c.SpaceX.GetInfo(c)
	return spacexResponse(c, about, err)
}

func APISpaceXHistory(c *RequestContext) ResponseData {
	events, err := c.SpaceX.GetHistory(c)
	return spacexResponse(c, events, err)
}

func APISpaceXHistoryEvent(c *RequestContext) ResponseData {
	event, err := c.SpaceX.GetHistoryEvent(c, c.PathParams["eventid"])
	return spacexResponse(c, event, err)
}

func APISpaceXRockets(c *RequestContext) ResponseData {
	rockets, err := c.SpaceX.GetRockets(c)
	return spacexResponse(c, rockets, err)
}

func APISpaceXRocket(c *RequestContext) ResponseData {
	rocket, err := c.SpaceX.GetRocket(c, c.PathParams["rocketid"])
	return spacexResponse(c, rocket, err)
}

func APISpaceXRoadster(c *RequestContext) ResponseData {
	roadster, err := c.SpaceX.GetRoadster(c)
	return spacexResponse(c, roadster, err)
}

func spacexResponse(c *RequestContext, data any, err error) ResponseData {
	if err != nil {
		var statusErr *spacex.StatusError
		if errors.As(err, &statusErr) {
			return c.JsonErrorResponse(statusErr.StatusCode, http.StatusText(statusErr.StatusCode))
		}

		var shapeErr *spacex.ShapeError
		if errors.As(err, &shapeErr) {
			return c.JsonErrorResponse(http.StatusBadGateway, "Unexpected response from the SpaceX API", err)
		}

		return c.JsonErrorResponse(http.StatusBadGateway, "Failed to reach the SpaceX API", err)
	}

	var res ResponseData
	res.WriteJson(data, c.Perf)
	return res
}
