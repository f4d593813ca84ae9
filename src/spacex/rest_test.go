package spacex

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"git.handmade.network/hmn/marsport/src/spacex/spacextest"
	"git.handmade.network/hmn/marsport/src/validation"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, overrides map[string]string) (*API, *spacextest.Server) {
	srv := spacextest.NewServer(t, overrides)
	return NewAPI(srv.URL+"/", nil), srv
}

func TestGetInfo(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	about, err := api.GetInfo(context.Background())
	require.Nil(t, err)
	assert.Equal(t, About{
		Founder:   "Elon Musk",
		Founded:   2002,
		Employees: 9500,
		CEO:       "Elon Musk",
		COO:       "Gwynne Shotwell",
		CTO:       "Elon Musk",
		Valuation: 74000000000,
		Headquarters: Headquarters{
			Address: "Rocket Road",
			City:    "Hawthorne",
			State:   "California",
		},
		Summary: "SpaceX designs, manufactures and launches advanced rockets and spacecraft.",
	}, about)

	t.Run("drops extra fields", func(t *testing.T) {
		out, err := json.Marshal(about)
		require.Nil(t, err)

		var fields map[string]any
		require.Nil(t, json.Unmarshal(out, &fields))
		assert.NotContains(t, fields, "name")
		assert.NotContains(t, fields, "cto_propulsion")
		assert.NotContains(t, fields, "links")
		assert.Len(t, fields, 9)
	})

	t.Run("missing headquarters", func(t *testing.T) {
		api, _ := newTestAPI(t, map[string]string{"/company": `{"founder": "Elon Musk"}`})
		_, err := api.GetInfo(context.Background())

		var shapeErr *ShapeError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, "company", shapeErr.Resource)

		var valErr *validation.Error
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, valErr.Messages, "headquarters is required")
	})
}

func TestGetHistory(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	events, err := api.GetHistory(context.Background())
	require.Nil(t, err)
	assert.Equal(t, []EventBrief{
		{ID: NumericID(1), Title: "Falcon 1 Makes History"},
		{ID: NumericID(9), Title: "Falcon reuse"},
		{ID: StringID("5f6fb2cfdcfdf403df37971e"), Title: "Crew Dragon"},
	}, events)

	out, err := json.Marshal(events[:2])
	require.Nil(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Falcon 1 Makes History"},{"id":9,"title":"Falcon reuse"}]`, string(out))

	t.Run("event without title", func(t *testing.T) {
		api, _ := newTestAPI(t, map[string]string{"/history": `[{"id": 1}]`})
		_, err := api.GetHistory(context.Background())

		var shapeErr *ShapeError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, "history", shapeErr.Resource)
	})

	t.Run("not a list", func(t *testing.T) {
		api, _ := newTestAPI(t, map[string]string{"/history": `{"error": "nope"}`})
		_, err := api.GetHistory(context.Background())
		assert.NotNil(t, err)
	})
}

func TestGetHistoryEvent(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	event, err := api.GetHistoryEvent(context.Background(), "9")
	require.Nil(t, err)

	out, err := json.Marshal(event)
	require.Nil(t, err)
	assert.JSONEq(t, `{
		"id": 9,
		"title": "Falcon reuse",
		"event_date_utc": "2017-03-30T22:27:00Z",
		"details": "SpaceX successfully launches and lands a used Falcon 9.",
		"links": {
			"reddit": null,
			"article": "https://en.wikipedia.org/wiki/SES-10",
			"wikipedia": "https://en.wikipedia.org/wiki/SES-10"
		}
	}`, string(out))

	t.Run("unknown id", func(t *testing.T) {
		_, err := api.GetHistoryEvent(context.Background(), "424242")

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("malformed links pass through", func(t *testing.T) {
		api, _ := newTestAPI(t, map[string]string{
			"/history/7": `{"id": 7, "title": "Odd", "links": {"article": "not a url"}}`,
		})
		event, err := api.GetHistoryEvent(context.Background(), "7")
		require.Nil(t, err)
		require.NotNil(t, event.Links["article"])
		assert.Equal(t, "not a url", *event.Links["article"])
	})
}

func TestGetRockets(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	rockets, err := api.GetRockets(context.Background())
	require.Nil(t, err)
	assert.Equal(t, []RocketBrief{
		{RocketID: StringID("5e9d0d95eda69955f709d1eb"), RocketName: "Falcon 1"},
		{RocketID: StringID(spacextest.RocketID), RocketName: "Falcon 9"},
	}, rockets)

	out, err := json.Marshal(rockets[1])
	require.Nil(t, err)
	assert.JSONEq(t, `{"rocket_id":"5e9d0d95eda69973a809d1ec","rocket_name":"Falcon 9"}`, string(out))
}

func TestGetRocket(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	rocket, err := api.GetRocket(context.Background(), spacextest.RocketID)
	require.Nil(t, err)
	assert.Equal(t, "Falcon 9", rocket.RocketName)
	assert.Equal(t, "2010-06-04", rocket.FirstFlight)
	assert.Equal(t, []string{"https://farm1.staticflickr.com/929/28787338307_3453a11a77_b.jpg"}, rocket.FlickrImages)
	assert.JSONEq(t, `{"meters": 70, "feet": 229.6}`, string(rocket.Height))
	assert.JSONEq(t, `{"number": 9, "type": "merlin"}`, string(rocket.Engines))

	out, err := json.Marshal(rocket)
	require.Nil(t, err)

	var fields map[string]any
	require.Nil(t, json.Unmarshal(out, &fields))
	assert.Len(t, fields, 12)
	for _, dropped := range []string{"landing_legs", "cost_per_launch", "active", "country", "company", "type", "id", "name"} {
		assert.NotContains(t, fields, dropped)
	}

	t.Run("missing specs are null", func(t *testing.T) {
		api, _ := newTestAPI(t, map[string]string{
			"/rockets/bare": `{"id": "bare", "name": "Bare"}`,
		})
		rocket, err := api.GetRocket(context.Background(), "bare")
		require.Nil(t, err)

		out, err := json.Marshal(rocket)
		require.Nil(t, err)

		var fields map[string]any
		require.Nil(t, json.Unmarshal(out, &fields))
		assert.Contains(t, fields, "height")
		assert.Nil(t, fields["height"])
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := api.GetRocket(context.Background(), "nope")

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})
}

func TestGetRoadster(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	roadster, err := api.GetRoadster(context.Background())
	require.Nil(t, err)
	assert.Equal(t, Roadster{
		Name:            "Elon Musk's Tesla Roadster",
		LaunchDateUTC:   "2018-02-06T20:45:00.000Z",
		Details:         "Elon Musk's Tesla Roadster is an electric sports car.",
		EarthDistanceKm: 320000000.5,
		MarsDistanceKm:  98000000.25,
		Wikipedia:       "https://en.wikipedia.org/wiki/Elon_Musk%27s_Tesla_Roadster",
	}, roadster)
}

func TestNoCaching(t *testing.T) {
	api, srv := newTestAPI(t, nil)

	for i := 0; i < 3; i++ {
		_, err := api.GetRoadster(context.Background())
		require.Nil(t, err)
	}
	assert.Equal(t, 3, srv.Hits("/roadster"))
}

func TestTransportError(t *testing.T) {
	api, srv := newTestAPI(t, nil)
	srv.Close()

	_, err := api.GetInfo(context.Background())
	require.NotNil(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestCanceledContext(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := api.GetRockets(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
