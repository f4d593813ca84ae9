package spacex

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"git.handmade.network/hmn/marsport/src/logging"
	"git.handmade.network/hmn/marsport/src/oops"
	"git.handmade.network/hmn/marsport/src/perf"
	"git.handmade.network/hmn/marsport/src/validation"
	"github.com/goccy/go-json"
	"mvdan.cc/xurls/v2"
)

// An API fetches read-only resources from the SpaceX API and projects them
// into DTOs. Every call is a fresh round trip: no retries, no caching.
//
// A Projected API talks to something that already serves the DTOs, like
// the website's own /api/spacex proxy, and decodes them as they are.
type API struct {
	BaseUrl    string
	HTTPClient *http.Client
	Projected  bool
}

func NewAPI(baseUrl string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &API{
		BaseUrl:    strings.TrimSuffix(baseUrl, "/"),
		HTTPClient: httpClient,
	}
}

// NewProxyAPI creates an API for a server that proxies SpaceX data as DTOs.
func NewProxyAPI(baseUrl string, httpClient *http.Client) *API {
	api := NewAPI(baseUrl, httpClient)
	api.Projected = true
	return api
}

const maxErrorBodyLen = 512

func (api *API) GetInfo(ctx context.Context) (About, error) {
	if api.Projected {
		return getProjected[About](ctx, api, "company", "/company")
	}

	type company struct {
		Founder      string  `json:"founder"`
		Founded      int     `json:"founded"`
		Employees    int     `json:"employees"`
		CEO          string  `json:"ceo"`
		COO          string  `json:"coo"`
		CTO          string  `json:"cto"`
		Valuation    float64 `json:"valuation"`
		Headquarters *struct {
			Address string `json:"address"`
			City    string `json:"city"`
			State   string `json:"state"`
		} `json:"headquarters" validate:"required"`
		Summary string `json:"summary"`
	}

	var c company
	if err := api.get(ctx, "company", "/company", &c); err != nil {
		return About{}, err
	}
	if err := validation.Struct(c); err != nil {
		return About{}, &ShapeError{Resource: "company", Wrapped: err}
	}

	return About{
		Founder:   c.Founder,
		Founded:   c.Founded,
		Employees: c.Employees,
		CEO:       c.CEO,
		COO:       c.COO,
		CTO:       c.CTO,
		Valuation: c.Valuation,
		Headquarters: Headquarters{
			Address: c.Headquarters.Address,
			City:    c.Headquarters.City,
			State:   c.Headquarters.State,
		},
		Summary: c.Summary,
	}, nil
}

type historyEvent struct {
	ID           ID                 `json:"id" validate:"required"`
	Title        string             `json:"title" validate:"required"`
	EventDateUTC string             `json:"event_date_utc"`
	Details      string             `json:"details"`
	Links        map[string]*string `json:"links"`
}

func (api *API) GetHistory(ctx context.Context) ([]EventBrief, error) {
	if api.Projected {
		return getProjected[[]EventBrief](ctx, api, "history", "/history")
	}

	type history struct {
		Events []historyEvent `json:"events" validate:"dive"`
	}

	var h history
	if err := api.get(ctx, "history", "/history", &h.Events); err != nil {
		return nil, err
	}
	if err := validation.Struct(h); err != nil {
		return nil, &ShapeError{Resource: "history", Wrapped: err}
	}

	events := make([]EventBrief, 0, len(h.Events))
	for _, e := range h.Events {
		events = append(events, EventBrief{
			ID:    e.ID,
			Title: e.Title,
		})
	}
	return events, nil
}

func (api *API) GetHistoryEvent(ctx context.Context, id string) (EventFull, error) {
	if api.Projected {
		return getProjected[EventFull](ctx, api, "history event", "/history/"+url.PathEscape(id))
	}

	var e historyEvent
	if err := api.get(ctx, "history event", "/history/"+url.PathEscape(id), &e); err != nil {
		return EventFull{}, err
	}
	if err := validation.Struct(e); err != nil {
		return EventFull{}, &ShapeError{Resource: "history event", Wrapped: err}
	}

	checkLinks(ctx, e.ID, e.Links)

	return EventFull{
		ID:           e.ID,
		Title:        e.Title,
		EventDateUTC: e.EventDateUTC,
		Details:      e.Details,
		Links:        e.Links,
	}, nil
}

type rocket struct {
	ID           ID              `json:"id" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	FirstFlight  string          `json:"first_flight"`
	Description  string          `json:"description"`
	Wikipedia    string          `json:"wikipedia"`
	FlickrImages []string        `json:"flickr_images"`
	Height       json.RawMessage `json:"height"`
	Diameter     json.RawMessage `json:"diameter"`
	Mass         json.RawMessage `json:"mass"`
	Engines      json.RawMessage `json:"engines"`
	FirstStage   json.RawMessage `json:"first_stage"`
	SecondStage  json.RawMessage `json:"second_stage"`
}

func (api *API) GetRockets(ctx context.Context) ([]RocketBrief, error) {
	if api.Projected {
		return getProjected[[]RocketBrief](ctx, api, "rockets", "/rockets")
	}

	type catalog struct {
		Rockets []rocket `json:"rockets" validate:"dive"`
	}

	var c catalog
	if err := api.get(ctx, "rockets", "/rockets", &c.Rockets); err != nil {
		return nil, err
	}
	if err := validation.Struct(c); err != nil {
		return nil, &ShapeError{Resource: "rockets", Wrapped: err}
	}

	rockets := make([]RocketBrief, 0, len(c.Rockets))
	for _, r := range c.Rockets {
		rockets = append(rockets, RocketBrief{
			RocketID:   r.ID,
			RocketName: r.Name,
		})
	}
	return rockets, nil
}

func (api *API) GetRocket(ctx context.Context, id string) (RocketFull, error) {
	if api.Projected {
		return getProjected[RocketFull](ctx, api, "rocket", "/rockets/"+url.PathEscape(id))
	}

	var r rocket
	if err := api.get(ctx, "rocket", "/rockets/"+url.PathEscape(id), &r); err != nil {
		return RocketFull{}, err
	}
	if err := validation.Struct(r); err != nil {
		return RocketFull{}, &ShapeError{Resource: "rocket", Wrapped: err}
	}

	return RocketFull{
		RocketID:     r.ID,
		RocketName:   r.Name,
		FirstFlight:  r.FirstFlight,
		Description:  r.Description,
		Wikipedia:    r.Wikipedia,
		FlickrImages: r.FlickrImages,
		Height:       r.Height,
		Diameter:     r.Diameter,
		Mass:         r.Mass,
		Engines:      r.Engines,
		FirstStage:   r.FirstStage,
		SecondStage:  r.SecondStage,
	}, nil
}

func (api *API) GetRoadster(ctx context.Context) (Roadster, error) {
	if api.Projected {
		return getProjected[Roadster](ctx, api, "roadster", "/roadster")
	}

	type roadster struct {
		Name            string  `json:"name" validate:"required"`
		LaunchDateUTC   string  `json:"launch_date_utc"`
		Details         string  `json:"details"`
		EarthDistanceKm float64 `json:"earth_distance_km"`
		MarsDistanceKm  float64 `json:"mars_distance_km"`
		Wikipedia       string  `json:"wikipedia"`
	}

	var r roadster
	if err := api.get(ctx, "roadster", "/roadster", &r); err != nil {
		return Roadster{}, err
	}
	if err := validation.Struct(r); err != nil {
		return Roadster{}, &ShapeError{Resource: "roadster", Wrapped: err}
	}

	return Roadster{
		Name:            r.Name,
		LaunchDateUTC:   r.LaunchDateUTC,
		Details:         r.Details,
		EarthDistanceKm: r.EarthDistanceKm,
		MarsDistanceKm:  r.MarsDistanceKm,
		Wikipedia:       r.Wikipedia,
	}, nil
}

func getProjected[T any](ctx context.Context, api *API, resource string, path string) (T, error) {
	var result T
	err := api.get(ctx, resource, path, &result)
	return result, err
}

// get fetches path and decodes the body into dst. Validation is left to
// the caller, which knows what the resource must contain.
func (api *API) get(ctx context.Context, resource string, path string, dst any) error {
	if rp := perf.ExtractPerf(ctx); rp != nil {
		b := rp.StartBlock("SPACEX", "Fetch "+resource)
		defer b.End()
	}

	reqUrl := api.BaseUrl + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return oops.New(err, "failed to create %s request", resource)
	}
	req.Header.Set("Accept", "application/json")

	res, err := api.HTTPClient.Do(req)
	if err != nil {
		return oops.New(err, "failed to fetch %s", resource)
	}
	defer readAndClose(res)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyLen))
		logging.ExtractLogger(ctx).Warn().
			Int("Status code", res.StatusCode).
			Str("Url", reqUrl).
			Msg("Unexpected status code from spacex API")
		return &StatusError{
			Url:        reqUrl,
			StatusCode: res.StatusCode,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return oops.New(err, "failed to read %s response body", resource)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return oops.New(err, "failed to parse %s response", resource)
	}

	return nil
}

var strictUrl = xurls.Strict()

// checkLinks logs links that don't look like URLs. They are passed through
// anyway; the upstream data is what it is.
func checkLinks(ctx context.Context, eventID ID, links map[string]*string) {
	for name, link := range links {
		if link == nil || *link == "" {
			continue
		}
		if strictUrl.FindString(*link) != *link {
			logging.ExtractLogger(ctx).Warn().
				Str("Event", eventID.String()).
				Str("Link", name).
				Str("Value", *link).
				Msg("History event has a malformed link")
		}
	}
}

func readAndClose(res *http.Response) {
	io.ReadAll(res.Body)
	res.Body.Close()
}
