package spacex

import (
	"github.com/goccy/go-json"
)

/*
These are the shapes handed to callers. They only ever contain the fields
listed here, no matter what else the upstream API sends.
*/

type Headquarters struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type About struct {
	Founder      string       `json:"founder"`
	Founded      int          `json:"founded"`
	Employees    int          `json:"employees"`
	CEO          string       `json:"ceo"`
	COO          string       `json:"coo"`
	CTO          string       `json:"cto"`
	Valuation    float64      `json:"valuation"`
	Headquarters Headquarters `json:"headquarters"`
	Summary      string       `json:"summary"`
}

type EventBrief struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

type EventFull struct {
	ID           ID                 `json:"id"`
	Title        string             `json:"title"`
	EventDateUTC string             `json:"event_date_utc"`
	Details      string             `json:"details"`
	Links        map[string]*string `json:"links"`
}

type RocketBrief struct {
	RocketID   ID     `json:"rocket_id"`
	RocketName string `json:"rocket_name"`
}

// RocketFull passes the engineering specs through untouched; their layout
// belongs to the upstream API and callers render them as they see fit.
type RocketFull struct {
	RocketID     ID              `json:"rocket_id"`
	RocketName   string          `json:"rocket_name"`
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

type Roadster struct {
	Name            string  `json:"name"`
	LaunchDateUTC   string  `json:"launch_date_utc"`
	Details         string  `json:"details"`
	EarthDistanceKm float64 `json:"earth_distance_km"`
	MarsDistanceKm  float64 `json:"mars_distance_km"`
	Wikipedia       string  `json:"wikipedia"`
}
