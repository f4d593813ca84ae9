// Package spacextest provides a canned SpaceX API for tests.
package spacextest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RocketID is the id under which Rocket is served.
const RocketID = "5e9d0d95eda69973a809d1ec"

const Company = `{
	"headquarters": {"address": "Rocket Road", "city": "Hawthorne", "state": "California"},
	"links": {"website": "https://www.spacex.com/"},
	"name": "SpaceX",
	"founder": "Elon Musk",
	"founded": 2002,
	"employees": 9500,
	"vehicles": 4,
	"ceo": "Elon Musk",
	"cto": "Elon Musk",
	"coo": "Gwynne Shotwell",
	"cto_propulsion": "Tom Mueller",
	"valuation": 74000000000,
	"summary": "SpaceX designs, manufactures and launches advanced rockets and spacecraft.",
	"id": "5eb75edc42fea42237d7f3ed"
}`

const History = `[
	{"id": 1, "title": "Falcon 1 Makes History", "event_date_utc": "2008-09-28T23:15:00Z", "flight_number": 4},
	{"id": 9, "title": "Falcon reuse", "event_date_utc": "2017-03-30T22:27:00Z", "flight_number": 32},
	{"id": "5f6fb2cfdcfdf403df37971e", "title": "Crew Dragon", "event_date_utc": "2020-05-30T19:22:00Z"}
]`

const HistoryEvent = `{
	"id": 9,
	"title": "Falcon reuse",
	"event_date_utc": "2017-03-30T22:27:00Z",
	"event_date_unix": 1490912820,
	"flight_number": 32,
	"details": "SpaceX successfully launches and lands a used Falcon 9.",
	"links": {
		"reddit": null,
		"article": "https://en.wikipedia.org/wiki/SES-10",
		"wikipedia": "https://en.wikipedia.org/wiki/SES-10"
	}
}`

const Rockets = `[
	{"id": "5e9d0d95eda69955f709d1eb", "name": "Falcon 1", "active": false},
	{"id": "5e9d0d95eda69973a809d1ec", "name": "Falcon 9", "active": true}
]`

const Rocket = `{
	"height": {"meters": 70, "feet": 229.6},
	"diameter": {"meters": 3.7, "feet": 12},
	"mass": {"kg": 549054, "lb": 1207920},
	"first_stage": {"reusable": true, "engines": 9},
	"second_stage": {"reusable": false, "engines": 1},
	"engines": {"number": 9, "type": "merlin"},
	"landing_legs": {"number": 4},
	"flickr_images": ["https://farm1.staticflickr.com/929/28787338307_3453a11a77_b.jpg"],
	"name": "Falcon 9",
	"type": "rocket",
	"active": true,
	"cost_per_launch": 50000000,
	"first_flight": "2010-06-04",
	"country": "United States",
	"company": "SpaceX",
	"wikipedia": "https://en.wikipedia.org/wiki/Falcon_9",
	"description": "Falcon 9 is a two-stage rocket.",
	"id": "5e9d0d95eda69973a809d1ec"
}`

const Roadster = `{
	"name": "Elon Musk's Tesla Roadster",
	"launch_date_utc": "2018-02-06T20:45:00.000Z",
	"launch_mass_kg": 1350,
	"earth_distance_km": 320000000.5,
	"mars_distance_km": 98000000.25,
	"wikipedia": "https://en.wikipedia.org/wiki/Elon_Musk%27s_Tesla_Roadster",
	"details": "Elon Musk's Tesla Roadster is an electric sports car.",
	"id": "5eb75f0842fea42237d7f3f4"
}`

type Server struct {
	*httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

// Hits reports how many requests have been made for path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// NewServer serves the canned responses above. Paths in overrides replace
// or add to them; anything else is a 404.
func NewServer(t *testing.T, overrides map[string]string) *Server {
	t.Helper()

	routes := map[string]string{
		"/company":             Company,
		"/history":             History,
		"/history/9":           HistoryEvent,
		"/rockets":             Rockets,
		"/rockets/" + RocketID: Rocket,
		"/roadster":            Roadster,
	}
	for path, body := range overrides {
		routes[path] = body
	}

	s := &Server{hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`"Not Found"`))
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}
