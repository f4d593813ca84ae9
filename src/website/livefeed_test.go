package website

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/shipments"
	"git.handmade.network/hmn/marsport/src/utils"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveFeed(t *testing.T) {
	srv := newTestServer(t)
	utils.Must1(srv.Store.Send(models.Item{ID: "a", Name: "Rover", Phone: "555"}))

	wsUrl := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sentToMars/live"
	conn, res, err := websocket.DefaultDialer.Dial(wsUrl, nil)
	require.Nil(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)

	read := func() []models.Item {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.Nil(t, err)

		var items []models.Item
		require.Nil(t, json.Unmarshal(msg, &items))
		return items
	}

	assert.Equal(t, []string{"a"}, itemIDs(read()))

	doTestRequest(t, http.MethodPost, srv.URL+"/api/sendToMars/b", `{"name": "Flag", "phone": "556"}`)
	assert.Equal(t, []string{"a", "b"}, itemIDs(read()))

	doTestRequest(t, http.MethodDelete, srv.URL+"/api/cancelSendingToMars/a", "")
	assert.Equal(t, []string{"b"}, itemIDs(read()))
}

func TestLiveFeedShutdown(t *testing.T) {
	store := shipments.NewStore()
	feed, job := RunLiveFeed(store)

	srv := httptest.NewServer(NewWebsiteRoutes(Services{Shipments: store, LiveFeed: feed}))
	defer srv.Close()

	wsUrl := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sentToMars/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsUrl, nil)
	require.Nil(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	require.Nil(t, err)

	job.Cancel()

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)

	select {
	case <-job.Finished():
	case <-time.After(5 * time.Second):
		t.Fatal("live feed did not shut down")
	}
}

func TestLiveFeedRejectsPlainRequests(t *testing.T) {
	srv := newTestServer(t)

	res, _ := doTestRequest(t, http.MethodGet, srv.URL+"/api/sentToMars/live", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
