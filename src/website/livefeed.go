package website

import (
	"sync"
	"time"

	"git.handmade.network/hmn/marsport/src/jobs"
	"git.handmade.network/hmn/marsport/src/shipments"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const liveFeedWriteTimeout = 10 * time.Second

/*
A LiveFeed pushes the shipment collection to websocket clients whenever it
changes. Connections are served on the request's goroutine; the feed's job
only exists so that shutdown can tell every connection to go away and wait
for them.
*/
type LiveFeed struct {
	store *shipments.Store
	job   *jobs.Job

	mu      sync.Mutex
	closing bool
	conns   sync.WaitGroup
}

func RunLiveFeed(store *shipments.Store) (*LiveFeed, *jobs.Job) {
	feed := &LiveFeed{store: store}
	feed.job = jobs.Go("live shipment feed", func(job *jobs.Job) {
		<-job.Canceled()

		feed.mu.Lock()
		feed.closing = true
		feed.mu.Unlock()

		job.Logger.Info().Msg("Closing live feed connections")
		feed.conns.Wait()
	})
	return feed, feed.job
}

// Serve blocks until the client goes away or the feed shuts down.
func (f *LiveFeed) Serve(conn *websocket.Conn, logger *zerolog.Logger) {
	defer conn.Close()

	f.mu.Lock()
	if f.closing {
		f.mu.Unlock()
		return
	}
	f.conns.Add(1)
	f.mu.Unlock()
	defer f.conns.Done()

	updates, unsubscribe := f.store.Subscribe()
	defer unsubscribe()

	// We never expect messages from the client, but reading is how we find
	// out that it has gone away.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	logger.Debug().Msg("Live feed client connected")
	defer logger.Debug().Msg("Live feed client disconnected")

	for {
		select {
		case items, ok := <-updates:
			if !ok {
				return
			}
			msg, err := json.Marshal(items)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to encode shipments for live feed")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(liveFeedWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug().Err(err).Msg("Failed to write to live feed client")
				return
			}
		case <-clientGone:
			return
		case <-f.job.Canceled():
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second),
			)
			return
		}
	}
}
