package shipments

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/utils"
	"git.handmade.network/hmn/marsport/src/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string) models.Item {
	return models.Item{ID: id, Name: "Thing " + id, Phone: "+1 555 0100"}
}

func ids(items []models.Item) []string {
	res := make([]string, 0, len(items))
	for _, i := range items {
		res = append(res, i.ID)
	}
	return res
}

func TestSend(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.List())

	items, err := s.Send(item("a"))
	require.Nil(t, err)
	assert.Equal(t, []string{"a"}, ids(items))

	items, err = s.Send(item("b"))
	require.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(items))

	t.Run("upsert keeps position", func(t *testing.T) {
		updated := item("a")
		updated.Name = "Renamed"
		updated.Weight = utils.P(12.5)

		items, err := s.Send(updated)
		require.Nil(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(items))
		assert.Equal(t, "Renamed", items[0].Name)
		assert.Equal(t, 12.5, *items[0].Weight)
	})

	assert.Equal(t, s.List(), utils.Must1(s.Send(item("b"))))
}

func TestSendValidation(t *testing.T) {
	tests := []struct {
		name    string
		item    models.Item
		message string
	}{
		{"missing id", models.Item{Name: "x", Phone: "1"}, "id is required"},
		{"missing name", models.Item{ID: "x", Phone: "1"}, "name is required"},
		{"missing phone", models.Item{ID: "x", Name: "x"}, "phone is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			items, err := s.Send(tt.item)
			assert.Nil(t, items)

			var valErr *validation.Error
			require.True(t, errors.As(err, &valErr))
			assert.Contains(t, valErr.Messages, tt.message)
			assert.Empty(t, s.List())
		})
	}

	t.Run("any weight is fine", func(t *testing.T) {
		for _, weight := range []float64{0, -3.5, 1e9} {
			s := NewStore()
			i := item("a")
			i.Weight = utils.P(weight)
			items, err := s.Send(i)
			require.Nil(t, err)
			assert.Equal(t, []models.Item{i}, items)
		}
	})
}

func TestCancel(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		utils.Must1(s.Send(item(id)))
	}

	assert.Equal(t, []string{"a", "c"}, ids(s.Cancel("b")))
	assert.Equal(t, []string{"a", "c"}, ids(s.Cancel("b")))
	assert.Equal(t, []string{"a", "c"}, ids(s.Cancel("nonexistent")))
	assert.Equal(t, []string{"c"}, ids(s.Cancel("a")))
	assert.Empty(t, s.Cancel("c"))
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := NewStore()
	i := item("a")
	i.Weight = utils.P(1.0)
	items := utils.Must1(s.Send(i))

	*i.Weight = 100
	*items[0].Weight = 200
	items[0].Name = "mutated"

	stored := s.List()
	assert.Equal(t, 1.0, *stored[0].Weight)
	assert.Equal(t, "Thing a", stored[0].Name)
}

func TestConcurrentMutations(t *testing.T) {
	s := NewStore()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("item-%d", i)
			items, err := s.Send(item(id))
			assert.Nil(t, err)
			assert.Contains(t, ids(items), id)
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.List(), n)

	for i := 0; i < n; i += 2 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("item-%d", i)
			assert.NotContains(t, ids(s.Cancel(id)), id)
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.List(), n/2)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	utils.Must1(s.Send(item("a")))

	feed, unsubscribe := s.Subscribe()

	receive := func() []models.Item {
		select {
		case items := <-feed:
			return items
		case <-time.After(time.Second):
			t.Fatal("no update from the feed")
			return nil
		}
	}

	assert.Equal(t, []string{"a"}, ids(receive()))

	utils.Must1(s.Send(item("b")))
	assert.Equal(t, []string{"a", "b"}, ids(receive()))

	t.Run("slow subscribers get the latest", func(t *testing.T) {
		utils.Must1(s.Send(item("c")))
		s.Cancel("a")
		assert.Equal(t, []string{"b", "c"}, ids(receive()))
	})

	t.Run("canceling nothing sends nothing", func(t *testing.T) {
		s.Cancel("nonexistent")
		select {
		case <-feed:
			t.Fatal("unexpected update")
		default:
		}
	})

	unsubscribe()
	unsubscribe()
	_, ok := <-feed
	assert.False(t, ok)

	utils.Must1(s.Send(item("d")))
}

func TestSeedDemo(t *testing.T) {
	s := NewStore()
	items := SeedDemo(s, 5)
	require.Len(t, items, 5)

	seen := make(map[string]bool)
	for _, i := range items {
		assert.Nil(t, validation.Struct(i))
		assert.False(t, seen[i.ID])
		seen[i.ID] = true
	}
}
