package shipments

import (
	"sync"

	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/validation"
)

/*
A Store holds the items queued for Mars. It is shared by every request, so
each operation takes the lock for its whole duration and hands back a copy
of the collection as it stood right after the operation.

Items keep the position they were first sent at. Sending an item with an id
that is already present replaces it in place.
*/
type Store struct {
	mu    sync.Mutex
	items []models.Item

	subs    map[int]chan []models.Item
	nextSub int
}

func NewStore() *Store {
	return &Store{
		subs: make(map[int]chan []models.Item),
	}
}

func (s *Store) List() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Send validates item and adds it to the collection, replacing any item
// with the same id.
func (s *Store) Send(item models.Item) ([]models.Item, error) {
	if err := validation.Struct(item); err != nil {
		return nil, err
	}
	item = cloneItem(item)

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}

	s.notify()
	return s.snapshot(), nil
}

// Cancel removes the item with the given id. Canceling an unknown id is not
// an error; the collection is returned unchanged.
func (s *Store) Cancel(id string) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.notify()
			break
		}
	}
	return s.snapshot()
}

/*
Subscribe returns a channel that receives the collection after every change,
starting with the current one. Slow subscribers only ever see the latest
collection; intermediate ones are dropped.

Call the returned function to unsubscribe. The channel is closed afterward.
*/
func (s *Store) Subscribe() (<-chan []models.Item, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	c := make(chan []models.Item, 1)
	c <- s.snapshot()
	s.subs[id] = c

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(c)
		})
	}
	return c, unsubscribe
}

// Must be called with the lock held.
func (s *Store) notify() {
	for _, c := range s.subs {
		select {
		case <-c:
		default:
		}
		c <- s.snapshot()
	}
}

// Must be called with the lock held.
func (s *Store) snapshot() []models.Item {
	items := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, cloneItem(item))
	}
	return items
}

func cloneItem(item models.Item) models.Item {
	if item.Weight != nil {
		w := *item.Weight
		item.Weight = &w
	}
	if item.Color != nil {
		c := *item.Color
		item.Color = &c
	}
	if item.Important != nil {
		i := *item.Important
		item.Important = &i
	}
	return item
}
