package live

import (
	"sync"

	"github.com/confdeck/deck-manager/pkg/model"
	"golang.org/x/exp/maps"
)

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uint]subscriber),
	}
}

// Event is a message streamed to a subscribed user.
type Event struct {
	Type    string
	Message string
}

type subscriber struct {
	user    model.User
	channel chan Event
}

// Broker fans out events to subscribed users. Delivery is best effort, an
// event for a user without capacity or without a subscription is dropped.
type Broker struct {
	subscribers map[uint]subscriber
	lock        sync.Mutex
}

// Subscribe registers the user for events. A second subscription by the same
// user replaces the first, which is closed so its stream ends.
func (b *Broker) Subscribe(user model.User) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if s, ok := b.subscribers[user.ID]; ok {
		close(s.channel)
	}
	b.subscribers[user.ID] = subscriber{
		user:    user,
		channel: make(chan Event, 16),
	}
}

func (b *Broker) Unsubscribe(id uint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if s, ok := b.subscribers[id]; ok {
		close(s.channel)
		delete(b.subscribers, id)
	}
}

func (b *Broker) Subscribers() []model.User {
	b.lock.Lock()
	defer b.lock.Unlock()
	keys := maps.Keys(b.subscribers)
	subscribers := make([]model.User, len(keys))
	for i, key := range keys {
		subscribers[i] = b.subscribers[key].user
	}
	return subscribers
}

// Send delivers the event to the subscribed user without blocking. It
// reports whether the event was accepted.
func (b *Broker) Send(id uint, event Event) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	s, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case s.channel <- event:
		return true
	default:
		return false
	}
}

// Receive blocks until an event for the subscribed user arrives or the
// subscription is gone.
func (b *Broker) Receive(id uint) (Event, bool) {
	b.lock.Lock()
	s, ok := b.subscribers[id]
	b.lock.Unlock()
	if !ok {
		return Event{}, false
	}
	event, ok := <-s.channel
	return event, ok
}
