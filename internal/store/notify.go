package store

import "sync"

// Subscription is a standing change-notification handle for one collection.
// Its channel has capacity one and receives coalesced signals: any number of
// changes between reads collapses into a single pending signal.
type Subscription struct {
	id         int
	collection Collection
	ch         chan struct{}
	notifier   *Notifier
}

// C returns the signal channel. It is closed on Unsubscribe.
func (s *Subscription) C() <-chan struct{} { return s.ch }

// Collection returns the collection this subscription watches.
func (s *Subscription) Collection() Collection { return s.collection }

// Unsubscribe releases the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.notifier.remove(s)
}

// Notifier fans change events out to per-collection subscribers.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[Collection]map[int]*Subscription
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[Collection]map[int]*Subscription)}
}

// Subscribe registers interest in changes to collection c.
func (n *Notifier) Subscribe(c Collection) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	sub := &Subscription{
		id:         n.nextID,
		collection: c,
		ch:         make(chan struct{}, 1),
		notifier:   n,
	}
	if n.subs[c] == nil {
		n.subs[c] = make(map[int]*Subscription)
	}
	n.subs[c][sub.id] = sub
	return sub
}

// Publish signals every subscriber of collection c. The send never blocks: a
// subscriber with a signal already pending absorbs the new one.
func (n *Notifier) Publish(c Collection) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs[c] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount returns the number of live subscriptions for c.
func (n *Notifier) SubscriberCount(c Collection) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[c])
}

func (n *Notifier) remove(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	m := n.subs[sub.collection]
	if _, ok := m[sub.id]; !ok {
		return
	}
	delete(m, sub.id)
	close(sub.ch)
}

// Subscribe registers interest in changes to collection c on this store.
func (s *Store) Subscribe(c Collection) *Subscription {
	return s.notifier.Subscribe(c)
}

// Notify publishes a change event for c. Writes through this store call it
// automatically; it is exported so other ingestion paths against the same
// database can share the recomputation path.
func (s *Store) Notify(c Collection) {
	s.notifier.Publish(c)
}

// Notifier exposes the store's notifier.
func (s *Store) Notifier() *Notifier { return s.notifier }
