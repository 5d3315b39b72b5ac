package kv

import (
	"sort"
	"sync"
)

// Notifier is the explicit publish/subscribe channel for external key
// mutations: another execution context writing to the same persistent store
// announces the key and its new raw value through Publish, and every live
// subscription observes it. Delivery is synchronous and in subscription
// order; subscribers reconcile or ignore, the Notifier itself never
// interprets values.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(key, value string)
}

// NewNotifier returns a Notifier with no subscriptions.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(key, value string))}
}

// Subscribe registers fn for every subsequent Publish and returns a cancel
// function. Cancel is idempotent; after it returns, fn is never called
// again.
func (n *Notifier) Subscribe(fn func(key, value string)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers a key mutation to every subscription.
func (n *Notifier) Publish(key, value string) {
	n.mu.Lock()
	ids := make([]int, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	// Snapshot in ID (subscription) order so delivery is deterministic.
	sort.Ints(ids)
	fns := make([]func(string, string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, n.subs[id])
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(key, value)
	}
}

// Subscribers reports the number of live subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
