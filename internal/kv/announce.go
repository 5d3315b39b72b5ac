package kv

// announcingStore decorates a Store so every successful write is published
// to the given notifiers. This is how one execution context's write-through
// reaches the cross-tab synchronizers of the others: each context wraps the
// shared medium with the notifiers of its peers, never its own (a context
// does not observe its own writes as external).
type announcingStore struct {
	Store
	notifiers []*Notifier
}

// WithAnnounce wraps s so each successful Set or Remove is announced to
// every notifier. Removes are announced with an empty value.
func WithAnnounce(s Store, notifiers ...*Notifier) Store {
	return &announcingStore{Store: s, notifiers: notifiers}
}

func (a *announcingStore) Set(key, value string) error {
	if err := a.Store.Set(key, value); err != nil {
		return err
	}
	for _, n := range a.notifiers {
		n.Publish(key, value)
	}
	return nil
}

func (a *announcingStore) Remove(key string) error {
	if err := a.Store.Remove(key); err != nil {
		return err
	}
	for _, n := range a.notifiers {
		n.Publish(key, "")
	}
	return nil
}
