package docstore

import "sync"

// broker is an in-process pub/sub for snapshots, keyed by document.
// Each subscriber holds at most one undelivered snapshot; a newer one
// replaces it.
type broker struct {
	mu   sync.Mutex
	subs map[string]map[chan Snapshot]struct{}
}

func newBroker() *broker {
	return &broker{
		subs: make(map[string]map[chan Snapshot]struct{}),
	}
}

func (b *broker) subscribe(key string) chan Snapshot {
	ch := make(chan Snapshot, 1)
	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[chan Snapshot]struct{})
	}
	b.subs[key][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(key string, ch chan Snapshot) {
	b.mu.Lock()
	delete(b.subs[key], ch)
	if len(b.subs[key]) == 0 {
		delete(b.subs, key)
	}
	b.mu.Unlock()
}

func (b *broker) publish(key string, snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[key] {
		select {
		case old := <-ch:
			if old.Version > snap.Version {
				ch <- old
				continue
			}
		default:
		}
		ch <- snap
	}
}

func (b *broker) subscribers(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[key])
}
