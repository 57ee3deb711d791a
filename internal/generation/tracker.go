// Package generation discards completions of superseded requests.
//
// Every client key owns a monotonically increasing request generation. A request
// takes a Ticket when it starts; when it completes, the ticket tells whether a newer
// request of the same client has begun in the meantime, in which case the result
// must be dropped rather than delivered.
package generation

import (
	"sync"
	"time"
)

// Tracker records the highest generation begun per client key.
// It is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	clients    map[string]*entry
	ttl        time.Duration
	maxClients int
	now        func() time.Time

	// evicted is the highest generation held by any evicted key. Keys re-created
	// by Next start above it, so an in-flight ticket of an evicted key is
	// superseded by the key's next request.
	evicted uint64
}

type entry struct {
	latest uint64
	seen   time.Time
}

// NewTracker creates a tracker. Client keys idle for longer than ttl are evicted;
// maxClients bounds the number of tracked keys (0 means unbounded).
func NewTracker(ttl time.Duration, maxClients int) *Tracker {
	return &Tracker{
		clients:    make(map[string]*entry),
		ttl:        ttl,
		maxClients: maxClients,
		now:        time.Now,
	}
}

// Begin starts a request with a caller-chosen generation.
// A generation lower than one already begun yields a ticket that is stale from the start.
func (t *Tracker) Begin(client string, gen uint64) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, _ := t.touch(client)
	if gen > e.latest {
		e.latest = gen
	}
	return Ticket{tracker: t, client: client, gen: gen}
}

// Next starts a request with the next generation of client.
func (t *Tracker) Next(client string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, created := t.touch(client)
	if created {
		e.latest = t.evicted
	}
	e.latest++
	return Ticket{tracker: t, client: client, gen: e.latest}
}

// Len returns the number of tracked client keys.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clients)
}

// Sweep evicts client keys idle for longer than the ttl.
func (t *Tracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweep()
}

func (t *Tracker) latest(client string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.clients[client]
	if !ok {
		return 0, false
	}
	return e.latest, true
}

// touch must be called with mu held.
func (t *Tracker) touch(client string) (e *entry, created bool) {
	now := t.now()
	e, ok := t.clients[client]
	if !ok {
		created = true
		if t.maxClients > 0 && len(t.clients) >= t.maxClients {
			t.sweep()
			if len(t.clients) >= t.maxClients {
				t.evictOldest()
			}
		}
		e = &entry{}
		t.clients[client] = e
	}
	e.seen = now
	return e, created
}

// drop must be called with mu held.
func (t *Tracker) drop(client string) {
	if e, ok := t.clients[client]; ok && e.latest > t.evicted {
		t.evicted = e.latest
	}
	delete(t.clients, client)
}

func (t *Tracker) sweep() {
	if t.ttl <= 0 {
		return
	}
	cutoff := t.now().Add(-t.ttl)
	for k, e := range t.clients {
		if e.seen.Before(cutoff) {
			t.drop(k)
		}
	}
}

func (t *Tracker) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range t.clients {
		if oldestKey == "" || e.seen.Before(oldest) {
			oldestKey, oldest = k, e.seen
		}
	}
	t.drop(oldestKey)
}

// Ticket identifies one started request.
type Ticket struct {
	tracker *Tracker
	client  string
	gen     uint64
}

// Generation returns the generation of the request.
func (tk Ticket) Generation() uint64 { return tk.gen }

// Current reports whether no newer request of the same client has begun.
// A ticket whose client key was evicted stays current until the key's next
// request, which is always numbered above it.
func (tk Ticket) Current() bool {
	if tk.tracker == nil {
		return true
	}
	latest, ok := tk.tracker.latest(tk.client)
	return !ok || latest <= tk.gen
}
